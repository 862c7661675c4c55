package model

import "github.com/google/uuid"

// ToolProfile is a reusable set of cutting parameters for the G-code generator.
type ToolProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	FeedRate     float64 `json:"feed_rate"`
	PlungeRate   float64 `json:"plunge_rate"`
	SpindleSpeed int     `json:"spindle_speed"`
	SafeZ        float64 `json:"safe_z"`
	CutDepth     float64 `json:"cut_depth"`
	PassDepth    float64 `json:"pass_depth"`
}

func NewToolProfile(name string, feedRate, plungeRate float64, spindleSpeed int, safeZ, cutDepth, passDepth float64) ToolProfile {
	return ToolProfile{
		ID:           uuid.New().String()[:8],
		Name:         name,
		FeedRate:     feedRate,
		PlungeRate:   plungeRate,
		SpindleSpeed: spindleSpeed,
		SafeZ:        safeZ,
		CutDepth:     cutDepth,
		PassDepth:    passDepth,
	}
}

// ApplyToSettings copies this tool profile's parameters into the given PlanSettings.
func (tp ToolProfile) ApplyToSettings(s *PlanSettings) {
	s.FeedRate = tp.FeedRate
	s.PlungeRate = tp.PlungeRate
	s.SpindleSpeed = tp.SpindleSpeed
	s.SafeZ = tp.SafeZ
	s.CutDepth = tp.CutDepth
	s.PassDepth = tp.PassDepth
}

// SheetPreset is a reusable stock definition.
type SheetPreset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Margin   float64 `json:"margin"`
	Material string  `json:"material"`
}

func NewSheetPreset(name string, width, height, margin float64, material string) SheetPreset {
	return SheetPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    width,
		Height:   height,
		Margin:   margin,
		Material: material,
	}
}

// ToSheet converts the preset into stock for a packing run.
func (sp SheetPreset) ToSheet() Sheet {
	return Sheet{Label: sp.Name, Width: sp.Width, Height: sp.Height, Margin: sp.Margin}
}

// Inventory holds the user's saved tool profiles and sheet presets.
type Inventory struct {
	Tools  []ToolProfile `json:"tools"`
	Sheets []SheetPreset `json:"sheets"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Tools: []ToolProfile{
			NewToolProfile("Panel saw 250mm", 3000, 800, 4500, 5.0, 18.0, 18.0),
			NewToolProfile("6mm End Mill", 1500, 500, 18000, 5.0, 18.0, 6.0),
			NewToolProfile("3mm End Mill", 1000, 300, 20000, 5.0, 12.0, 3.0),
		},
		Sheets: []SheetPreset{
			NewSheetPreset("Plywood 2440x1220 (8'x4')", 2440, 1220, 10, "Plywood"),
			NewSheetPreset("MDF 2440x1220 (8'x4')", 2440, 1220, 10, "MDF"),
			NewSheetPreset("Chipboard 2800x2070", 2800, 2070, 15, "Chipboard"),
			NewSheetPreset("MDF 1220x610 (4'x2')", 1220, 610, 5, "MDF"),
			NewSheetPreset("Glass 3210x2250", 3210, 2250, 20, "Glass"),
			NewSheetPreset("Steel 2500x1250", 2500, 1250, 10, "Steel"),
		},
	}
}

// FindToolByName returns a pointer to the first tool with the given name, or nil.
func (inv *Inventory) FindToolByName(name string) *ToolProfile {
	for i := range inv.Tools {
		if inv.Tools[i].Name == name {
			return &inv.Tools[i]
		}
	}
	return nil
}

// FindSheetByID returns a pointer to the sheet preset with the given ID, or nil.
func (inv *Inventory) FindSheetByID(id string) *SheetPreset {
	for i := range inv.Sheets {
		if inv.Sheets[i].ID == id {
			return &inv.Sheets[i]
		}
	}
	return nil
}

// FindSheetByName returns a pointer to the first sheet preset with the given name, or nil.
func (inv *Inventory) FindSheetByName(name string) *SheetPreset {
	for i := range inv.Sheets {
		if inv.Sheets[i].Name == name {
			return &inv.Sheets[i]
		}
	}
	return nil
}

func (inv *Inventory) SheetNames() []string {
	names := make([]string, len(inv.Sheets))
	for i, s := range inv.Sheets {
		names[i] = s.Name
	}
	return names
}
