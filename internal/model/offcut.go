package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID         string  `json:"id"`
	SheetLabel string  `json:"sheet_label"` // Which sheet it came from
	X          float64 `json:"x"`           // Position on the sheet (mm from left)
	Y          float64 `json:"y"`           // Position on the sheet (mm from top)
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToSheet converts an offcut into stock for a later run.
func (o Offcut) ToSheet() Sheet {
	label := "Offcut"
	if o.SheetLabel != "" {
		label += " " + o.SheetLabel
	}
	return Sheet{Label: label, Width: o.Width, Height: o.Height}
}

// Default remnant thresholds. Remnants below either limit are waste.
const (
	MinOffcutDimension = 50.0
	MinOffcutArea      = 10000.0 // 100mm x 100mm equivalent
)

// DetectOffcuts returns the free rectangles of a packed sheet that are large
// enough to be reused, largest first. Free leaves never overlap each other or a
// placement, so each one is a clean guillotine remnant.
func DetectOffcuts(sr SheetResult, minDimension, minArea float64) []Offcut {
	var offcuts []Offcut
	for _, r := range sr.FreeRects {
		if r.Width < minDimension || r.Height < minDimension || r.Area() < minArea {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetLabel: sr.Sheet.Label,
			X:          r.X,
			Y:          r.Y,
			Width:      r.Width,
			Height:     r.Height,
		})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectOffcutsWithSettings applies the thresholds configured in settings.
func DetectOffcutsWithSettings(sr SheetResult, s PlanSettings) []Offcut {
	return DetectOffcuts(sr, s.MinOffcutDimension, s.MinOffcutArea)
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
