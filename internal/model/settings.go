package model

import "fmt"

// SortOrder decides the order in which figure types are packed.
type SortOrder string

const (
	SortArea        SortOrder = "area"         // Descending footprint area (default)
	SortPerimeter   SortOrder = "perimeter"    // Descending footprint perimeter
	SortLongestSide SortOrder = "longest-side" // Descending longest footprint side
	SortInput       SortOrder = "input"        // Declaration order
)

// SortOrders lists every supported order, default first.
var SortOrders = []SortOrder{SortArea, SortPerimeter, SortLongestSide, SortInput}

// ParseSortOrder converts a flag or config value into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortArea, nil
	}
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// PlanSettings holds packing and machine configuration.
type PlanSettings struct {
	// Packing
	Order SortOrder `json:"order"`

	// Offcut detection
	MinOffcutDimension float64 `json:"min_offcut_dimension"` // mm, shortest side of a reusable remnant
	MinOffcutArea      float64 `json:"min_offcut_area"`      // sq mm

	// Cutting program
	FeedRate     float64 `json:"feed_rate"`     // mm/min
	PlungeRate   float64 `json:"plunge_rate"`   // mm/min
	SpindleSpeed int     `json:"spindle_speed"` // RPM
	SafeZ        float64 `json:"safe_z"`        // mm
	CutDepth     float64 `json:"cut_depth"`     // material thickness, mm
	PassDepth    float64 `json:"pass_depth"`    // mm per pass
	GCodeProfile string  `json:"gcode_profile"`
}

func DefaultSettings() PlanSettings {
	return PlanSettings{
		Order:              SortArea,
		MinOffcutDimension: 50.0,
		MinOffcutArea:      10000.0,
		FeedRate:           1500.0,
		PlungeRate:         500.0,
		SpindleSpeed:       18000,
		SafeZ:              5.0,
		CutDepth:           18.0,
		PassDepth:          6.0,
		GCodeProfile:       "Generic",
	}
}

// GCodeProfile defines the dialect of one CNC controller.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	StartCode    []string `json:"start_code"`
	SpindleStart string   `json:"spindle_start"` // e.g. "M3 S%d"
	SpindleStop  string   `json:"spindle_stop"`
	RapidMove    string   `json:"rapid_move"`
	FeedMove     string   `json:"feed_move"`
	EndCode      []string `json:"end_code"` // [SafeZ] is replaced with the retract height

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`
	DecimalPlaces int    `json:"decimal_places"`
}

// Built-in controller profiles.
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration (Arduino CNC shields)",
		StartCode:     []string{"G90", "G21", "G17"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1]
}

// GetProfileNames returns the names of all built-in profiles.
func GetProfileNames() []string {
	names := make([]string, 0, len(GCodeProfiles))
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}
