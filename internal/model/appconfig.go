package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default stock
	DefaultSheetWidth  float64 `json:"default_sheet_width"`
	DefaultSheetHeight float64 `json:"default_sheet_height"`
	DefaultSheetMargin float64 `json:"default_sheet_margin"`

	// Defaults for figures declared without these fields
	DefaultFigureMargin float64 `json:"default_figure_margin"`
	DefaultRotation     bool    `json:"default_rotation"`

	// Default plan settings applied to new jobs
	DefaultOrder        SortOrder `json:"default_order"`
	DefaultFeedRate     float64   `json:"default_feed_rate"`
	DefaultPlungeRate   float64   `json:"default_plunge_rate"`
	DefaultSpindleSpeed int       `json:"default_spindle_speed"`
	DefaultSafeZ        float64   `json:"default_safe_z"`
	DefaultCutDepth     float64   `json:"default_cut_depth"`
	DefaultPassDepth    float64   `json:"default_pass_depth"`
	DefaultGCodeProfile string    `json:"default_gcode_profile"`

	// Application preferences
	OutputDir  string   `json:"output_dir"` // where exports go, "" = working directory
	ServerAddr string   `json:"server_addr"`
	RecentJobs []string `json:"recent_jobs"`

	// Most placements one HTTP request may ask a packing run for
	ServerPlacementLimit int `json:"server_placement_limit"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultSheetWidth:   2440,
		DefaultSheetHeight:  1220,
		DefaultSheetMargin:  0,
		DefaultFigureMargin: 0,
		DefaultRotation:     false,
		DefaultOrder:        defaults.Order,
		DefaultFeedRate:     defaults.FeedRate,
		DefaultPlungeRate:   defaults.PlungeRate,
		DefaultSpindleSpeed: defaults.SpindleSpeed,
		DefaultSafeZ:        defaults.SafeZ,
		DefaultCutDepth:     defaults.CutDepth,
		DefaultPassDepth:    defaults.PassDepth,
		DefaultGCodeProfile: defaults.GCodeProfile,
		ServerAddr:          ":8080",
		RecentJobs:          []string{},

		ServerPlacementLimit: 20000,
	}
}

// ApplyToSettings copies the default values from AppConfig into a PlanSettings struct.
func (c AppConfig) ApplyToSettings(s *PlanSettings) {
	if c.DefaultOrder != "" {
		s.Order = c.DefaultOrder
	}
	s.FeedRate = c.DefaultFeedRate
	s.PlungeRate = c.DefaultPlungeRate
	s.SpindleSpeed = c.DefaultSpindleSpeed
	s.SafeZ = c.DefaultSafeZ
	s.CutDepth = c.DefaultCutDepth
	s.PassDepth = c.DefaultPassDepth
	s.GCodeProfile = c.DefaultGCodeProfile
}

// DefaultSheet returns the configured default stock.
func (c AppConfig) DefaultSheet() Sheet {
	return NewSheet(c.DefaultSheetWidth, c.DefaultSheetHeight, c.DefaultSheetMargin)
}

// AddRecentJob records a job path, most recent first, keeping at most ten.
func (c *AppConfig) AddRecentJob(path string) {
	jobs := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			jobs = append(jobs, p)
		}
	}
	if len(jobs) > 10 {
		jobs = jobs[:10]
	}
	c.RecentJobs = jobs
}
