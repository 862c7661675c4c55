package model

// Unbounded is reported as SheetsNeeded for a figure type no sheet can yield.
const Unbounded = -1

// FigurePlan is the production outcome for one figure type.
type FigurePlan struct {
	Key            string `json:"key"`
	Necessary      int    `json:"necessary"`
	PerSheet       int    `json:"per_sheet"`
	SheetsNeeded   int    `json:"sheets_needed"`  // Unbounded when PerSheet is 0 and demand is positive
	TotalProduced  int    `json:"total_produced"` // PerSheet * SheetsRequired
	Overproduction int    `json:"overproduction"` // TotalProduced - Necessary, never negative
	Unplaceable    bool   `json:"unplaceable"`
	Error          string `json:"error,omitempty"`
}

// ProductionPlan aggregates one packed sheet into a multi-sheet run.
type ProductionPlan struct {
	Figures            []FigurePlan `json:"figures"` // input order
	SheetsRequired     int          `json:"sheets_required"`
	TheoreticalMinimum int          `json:"theoretical_minimum"`
	MaterialArea       float64      `json:"material_area"`
	UsedArea           float64      `json:"used_area"`
	WasteArea          float64      `json:"waste_area"`
	Efficiency         float64      `json:"efficiency"`
	Layout             SheetResult  `json:"layout"`
}

// FindFigure returns the plan entry for a type key, or nil.
func (pp *ProductionPlan) FindFigure(key string) *FigurePlan {
	for i := range pp.Figures {
		if pp.Figures[i].Key == key {
			return &pp.Figures[i]
		}
	}
	return nil
}

// HasUnplaceable reports whether any figure type cannot be cut from this sheet.
func (pp ProductionPlan) HasUnplaceable() bool {
	for _, f := range pp.Figures {
		if f.Unplaceable {
			return true
		}
	}
	return false
}

// SheetSpec describes the stock for a cutting plan.
type SheetSpec struct {
	Label  string  `json:"label,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// CuttingInstruction tells the operator where one figure is cut on each sheet.
type CuttingInstruction struct {
	Figure  string  `json:"figure"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`  // footprint width
	Height  float64 `json:"height"` // footprint height
	Rotated bool    `json:"rotated"`
	Margin  float64 `json:"margin"`
}

// CuttingPlan is the shop-floor view of a production plan.
type CuttingPlan struct {
	Sheet          SheetSpec            `json:"sheet"`
	SheetsRequired int                  `json:"sheets_required"`
	Instructions   []CuttingInstruction `json:"cutting_instructions"`
	Cuts           []Cut                `json:"cuts"`
}
