package engine

import (
	"fmt"
	"sync"

	"github.com/piwi3910/SheetYield/internal/model"
)

// ComparisonScenario defines a named variation of one planning run.
type ComparisonScenario struct {
	Name        string             `json:"name"`
	Settings    model.PlanSettings `json:"settings"`
	SheetMargin *float64           `json:"sheet_margin,omitempty"` // overrides the sheet margin when set
	AllowRotate bool               `json:"allow_rotate,omitempty"` // lets every figure type rotate
}

// ComparisonResult holds the plan and headline numbers for a single scenario.
type ComparisonResult struct {
	Scenario         ComparisonScenario   `json:"scenario"`
	Plan             model.ProductionPlan `json:"plan"`
	SheetsRequired   int                  `json:"sheets_required"`
	Efficiency       float64              `json:"efficiency"`
	WastePercent     float64              `json:"waste_percent"`
	UnplaceableTypes int                  `json:"unplaceable_types"`
	Error            string               `json:"error,omitempty"`
}

// CompareScenarios plans every scenario concurrently and returns the results
// in scenario order. Each scenario packs its own tree.
func CompareScenarios(scenarios []ComparisonScenario, sheet model.Sheet, figures []model.Figure) []ComparisonResult {
	results := make([]ComparisonResult, len(scenarios))

	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runScenario(sc, sheet, figures)
		}()
	}
	wg.Wait()

	return results
}

func runScenario(sc ComparisonScenario, sheet model.Sheet, figures []model.Figure) ComparisonResult {
	if sc.SheetMargin != nil {
		sheet.Margin = *sc.SheetMargin
	}
	figs := make([]model.Figure, len(figures))
	copy(figs, figures)
	if sc.AllowRotate {
		for i := range figs {
			figs[i].Rotation = true
		}
	}

	res := ComparisonResult{Scenario: sc}
	plan, err := New(sc.Settings).Plan(sheet, figs)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Plan = plan
	res.SheetsRequired = plan.SheetsRequired
	res.Efficiency = plan.Efficiency
	res.WastePercent = 100.0 * (1 - plan.Efficiency)
	for _, fp := range plan.Figures {
		if fp.Unplaceable {
			res.UnplaceableTypes++
		}
	}
	return res
}

// Best returns the index of the preferred result: fewest unplaceable types,
// then fewest sheets, then highest efficiency, then scenario order. Failed
// scenarios are skipped. Returns -1 when no scenario succeeded.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Error != "" {
			continue
		}
		if best < 0 || better(r, results[best]) {
			best = i
		}
	}
	return best
}

func better(a, b ComparisonResult) bool {
	if a.UnplaceableTypes != b.UnplaceableTypes {
		return a.UnplaceableTypes < b.UnplaceableTypes
	}
	if a.SheetsRequired != b.SheetsRequired {
		return a.SheetsRequired < b.SheetsRequired
	}
	return a.Efficiency > b.Efficiency+model.Epsilon
}

// BuildDefaultScenarios generates what-if variations of the current settings:
// every other packing order, rotation for all types, and no sheet margin.
func BuildDefaultScenarios(base model.PlanSettings, sheet model.Sheet) []ComparisonScenario {
	if base.Order == "" {
		base.Order = model.SortArea
	}
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, order := range model.SortOrders {
		if order == base.Order {
			continue
		}
		alt := base
		alt.Order = order
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Sort by %s", order),
			Settings: alt,
		})
	}

	scenarios = append(scenarios, ComparisonScenario{
		Name:        "Allow Rotation",
		Settings:    base,
		AllowRotate: true,
	})

	if sheet.Margin > 0 {
		zero := 0.0
		scenarios = append(scenarios, ComparisonScenario{
			Name:        "No Sheet Margin",
			Settings:    base,
			SheetMargin: &zero,
		})
	}

	return scenarios
}
