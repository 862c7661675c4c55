package engine

import (
	"log/slog"

	"github.com/piwi3910/SheetYield/internal/model"
)

const unplaceableMessage = "does not fit the usable sheet area in any allowed orientation"

// Plan packs one sheet and scales the result to the number of identical
// sheets that satisfies every placeable figure type's demand.
func (o *Optimizer) Plan(sheet model.Sheet, figures []model.Figure) (model.ProductionPlan, error) {
	layout, err := o.PackSheet(sheet, figures)
	if err != nil {
		return model.ProductionPlan{}, err
	}
	plan := BuildPlan(layout)

	o.logger.Debug("planned production",
		slog.Int("sheets_required", plan.SheetsRequired),
		slog.Int("theoretical_minimum", plan.TheoreticalMinimum),
		slog.Float64("efficiency", plan.Efficiency))
	return plan, nil
}

// BuildPlan derives the production plan from a packed sheet. A type with
// demand but zero per-sheet yield is flagged Unplaceable with SheetsNeeded
// set to model.Unbounded and does not take part in the sheet count.
func BuildPlan(layout model.SheetResult) model.ProductionPlan {
	plan := model.ProductionPlan{
		Figures:            make([]model.FigurePlan, 0, len(layout.Figures)),
		TheoreticalMinimum: model.TheoreticalMinimum(layout.Sheet, layout.Figures),
		Layout:             layout,
	}

	required := 1
	for _, f := range layout.Figures {
		key := f.Key()
		fp := model.FigurePlan{
			Key:       key,
			Necessary: f.Necessary,
			PerSheet:  layout.Counts[key],
		}
		switch {
		case f.Necessary == 0:
			fp.SheetsNeeded = 0
		case fp.PerSheet == 0:
			fp.SheetsNeeded = model.Unbounded
			fp.Unplaceable = true
			fp.Error = unplaceableMessage
		default:
			fp.SheetsNeeded = ceilDiv(f.Necessary, fp.PerSheet)
			required = max(required, fp.SheetsNeeded)
		}
		plan.Figures = append(plan.Figures, fp)
	}
	plan.SheetsRequired = required

	for i := range plan.Figures {
		fp := &plan.Figures[i]
		fp.TotalProduced = fp.PerSheet * required
		fp.Overproduction = max(fp.TotalProduced-fp.Necessary, 0)
	}

	sheets := float64(required)
	plan.MaterialArea = layout.Sheet.Area() * sheets
	plan.UsedArea = layout.UsedArea * sheets
	plan.WasteArea = plan.MaterialArea - plan.UsedArea
	if plan.MaterialArea > 0 {
		plan.Efficiency = plan.UsedArea / plan.MaterialArea
	}
	return plan
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
