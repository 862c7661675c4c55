package engine

import "github.com/piwi3910/SheetYield/internal/model"

// GenerateCuttingPlan turns a production plan into shop-floor instructions:
// where each figure goes on every sheet and the guillotine cuts in order.
func GenerateCuttingPlan(plan model.ProductionPlan) model.CuttingPlan {
	layout := plan.Layout
	cp := model.CuttingPlan{
		Sheet: model.SheetSpec{
			Label:  layout.Sheet.Label,
			Width:  layout.Sheet.Width,
			Height: layout.Sheet.Height,
			Margin: layout.Sheet.Margin,
		},
		SheetsRequired: plan.SheetsRequired,
		Instructions:   make([]model.CuttingInstruction, 0, len(layout.Placements)),
		Cuts:           layout.Cuts,
	}

	for _, p := range layout.Placements {
		fp := p.Footprint()
		cp.Instructions = append(cp.Instructions, model.CuttingInstruction{
			Figure:  p.Key,
			X:       fp.X,
			Y:       fp.Y,
			Width:   fp.Width,
			Height:  fp.Height,
			Rotated: p.Rotated,
			Margin:  p.Figure.Margin,
		})
	}
	return cp
}
