package engine

import (
	"log/slog"
	"sort"

	"github.com/piwi3910/SheetYield/internal/model"
)

// Optimizer runs the guillotine best-area-fit packing.
type Optimizer struct {
	Settings model.PlanSettings
	logger   *slog.Logger
}

func New(settings model.PlanSettings) *Optimizer {
	return &Optimizer{
		Settings: settings,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for per-type debug output.
func (o *Optimizer) WithLogger(l *slog.Logger) *Optimizer {
	if l != nil {
		o.logger = l
	}
	return o
}

// PackSheet packs one sheet with as many figures of each type as fit, up to
// each type's demand. Every sheet of a run is packed the same way, so the
// result describes them all. Input errors are returned before packing starts;
// figures that do not fit are reported as unmet demand, never as errors.
func (o *Optimizer) PackSheet(sheet model.Sheet, figures []model.Figure) (model.SheetResult, error) {
	if err := model.ValidateInput(sheet, figures); err != nil {
		return model.SheetResult{}, err
	}

	result := model.SheetResult{
		Sheet:   sheet,
		Figures: figures,
		Counts:  make(map[string]int, len(figures)),
		Unmet:   make(map[string]int, len(figures)),
	}
	for _, f := range figures {
		result.Counts[f.Key()] = 0
		result.Unmet[f.Key()] = f.Necessary
	}

	tree := newFreeTree(sheet.Usable())
	for _, f := range sortFigures(figures, o.Settings.Order) {
		key := f.Key()
		placed := 0
		for placed < f.Necessary {
			p, ok := o.place(tree, f)
			if !ok {
				break
			}
			p.Key = key
			result.Placements = append(result.Placements, p)
			result.UsedArea += p.Figure.Area()
			placed++
		}
		result.Counts[key] = placed
		result.Unmet[key] = f.Necessary - placed

		o.logger.Debug("packed figure type",
			"figure", key,
			"footprint_area", f.Area(),
			"placed", placed,
			"unmet", f.Necessary-placed)
	}

	result.Cuts = tree.cuts
	result.FreeRects = tree.freeRects()
	if a := sheet.Area(); a > 0 {
		result.Efficiency = result.UsedArea / a
	}
	return result, nil
}

// place finds a leaf for one instance of f, trying the declared orientation
// first and the rotated one only when the declared one fits nowhere.
func (o *Optimizer) place(tree *freeTree, f model.Figure) (model.Placement, bool) {
	candidates := []model.Figure{f}
	if f.Rotation && f.Width != f.Height {
		candidates = append(candidates, f.Rotated())
	}

	for i, c := range candidates {
		fw, fh := c.Footprint()
		idx, ok := tree.bestFit(fw, fh)
		if !ok {
			continue
		}
		leaf := tree.nodes[idx]
		tree.mustConsume(idx, fw, fh)
		return model.Placement{
			Figure:  c,
			X:       leaf.X,
			Y:       leaf.Y,
			Node:    idx,
			Rotated: i == 1,
		}, true
	}
	return model.Placement{}, false
}

// sortFigures returns a copy of figures in packing order. The sort is stable,
// so types that compare equal keep their input order.
func sortFigures(figures []model.Figure, order model.SortOrder) []model.Figure {
	sorted := make([]model.Figure, len(figures))
	copy(sorted, figures)

	var key func(model.Figure) float64
	switch order {
	case model.SortInput:
		return sorted
	case model.SortPerimeter:
		key = func(f model.Figure) float64 {
			w, h := f.Footprint()
			return 2 * (w + h)
		}
	case model.SortLongestSide:
		key = func(f model.Figure) float64 {
			w, h := f.Footprint()
			return max(w, h)
		}
	default:
		key = model.Figure.Area
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	return sorted
}
