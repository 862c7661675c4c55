package model

import "math"

// AreaEstimate is a quick, packing-free estimate of the sheets a job needs.
type AreaEstimate struct {
	DemandArea         float64   `json:"demand_area"`         // Sum of footprint area times demand (sq mm)
	UsableArea         float64   `json:"usable_area"`         // Usable area of one sheet (sq mm)
	SheetsNeededExact  float64   `json:"sheets_needed_exact"` // Exact fractional number of sheets
	TheoreticalMinimum int       `json:"theoretical_minimum"` // Ceiling of exact, a lower bound for any layout
	SheetsWithWaste    int       `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent       float64   `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	Grid               []GridFit `json:"grid"`                // Per type single-sheet grid yield
}

// TheoreticalMinimum returns the number of sheets whose usable area covers every
// demanded footprint. No guillotine layout can do better.
func TheoreticalMinimum(sheet Sheet, figures []Figure) int {
	usable := sheet.Usable().Area()
	if usable <= 0 {
		return 0
	}
	return int(math.Ceil(demandArea(figures) / usable))
}

func demandArea(figures []Figure) float64 {
	var total float64
	for _, f := range figures {
		total += f.Area() * float64(f.Necessary)
	}
	return total
}

// CalculateAreaEstimate computes the area-based lower bound and a waste-adjusted
// recommendation, plus the grid yield of every type.
func CalculateAreaEstimate(sheet Sheet, figures []Figure, wastePercent float64) AreaEstimate {
	demand := demandArea(figures)
	usable := sheet.Usable().Area()

	est := AreaEstimate{
		DemandArea:   demand,
		UsableArea:   usable,
		WastePercent: wastePercent,
	}
	for _, f := range figures {
		est.Grid = append(est.Grid, CalculateGridFit(sheet, f))
	}
	if usable <= 0 {
		return est
	}

	est.SheetsNeededExact = demand / usable
	est.TheoreticalMinimum = int(math.Ceil(est.SheetsNeededExact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.SheetsWithWaste = int(math.Ceil(est.SheetsNeededExact * wasteFactor))
	if est.SheetsWithWaste < est.TheoreticalMinimum {
		est.SheetsWithWaste = est.TheoreticalMinimum
	}
	return est
}

// Grid orientations.
const (
	OrientationOriginal = "original"
	OrientationRotated  = "rotated"
)

// GridFit is the yield of one figure type laid out as a plain rows x columns grid
// on the usable area.
type GridFit struct {
	Key         string `json:"key"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	Original    int    `json:"original"`
	Rotated     int    `json:"rotated"` // 0 when rotation is not allowed
	Best        int    `json:"best"`
	Orientation string `json:"orientation"`
}

// CalculateGridFit counts how many footprints fit on the usable area in a uniform
// grid, for the declared and (if allowed) the rotated orientation. Ties keep the
// declared orientation.
func CalculateGridFit(sheet Sheet, f Figure) GridFit {
	u := sheet.Usable()
	fw, fh := f.Footprint()

	gf := GridFit{Key: f.Key(), Orientation: OrientationOriginal}
	if fw <= 0 || fh <= 0 || u.Width <= 0 || u.Height <= 0 {
		return gf
	}

	cols1, rows1 := gridCount(u.Width, fw), gridCount(u.Height, fh)
	gf.Original = cols1 * rows1
	gf.Columns, gf.Rows, gf.Best = cols1, rows1, gf.Original

	if f.Rotation {
		cols2, rows2 := gridCount(u.Width, fh), gridCount(u.Height, fw)
		gf.Rotated = cols2 * rows2
		if gf.Rotated > gf.Original {
			gf.Columns, gf.Rows, gf.Best = cols2, rows2, gf.Rotated
			gf.Orientation = OrientationRotated
		}
	}
	return gf
}

func gridCount(avail, size float64) int {
	return int(math.Floor((avail + Epsilon) / size))
}

// PlacementBound returns an upper bound on the placements one packing run of
// figures on sheet can make: per type, the lesser of its demand and the number
// of its footprints whose area fits the usable area. Inputs must be valid.
func PlacementBound(sheet Sheet, figures []Figure) float64 {
	usable := sheet.Usable().Area()
	var bound float64
	for _, f := range figures {
		a := f.Area()
		if a <= 0 || f.Necessary <= 0 {
			continue
		}
		bound += math.Min(float64(f.Necessary), math.Floor(usable/a))
	}
	return bound
}
