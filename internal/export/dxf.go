package export

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerSheet   = "SHEET"
	LayerFigures = "FIGURES"
	LayerCuts    = "CUTS"
	LayerLabels  = "LABELS"
)

// ExportDXF writes one sheet layout as a DXF drawing in millimetres. DXF has
// its origin at the bottom left, so Y is mirrored against the sheet height.
func ExportDXF(path string, sr model.SheetResult) error {
	d, err := buildDrawing(sr)
	if err != nil {
		return err
	}
	return d.SaveAs(path)
}

func buildDrawing(sr model.SheetResult) (*drawing.Drawing, error) {
	if sr.Sheet.Width <= 0 || sr.Sheet.Height <= 0 {
		return nil, fmt.Errorf("sheet %s: %w", sr.Sheet, model.ErrInvalidDimension)
	}
	h := sr.Sheet.Height

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerSheet, color.White},
		{LayerFigures, color.Cyan},
		{LayerCuts, color.Red},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return nil, fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerSheet); err != nil {
		return nil, err
	}
	if err := rect(d, model.Rect{Width: sr.Sheet.Width, Height: h}, h); err != nil {
		return nil, err
	}

	if err := d.ChangeLayer(LayerFigures); err != nil {
		return nil, err
	}
	for _, p := range sr.Placements {
		if err := rect(d, p.Footprint(), h); err != nil {
			return nil, err
		}
	}

	if err := d.ChangeLayer(LayerCuts); err != nil {
		return nil, err
	}
	for _, c := range sr.Cuts {
		x1, y1 := c.End()
		if _, err := d.Line(c.X, h-c.Y, 0, x1, h-y1, 0); err != nil {
			return nil, err
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return nil, err
	}
	for _, p := range sr.Placements {
		fp := p.Footprint()
		size := min(fp.Width, fp.Height) / 8
		if _, err := d.Text(p.Key, fp.X+size, h-fp.Y-fp.Height/2, 0, size); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// rect draws r as four lines, mirroring Y against sheet height h.
func rect(d *drawing.Drawing, r model.Rect, h float64) error {
	x0, x1 := r.X, r.X+r.Width
	y0, y1 := h-r.Y, h-r.Y-r.Height
	edges := [][4]float64{
		{x0, y0, x1, y0},
		{x1, y0, x1, y1},
		{x1, y1, x0, y1},
		{x0, y1, x0, y0},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return err
		}
	}
	return nil
}
