package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/SheetYield/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo is the payload of one figure label. It is also the JSON encoded
// into the label's QR code.
type LabelInfo struct {
	Figure     string  `json:"figure"`
	Piece      int     `json:"piece"` // 1-based running number within the figure type
	Of         int     `json:"of"`    // pieces of this type produced by the run
	Spare      bool    `json:"spare,omitempty"`
	Width      float64 `json:"width_mm"`
	Height     float64 `json:"height_mm"`
	SheetIndex int     `json:"sheet"`
	SheetLabel string  `json:"sheet_label"`
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_mm"`
	Y          float64 `json:"y_mm"`
}

// labelGrid describes a sheet of adhesive labels. The default matches
// Avery 5160 on US Letter: 3 x 10 cells of 66.7 x 25.4 mm.
type labelGrid struct {
	top, left    float64
	cellW, cellH float64
	cols, rows   int
	qr, padding  float64
	swatchW      float64
}

var avery5160 = labelGrid{
	top: 12.7, left: 4.8,
	cellW: 66.7, cellH: 25.4,
	cols: 3, rows: 10,
	qr: 20, padding: 2,
	swatchW: 1.5,
}

func (g labelGrid) perPage() int { return g.cols * g.rows }

// cell returns the top-left corner of the n-th label and whether it starts
// a new page.
func (g labelGrid) cell(n int) (x, y float64, newPage bool) {
	pos := n % g.perPage()
	x = g.left + float64(pos%g.cols)*g.cellW
	y = g.top + float64(pos/g.cols)*g.cellH
	return x, y, pos == 0
}

// ExportLabels writes one QR-coded label for every piece the plan produces.
// Each required sheet repeats the same layout, so every placement yields one
// label per sheet.
func ExportLabels(path string, plan model.ProductionPlan) error {
	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return errors.New("no placed figures to label")
	}

	palette := NewPalette(figureKeys(plan))
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, info := range labels {
		x, y, newPage := avery5160.cell(i)
		if newPage {
			pdf.AddPage()
		}
		if err := avery5160.render(pdf, x, y, info, palette); err != nil {
			return fmt.Errorf("label %d (%s): %w", i+1, info.Figure, err)
		}
	}
	return pdf.OutputFileAndClose(path)
}

type labelLine struct {
	style string
	size  float64
	h     float64
	rgb   [3]int
	text  string
}

func (g labelGrid) render(pdf *fpdf.Fpdf, x, y float64, info LabelInfo, palette Palette) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, g.cellW, g.cellH, "D")

	// Colour strip matching the layout report.
	c := palette.RGBA(info.Figure)
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	pdf.Rect(x, y, g.swatchW, g.cellH, "F")

	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	name := fmt.Sprintf("qr-%s-%d-%d", info.Figure, info.SheetIndex, info.Piece)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x+g.cellW-g.qr-g.padding, y+(g.cellH-g.qr)/2, g.qr, g.qr, false, opts, 0, "")

	textX := x + g.swatchW + g.padding
	textW := g.cellW - g.qr - g.swatchW - 3*g.padding

	lines := []labelLine{
		{"B", 9, 4.5, [3]int{0, 0, 0}, info.Figure},
		{"", 7, 3.5, [3]int{0, 0, 0}, fmt.Sprintf("%.0f x %.0f mm", info.Width, info.Height)},
		{"", 6, 3.5, [3]int{100, 100, 100}, fmt.Sprintf("Piece %d/%d, sheet %d", info.Piece, info.Of, info.SheetIndex)},
		{"", 6, 3.5, [3]int{100, 100, 100}, fmt.Sprintf("at (%.0f, %.0f)", info.X, info.Y)},
	}
	switch {
	case info.Spare:
		lines = append(lines, labelLine{"I", 6, 3, [3]int{180, 60, 40}, "Spare"})
	case info.Rotated:
		lines = append(lines, labelLine{"I", 6, 3, [3]int{150, 100, 0}, "Rotated 90\xb0"})
	}

	ty := y + g.padding
	for _, l := range lines {
		pdf.SetFont("Helvetica", l.style, l.size)
		pdf.SetTextColor(l.rgb[0], l.rgb[1], l.rgb[2])
		pdf.SetXY(textX, ty)
		pdf.CellFormat(textW, l.h, truncate(pdf, l.text, textW), "", 0, "L", false, 0, "")
		ty += l.h
	}
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos expands the layout into one label per placement per
// required sheet, numbering pieces per figure type. Pieces numbered past the
// type's demand are marked spare. Dimensions are the product's, without
// margin.
func CollectLabelInfos(plan model.ProductionPlan) []LabelInfo {
	layout := plan.Layout
	sheetLabel := sheetName(layout.Sheet)

	demand := make(map[string]int, len(plan.Figures))
	produced := make(map[string]int, len(plan.Figures))
	for _, fp := range plan.Figures {
		demand[fp.Key] = fp.Necessary
		produced[fp.Key] = fp.TotalProduced
	}

	seq := make(map[string]int)
	var labels []LabelInfo
	for sheet := 1; sheet <= plan.SheetsRequired; sheet++ {
		for _, p := range layout.Placements {
			seq[p.Key]++
			of := produced[p.Key]
			if of == 0 {
				of = layout.Counts[p.Key] * plan.SheetsRequired
			}
			pr := p.Product()
			labels = append(labels, LabelInfo{
				Figure:     p.Key,
				Piece:      seq[p.Key],
				Of:         of,
				Spare:      seq[p.Key] > demand[p.Key],
				Width:      pr.Width,
				Height:     pr.Height,
				SheetIndex: sheet,
				SheetLabel: sheetLabel,
				Rotated:    p.Rotated,
				X:          pr.X,
				Y:          pr.Y,
			})
		}
	}
	return labels
}
