// Package export writes production plans to PDF, label, spreadsheet, DXF and
// chart files.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/SheetYield/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

var errNothingToExport = errors.New("plan has no figures to export")

// figureKeys returns the type keys of a plan in input order.
func figureKeys(plan model.ProductionPlan) []string {
	keys := make([]string, len(plan.Figures))
	for i, f := range plan.Figures {
		keys[i] = f.Key
	}
	return keys
}

// ExportPDF writes a report with the sheet layout on the first page and the
// production summary on the second.
func ExportPDF(path string, plan model.ProductionPlan, settings model.PlanSettings) error {
	if len(plan.Figures) == 0 {
		return errNothingToExport
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	palette := NewPalette(figureKeys(plan))

	pdf.AddPage()
	renderLayoutPage(pdf, plan, palette)

	pdf.AddPage()
	renderSummaryPage(pdf, plan, settings)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the packed sheet scaled to the page.
func renderLayoutPage(pdf *fpdf.Fpdf, plan model.ProductionPlan, palette Palette) {
	layout := plan.Layout
	sheet := layout.Sheet

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet layout: %s (%.0f x %.0f mm) x %d", sheetName(sheet), sheet.Width, sheet.Height, plan.SheetsRequired)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Figures per sheet: %d | Used: %.0f mm2 | Sheet: %.0f mm2 | Efficiency: %.1f%% | Cuts: %d",
		len(layout.Placements), layout.UsedArea, layout.TotalArea(), layout.Efficiency*100, len(layout.Cuts))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/sheet.Width, drawHeight/sheet.Height)

	canvasW := sheet.Width * scale
	canvasH := sheet.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet with its margin band
	pdf.SetFillColor(225, 225, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	u := sheet.Usable()
	pdf.SetFillColor(210, 180, 140)
	pdf.SetLineWidth(0.2)
	pdf.Rect(offsetX+u.X*scale, offsetY+u.Y*scale, u.Width*scale, u.Height*scale, "FD")

	// Free leaves left after packing
	for _, fr := range layout.FreeRects {
		drawHatch(pdf, offsetX+fr.X*scale, offsetY+fr.Y*scale, fr.Width*scale, fr.Height*scale)
	}

	for _, p := range layout.Placements {
		drawPlacement(pdf, p, palette, scale, offsetX, offsetY)
	}

	// Guillotine cuts
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	for _, c := range layout.Cuts {
		x1, y1 := c.End()
		pdf.Line(offsetX+c.X*scale, offsetY+c.Y*scale, offsetX+x1*scale, offsetY+y1*scale)
	}
	pdf.SetDashPattern([]float64{}, 0)

	drawDimensionAnnotations(pdf, sheet, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, plan, palette, offsetY+canvasH+6)
}

func drawPlacement(pdf *fpdf.Fpdf, p model.Placement, palette Palette, scale, offsetX, offsetY float64) {
	fp := p.Footprint()
	col := palette.RGBA(p.Key)

	px, py := offsetX+fp.X*scale, offsetY+fp.Y*scale
	pw, ph := fp.Width*scale, fp.Height*scale

	pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(px, py, pw, ph, "FD")

	// Product outline inside the figure margin
	if p.Figure.Margin > 0 {
		pr := p.Product()
		pdf.SetLineWidth(0.1)
		pdf.Rect(offsetX+pr.X*scale, offsetY+pr.Y*scale, pr.Width*scale, pr.Height*scale, "D")
	}

	if pw > 15 && ph > 8 {
		pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
		pdf.SetTextColor(0, 0, 0)

		label := p.Key
		if p.Rotated {
			label += " (R)"
		}
		labelW := pdf.GetStringWidth(label)
		if labelW < pw-2 {
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

// drawHatch marks an unused region with diagonal lines.
func drawHatch(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(150, 120, 90)
	pdf.SetLineWidth(0.1)

	spacing := 3.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.Sheet, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", sheet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend lists every figure type with its colour and per-sheet yield.
func drawLegend(pdf *fpdf.Fpdf, plan model.ProductionPlan, palette Palette, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Figures:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, f := range plan.Figures {
		col := palette.RGBA(f.Key)
		label := fmt.Sprintf("%s: %d/sheet", f.Key, f.PerSheet)
		if f.Unplaceable {
			label = fmt.Sprintf("%s: does not fit", f.Key)
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the production summary and per-type table.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.ProductionPlan, settings model.PlanSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Production Plan", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Sheets Required", fmt.Sprintf("%d", plan.SheetsRequired)},
		{"Theoretical Minimum", fmt.Sprintf("%d", plan.TheoreticalMinimum)},
		{"Material Area", fmt.Sprintf("%.0f mm2", plan.MaterialArea)},
		{"Used Area", fmt.Sprintf("%.0f mm2", plan.UsedArea)},
		{"Waste Area", fmt.Sprintf("%.0f mm2", plan.WasteArea)},
		{"Efficiency", fmt.Sprintf("%.1f%%", plan.Efficiency*100)},
		{"Sort Order", string(settings.Order)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Figure Types", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 30, 30, 35, 35, 35, 40}
	headers := []string{"Figure", "Demand", "Per Sheet", "Sheets Needed", "Produced", "Surplus", "Status"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, f := range plan.Figures {
		needed := fmt.Sprintf("%d", f.SheetsNeeded)
		status := "OK"
		if f.Unplaceable {
			needed = "unbounded"
			status = "DOES NOT FIT"
		}
		row := []string{
			f.Key,
			fmt.Sprintf("%d", f.Necessary),
			fmt.Sprintf("%d", f.PerSheet),
			needed,
			fmt.Sprintf("%d", f.TotalProduced),
			fmt.Sprintf("%d", f.Overproduction),
			status,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		if f.Unplaceable {
			pdf.SetTextColor(200, 0, 0)
		}

		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		pdf.SetTextColor(0, 0, 0)
		y += 6

		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SheetYield - guillotine sheet cutting planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func sheetName(s model.Sheet) string {
	if s.Label != "" {
		return s.Label
	}
	return s.String()
}
