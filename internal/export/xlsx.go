package export

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/xuri/excelize/v2"
)

// Worksheet names written by ExportXLSX.
const (
	SheetPlan       = "Plan"
	SheetPlacements = "Placements"
	SheetCuts       = "Cuts"
)

// ExportXLSX writes the plan as a workbook with one worksheet for the per-type
// production plan, one for the placements of the shared layout and one for
// its guillotine cuts.
func ExportXLSX(path string, plan model.ProductionPlan) error {
	if len(plan.Figures) == 0 {
		return errNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlan); err != nil {
		return fmt.Errorf("rename worksheet: %w", err)
	}
	if err := writePlanSheet(f, plan); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetPlacements); err != nil {
		return fmt.Errorf("create worksheet: %w", err)
	}
	if err := writePlacementSheet(f, plan.Layout); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetCuts); err != nil {
		return fmt.Errorf("create worksheet: %w", err)
	}
	if err := writeCutSheet(f, plan.Layout); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writePlanSheet(f *excelize.File, plan model.ProductionPlan) error {
	header := []interface{}{"Figure", "Necessary", "Per Sheet", "Sheets Needed", "Produced", "Overproduction", "Status"}
	if err := writeHeader(f, SheetPlan, header); err != nil {
		return err
	}

	row := 2
	for _, fp := range plan.Figures {
		status := "OK"
		if fp.Unplaceable {
			status = "Unplaceable"
		}
		cells := []interface{}{fp.Key, fp.Necessary, fp.PerSheet, fp.SheetsNeeded, fp.TotalProduced, fp.Overproduction, status}
		if err := setRow(f, SheetPlan, row, cells); err != nil {
			return err
		}
		row++
	}

	row++
	summary := [][]interface{}{
		{"Sheets Required", plan.SheetsRequired},
		{"Theoretical Minimum", plan.TheoreticalMinimum},
		{"Material Area", plan.MaterialArea},
		{"Used Area", plan.UsedArea},
		{"Waste Area", plan.WasteArea},
		{"Efficiency", plan.Efficiency},
	}
	for _, cells := range summary {
		if err := setRow(f, SheetPlan, row, cells); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writePlacementSheet(f *excelize.File, layout model.SheetResult) error {
	header := []interface{}{"Figure", "X", "Y", "Width", "Height", "Rotated", "Node"}
	if err := writeHeader(f, SheetPlacements, header); err != nil {
		return err
	}
	for i, p := range layout.Placements {
		fp := p.Footprint()
		cells := []interface{}{p.Key, fp.X, fp.Y, fp.Width, fp.Height, p.Rotated, p.Node}
		if err := setRow(f, SheetPlacements, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeCutSheet(f *excelize.File, layout model.SheetResult) error {
	header := []interface{}{"#", "Orientation", "X", "Y", "Length", "Node"}
	if err := writeHeader(f, SheetCuts, header); err != nil {
		return err
	}
	for i, c := range layout.Cuts {
		cells := []interface{}{i + 1, c.Orientation.String(), c.X, c.Y, c.Length, c.Node}
		if err := setRow(f, SheetCuts, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes a bold header row.
func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
