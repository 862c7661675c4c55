package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/SheetYield/internal/model"
)

var outputJSON bool

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func sheetLine(s model.Sheet) string {
	name := s.String()
	if s.Label != "" {
		name = s.Label + " (" + name + ")"
	}
	return fmt.Sprintf("%s mm, margin %g mm", name, s.Margin)
}

func printPlan(w io.Writer, plan model.ProductionPlan, settings model.PlanSettings) error {
	fmt.Fprintf(w, "Sheet: %s\n", sheetLine(plan.Layout.Sheet))
	fmt.Fprintf(w, "Sheets required: %d (theoretical minimum %d)\n", plan.SheetsRequired, plan.TheoreticalMinimum)
	fmt.Fprintf(w, "Efficiency: %.1f%%  Used: %.0f mm2  Waste: %.0f mm2\n\n",
		plan.Efficiency*100, plan.UsedArea, plan.WasteArea)

	tw := newTable(w)
	fmt.Fprintln(tw, "FIGURE\tNECESSARY\tPER SHEET\tSHEETS\tPRODUCED\tOVER\tSTATUS")
	for _, f := range plan.Figures {
		sheets := fmt.Sprintf("%d", f.SheetsNeeded)
		status := "ok"
		if f.Unplaceable {
			sheets = "-"
			status = "unplaceable: " + f.Error
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t%d\t%s\n",
			f.Key, f.Necessary, f.PerSheet, sheets, f.TotalProduced, f.Overproduction, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	offcuts := model.DetectOffcutsWithSettings(plan.Layout, settings)
	if len(offcuts) > 0 {
		fmt.Fprintf(w, "\nReusable offcuts per sheet: %d (%.0f mm2)\n", len(offcuts), model.TotalOffcutArea(offcuts))
		for _, o := range offcuts {
			fmt.Fprintf(w, "  %.0f x %.0f at (%.0f, %.0f)\n", o.Width, o.Height, o.X, o.Y)
		}
	}
	return nil
}
