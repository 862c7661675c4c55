package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/piwi3910/SheetYield/internal/engine"
	"github.com/piwi3910/SheetYield/internal/export"
	"github.com/piwi3910/SheetYield/internal/gcode"
	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/piwi3910/SheetYield/internal/project"
	"github.com/spf13/cobra"
)

var (
	pdfPath     string
	labelsPath  string
	xlsxPath    string
	dxfPath     string
	chartPath   string
	gcodePath   string
	cutPlanPath string
	profileName string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Plan the job and write report, label, spreadsheet, drawing or G-code files",
	Long: `Plan the job and write any combination of output files. The G-code
program cuts one sheet; run it once per required sheet.

Custom controller profiles are read from profiles.json next to the config
file and take precedence over built-in profiles of the same name.

Examples:
  sheetyield export --input parts.csv --pdf plan.pdf --labels labels.pdf
  sheetyield export --job kitchen.json --gcode sheet.nc --profile Grbl
  sheetyield export --figure 600x400:12 --xlsx plan.xlsx --dxf sheet.dxf --chart plan.html`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addJobFlags(exportCmd)

	f := exportCmd.Flags()
	f.StringVar(&pdfPath, "pdf", "", "layout and summary report (PDF)")
	f.StringVar(&labelsPath, "labels", "", "QR-coded figure labels (PDF)")
	f.StringVar(&xlsxPath, "xlsx", "", "plan, placements and cuts workbook (XLSX)")
	f.StringVar(&dxfPath, "dxf", "", "sheet layout drawing (DXF)")
	f.StringVar(&chartPath, "chart", "", "demand and material charts (HTML)")
	f.StringVar(&gcodePath, "gcode", "", "cutting program for one sheet")
	f.StringVar(&cutPlanPath, "cutting-plan", "", "cutting instructions (JSON)")
	f.StringVar(&profileName, "profile", "", "G-code controller profile")
}

func runExport(cmd *cobra.Command, args []string) error {
	job, err := loadJob(cmd)
	if err != nil {
		return err
	}
	if profileName != "" {
		job.Settings.GCodeProfile = profileName
	}

	plan, err := engine.New(job.Settings).WithLogger(logger).Plan(job.Sheet, job.Figures)
	if err != nil {
		return err
	}
	if plan.HasUnplaceable() {
		logger.Warn("some figure types do not fit the sheet and are left out of the plan")
	}

	type output struct {
		path  string
		write func(string) error
	}
	outputs := []output{
		{pdfPath, func(p string) error { return export.ExportPDF(p, plan, job.Settings) }},
		{labelsPath, func(p string) error { return export.ExportLabels(p, plan) }},
		{xlsxPath, func(p string) error { return export.ExportXLSX(p, plan) }},
		{dxfPath, func(p string) error { return export.ExportDXF(p, plan.Layout) }},
		{chartPath, func(p string) error { return export.ExportChartFile(p, plan) }},
		{gcodePath, func(p string) error { return writeGCode(p, plan.Layout, job.Settings) }},
		{cutPlanPath, func(p string) error { return writeCuttingPlan(p, plan) }},
	}

	written := 0
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := o.write(o.path); err != nil {
			return fmt.Errorf("write %s: %w", o.path, err)
		}
		logger.Info("wrote file", "path", o.path)
		written++
	}
	if written == 0 {
		return errors.New("nothing to export: pass at least one of --pdf, --labels, --xlsx, --dxf, --chart, --gcode, --cutting-plan")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d sheets required, %d files written\n", plan.SheetsRequired, written)
	return nil
}

// writeGCode generates the sheet program and checks that no cutting move
// leaves the sheet before writing it.
func writeGCode(path string, sr model.SheetResult, settings model.PlanSettings) error {
	custom, err := project.LoadCustomProfiles(dataPath("profiles.json"))
	if err != nil {
		return err
	}
	gen := gcode.New(settings).WithProfile(project.FindProfile(settings.GCodeProfile, custom))
	program := gen.GenerateSheet(sr)

	moves := gcode.Parse(program)
	if v := gcode.CheckBounds(moves, sr.Sheet); len(v) > 0 {
		return fmt.Errorf("program leaves the sheet:\n%s", strings.Join(gcode.FormatViolations(v, sr.Sheet), "\n"))
	}
	stats := gcode.Summarize(moves)
	logger.Debug("generated program",
		"profile", gen.Profile().Name,
		"moves", stats.Moves,
		"cut_length", stats.CutLength,
		"plunges", stats.Plunges)

	return os.WriteFile(path, []byte(program), 0644)
}

func writeCuttingPlan(path string, plan model.ProductionPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeJSON(f, engine.GenerateCuttingPlan(plan)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
