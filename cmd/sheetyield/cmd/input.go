package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/SheetYield/internal/importer"
	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/piwi3910/SheetYield/internal/project"
	"github.com/spf13/cobra"
)

// Job input flags shared by the planning commands
var (
	jobFile      string
	inputFile    string
	sheetSpec    string
	sheetPreset  string
	sheetMargin  float64
	figureSpecs  []string
	orderName    string
	toolName     string
	templateName string
)

func addJobFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&jobFile, "job", "", "saved job file (JSON)")
	f.StringVarP(&inputFile, "input", "i", "", "figure list to import (.csv, .xlsx or .dxf)")
	f.StringVarP(&sheetSpec, "sheet", "s", "", "sheet size as WIDTHxHEIGHT in mm")
	f.StringVar(&sheetPreset, "sheet-preset", "", "sheet preset name from the inventory")
	f.Float64VarP(&sheetMargin, "margin", "m", 0, "sheet margin in mm on every edge")
	f.StringArrayVarP(&figureSpecs, "figure", "f", nil, "figure as WxH:QTY[:r][:m=MARGIN][:LABEL], repeatable")
	f.StringVar(&orderName, "order", "", "packing order: area, perimeter, longest-side or input")
	f.StringVar(&toolName, "tool", "", "tool name from the inventory for G-code feeds")
	f.StringVar(&templateName, "template", "", "start from a saved job template")
}

// loadJob assembles the sheet, figures and settings from config defaults,
// a template or job file, imported figures and command-line flags, in that
// order of precedence.
func loadJob(c *cobra.Command) (model.Job, error) {
	job := model.NewJob()
	job.Sheet = appConfig.DefaultSheet()
	appConfig.ApplyToSettings(&job.Settings)

	if templateName != "" {
		store, err := project.LoadTemplates(dataPath("templates.json"))
		if err != nil {
			return job, err
		}
		tmpl := store.FindByName(templateName)
		if tmpl == nil {
			return job, fmt.Errorf("template %q not found", templateName)
		}
		job = tmpl.ToJob(templateName)
	}

	if jobFile != "" {
		loaded, err := project.LoadJob(jobFile)
		if err != nil {
			return job, err
		}
		job = loaded
		appConfig.AddRecentJob(jobFile)
		saveConfig()
	}

	if inputFile != "" {
		figures, err := importFigures(inputFile)
		if err != nil {
			return job, err
		}
		job.Figures = append(job.Figures, figures...)
	}

	for _, spec := range figureSpecs {
		fig, err := parseFigure(spec)
		if err != nil {
			return job, err
		}
		job.AddFigure(fig)
	}

	if err := applySheetFlags(c, &job); err != nil {
		return job, err
	}
	if err := applySettingFlags(&job.Settings); err != nil {
		return job, err
	}

	if len(job.Figures) == 0 {
		return job, errors.New("no figures: use --figure, --input, --job or --template")
	}
	return job, model.ValidateInput(job.Sheet, job.Figures)
}

func applySheetFlags(c *cobra.Command, job *model.Job) error {
	if sheetPreset != "" {
		inv, err := project.LoadInventory(dataPath("inventory.json"))
		if err != nil {
			return err
		}
		p := inv.FindSheetByName(sheetPreset)
		if p == nil {
			return fmt.Errorf("sheet preset %q not found", sheetPreset)
		}
		job.Sheet = p.ToSheet()
	}
	if sheetSpec != "" {
		w, h, err := parseSize(sheetSpec)
		if err != nil {
			return fmt.Errorf("--sheet: %w", err)
		}
		job.Sheet.Width, job.Sheet.Height = w, h
		job.Sheet.Label = ""
	}
	if c.Flags().Changed("margin") {
		job.Sheet.Margin = sheetMargin
	}
	return nil
}

func applySettingFlags(s *model.PlanSettings) error {
	if orderName != "" {
		order, err := model.ParseSortOrder(orderName)
		if err != nil {
			return err
		}
		s.Order = order
	}
	if toolName != "" {
		inv, err := project.LoadInventory(dataPath("inventory.json"))
		if err != nil {
			return err
		}
		tool := inv.FindToolByName(toolName)
		if tool == nil {
			return fmt.Errorf("tool %q not found", toolName)
		}
		tool.ApplyToSettings(s)
	}
	return nil
}

// importFigures picks the importer by file extension. Row errors abort the
// import; warnings are logged.
func importFigures(path string) ([]model.Figure, error) {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		res = importer.ImportCSV(path)
	case ".xlsx", ".xlsm":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path)
	default:
		return nil, fmt.Errorf("unsupported input file %s", path)
	}

	for _, w := range res.Warnings {
		logger.Warn("import", "file", path, "warning", w)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("import %s: %s", path, strings.Join(res.Errors, "; "))
	}
	logger.Debug("imported figures", "file", path, "types", len(res.Figures))
	return res.Figures, nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil || !model.ValidLength(w) {
		return 0, 0, fmt.Errorf("size %q: bad width", s)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil || !model.ValidLength(h) {
		return 0, 0, fmt.Errorf("size %q: bad height", s)
	}
	return w, h, nil
}

// parseFigure parses WxH:QTY[:r][:m=MARGIN][:LABEL]. Figures without an
// explicit margin or rotation flag take the config defaults.
func parseFigure(spec string) (model.Figure, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return model.Figure{}, fmt.Errorf("figure %q: expected WxH:QTY", spec)
	}
	w, h, err := parseSize(parts[0])
	if err != nil {
		return model.Figure{}, fmt.Errorf("figure %q: %w", spec, err)
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return model.Figure{}, fmt.Errorf("figure %q: bad quantity %q", spec, parts[1])
	}

	fig := model.NewFigure(w, h, qty)
	fig.Rotation = appConfig.DefaultRotation
	fig.Margin = appConfig.DefaultFigureMargin

	for _, opt := range parts[2:] {
		switch {
		case opt == "r":
			fig.Rotation = true
		case opt == "nr":
			fig.Rotation = false
		case strings.HasPrefix(opt, "m="):
			m, err := strconv.ParseFloat(opt[2:], 64)
			if err != nil || !model.ValidMargin(m) {
				return model.Figure{}, fmt.Errorf("figure %q: bad margin %q", spec, opt)
			}
			fig.Margin = m
		default:
			fig.Label = opt
		}
	}
	return fig, nil
}
