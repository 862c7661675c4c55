package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/SheetYield/internal/model"
)

// ExportChart renders an HTML page with a demand versus production bar chart
// and a used versus waste pie for the whole run.
func ExportChart(w io.Writer, plan model.ProductionPlan) error {
	if len(plan.Figures) == 0 {
		return errNothingToExport
	}
	palette := NewPalette(figureKeys(plan))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "SheetYield production plan"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Demand and production",
			Subtitle: fmt.Sprintf("%d sheets, %.1f%% efficiency", plan.SheetsRequired, plan.Efficiency*100),
		}),
	)

	keys := figureKeys(plan)
	necessary := make([]opts.BarData, len(plan.Figures))
	produced := make([]opts.BarData, len(plan.Figures))
	for i, f := range plan.Figures {
		necessary[i] = opts.BarData{Value: f.Necessary}
		produced[i] = opts.BarData{
			Value:     f.TotalProduced,
			ItemStyle: &opts.ItemStyle{Color: palette.Hex(f.Key)},
		}
	}
	bar.SetXAxis(keys).
		AddSeries("Necessary", necessary).
		AddSeries("Produced", produced)

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Material use"}))
	pie.AddSeries("Area", []opts.PieData{
		{Name: "Used", Value: plan.UsedArea},
		{Name: "Waste", Value: plan.WasteArea},
	})

	page := components.NewPage()
	page.PageTitle = "SheetYield production plan"
	page.AddCharts(bar, pie)
	return page.Render(w)
}

// ExportChartFile writes the chart page to path.
func ExportChartFile(path string, plan model.ProductionPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportChart(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
