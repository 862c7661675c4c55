package cmd

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/spf13/cobra"
)

var wastePercent float64

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Quick area-based sheet estimate without packing",
	Long: `Estimate the sheets a job needs from areas alone: the theoretical
minimum no layout can beat, a recommendation with a waste allowance, and the
plain grid yield of each figure type.

Examples:
  sheetyield estimate --sheet 2440x1220 --figure 600x400:50 --waste 20`,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	addJobFlags(estimateCmd)
	estimateCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	estimateCmd.Flags().Float64Var(&wastePercent, "waste", 15, "waste allowance in percent")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	job, err := loadJob(cmd)
	if err != nil {
		return err
	}

	est := model.CalculateAreaEstimate(job.Sheet, job.Figures, wastePercent)
	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), est)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Demand area: %.0f mm2 over %.0f mm2 usable per sheet\n", est.DemandArea, est.UsableArea)
	fmt.Fprintf(w, "Theoretical minimum: %d sheets (%.2f exact)\n", est.TheoreticalMinimum, est.SheetsNeededExact)
	fmt.Fprintf(w, "With %.0f%% waste: %d sheets\n\n", est.WastePercent, est.SheetsWithWaste)

	tw := newTable(w)
	fmt.Fprintln(tw, "FIGURE\tGRID\tPER SHEET\tORIENTATION")
	for _, g := range est.Grid {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\n", g.Key, g.Columns, g.Rows, g.Best, g.Orientation)
	}
	return tw.Flush()
}
