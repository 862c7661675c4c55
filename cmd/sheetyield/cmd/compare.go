package cmd

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/engine"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare what-if variations of the plan",
	Long: `Plan the job under every packing order, with rotation allowed for all
figure types and, when the sheet has one, without the sheet margin. The
scenarios run concurrently; the best one needs the fewest sheets among those
that place every figure type.

Examples:
  sheetyield compare --sheet 2440x1220 --margin 10 --input parts.csv`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addJobFlags(compareCmd)
	compareCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

func runCompare(cmd *cobra.Command, args []string) error {
	job, err := loadJob(cmd)
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(job.Settings, job.Sheet)
	results := engine.CompareScenarios(scenarios, job.Sheet, job.Figures)
	best := engine.Best(results)
	logger.Debug("compared scenarios", "count", len(results), "best", best)

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), struct {
			Results []engine.ComparisonResult `json:"results"`
			Best    int                       `json:"best"`
		}{results, best})
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "\tSCENARIO\tSHEETS\tEFFICIENCY\tWASTE\tUNPLACEABLE")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = "*"
		}
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\terror: %s\t\t\t\n", mark, r.Scenario.Name, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\t%.1f%%\t%d\n",
			mark, r.Scenario.Name, r.SheetsRequired, r.Efficiency*100, r.WastePercent, r.UnplaceableTypes)
	}
	return tw.Flush()
}
