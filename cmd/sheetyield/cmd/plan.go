package cmd

import (
	"github.com/piwi3910/SheetYield/internal/engine"
	"github.com/piwi3910/SheetYield/internal/project"
	"github.com/spf13/cobra"
)

var saveJobPath string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute how many sheets cover the demand",
	Long: `Pack one sheet and report, per figure type, the yield per sheet, the
sheets it needs, the total produced and the overproduction.

Figure types that fit nowhere are reported as unplaceable and do not count
towards the number of sheets.

Examples:
  sheetyield plan --sheet 100x100 --figure 30x30:20
  sheetyield plan --input parts.csv --order perimeter --json
  sheetyield plan --figure 600x400:12:r:Door --save kitchen.json`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	addJobFlags(planCmd)
	planCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	planCmd.Flags().StringVar(&saveJobPath, "save", "", "save the job and its plan to this file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	job, err := loadJob(cmd)
	if err != nil {
		return err
	}

	plan, err := engine.New(job.Settings).WithLogger(logger).Plan(job.Sheet, job.Figures)
	if err != nil {
		return err
	}

	if saveJobPath != "" {
		job.Plan = &plan
		if err := project.SaveJob(saveJobPath, job); err != nil {
			return err
		}
		appConfig.AddRecentJob(saveJobPath)
		saveConfig()
		logger.Info("saved job", "path", saveJobPath)
	}

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), plan)
	}
	return printPlan(cmd.OutOrStdout(), plan, job.Settings)
}
