package cmd

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/engine"
	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack a single sheet and list placements and cuts",
	Long: `Pack one sheet with as many figures of each type as fit, up to each
type's demand, and print where every figure goes and the guillotine cut
sequence that frees it.

Examples:
  sheetyield pack --sheet 1000x500 --figure 300x200:4:r --figure 150x100:10
  sheetyield pack --input parts.dxf --json`,
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
	addJobFlags(packCmd)
	packCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

func runPack(cmd *cobra.Command, args []string) error {
	job, err := loadJob(cmd)
	if err != nil {
		return err
	}

	sr, err := engine.New(job.Settings).WithLogger(logger).PackSheet(job.Sheet, job.Figures)
	if err != nil {
		return err
	}
	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), sr)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Sheet: %s\n", sheetLine(sr.Sheet))
	fmt.Fprintf(w, "Placed: %d  Efficiency: %.1f%% (usable area %.1f%%)\n\n",
		len(sr.Placements), sr.Efficiency*100, sr.UsableEfficiency()*100)

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tFIGURE\tX\tY\tWIDTH\tHEIGHT\tROTATED")
	for i, p := range sr.Placements {
		fp := p.Footprint()
		fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%g\t%g\t%v\n", i+1, p.Key, fp.X, fp.Y, fp.Width, fp.Height, p.Rotated)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nCuts: %d\n", len(sr.Cuts))
	for i, c := range sr.Cuts {
		fmt.Fprintf(w, "  %d. %s at (%g, %g), length %g\n", i+1, c.Orientation, c.X, c.Y, c.Length)
	}

	if missing := sr.Unplaceable(); len(missing) > 0 {
		fmt.Fprintf(w, "\nDoes not fit: %v\n", missing)
	}
	return nil
}
