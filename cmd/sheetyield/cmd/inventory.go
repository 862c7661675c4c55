package cmd

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/project"
	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List sheet presets and tools",
	Long: `List the sheet presets usable with --sheet-preset and the tools usable
with --tool. The default inventory is created on first use.

Examples:
  sheetyield inventory
  sheetyield inventory --import shop.json`,
	RunE: runInventory,
}

var inventoryImport string

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.Flags().StringVar(&inventoryImport, "import", "", "merge presets and tools from a JSON file")
}

func runInventory(cmd *cobra.Command, args []string) error {
	path := dataPath("inventory.json")
	inv, err := project.LoadInventory(path)
	if err != nil {
		return err
	}
	if inventoryImport != "" {
		if inv, err = project.ImportInventory(inventoryImport, inv); err != nil {
			return err
		}
		if err := project.SaveInventory(path, inv); err != nil {
			return err
		}
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "SHEET\tSIZE\tMARGIN\tMATERIAL")
	for _, s := range inv.Sheets {
		fmt.Fprintf(tw, "%s\t%gx%g\t%g\t%s\n", s.Name, s.Width, s.Height, s.Margin, s.Material)
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintln(tw, "TOOL\tFEED\tPLUNGE\tSPINDLE")
	for _, t := range inv.Tools {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%d\n", t.Name, t.FeedRate, t.PlungeRate, t.SpindleSpeed)
	}
	return tw.Flush()
}
