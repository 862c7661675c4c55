package cmd

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/project"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore config, inventory and templates",
}

var backupExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write all application data to one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := project.LoadInventory(dataPath("inventory.json"))
		if err != nil {
			return err
		}
		store, _, err := loadTemplateStore()
		if err != nil {
			return err
		}
		if err := project.ExportAllData(args[0], appConfig, inv, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", args[0])
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Replace application data with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}
		appConfig = backup.Config
		if err := project.SaveAppConfig(configPath, appConfig); err != nil {
			return err
		}
		if err := project.SaveInventory(dataPath("inventory.json"), backup.Inventory); err != nil {
			return err
		}
		if err := project.SaveTemplates(dataPath("templates.json"), backup.Templates); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored backup from %s (created %s)\n", args[0], backup.CreatedAt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd, backupRestoreCmd)
}
