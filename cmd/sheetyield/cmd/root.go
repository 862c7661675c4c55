package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/piwi3910/SheetYield/internal/project"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Set by the root pre-run for every command
	appConfig model.AppConfig
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sheetyield",
	Short: "Guillotine sheet cutting planner",
	Long: `Plan how many identical sheets a set of rectangular figures needs.

One sheet is packed with guillotine cuts, best-area-fit, and the same layout
is repeated until every figure type's demand is met.

Examples:
  sheetyield plan --sheet 2440x1220 --figure 600x400:12:r --figure 300x300:20
  sheetyield compare --input parts.xlsx
  sheetyield export --job kitchen.json --pdf kitchen.pdf --labels labels.pdf`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		cfg, err := project.LoadAppConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configPath, err)
		}
		appConfig = cfg
		logger.Debug("loaded config", "path", configPath)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "application config file")
}

// dataPath places an application file next to the config file.
func dataPath(name string) string {
	return filepath.Join(filepath.Dir(configPath), name)
}

// saveConfig writes the config back, logging rather than failing on error.
func saveConfig() {
	if err := project.SaveAppConfig(configPath, appConfig); err != nil {
		logger.Warn("could not save config", "path", configPath, "error", err)
	}
}
