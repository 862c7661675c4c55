package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/SheetYield/internal/model"
	"github.com/piwi3910/SheetYield/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveLimit int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP",
	Long: `Start the JSON API. Requests without settings use the defaults from the
config file.

Endpoints:
  POST /api/v1/pack          one packed sheet
  POST /api/v1/plan          production plan
  POST /api/v1/cutting-plan  cutting instructions
  POST /api/v1/estimate      area estimate (?waste=PERCENT)
  POST /api/v1/compare       what-if scenarios
  POST /api/v1/gcode         cutting program (text)
  POST /api/v1/chart         charts (HTML)
  GET  /healthz

Requests that could make more placements on one sheet than the placement
limit are rejected with 400 before packing starts.

Examples:
  sheetyield serve --addr :9090
  sheetyield serve --max-placements 50000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().IntVar(&serveLimit, "max-placements", 0, "placement limit per request (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = appConfig.ServerAddr
	}

	settings := model.DefaultSettings()
	appConfig.ApplyToSettings(&settings)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limit := serveLimit
	if limit <= 0 {
		limit = appConfig.ServerPlacementLimit
	}

	return server.New(settings, logger).WithPlacementLimit(limit).Run(ctx, addr)
}
