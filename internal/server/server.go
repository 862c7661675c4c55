// Package server exposes packing, planning and comparison over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/SheetYield/internal/engine"
	"github.com/piwi3910/SheetYield/internal/export"
	"github.com/piwi3910/SheetYield/internal/gcode"
	"github.com/piwi3910/SheetYield/internal/model"
)

// defaultWastePercent is the waste factor applied by /estimate unless the
// waste query parameter overrides it.
const defaultWastePercent = 15.0

// DefaultPlacementLimit caps the placements a single packing run started by
// a request may make. Each placement scans every free leaf, so work grows
// with the square of this number.
const DefaultPlacementLimit = 20000

var errTooMuchWork = errors.New("request exceeds the placement limit")

// PlanRequest is the body of every planning endpoint. Settings defaults to
// the server's settings when omitted.
type PlanRequest struct {
	Sheet    model.Sheet         `json:"sheet"`
	Figures  []model.Figure      `json:"figures"`
	Settings *model.PlanSettings `json:"settings,omitempty"`
}

// CompareRequest adds optional scenarios to a PlanRequest. Without scenarios
// the default what-if set for the request settings is used.
type CompareRequest struct {
	PlanRequest
	Scenarios []engine.ComparisonScenario `json:"scenarios,omitempty"`
}

// CompareResponse lists scenario results in request order; Best indexes the
// winner or is -1 when every scenario failed.
type CompareResponse struct {
	Results []engine.ComparisonResult `json:"results"`
	Best    int                       `json:"best"`
}

// Server holds the HTTP routes and the defaults applied to requests.
type Server struct {
	settings model.PlanSettings
	limit    int
	logger   *slog.Logger
	router   *gin.Engine
}

func New(settings model.PlanSettings, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{settings: settings, limit: DefaultPlacementLimit, logger: logger, router: gin.New()}
	s.router.Use(gin.Recovery(), s.logRequests())

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	api.POST("/pack", s.handlePack)
	api.POST("/plan", s.handlePlan)
	api.POST("/cutting-plan", s.handleCuttingPlan)
	api.POST("/estimate", s.handleEstimate)
	api.POST("/compare", s.handleCompare)
	api.POST("/gcode", s.handleGCode)
	api.POST("/chart", s.handleChart)
	return s
}

// WithPlacementLimit sets the most placements one packing run may make.
// Requests that could exceed it are rejected before any packing starts.
// Values below 1 keep the current limit.
func (s *Server) WithPlacementLimit(n int) *Server {
	if n > 0 {
		s.limit = n
	}
	return s
}

// Handler returns the router for use with net/http.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// bind decodes and validates the request and resolves its settings.
func (s *Server) bind(c *gin.Context, req *PlanRequest) (model.PlanSettings, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return model.PlanSettings{}, false
	}
	if err := model.ValidateInput(req.Sheet, req.Figures); err != nil {
		badRequest(c, err)
		return model.PlanSettings{}, false
	}
	settings := s.settings
	if req.Settings != nil {
		settings = *req.Settings
	}
	return settings, true
}

// checkWork rejects inputs whose packing run could place more figures than
// the limit allows. Inputs must already be valid.
func (s *Server) checkWork(c *gin.Context, sheet model.Sheet, figures []model.Figure) bool {
	if bound := model.PlacementBound(sheet, figures); bound > float64(s.limit) {
		s.logger.Warn("rejected request", "placement_bound", bound, "limit", s.limit)
		badRequest(c, fmt.Errorf("up to %.0f placements, limit is %d: %w", bound, s.limit, errTooMuchWork))
		return false
	}
	return true
}

func (s *Server) optimizer(settings model.PlanSettings) *engine.Optimizer {
	return engine.New(settings).WithLogger(s.logger)
}

func (s *Server) plan(c *gin.Context) (model.ProductionPlan, model.PlanSettings, bool) {
	var req PlanRequest
	settings, ok := s.bind(c, &req)
	if !ok || !s.checkWork(c, req.Sheet, req.Figures) {
		return model.ProductionPlan{}, settings, false
	}
	plan, err := s.optimizer(settings).Plan(req.Sheet, req.Figures)
	if err != nil {
		badRequest(c, err)
		return model.ProductionPlan{}, settings, false
	}
	return plan, settings, true
}

func (s *Server) handlePack(c *gin.Context) {
	var req PlanRequest
	settings, ok := s.bind(c, &req)
	if !ok || !s.checkWork(c, req.Sheet, req.Figures) {
		return
	}
	sr, err := s.optimizer(settings).PackSheet(req.Sheet, req.Figures)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

func (s *Server) handlePlan(c *gin.Context) {
	if plan, _, ok := s.plan(c); ok {
		c.JSON(http.StatusOK, plan)
	}
}

func (s *Server) handleCuttingPlan(c *gin.Context) {
	if plan, _, ok := s.plan(c); ok {
		c.JSON(http.StatusOK, engine.GenerateCuttingPlan(plan))
	}
}

func (s *Server) handleEstimate(c *gin.Context) {
	var req PlanRequest
	if _, ok := s.bind(c, &req); !ok {
		return
	}
	waste := defaultWastePercent
	if w, ok := c.GetQuery("waste"); ok {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil || v < 0 {
			badRequest(c, fmt.Errorf("invalid waste percent %q", w))
			return
		}
		waste = v
	}
	c.JSON(http.StatusOK, model.CalculateAreaEstimate(req.Sheet, req.Figures, waste))
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := model.ValidateInput(req.Sheet, req.Figures); err != nil {
		badRequest(c, err)
		return
	}
	settings := s.settings
	if req.Settings != nil {
		settings = *req.Settings
	}
	scenarios := req.Scenarios
	if len(scenarios) == 0 {
		scenarios = engine.BuildDefaultScenarios(settings, req.Sheet)
	}
	for _, sc := range scenarios {
		sheet := req.Sheet
		if sc.SheetMargin != nil {
			sheet.Margin = *sc.SheetMargin
			if err := sheet.Validate(); err != nil {
				// Reported per scenario in the results.
				continue
			}
		}
		if !s.checkWork(c, sheet, req.Figures) {
			return
		}
	}

	results := engine.CompareScenarios(scenarios, req.Sheet, req.Figures)
	c.JSON(http.StatusOK, CompareResponse{Results: results, Best: engine.Best(results)})
}

func (s *Server) handleGCode(c *gin.Context) {
	plan, settings, ok := s.plan(c)
	if !ok {
		return
	}
	program := gcode.New(settings).GenerateSheet(plan.Layout)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(program))
}

func (s *Server) handleChart(c *gin.Context) {
	plan, _, ok := s.plan(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.ExportChart(&buf, plan); err != nil {
		badRequest(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
