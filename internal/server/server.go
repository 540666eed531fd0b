package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/config"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/rpgo/retirement-cashflow/internal/output"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the projection engine as a JSON API over a shared, read-only return table.
type Server struct {
	table  *calculation.ReturnTable
	engine calculation.CalculationEngine
	parser *config.InputParser
	logger *zap.Logger
	router *gin.Engine
}

// New builds the router. A nil logger disables logging.
func New(table *calculation.ReturnTable, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger.Sugar())

	s := &Server{
		table:  table,
		engine: *engine,
		parser: config.NewInputParser(),
		logger: logger,
		router: gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/replacement-costs", s.getReplacementCosts)
	api.GET("/defaults", s.getDefaults)
	api.POST("/projection", s.postProjection)
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("op", "serve"), zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server", zap.String("op", "serve"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("op", c.Request.Method+" "+c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) getHealth(c *gin.Context) {
	rows := 0
	if s.table != nil {
		rows = s.table.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"return_table_rows": rows,
	})
}

func (s *Server) getReplacementCosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"menu":     domain.ReplacementCostMenu,
		"defaults": domain.DefaultReplacementCosts,
	})
}

func (s *Server) getDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, domain.DefaultScenarioInput())
}

func (s *Server) postProjection(c *gin.Context) {
	var input domain.ScenarioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := s.parser.ValidateScenario(input); err != nil {
		s.respondError(c, err)
		return
	}

	engine := s.engine
	if v := c.Query("extended"); v != "" {
		extended, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid extended flag: " + v})
			return
		}
		engine.ExtendedProjection = extended
	}

	report, err := engine.RunScenario(c.Request.Context(), input, s.table)
	if err != nil {
		s.respondError(c, err)
		return
	}
	report.Assumptions = output.GenerateAssumptions(report)
	c.JSON(http.StatusOK, report)
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("projection failed", zap.String("op", "projection"), zap.Error(err))
	} else {
		s.logger.Debug("projection rejected", zap.String("op", "projection"), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calculation.ErrInvalidScenario):
		return http.StatusBadRequest
	case errors.Is(err, calculation.ErrEmptyRange),
		errors.Is(err, calculation.ErrNoConvergence),
		errors.Is(err, calculation.ErrZeroVolatility):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
