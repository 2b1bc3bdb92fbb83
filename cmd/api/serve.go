package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"university-hr/internal/config"
	"university-hr/internal/database"
	"university-hr/internal/handlers"
	"university-hr/internal/logging"
	"university-hr/internal/metrics"
	"university-hr/internal/middleware"
	"university-hr/internal/repositories"
	"university-hr/internal/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// buildRouter wires repositories, services and handlers over the shared pool.
func buildRouter(cfg *config.Config, db *sqlx.DB, logger *logrus.Logger, m *metrics.Metrics) (*gin.Engine, error) {
	store := repositories.NewStore(db, m)

	employeeRepo := repositories.NewEmployeeRepository(store)
	leaveRepo := repositories.NewLeaveRepository(store)
	deductionRepo := repositories.NewDeductionRepository(store)
	payrollRepo := repositories.NewPayrollRepository(store)
	attendanceRepo := repositories.NewAttendanceRepository(store)
	performanceRepo := repositories.NewPerformanceRepository(store)
	reportRepo := repositories.NewReportRepository(store)

	tokens := services.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authService, err := services.NewAuthService(employeeRepo, tokens, cfg.Admin)
	if err != nil {
		return nil, err
	}

	appHandler := handlers.NewAppHandler(handlers.Services{
		Auth:        authService,
		Leaves:      services.NewLeaveService(leaveRepo),
		Deductions:  services.NewDeductionService(deductionRepo),
		Payroll:     services.NewPayrollService(payrollRepo),
		Attendance:  services.NewAttendanceService(attendanceRepo, employeeRepo),
		Employees:   services.NewEmployeeService(employeeRepo),
		Performance: services.NewPerformanceService(performanceRepo, employeeRepo),
		Reports:     services.NewReportService(reportRepo),
	}, store)

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(m),
		middleware.SecurityHeaders(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	appHandler.RegisterRoutes(router, tokens, m)
	return router, nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	m := metrics.New()
	m.Registry.MustRegister(collectors.NewDBStatsCollector(db.DB, cfg.Database.Name))

	router, err := buildRouter(cfg, db, logger, m)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
