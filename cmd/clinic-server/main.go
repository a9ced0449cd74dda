package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aegiscare/clinic/internal/config"
	"github.com/aegiscare/clinic/internal/domain/appointment"
	"github.com/aegiscare/clinic/internal/domain/identity"
	"github.com/aegiscare/clinic/internal/domain/order"
	"github.com/aegiscare/clinic/internal/domain/pharmacy"
	"github.com/aegiscare/clinic/internal/domain/prescription"
	"github.com/aegiscare/clinic/internal/domain/triage"
	"github.com/aegiscare/clinic/internal/platform/auth"
	"github.com/aegiscare/clinic/internal/platform/completion"
	"github.com/aegiscare/clinic/internal/platform/db"
	"github.com/aegiscare/clinic/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "AegisCare clinic API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status, appliedAt := "pending", ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	// Identity
	userRepo := identity.NewRepoPG(pool)
	identitySvc := identity.NewService(userRepo, tokens)
	identityHandler := identity.NewHandler(identitySvc)

	// Prescriptions
	prescRepo := prescription.NewRepoPG(pool)
	prescSvc := prescription.NewService(prescRepo)
	prescHandler := prescription.NewHandler(prescSvc)

	// Orders share one transaction with prescription consumption.
	orderRepo := order.NewRepoPG(pool)
	orderSvc := order.NewService(orderRepo, prescSvc, db.NewRunner(pool))
	orderHandler := order.NewHandler(orderSvc)

	// Pharmacy quotes
	quoteEngine := pharmacy.NewEngine(pharmacy.NewMarketSource(time.Now().UnixNano()))
	pharmacyHandler := pharmacy.NewHandler(quoteEngine)

	// Triage
	rules := triage.DefaultRules()
	if cfg.TriageRulesFile != "" {
		rules, err = triage.LoadRules(cfg.TriageRulesFile)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.TriageRulesFile).Msg("failed to load triage rules")
		}
	}
	completionClient := completion.NewHTTPClient(cfg.CompletionURL, cfg.CompletionKey,
		cfg.CompletionModel, cfg.TriageTimeout())
	triageSvc := triage.NewService(completionClient, identitySvc, rules, cfg.TriageTimeout())
	triageHandler := triage.NewHandler(triageSvc)

	// Appointments
	apptRepo := appointment.NewRepoPG(pool)
	apptSvc := appointment.NewService(apptRepo)
	apptHandler := appointment.NewHandler(apptSvc)

	apiV1 := e.Group("/api/v1")
	identityHandler.RegisterPublicRoutes(apiV1)

	protected := apiV1.Group("", auth.Middleware(tokens))
	identityHandler.RegisterRoutes(protected)
	prescHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	pharmacyHandler.RegisterRoutes(protected)
	triageHandler.RegisterRoutes(protected)
	apptHandler.RegisterRoutes(protected)

	e.GET("/healthz", db.HealthHandler(pool))

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
