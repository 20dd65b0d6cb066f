package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	dbpkg "github.com/cema-health/program-manager/internal/db"
	"github.com/cema-health/program-manager/internal/logging"
	"github.com/cema-health/program-manager/internal/metrics"
	"github.com/cema-health/program-manager/internal/middleware"
	"github.com/cema-health/program-manager/internal/routes"
	"github.com/cema-health/program-manager/internal/session"
)

func newServeCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log := logging.New(cfg)
			slog.SetDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// --------------------------------------------------
			// Database
			// --------------------------------------------------
			db, err := dbpkg.Open(cfg)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if cfg.Database.AutoMigrate {
				if err := dbpkg.Migrate(db); err != nil {
					return err
				}
			}
			if _, err := dbpkg.EnsureAdmin(ctx, db, cfg.Bootstrap, log); err != nil {
				return err
			}

			// --------------------------------------------------
			// Sessions
			// --------------------------------------------------
			rdb, err := session.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer rdb.Close()

			deps := routes.Deps{
				DB:       db,
				Config:   cfg,
				Log:      log,
				Sessions: session.NewRedisStore(rdb, time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute),
			}

			// --------------------------------------------------
			// Metrics + rate limit
			// --------------------------------------------------
			if cfg.Metrics.Enabled {
				provider, err := metrics.New()
				if err != nil {
					return err
				}
				defer func() {
					if err := provider.Shutdown(context.Background()); err != nil {
						log.Warn("metrics shutdown failed", slog.Any("error", err))
					}
				}()
				deps.Metrics = provider
			}

			if cfg.Server.RateLimit.Enabled {
				limiter := middleware.NewIPRateLimiter(
					rate.Limit(cfg.Server.RateLimit.RequestsPerSecond),
					cfg.Server.RateLimit.Burst,
				)
				go limiter.Run(ctx)
				deps.Limiter = limiter
			}

			// --------------------------------------------------
			// HTTP
			// --------------------------------------------------
			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())

			if err := routes.RegisterRoutes(r, deps); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("server running", slog.String("addr", cfg.Addr()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("failed to start server: %w", err)
				}
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "maximum time to wait for graceful shutdown")

	return cmd
}
