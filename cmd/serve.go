package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	config "task-board.com/task-board/internal/configs"
	httpapi "task-board.com/task-board/internal/http"
	"task-board.com/task-board/internal/services"
	"task-board.com/task-board/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the database, then serves the board API and prunes expired magic links until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		cfg, logger := a.cfg, a.logger
		if err := config.Migrate(a.db); err != nil {
			return err
		}

		revocations, closeRevocations, err := newRevocationList(cfg, logger)
		if err != nil {
			return err
		}
		defer closeRevocations()

		auth := services.NewAuthService(a.store, revocations, services.AuthOptions{
			Secret:       cfg.JWTSecret,
			TokenTTL:     cfg.JWTTTL,
			Email:        cfg.AuthEmail,
			Password:     cfg.AuthPassword,
			PasswordHash: cfg.AuthPasswordHash,
			MagicLinkTTL: cfg.MagicLinkTTL,
			PublicURL:    cfg.PublicURL,
		}, logger)

		sqlDB, err := a.db.DB()
		if err != nil {
			return err
		}

		handler := httpapi.NewHandler(httpapi.Services{
			Boards:    services.NewBoardService(a.store, logger),
			Columns:   services.NewColumnService(a.store, logger),
			Tasks:     services.NewTaskService(a.store, logger),
			Auth:      auth,
			Ownership: services.NewOwnershipService(a.store),
			Ping:      sqlDB.PingContext,
		}, logger, httpapi.Options{
			Production: cfg.Production(),
			MagicLinks: cfg.MagicLinkDebug,
		})

		e := httpapi.NewServer(handler, cfg.RateLimit)
		server := &http.Server{
			Addr:              cfg.AppURL,
			Handler:           corsPolicy(cfg).Handler(e),
			ReadHeaderTimeout: 10 * time.Second,
		}

		janitor := services.NewMagicLinkJanitor(a.store, cfg.MagicLinkCleanup, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			logger.Info("HTTP server listening", zap.String("addr", cfg.AppURL), zap.String("env", cfg.Env))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			return janitor.Run(gctx)
		})

		g.Go(func() error {
			<-gctx.Done()

			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
			)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			logger.Error("server stopped with error", zap.Error(err))
			return err
		}

		logger.Info("HTTP server and magic link janitor shut down gracefully")
		return nil
	},
}

// newRevocationList picks Redis when enabled so logouts are shared between
// instances, and falls back to process memory otherwise.
func newRevocationList(cfg config.Config, logger *zap.Logger) (session.RevocationList, func(), error) {
	if !cfg.RedisEnabled {
		logger.Warn("redis disabled, token revocations are kept in memory")
		return session.NewMemoryRevocationList(), func() {}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using redis for token revocations", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisRevocationList(client, cfg.RedisKeyPrefix), client.Close, nil
}

func corsPolicy(cfg config.Config) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
