package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/eggbreaker/internal/api"
	"github.com/mcoot/eggbreaker/internal/config"
	"github.com/mcoot/eggbreaker/internal/factory"
	"github.com/mcoot/eggbreaker/internal/logging"
	"github.com/mcoot/eggbreaker/internal/services/auth"
	"github.com/mcoot/eggbreaker/internal/services/session"
	redisstorage "github.com/mcoot/eggbreaker/internal/storage/redis"
)

// sweepInterval is how often expired sessions are closed
const sweepInterval = time.Minute

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Run the EggBreaker API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (env: "+config.PathEnvVar+")")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// Build factory config from the resolved configuration
	factoryCfg := factory.Config{
		Logger:       logger,
		StorageType:  cfg.StorageType,
		LocalStorage: cfg.LocalStorage,
		LocalDBPath:  cfg.LocalDBPath,
		AuthConfig: auth.Config{
			MinPasswordLength: cfg.MinPasswordLength,
		},
		SessionConfig: session.Config{
			SaveDelay:       cfg.SaveDebounce,
			SessionDuration: cfg.SessionDuration,
		},
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.PoolSize = cfg.RedisPoolSize
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		LeaderboardService: app.LeaderboardService,
		ProfileService:     app.ProfileService,
		Sessions:           app.Sessions,
		SessionDuration:    cfg.SessionDuration,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr()
	// Pending saves are flushed once requests have drained
	server := api.NewServer(router, serverConfig, logger, app.Sessions.Shutdown)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, app.Sessions, logger)

	logger.Info("server starting",
		slog.String("addr", serverConfig.Addr),
		slog.String("storage", cfg.StorageType),
		slog.String("local_storage", cfg.LocalStorage),
	)
	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func sweepSessions(ctx context.Context, sessions *session.Registry, logger *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.CleanExpired(ctx); n > 0 {
				logger.Info("expired sessions closed", slog.Int("count", n))
			}
		}
	}
}
