package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"goal_backend/internal/app/di"
	"goal_backend/internal/app/router"
	"goal_backend/internal/config"
	"goal_backend/internal/platform/httpserver"
	"goal_backend/internal/platform/logutil"
)

type commonFlags struct {
	configFile string
	envFile    string
}

func (f *commonFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a YAML config file. Environment variables override it",
			Destination: &f.configFile,
		},
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "Path to a .env file loaded before reading the environment",
			Value:       ".env",
			Destination: &f.envFile,
		},
	}
}

// load reads the .env file (if present) and the configuration, and returns
// a context carrying the process logger.
func (f *commonFlags) load(ctx context.Context) (context.Context, *config.Config, zerolog.Logger, error) {
	envErr := godotenv.Load(f.envFile)

	cfg, err := config.Load(f.configFile)
	if err != nil {
		return ctx, nil, zerolog.Nop(), err
	}

	logger := logutil.New(cfg.IsProduction(), cfg.LogLevel, os.Stdout)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn().Err(envErr).Str("file", f.envFile).Msg("failed to load env file")
	}
	return logutil.WithLogger(ctx, logger), cfg, logger, nil
}

func serveCmd() *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: flags.flags(),
		Action: func(c *cli.Context) error {
			ctx, cfg, logger, err := flags.load(c.Context)
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			stores, err := di.OpenStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := stores.Close(); err != nil {
					logger.Error().Err(err).Msg("failed to close stores")
				}
			}()

			if cfg.Database.RunMigrations {
				if err := stores.Migrate(ctx); err != nil {
					return err
				}
			}
			di.WithGoalCache(ctx, stores, cfg.Redis)

			engine := router.NewRouter(cfg, di.NewHandlers(cfg, stores), logger)
			return httpserver.Serve(ctx, cfg.HTTP, engine)
		},
	}
}

func migrateCmd() *cli.Command {
	var flags commonFlags
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply schema migrations (or create indexes) and exit",
		Flags: flags.flags(),
		Action: func(c *cli.Context) error {
			ctx, cfg, logger, err := flags.load(c.Context)
			if err != nil {
				return err
			}

			stores, err := di.OpenStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = stores.Close() }()

			if err := stores.Migrate(ctx); err != nil {
				return err
			}
			logger.Info().Str("driver", cfg.Database.Driver).Msg("migrations applied")
			return nil
		},
	}
}
