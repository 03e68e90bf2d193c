// Package cli contains the authclient commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authclient/pkg/config"
	"github.com/dmitrymomot/authclient/pkg/logger"
	"github.com/dmitrymomot/authclient/pkg/requestid"
)

const serviceName = "authclient"

// Cache backends accepted in CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// AppConfig holds the process-level settings.
type AppConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL"`
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"memory"`
}

type app struct {
	cfg     AppConfig
	log     *slog.Logger
	verbose bool
	version string
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "authclient",
		Short: "Resolve user information from a cookie-session service",
		Long: `authclient logs in to a cookie-session service, fetches the user
information record and logs out again.

The service is configured through the environment (or a .env file):
  AUTH_BASE_URL         service root, e.g. https://intranet.example.com
  AUTH_REQUEST_TIMEOUT  per-request timeout (default 10s)
  CACHE_BACKEND         memory or redis
  REDIS_URL             used when CACHE_BACKEND=redis

Example usage:
  AUTH_PASSWORD=secret authclient resolve --user alice
  echo secret | authclient resolve --user alice --password-stdin`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(newResolveCommand(a))

	return root
}

// Execute runs the CLI with the process arguments.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	if err := config.Load(&a.cfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts := []logger.Option{
		logger.WithEnvironment(a.cfg.Env, serviceName),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if a.cfg.LogLevel != "" {
		level, err := logger.ParseLevel(a.cfg.LogLevel)
		if err != nil {
			return err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if a.verbose {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	a.log = logger.New(opts...)

	a.log.Debug("configuration loaded",
		slog.String("cache_backend", a.cfg.CacheBackend),
		slog.String("version", a.version),
	)
	return nil
}
