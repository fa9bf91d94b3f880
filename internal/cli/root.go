// Package cli is the gamereviews command line: serve the API, load a
// dataset and print the route documentation.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/gamereviews/internal/config"
	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
)

type app struct {
	cfg config.Config
}

// NewRootCommand builds the command tree. Flag defaults come from the
// GAMEREVIEWS_* environment, so a flag given on the command line wins.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: config.Load()}

	root := &cobra.Command{
		Use:   config.ServiceName,
		Short: "Board game reviews REST API",
		Long: `A REST API over board game categories, users, reviews and comments.

Examples:
  gamereviews serve --migrate                       # Create missing tables and serve
  gamereviews seed                                  # Reload the bundled test dataset
  gamereviews seed --data ./data/development        # Load JSON files from a directory
  gamereviews routes --json                         # Print the route docs as JSON`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Validate()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.DBDriver, "db-driver", a.cfg.DBDriver, "Database driver: postgres or sqlite3")
	flags.StringVar(&a.cfg.DatabaseURL, "database-url", a.cfg.DatabaseURL, "Database connection string")
	flags.BoolVar(&a.cfg.Debug, "debug", a.cfg.Debug, "Development logging")
	flags.DurationVar(&a.cfg.SlowQuery, "slow-query", a.cfg.SlowQuery, "Log queries slower than this at warn level")

	root.AddCommand(
		newServeCommand(a),
		newSeedCommand(a),
		newRoutesCommand(),
	)

	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) logger() (*zap.Logger, error) {
	logger, err := logging.New(a.cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return logger.With(zap.String("service", config.ServiceName)), nil
}

func (a *app) openDB(ctx context.Context, logger *zap.Logger, meter metric.Meter) (*db.DB, error) {
	opts := []db.Option{
		db.WithLogger(logger.Sugar().Named("db")),
		db.WithSlowQueryThreshold(a.cfg.SlowQuery),
	}
	if meter != nil {
		opts = append(opts, db.WithMeter(meter))
	}

	return db.Open(ctx, a.cfg.DBDriver, a.cfg.DatabaseURL, opts...)
}
