package main

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-planner/internal/config"
	"github.com/phrazzld/scry-planner/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// ErrMigrateNeedsPostgres is returned by migrate under the file driver.
var ErrMigrateNeedsPostgres = errors.New("migrations require storage.driver=postgres")

func newMigrateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down|status|reset|version]",
		Short: "Run database migrations for the postgres store",
		ValidArgs: []string{
			postgres.MigrateUp,
			postgres.MigrateDown,
			postgres.MigrateStatus,
			postgres.MigrateReset,
			postgres.MigrateVersion,
		},
		Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, log, err := opts.bootstrap(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != config.DriverPostgres {
				return ErrMigrateNeedsPostgres
			}

			db, err := postgres.Open(cmd.Context(), cfg.Storage.DatabaseURL)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := postgres.Migrate(cmd.Context(), db, command, log); err != nil {
				return fmt.Errorf("migrate %s: %w", command, err)
			}
			return nil
		},
	}
}
