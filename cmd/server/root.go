package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/scry-planner/internal/config"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// cliOptions holds state shared by every subcommand.
type cliOptions struct {
	configDir string
	fs        afero.Fs
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &cliOptions{fs: fs}

	root := &cobra.Command{
		Use:           "scry-planner",
		Short:         "Solar Hijri study planner with spaced-repetition reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".",
		"directory holding config.yaml and .env")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)
	return root
}

// bootstrap loads configuration and sets up logging to logOut.
func (o *cliOptions) bootstrap(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(o.configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.SetupWithWriter(cfg.Server, logOut)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Debug("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("timezone", cfg.Calendar.Timezone))
	return cfg, l, nil
}
