package main

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-planner/internal/backup"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const backupFileMode = 0o644

func newExportCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a backup of all tasks and settings to file, or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.bootstrap(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			app, err := newApplication(cmd.Context(), cfg, log, opts.fs)
			if err != nil {
				return err
			}
			defer app.cleanup()

			doc, err := app.planner.Export(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return backup.Encode(cmd.OutOrStdout(), doc)
			}

			var buf bytes.Buffer
			if err := backup.Encode(&buf, doc); err != nil {
				return err
			}
			if err := afero.WriteFile(opts.fs, args[0], buf.Bytes(), backupFileMode); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			log.Info("backup written",
				slog.String("file", args[0]),
				slog.Int("tasks", len(doc.Tasks)))
			return nil
		},
	}
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all tasks and settings with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.bootstrap(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			data, err := afero.ReadFile(opts.fs, args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}
			doc, err := backup.Decode(bytes.NewReader(data))
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context(), cfg, log, opts.fs)
			if err != nil {
				return err
			}
			defer app.cleanup()

			if err := app.planner.Import(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks\n", len(doc.Tasks))
			return nil
		},
	}
}
