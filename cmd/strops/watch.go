package main

import (
	"context"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/strops/pkg/adapters/fs"
	"github.com/aretw0/strops/pkg/report"
)

func newWatchCmd(a *app) *cobra.Command {
	f := &fileFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [patterns...]",
		Short: "Re-run operations whenever a matching file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format(cmd)
			if err != nil {
				return err
			}
			cfg, err := a.batchConfig(cmd, f, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("debounce") {
				if debounce, err = a.cfg.DebounceDuration(); err != nil {
					return err
				}
			}

			b, err := fs.NewBatch(a.svc, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w, err := fs.NewWatcher(b, fs.WatchConfig{
				Debounce: debounce,
				OnResults: func(ctx context.Context, results []fs.FileResult) {
					if err := report.WriteFiles(out, format, results); err != nil {
						a.logger.Error("writing results", "error", err)
					}
				},
			})
			if err != nil {
				return err
			}

			ctx := lifecycle.NewSignalContext(cmd.Context())
			done, err := w.Start(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("watching", "root", cfg.Root, "patterns", cfg.Patterns)

			return <-done
		},
	}
	f.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before re-running")
	return cmd
}
