package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/strops/pkg/adapters/fs"
	"github.com/aretw0/strops/pkg/core"
	"github.com/aretw0/strops/pkg/report"
)

// fileFlags are shared by batch and watch.
type fileFlags struct {
	root   string
	ignore []string
	ops    []string
	outDir string
}

func (f *fileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.root, "root", ".", "Directory the patterns are resolved against")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "Extra glob patterns to skip")
	cmd.Flags().StringSliceVar(&f.ops, "ops", nil, "Operations to run (default: all)")
	cmd.Flags().StringVar(&f.outDir, "out", "", "Write string results to <out>/<path>.<operation>")
	addFormatFlag(cmd)
}

// batchConfig merges flags, positional patterns and the config file.
func (a *app) batchConfig(cmd *cobra.Command, f *fileFlags, patterns []string) (fs.Config, error) {
	ops := make([]core.Operation, 0, len(f.ops))
	for _, name := range f.ops {
		op, err := core.ParseOperation(name)
		if err != nil {
			return fs.Config{}, err
		}
		ops = append(ops, op)
	}

	if len(patterns) == 0 {
		patterns = a.cfg.Patterns
	}
	ignore := f.ignore
	if !cmd.Flags().Changed("ignore") {
		ignore = a.cfg.Ignore
	}
	outDir := f.outDir
	if !cmd.Flags().Changed("out") {
		outDir = a.cfg.OutDir
	}

	return fs.Config{
		Root:       f.root,
		Patterns:   patterns,
		Ignore:     ignore,
		Operations: ops,
		OutDir:     outDir,
		Logger:     a.logger,
	}, nil
}

func newBatchCmd(a *app) *cobra.Command {
	f := &fileFlags{}
	cmd := &cobra.Command{
		Use:   "batch [patterns...]",
		Short: "Run operations on every file matching the glob patterns",
		Long: `Run operations on every file matching the glob patterns (doublestar syntax,
e.g. "**/*.txt"). Each file's content is one text value. Files that are not
valid UTF-8 are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format(cmd)
			if err != nil {
				return err
			}
			cfg, err := a.batchConfig(cmd, f, args)
			if err != nil {
				return err
			}
			b, err := fs.NewBatch(a.svc, cfg)
			if err != nil {
				return err
			}

			results, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := report.WriteFiles(cmd.OutOrStdout(), format, results); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(results))
			}
			a.logger.Debug("batch finished", "files", len(results))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
