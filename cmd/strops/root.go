package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/strops/internal/logging"
	"github.com/aretw0/strops/internal/platform"
	"github.com/aretw0/strops/pkg/core"
	"github.com/aretw0/strops/pkg/report"
)

// app carries the state shared by every command after PersistentPreRunE.
type app struct {
	verbose    bool
	configPath string
	normalize  bool
	logFormat  string

	cfg    platform.Config
	logger *slog.Logger
	svc    *core.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "strops",
		Short: "Reverse, count vowels and capitalize words",
		Long: `strops applies small text operations to arguments, stdin or files.
Results are printed as plain text, JSON or YAML.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: nearest .strops.yaml/.strops.toml)")
	cmd.PersistentFlags().BoolVar(&a.normalize, "normalize", false, "Apply Unicode NFC normalization to inputs")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(
		newOpCmd(a, core.OpReverse, "reverse", "Reverse the characters of the text", "rev"),
		newOpCmd(a, core.OpCountVowels, "vowels", "Count the vowels (a, e, i, o, u) in the text", "count-vowels"),
		newOpCmd(a, core.OpCapitalizeWords, "capitalize", "Capitalize the first letter of every word", "capitalize-words", "title"),
		newAllCmd(a),
		newBatchCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, path, err := platform.ResolveConfig(wd, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	format := cfg.LogFormat
	if cmd.Flags().Changed("log-format") {
		format = a.logFormat
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return err
	}
	a.logger = logger
	slog.SetDefault(logger)

	if cmd.Flags().Changed("normalize") {
		a.cfg.Normalize = a.normalize
	}
	if path != "" {
		logger.Debug("config loaded", "path", path)
	}

	a.svc = a.newService()
	return nil
}

func (a *app) newService(extra ...platform.Option) *core.Service {
	opts := []platform.Option{
		platform.WithLogger(a.logger),
		platform.WithNormalization(a.cfg.Normalize),
	}
	return platform.New(append(opts, extra...)...)
}

// format resolves --format against the config file value.
func (a *app) format(cmd *cobra.Command) (report.Format, error) {
	name := a.cfg.Format
	if cmd.Flags().Changed("format") {
		name, _ = cmd.Flags().GetString("format")
	}
	return report.ParseFormat(name)
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "o", "text", "Output format: text, json or yaml")
}

// readText joins args with single spaces, or reads stdin when no args are
// given. A single trailing newline from stdin is dropped.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("%w: no text given (pass arguments or pipe stdin)", core.ErrInvalidArgument)
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

var errFilesFailed = errors.New("some files failed")
