package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/vidmeta/internal/config"
	vmerrors "github.com/five82/vidmeta/internal/errors"
	"github.com/five82/vidmeta/internal/ffprobe"
	"github.com/five82/vidmeta/internal/logging"
	"github.com/five82/vidmeta/internal/processing"
	"github.com/five82/vidmeta/internal/reporter"
)

// scanArgs holds the parsed flags of the scan command.
type scanArgs struct {
	configPath string
	output     string
	ffprobe    string
	timeout    time.Duration
	backend    string
	logFile    string
	verbose    bool
	jsonOutput bool
	eventsPath string
	noColor    bool
}

func newScanCmd(stdout, stderr io.Writer) *cobra.Command {
	var sa scanArgs

	cmd := &cobra.Command{
		Use:   "scan [DIR]",
		Short: "Write a metadata report for the videos in DIR",
		Long: `Scan lists the .mp4, .mkv, .avi, .mov and .flv files directly inside DIR
(default: $VIDMETA_SOURCE_DIR or the current directory), probes each one with
ffprobe and writes the results as a JSON array.

Files that cannot be probed are logged and left out of the report. A missing
DIR is logged and nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, sa, args)
			if err != nil {
				return err
			}
			return executeScan(cmd.Context(), cfg, sa, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&sa.configPath, "config", "c", "", "Config file (YAML, TOML, JSON or .env)")
	flags.StringVarP(&sa.output, "output", "o", config.DefaultOutputPath, `Report path, "-" for stdout`)
	flags.StringVar(&sa.ffprobe, "ffprobe", config.DefaultFFprobePath, "ffprobe executable")
	flags.DurationVar(&sa.timeout, "timeout", config.DefaultProbeTimeout, "Per-file probe timeout, 0 to disable")
	flags.StringVar(&sa.backend, "backend", string(config.BackendCLI), "Probe backend (cli, transcoder)")
	flags.StringVar(&sa.logFile, "log-file", "", "Also append logs to this file")
	flags.BoolVarP(&sa.verbose, "verbose", "v", false, "Enable verbose output for troubleshooting")
	flags.BoolVar(&sa.jsonOutput, "json", false, "Emit progress as NDJSON events on stdout")
	flags.StringVar(&sa.eventsPath, "events", "", "Also write NDJSON progress events to this file")
	flags.BoolVar(&sa.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// resolveConfig loads the config file and environment, then applies the
// flags the user set explicitly and the DIR argument.
func resolveConfig(cmd *cobra.Command, sa scanArgs, args []string) (*config.Config, error) {
	cfg, err := config.Load(sa.configPath)
	if err != nil {
		return nil, vmerrors.NewConfigError("cannot load configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputPath = sa.output
	}
	if flags.Changed("ffprobe") {
		cfg.FFprobePath = sa.ffprobe
	}
	if flags.Changed("timeout") {
		cfg.ProbeTimeout = config.Duration(sa.timeout)
	}
	if flags.Changed("backend") {
		cfg.Backend = config.Backend(sa.backend)
	}
	if flags.Changed("log-file") {
		cfg.LogFile = sa.logFile
	}
	if sa.verbose {
		cfg.LogLevel = "debug"
	}
	if len(args) == 1 {
		cfg.SourceDir = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, vmerrors.NewConfigError("invalid configuration", err)
	}
	backend, err := config.ParseBackend(string(cfg.Backend))
	if err != nil {
		return nil, vmerrors.NewConfigError("invalid configuration", err)
	}
	cfg.Backend = backend

	if sa.jsonOutput && cfg.WritesToStdout() {
		return nil, vmerrors.NewConfigError("--json and --output - both write to stdout", nil)
	}

	return cfg, nil
}

func executeScan(parent context.Context, cfg *config.Config, sa scanArgs, stdout, stderr io.Writer) error {
	if sa.noColor {
		color.NoColor = true
	}

	logger, err := logging.Setup(stderr, cfg.SlogLevel(), cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	prober, err := ffprobe.ForConfig(cfg)
	if err != nil {
		return err
	}

	// Terminal output moves to stderr when the report itself goes to stdout.
	var rep reporter.Reporter
	if sa.jsonOutput {
		rep = reporter.NewJSONReporterWithWriter(stdout)
	} else {
		out := stdout
		if cfg.WritesToStdout() {
			out = stderr
		}
		rep = reporter.NewTerminalReporter(
			reporter.WithOutput(out),
			reporter.WithErrorOutput(stderr),
			reporter.WithVerbose(sa.verbose),
		)
	}

	if sa.eventsPath != "" {
		events, err := os.Create(sa.eventsPath)
		if err != nil {
			return vmerrors.NewConfigError("cannot open events file", err)
		}
		defer func() { _ = events.Close() }()
		rep = reporter.NewCompositeReporter(rep, reporter.NewJSONReporterWithWriter(events))
	}

	logger.Debug("Configuration",
		"source_dir", cfg.SourceDir,
		"output", cfg.OutputPath,
		"ffprobe", cfg.FFprobePath,
		"timeout", cfg.ProbeTimeout.String(),
		"backend", cfg.Backend.String(),
	)

	// Setup context with signal handling
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Interrupted, finishing with the files probed so far")
			cancel()
		case <-ctx.Done():
		}
	}()

	_, err = processing.Run(ctx, cfg, processing.Deps{
		Prober:   prober,
		Reporter: rep,
		Logger:   logger.Logger,
		Stdout:   stdout,
	})
	return err
}
