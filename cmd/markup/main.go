package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	mkerrors "github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/codec"
	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/metrics"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┬─┐┬┌─┬ ┬┌─┐
  │││├─┤├┬┘├┴┐│ │├─┘
  ┴ ┴┴ ┴┴└─┴ ┴└─┘┴
`

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		var me *mkerrors.MarkupError
		if errors.As(err, &me) {
			fmt.Fprint(os.Stderr, me.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// app carries what every command needs once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configDir   string
	verbose     bool
	metricsFile string

	cfg       *config.Config
	logger    *slog.Logger
	registry  *prometheus.Registry
	collector *metrics.Collector
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "markup",
		Short: "Build, query and render markup element trees",
		Long: `markup works with element trees stored as structured maps.

Trees are read from .json or .yaml files of the form
  {"name": "div", "value": "text", "attrs": {"id": "x"}, "children": [...]}

Every id attribute must be unique across a tree. Features include:

  • Rendering to indented text or a full index.html document
  • Finding elements by tag or attribute
  • Cloning with fresh identifiers
  • Converting between JSON and YAML`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&a.configDir, "config", "c", ".", "Directory containing markup.json")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	// Add commands
	rootCmd.AddCommand(
		renderCmd(a),
		documentCmd(a),
		findCmd(a),
		cloneCmd(a),
		convertCmd(a),
		versionCmd(a),
	)

	return rootCmd
}

func (a *app) setup() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadOrDefault(a.configDir)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.registry = prometheus.NewRegistry()
	a.collector = metrics.NewCollector(
		metrics.WithRegistry(a.registry),
		metrics.WithNamespace(cfg.Metrics.Namespace),
	)

	a.logger.Debug("markup: configuration loaded", "path", cfg.Path(), "sink", cfg.Output.Sink)
	return nil
}

func (a *app) writeMetrics() error {
	if a.metricsFile == "" || a.registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(a.metricsFile, a.registry)
}

// newArena creates an arena wired to the configuration, logger and metrics.
func (a *app) newArena(extra ...markup.Option) *markup.Arena {
	opts := append(a.cfg.ArenaOptions(),
		markup.WithLogger(a.logger),
		markup.WithObserver(a.collector),
	)
	return markup.NewArena(append(opts, extra...)...)
}

// load reads the tree stored at path into a fresh arena.
func (a *app) load(path string, extra ...markup.Option) (*markup.Arena, markup.NodeID, error) {
	arena := a.newArena(extra...)
	root, err := codec.Load(arena, path)
	if err != nil {
		return nil, markup.NoNode, err
	}
	return arena, root, nil
}

// usageError reports a command called with missing or conflicting flags.
func usageError(format string, args ...any) error {
	return mkerrors.New("M040").WithDetailf(format, args...)
}

// printBanner prints the markup ASCII art banner.
func (a *app) printBanner() {
	fmt.Fprint(a.stdout, banner)
}

// success prints a success message.
func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.stdout, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func (a *app) info(format string, args ...any) {
	fmt.Fprintf(a.stdout, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (a *app) warn(format string, args ...any) {
	fmt.Fprintf(a.stderr, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
