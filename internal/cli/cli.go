// Package cli implements the qplanarity command-line interface.
package cli

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fsh/qplanarity/pkg/buildinfo"
	"github.com/fsh/qplanarity/pkg/config"
	"github.com/fsh/qplanarity/pkg/layout"
	"github.com/fsh/qplanarity/pkg/planar"
	"github.com/fsh/qplanarity/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "qplanarity"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "qplanarity generates and checks planarity puzzles",
		Long:         `qplanarity generates random planar graphs, scrambles their drawing and tracks which lines cross while you untangle them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvConfigPath+" or the XDG config dir)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the config file selected by --config or the lookup order.
func (c *CLI) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, path, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		loggerFromContext(ctx).Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// puzzleFlags are the generator and layout flags shared by generate and play.
// A flag overrides the config file only when it was set explicitly.
type puzzleFlags struct {
	nodes      int
	outside    int
	denseness  float64
	sparseness float64
	maxRetries int
	seed       uint64
	layout     string
	radius     float64
	workers    int
}

func (f *puzzleFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.nodes, "nodes", "n", planar.DefaultNodeLimit, "number of vertices")
	fs.IntVar(&f.outside, "outside", 0, "target boundary length (0: 3/4 of nodes)")
	fs.Float64Var(&f.denseness, "denseness", planar.DefaultDenseness, "chance of extending a fan, in [0,1)")
	fs.Float64Var(&f.sparseness, "sparseness", planar.DefaultSparseness, "chance of extending a contraction, in [0,1)")
	fs.IntVar(&f.maxRetries, "max-retries", planar.DefaultMaxRetries, "retry bound for rejected choices")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (default: random)")
	fs.StringVar(&f.layout, "layout", string(layout.KindCircle), "initial drawing: circle or scatter")
	fs.Float64Var(&f.radius, "radius", layout.DefaultRadius, "layout radius")
	fs.IntVar(&f.workers, "workers", 0, "goroutines for the initial crossing scan")
}

// apply copies explicitly set flags into cfg and validates the result.
func (f *puzzleFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("nodes") {
		cfg.Generator.Nodes = f.nodes
	}
	if fs.Changed("outside") {
		cfg.Generator.Outside = f.outside
	}
	if fs.Changed("denseness") {
		cfg.Generator.Denseness = f.denseness
	}
	if fs.Changed("sparseness") {
		cfg.Generator.Sparseness = f.sparseness
	}
	if fs.Changed("max-retries") {
		cfg.Generator.MaxRetries = f.maxRetries
	}
	if fs.Changed("seed") {
		seed := f.seed
		cfg.Generator.Seed = &seed
	}
	if fs.Changed("layout") {
		cfg.Layout.Kind = f.layout
	}
	if fs.Changed("radius") {
		cfg.Layout.Radius = f.radius
	}
	if fs.Changed("workers") {
		cfg.Tracker.Workers = f.workers
	}
	return cfg.Validate()
}

// sessionOptions converts cfg, picking a random seed when none is configured.
func sessionOptions(cfg *config.Config, logger *log.Logger) session.Options {
	if cfg.Generator.Seed == nil {
		seed := rand.Uint64()
		cfg.Generator.Seed = &seed
	}
	logger.Debug("generator settings",
		"nodes", cfg.Generator.Nodes,
		"denseness", cfg.Generator.Denseness,
		"sparseness", cfg.Generator.Sparseness,
		"seed", *cfg.Generator.Seed)

	gen := cfg.GeneratorOptions()
	gen.Logger = logger
	return session.Options{
		Generator: gen,
		Layout:    cfg.LayoutOptions(),
		Workers:   cfg.Tracker.Workers,
		Logger:    logger,
	}
}
