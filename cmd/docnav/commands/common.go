package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docnav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Scan content and write posts.json with the docs navigation tree"`
	Lint    LintCmd    `cmd:"" help:"Check markdown frontmatter of docs and blog posts"`
	Convert ConvertCmd `cmd:"" help:"Convert YAML data files to JSON"`
	Finance FinanceCmd `cmd:"" help:"Convert the yearly finance expense tables to JSON"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild posts.json whenever content changes"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

var logLevels = normalization.NewNormalizer("log level", map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// parseLogLevel honours --verbose first, then DOCNAV_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	level, err := logLevels.NormalizeWithError(os.Getenv("DOCNAV_LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Note: ignoring DOCNAV_LOG_LEVEL: %v\n", err)
	}
	return level
}

func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}

func logger(g *Global) *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
