package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/lint"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	Docs   string `help:"Docs directory checked with the docs rule (overrides lint.docs_dir)"`
	Blog   string `help:"Blog directory checked with the blog rule (overrides lint.blog_dir)"`

	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile collector format to this path"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if l.Docs != "" {
		cfg.Lint.DocsDir = l.Docs
	}
	if l.Blog != "" {
		cfg.Lint.BlogDir = l.Blog
	}
	return RunLint(context.Background(), cfg, l.Format, l.Quiet, l.MetricsFile)
}

// RunLint checks the configured docs and blog trees and prints a report.
// Frontmatter errors are returned as a lint error.
func RunLint(ctx context.Context, cfg *config.Config, format string, quiet bool, metricsFile string) error {
	docsDir := cfg.Path(cfg.Lint.DocsDir)
	blogDir := cfg.Path(cfg.Lint.BlogDir)

	linter := lint.NewLinter(&lint.Config{
		Quiet:      quiet,
		Extensions: cfg.Lint.Extensions,
		Skip:       cfg.Lint.Skip,
	},
		lint.Target{Dir: docsDir, Rule: &lint.DocsFrontmatterRule{}},
		lint.Target{Dir: blogDir, Rule: &lint.BlogFrontmatterRule{}},
	)

	result, err := linter.Run(ctx)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "linting failed").Build()
	}

	if metricsFile != "" {
		reg := prometheus.NewRegistry()
		rec := metrics.NewPrometheusRecorder(reg)
		rec.AddLintIssues(lint.SeverityError.String(), result.ErrorCount())
		rec.AddLintIssues(lint.SeverityWarning.String(), result.WarningCount())
		if err := metrics.WriteTextfile(metricsFile, reg); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(err))
		}
	}

	formatter := lint.NewFormatter(format)
	if err := formatter.Format(os.Stdout, result, []string{docsDir, blogDir}); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if result.HasErrors() {
		return ferrors.NewError(ferrors.CategoryLint,
			fmt.Sprintf("%d frontmatter error(s) found", result.ErrorCount())).
			WithContext("files_total", result.FilesTotal).
			Build()
	}
	return nil
}
