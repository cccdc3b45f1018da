package lint

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Target is a directory checked with one rule.
type Target struct {
	Dir  string
	Rule Rule
}

// Linter checks the frontmatter of markdown files.
type Linter struct {
	cfg     *Config
	targets []Target
}

// NewLinter creates a linter for the given targets.
func NewLinter(cfg *Config, targets ...Target) *Linter {
	if cfg == nil {
		cfg = &Config{}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".md"}
	}
	return &Linter{cfg: cfg, targets: targets}
}

// Run checks every target directory. A missing or unreadable directory is
// an error; problems in files are reported as issues.
func (l *Linter) Run(ctx context.Context) (*Result, error) {
	result := &Result{Issues: []Issue{}}
	for _, t := range l.targets {
		if err := l.lintDirectory(ctx, t, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (l *Linter) lintDirectory(ctx context.Context, t Target, result *Result) error {
	slog.Debug("Checking frontmatter", logfields.Path(t.Dir), logfields.Rule(t.Rule.Name()))

	return filepath.WalkDir(t.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(t.Dir, path)
		if err != nil {
			return err
		}
		if rel != "." && l.cfg.skipped(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !l.cfg.matches(path) {
			return nil
		}

		result.FilesTotal++
		issues, err := t.Rule.Check(path)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			if l.cfg.Quiet && issue.Severity != SeverityError {
				continue
			}
			issue.FilePath = filepath.ToSlash(path)
			result.Issues = append(result.Issues, issue)
		}
		return nil
	})
}
