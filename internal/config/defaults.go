package config

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/content"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ContentDefaultApplier handles scanner defaults.
type ContentDefaultApplier struct{}

func (ContentDefaultApplier) Domain() string { return "content" }

func (ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if len(cfg.Content.Directories) == 0 {
		cfg.Content.Directories = content.DefaultDirectories()
	}
	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = []string{".mdx"}
	}
	if cfg.Content.SectionFile == "" {
		cfg.Content.SectionFile = "_section.mdx"
	}
	return nil
}

// NavigationDefaultApplier handles navigation tree key defaults.
type NavigationDefaultApplier struct{}

func (NavigationDefaultApplier) Domain() string { return "navigation" }

func (NavigationDefaultApplier) ApplyDefaults(cfg *Config) error {
	n := &cfg.Navigation
	if n.DocsRoot == "" {
		n.DocsRoot = content.DocsPrefix
	}
	if n.WelcomeKey == "" {
		n.WelcomeKey = "welcome"
	}
	if n.WelcomeTitle == "" {
		n.WelcomeTitle = "Welcome"
	}
	if n.ReferenceRoot == "" {
		n.ReferenceRoot = "reference"
	}
	if n.SpecificationGroup == "" {
		n.SpecificationGroup = "specification"
	}
	return nil
}

// OutputDefaultApplier handles output path defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Posts == "" {
		cfg.Output.Posts = "config/posts.json"
	}
	return nil
}

// LintDefaultApplier handles frontmatter checker defaults.
type LintDefaultApplier struct{}

func (LintDefaultApplier) Domain() string { return "lint" }

func (LintDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Lint.DocsDir == "" {
		cfg.Lint.DocsDir = "markdown/docs"
	}
	if cfg.Lint.BlogDir == "" {
		cfg.Lint.BlogDir = "markdown/blog"
	}
	if len(cfg.Lint.Extensions) == 0 {
		cfg.Lint.Extensions = []string{".md"}
	}
	if cfg.Lint.Skip == nil {
		cfg.Lint.Skip = []string{"reference/specification"}
	}
	return nil
}

// ConvertDefaultApplier handles YAML to JSON conversion defaults.
type ConvertDefaultApplier struct{}

func (ConvertDefaultApplier) Domain() string { return "convert" }

func (ConvertDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Convert.Files == nil {
		cfg.Convert.Files = []Conversion{{From: "config/adopters.yml", To: "config/adopters.json"}}
	}
	f := &cfg.Convert.Finance
	if f.ConfigDir == "" {
		f.ConfigDir = "config"
	}
	if f.Dir == "" {
		f.Dir = "finance"
	}
	if f.JSONDataDir == "" {
		f.JSONDataDir = "json-data"
	}
	return nil
}

// WatchDefaultApplier handles watch mode defaults.
type WatchDefaultApplier struct{}

func (WatchDefaultApplier) Domain() string { return "watch" }

func (WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	return nil
}

// ApplyDefaults runs every domain applier in a fixed order.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		ContentDefaultApplier{},
		NavigationDefaultApplier{},
		OutputDefaultApplier{},
		LintDefaultApplier{},
		ConvertDefaultApplier{},
		WatchDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
