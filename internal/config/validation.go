package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Validate checks a configuration with defaults applied.
func Validate(cfg *Config) error {
	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return invalid("version", fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion))
	}

	seen := make(map[string]struct{}, len(cfg.Content.Directories))
	for i, d := range cfg.Content.Directories {
		field := fmt.Sprintf("content.directories[%d]", i)
		if strings.TrimSpace(d.Path) == "" {
			return invalid(field, "path is required")
		}
		if !strings.HasPrefix(d.Slug, "/") {
			return invalid(field, fmt.Sprintf("slug %q must start with /", d.Slug))
		}
		if _, dup := seen[d.Path]; dup {
			return invalid(field, fmt.Sprintf("directory %q listed twice", d.Path))
		}
		seen[d.Path] = struct{}{}
	}

	if err := validateExtensions("content.extensions", cfg.Content.Extensions); err != nil {
		return err
	}
	if err := validateExtensions("lint.extensions", cfg.Lint.Extensions); err != nil {
		return err
	}

	if !strings.HasPrefix(cfg.Navigation.DocsRoot, "/") {
		return invalid("navigation.docs_root", fmt.Sprintf("%q must start with /", cfg.Navigation.DocsRoot))
	}

	for i, c := range cfg.Convert.Files {
		if c.From == "" || c.To == "" {
			return invalid(fmt.Sprintf("convert.files[%d]", i), "from and to are required")
		}
	}

	if cfg.Watch.Debounce < 0 {
		return invalid("watch.debounce", "must not be negative")
	}
	return nil
}

func validateExtensions(field string, exts []string) error {
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") || len(e) < 2 {
			return invalid(field, fmt.Sprintf("extension %q must start with a dot", e))
		}
	}
	return nil
}

func invalid(field, msg string) error {
	return errors.ValidationError("configuration validation failed: " + field + ": " + msg).
		WithContext("field", field).
		Build()
}
