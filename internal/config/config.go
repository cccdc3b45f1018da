// Package config loads the docnav configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// CurrentVersion is the configuration format version written by Init.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docnav.yaml"

// Config represents the application configuration.
type Config struct {
	Version    string           `yaml:"version"`
	Root       string           `yaml:"root"`
	Content    ContentConfig    `yaml:"content"`
	Navigation NavigationConfig `yaml:"navigation"`
	Output     OutputConfig     `yaml:"output"`
	Lint       LintConfig       `yaml:"lint"`
	Convert    ConvertConfig    `yaml:"convert"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ContentConfig controls which files the scanner reads.
type ContentConfig struct {
	Directories  []content.Directory `yaml:"directories"`
	Extensions   []string            `yaml:"extensions"`
	SectionFile  string              `yaml:"section_file"`
	LastModified bool                `yaml:"last_modified"` // read commit dates from git history
}

// NavigationConfig names the well-known tree keys.
type NavigationConfig struct {
	DocsRoot           string `yaml:"docs_root"`
	WelcomeKey         string `yaml:"welcome_key"`
	WelcomeTitle       string `yaml:"welcome_title"`
	ReferenceRoot      string `yaml:"reference_root"`
	SpecificationGroup string `yaml:"specification_group"`
}

// OutputConfig locates generated artifacts.
type OutputConfig struct {
	Posts string `yaml:"posts"`
}

// LintConfig locates the markdown trees checked by the frontmatter linter.
type LintConfig struct {
	DocsDir    string   `yaml:"docs_dir"`
	BlogDir    string   `yaml:"blog_dir"`
	Extensions []string `yaml:"extensions"`
	Skip       []string `yaml:"skip"` // path fragments excluded from checks
}

// ConvertConfig lists YAML files converted to JSON and the finance layout.
type ConvertConfig struct {
	Files   []Conversion  `yaml:"files"`
	Finance FinanceConfig `yaml:"finance"`
}

// Conversion is one source file and its JSON destination.
type Conversion struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// FinanceConfig describes where yearly expense files live.
type FinanceConfig struct {
	ConfigDir   string `yaml:"config_dir"`
	Dir         string `yaml:"dir"`
	Year        string `yaml:"year"`
	JSONDataDir string `yaml:"json_data_dir"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Paths    []string      `yaml:"paths,omitempty"` // extra paths watched besides content directories
}

// Load reads configuration from configPath. Environment variables from .env
// and .env.local are loaded first without overriding the process
// environment, and ${VAR} references in the file are expanded. A missing
// file at the default path yields the defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				WithContext("path", configPath).
				Fatal().
				Build()
		}
	case os.IsNotExist(err) && filepath.Clean(configPath) == DefaultPath:
		cfg.Version = CurrentVersion
	case os.IsNotExist(err):
		return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).
			WithContext("path", configPath).
			Build()
	default:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read configuration").
			WithContext("path", configPath).
			Build()
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads .env and .env.local when present. Variables already set
// in the environment win.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			fmt.Fprintf(os.Stderr, "Note: could not load %s: %v\n", name, err)
		}
	}
}

// Path resolves p against the configured root. Absolute paths are returned
// unchanged.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	_ = ApplyDefaults(cfg)
	return cfg
}

// Init writes a default configuration file to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
