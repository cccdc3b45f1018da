package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/convert"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	From string `arg:"" optional:"" help:"YAML or JSON file to convert (default: every convert.files entry)"`
	To   string `arg:"" optional:"" help:"Destination JSON file (default: source with a .json extension)"`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	if c.From != "" {
		to := c.To
		if to == "" {
			to = strings.TrimSuffix(c.From, filepath.Ext(c.From)) + ".json"
		}
		return convertOne(logger(g), c.From, to)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	return RunConvert(cfg, logger(g))
}

// RunConvert converts every configured file.
func RunConvert(cfg *config.Config, log *slog.Logger) error {
	for _, f := range cfg.Convert.Files {
		if err := convertOne(log, cfg.Path(f.From), cfg.Path(f.To)); err != nil {
			return err
		}
	}
	return nil
}

func convertOne(log *slog.Logger, from, to string) error {
	if err := convert.WriteJSON(from, to); err != nil {
		return err
	}
	log.Info("Converted", logfields.File(from), logfields.Output(to))
	_, _ = fmt.Fprintf(os.Stdout, "Wrote %s\n", to)
	return nil
}

// FinanceCmd implements the 'finance' command.
type FinanceCmd struct {
	Year string `short:"y" help:"Year directory to convert (default: convert.finance.year, else the current year)"`
}

func (f *FinanceCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	return RunFinance(cfg, f.Year, logger(g))
}

// RunFinance converts the expense tables of year.
func RunFinance(cfg *config.Config, year string, log *slog.Logger) error {
	fc := cfg.Convert.Finance
	if year == "" {
		year = fc.Year
	}
	if year == "" {
		year = fmt.Sprint(time.Now().Year())
	}

	if err := convert.BuildFinanceInfoList(convert.FinanceOptions{
		BaseDir:     cfg.Root,
		ConfigDir:   fc.ConfigDir,
		FinanceDir:  fc.Dir,
		Year:        year,
		JSONDataDir: fc.JSONDataDir,
	}); err != nil {
		return err
	}
	log.Info("Finance tables converted", slog.String("year", year))
	return nil
}
