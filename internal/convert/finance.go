package convert

import (
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Finance table file names, without extension.
var financeFiles = []string{"Expenses", "ExpensesLink"}

// FinanceOptions locates the expense tables of one year.
type FinanceOptions struct {
	BaseDir     string // resolved against the working directory when relative
	ConfigDir   string
	FinanceDir  string
	Year        string
	JSONDataDir string
}

// BuildFinanceInfoList converts <config>/<finance>/<year>/{Expenses,ExpensesLink}.yml
// into <config>/<finance>/<jsonDataDir>/*.json, creating the output directory.
func BuildFinanceInfoList(opts FinanceOptions) error {
	if opts.Year == "" {
		return ferrors.ValidationError("finance year is required").Build()
	}

	financeRoot := filepath.Join(opts.BaseDir, opts.ConfigDir, opts.FinanceDir)
	jsonDir := filepath.Join(financeRoot, opts.JSONDataDir)
	if err := os.MkdirAll(jsonDir, 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create finance output directory").
			WithContext("path", jsonDir).
			Build()
	}

	for _, name := range financeFiles {
		from := filepath.Join(financeRoot, opts.Year, name+".yml")
		to := filepath.Join(jsonDir, name+".json")
		if err := WriteJSON(from, to); err != nil {
			return err
		}
		slog.Debug("Converted finance table", logfields.File(from), logfields.Output(to))
	}
	return nil
}
