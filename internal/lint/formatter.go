package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, paths []string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs issues grouped by file, files in path order.
func (f *TextFormatter) Format(w io.Writer, result *Result, paths []string) error {
	if _, err := fmt.Fprintf(w, "Checking frontmatter in: %s\n", strings.Join(paths, ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}

	files, byFile := groupByFile(result.Issues)
	errorFiles := 0
	for _, file := range files {
		heading := "Warnings"
		for _, issue := range byFile[file] {
			if issue.Severity == SeverityError {
				heading = "Errors"
				errorFiles++
				break
			}
		}
		if _, err := fmt.Fprintf(w, "%s in file %s:\n", heading, file); err != nil {
			return err
		}
		for _, issue := range byFile[file] {
			prefix := ""
			if issue.Severity != SeverityError {
				prefix = strings.ToLower(issue.Severity.String()) + ": "
			}
			if _, err := fmt.Fprintf(w, " - %s%s\n", prefix, issue.Message); err != nil {
				return err
			}
			if issue.Fix != "" {
				if _, err := fmt.Fprintf(w, "   Fix: %s\n", issue.Fix); err != nil {
					return err
				}
			}
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n  %d files scanned\n", result.FilesTotal); err != nil {
		return err
	}
	if n := result.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s in %d file%s\n", n, pluralize(n), errorFiles, pluralize(errorFiles)); err != nil {
			return err
		}
	}
	if n := result.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s\n", n, pluralize(n)); err != nil {
			return err
		}
	}

	if result.HasErrors() {
		_, err := fmt.Fprintln(w, "❌ Frontmatter has errors.")
		return err
	}
	_, err := fmt.Fprintln(w, "✨ All frontmatter passes!")
	return err
}

func groupByFile(issues []Issue) ([]string, map[string][]Issue) {
	byFile := make(map[string][]Issue)
	for _, issue := range issues {
		byFile[issue.FilePath] = append(byFile[issue.FilePath], issue)
	}
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, byFile
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Paths        []string    `json:"paths"`
	FilesTotal   int         `json:"files_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	FilePath string `json:"file_path"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, paths []string) error {
	output := JSONOutput{
		Paths:        paths,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       []JSONIssue{},
	}

	files, byFile := groupByFile(result.Issues)
	for _, file := range files {
		for _, issue := range byFile[file] {
			output.Issues = append(output.Issues, JSONIssue{
				FilePath: issue.FilePath,
				Severity: issue.Severity.String(),
				Rule:     issue.Rule,
				Message:  issue.Message,
				Fix:      issue.Fix,
			})
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
