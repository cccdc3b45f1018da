package logfields

import "log/slog"

// Canonical log field names shared by all packages.
const (
	KeyBuildID    = "build_id"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySlug       = "slug"
	KeyTitle      = "title"
	KeySection    = "section"
	KeyCollection = "collection"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyRule       = "rule"
	KeyOutput     = "output"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Collection(c string) slog.Attr   { return slog.String(KeyCollection, c) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }

// Error renders err as a string attr; a nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
