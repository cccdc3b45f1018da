package posts

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Encode renders the result as two-space indented JSON without HTML
// escaping. Output is byte-identical for identical input.
func Encode(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the result to path, creating its directory. The file is
// replaced atomically.
func WriteJSON(path string, res *Result) error {
	data, err := Encode(res)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode posts").Build()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", filepath.Dir(path)).
			Build()
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write temporary posts file").
			WithContext("path", tempPath).
			Build()
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to replace posts file").
			WithContext("path", path).
			Build()
	}
	return nil
}
