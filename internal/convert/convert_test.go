package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json passthrough", "{\n  \"b\": 1,\n  \"a\": [true, null]\n}\n", `{"b":1,"a":[true,null]}`},
		{"yaml keeps key order", "zeta: 1\nalpha: two\nmid: 3.5\n", `{"zeta":1,"alpha":"two","mid":3.5}`},
		{"nested", "- name: Acme\n  links:\n    - https://acme.example\n- name: Foo & <Bar>\n", `[{"name":"Acme","links":["https://acme.example"]},{"name":"Foo & <Bar>"}]`},
		{"aliases and merge", "base: &b\n  x: 1\n  y: 2\nchild:\n  <<: *b\n  y: 3\n  z: 4\n", `{"base":{"x":1,"y":2},"child":{"x":1,"y":3,"z":4}}`},
		{"repeated alias", "a: &x 1\nb: *x\nc: [*x, *x]\n", `{"a":1,"b":1,"c":[1,1]}`},
		{"numeric keys", "2023: a\ntrue: b\n", `{"2023":"a","true":"b"}`},
		{"empty document", "", `null`},
		{"timestamp stays a string", "date: 2024-01-02\n", `{"date":"2024-01-02"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToJSON([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestToJSON_Invalid(t *testing.T) {
	laughs := "a: &a [x, x, x, x, x, x, x, x, x, x]\n" +
		"b: &b [*a, *a, *a, *a, *a, *a, *a, *a, *a, *a]\n" +
		"c: &c [*b, *b, *b, *b, *b, *b, *b, *b, *b, *b]\n" +
		"d: &d [*c, *c, *c, *c, *c, *c, *c, *c, *c, *c]\n" +
		"e: [*d, *d, *d, *d, *d, *d, *d, *d, *d, *d]\n"

	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"syntax error", "key: [unclosed\n", ""},
		{"self-referencing alias", "a: &x\n  b: *x\n", "alias cycle at line 2"},
		{"self-referencing sequence", "a: &x [1, *x]\n", "alias cycle at line 1"},
		{"self-referencing merge", "a: &x\n  k: 1\n  <<: *x\n", "alias cycle at line 3"},
		{"alias expansion limit", laughs, "too many alias expansions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToJSON([]byte(tt.input))
			require.ErrorIs(t, err, ErrInvalidContent)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestWriteJSON_AliasCycle(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cycle.yml")
	require.NoError(t, os.WriteFile(in, []byte("a: &x\n  b: *x\n"), 0o600))

	err := WriteJSON(in, filepath.Join(dir, "cycle.json"))
	require.Error(t, err)
	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryConvert, ce.Category())
	assert.Equal(t, "error while conversion", ce.Message())
	require.ErrorIs(t, err, ErrInvalidContent)
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "adopters.yml")
	out := filepath.Join(dir, "adopters.json")
	require.NoError(t, os.WriteFile(in, []byte("- companyName: Acme\n  useCase: events\n"), 0o600))

	require.NoError(t, WriteJSON(in, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"companyName":"Acme","useCase":"events"}]`, string(data))
}

func TestWriteJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	good := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(bad, []byte("a: [\n"), 0o600))
	require.NoError(t, os.WriteFile(good, []byte("a: 1\n"), 0o600))

	tests := []struct {
		name     string
		from, to string
		category ferrors.ErrorCategory
		message  string
	}{
		{"read", filepath.Join(dir, "missing.yml"), filepath.Join(dir, "out.json"), ferrors.CategoryFileSystem, "error while reading file"},
		{"convert", bad, filepath.Join(dir, "out.json"), ferrors.CategoryConvert, "error while conversion"},
		{"write", good, filepath.Join(dir, "no-such-dir", "out.json"), ferrors.CategoryFileSystem, "error while writing file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteJSON(tt.from, tt.to)
			require.Error(t, err)
			ce, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, tt.category, ce.Category())
			assert.Equal(t, tt.message, ce.Message())
		})
	}
}

func TestBuildFinanceInfoList(t *testing.T) {
	base := t.TempDir()
	yearDir := filepath.Join(base, "config", "finance", "2024")
	require.NoError(t, os.MkdirAll(yearDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(yearDir, "Expenses.yml"),
		[]byte("January:\n  - Category: Ambassador Program\n    Amount: '142.5'\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(yearDir, "ExpensesLink.yml"),
		[]byte("- category: Ambassador Program\n  link: https://example.com/ambassadors\n"), 0o600))

	err := BuildFinanceInfoList(FinanceOptions{
		BaseDir:     base,
		ConfigDir:   "config",
		FinanceDir:  "finance",
		Year:        "2024",
		JSONDataDir: "json-data",
	})
	require.NoError(t, err)

	expenses, err := os.ReadFile(filepath.Join(base, "config", "finance", "json-data", "Expenses.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"January":[{"Category":"Ambassador Program","Amount":"142.5"}]}`, string(expenses))

	links, err := os.ReadFile(filepath.Join(base, "config", "finance", "json-data", "ExpensesLink.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"category":"Ambassador Program","link":"https://example.com/ambassadors"}]`, string(links))
}

func TestBuildFinanceInfoList_MissingYear(t *testing.T) {
	base := t.TempDir()

	err := BuildFinanceInfoList(FinanceOptions{BaseDir: base, ConfigDir: "config", FinanceDir: "finance", Year: "1999", JSONDataDir: "json-data"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))

	err = BuildFinanceInfoList(FinanceOptions{BaseDir: base})
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}
