package parser

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New()
	require.NotNil(t, p)
	assert.True(t, strings.HasPrefix(p.UserAgent, "lineagetools/"))
	assert.Nil(t, p.Logger)
}

func TestParseBytesJSON(t *testing.T) {
	data := []byte(`{"name": "report", "count": 3, "nested": {"ok": true}, "items": [1, 2]}`)

	result, err := New().ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)
	assert.Equal(t, int64(len(data)), result.SourceSize)

	doc, ok := result.Document.(map[string]any)
	require.True(t, ok, "Document should decode to map[string]any")
	assert.Equal(t, "report", doc["name"])
	assert.Equal(t, float64(3), doc["count"])
	assert.Equal(t, []any{float64(1), float64(2)}, doc["items"])
}

func TestParseBytesYAML(t *testing.T) {
	data := []byte("name: report\ncount: 3\nnested:\n  ok: true\n")

	result, err := New().ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "ParseBytes.yaml", result.SourcePath)

	doc, ok := result.Document.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "report", doc["name"])
	// YAML integers must normalize to float64 so documents compare
	// identically across formats.
	assert.Equal(t, float64(3), doc["count"])
}

func TestParseBytesEquivalentAcrossFormats(t *testing.T) {
	jsonResult, err := New().ParseBytes([]byte(`{"a": 1, "b": [true, null], "c": {"d": 2.5}}`))
	require.NoError(t, err)

	yamlResult, err := New().ParseBytes([]byte("a: 1\nb:\n  - true\n  - null\nc:\n  d: 2.5\n"))
	require.NoError(t, err)

	assert.Equal(t, jsonResult.Document, yamlResult.Document,
		"the same document parsed from JSON and YAML should be identical")
}

func TestParseBytesInvalidJSON(t *testing.T) {
	_, err := New().ParseBytes([]byte(`{"unterminated": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parser:")
}

func TestParseBytesInvalidYAML(t *testing.T) {
	_, err := New().ParseBytes([]byte("a: b\n  bad indent: [unclosed\n"))
	require.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"report": {"graph": null}}`), 0o600))

	result, err := New().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Positive(t, result.SourceSize)
}

func TestParseFileNotFound(t *testing.T) {
	_, err := New().Parse("nonexistent-report.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParseFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": "0123456789"}`), 0o600))

	p := New()
	p.MaxFileSize = 4
	_, err := p.Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestParseReader(t *testing.T) {
	result, err := New().ParseReader(strings.NewReader(`{"x": 1}`))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.json", result.SourcePath)
	assert.Equal(t, map[string]any{"x": float64(1)}, result.Document)
}

func TestParseURL(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"remote": true}`))
	}))
	defer srv.Close()

	result, err := New().Parse(srv.URL + "/report")
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, map[string]any{"remote": true}, result.Document)
	assert.True(t, strings.HasPrefix(gotUserAgent, "lineagetools/"))
}

func TestParseURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Parse(srv.URL + "/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestParseWithOptionsFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: {}\n"), 0o600))

	result, err := ParseWithOptions(WithFilePath(path))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
}

func TestParseWithOptionsSourceName(t *testing.T) {
	result, err := ParseWithOptions(
		WithBytes([]byte(`{"a": 1}`)),
		WithSourceName("nightly-run"),
	)
	require.NoError(t, err)
	assert.Equal(t, "nightly-run", result.SourcePath)
}

func TestParseWithOptionsNoSource(t *testing.T) {
	_, err := ParseWithOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify an input source")
}

func TestParseWithOptionsMultipleSources(t *testing.T) {
	_, err := ParseWithOptions(
		WithBytes([]byte(`{}`)),
		WithFilePath("report.json"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one input source")
}

func TestParseWithOptionsNilBytes(t *testing.T) {
	_, err := ParseWithOptions(WithBytes(nil))
	require.Error(t, err)
}

func TestParseWithOptionsNegativeMaxFileSize(t *testing.T) {
	_, err := ParseWithOptions(
		WithBytes([]byte(`{}`)),
		WithMaxFileSize(-1),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")
}

func TestParseWithOptionsEmptySourceName(t *testing.T) {
	_, err := ParseWithOptions(
		WithBytes([]byte(`{}`)),
		WithSourceName(""),
	)
	require.Error(t, err)
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{"int", 5, float64(5)},
		{"int64", int64(7), float64(7)},
		{"uint64", uint64(9), float64(9)},
		{"float32", float32(1.5), float64(1.5)},
		{"float64 passthrough", 2.5, 2.5},
		{"string passthrough", "s", "s"},
		{"nil passthrough", nil, nil},
		{"bool passthrough", true, true},
		{
			name:     "nested map",
			input:    map[string]any{"a": 1, "b": []any{2}},
			expected: map[string]any{"a": float64(1), "b": []any{float64(2)}},
		},
		{
			name:     "any-keyed map",
			input:    map[any]any{1: "one", "two": 2},
			expected: map[string]any{"1": "one", "two": float64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeValue(tt.input))
		})
	}
}
