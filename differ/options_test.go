package differ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempReport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompareWithOptionsRequiresSource(t *testing.T) {
	_, err := CompareWithOptions(
		WithTargetDocument(map[string]any{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify a source")
}

func TestCompareWithOptionsRequiresTarget(t *testing.T) {
	_, err := CompareWithOptions(
		WithSourceDocument(map[string]any{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify a target")
}

func TestCompareWithOptionsRejectsMultipleSources(t *testing.T) {
	_, err := CompareWithOptions(
		WithSourceFilePath("report.json"),
		WithSourceDocument(map[string]any{}),
		WithTargetDocument(map[string]any{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one source")
}

func TestCompareWithOptionsDocuments(t *testing.T) {
	result, err := CompareWithOptions(
		WithSourceDocument(map[string]any{"a": "1", "b": "2"}),
		WithTargetDocument(map[string]any{"a": "1", "b": "x"}),
	)
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.SimilarityPercentage)
}

func TestCompareWithOptionsFilePaths(t *testing.T) {
	source := writeTempReport(t, "source.json", `{"name": "orders", "rows": 10}`)
	target := writeTempReport(t, "target.json", `{"name": "orders", "rows": 20}`)

	result, err := CompareWithOptions(
		WithSourceFilePath(source),
		WithTargetFilePath(target),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProperties)
	assert.Equal(t, 1, result.MatchingProperties)
	assert.Equal(t, 50.0, result.SimilarityPercentage)
}

func TestCompareWithOptionsMissingFile(t *testing.T) {
	_, err := CompareWithOptions(
		WithSourceFilePath(filepath.Join(t.TempDir(), "absent.json")),
		WithTargetDocument(map[string]any{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load source")
}

func TestCompareWithOptionsIgnoredProperties(t *testing.T) {
	result, err := CompareWithOptions(
		WithSourceDocument(map[string]any{"name": "orders", "id": "1"}),
		WithTargetDocument(map[string]any{"name": "orders", "id": "2"}),
		WithIgnoredProperties([]string{"id"}),
	)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.SimilarityPercentage)
}

func TestCompareWithOptionsEmptyIgnoreListOverridesDefaults(t *testing.T) {
	// The default ignore set skips "id"; an explicit empty list restores it.
	result, err := CompareWithOptions(
		WithSourceDocument(map[string]any{"id": "1"}),
		WithTargetDocument(map[string]any{"id": "2"}),
		WithIgnoredProperties([]string{}),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalProperties)
	assert.Equal(t, 0.0, result.SimilarityPercentage)
}

func TestWithTotalPolicyValidation(t *testing.T) {
	_, err := CompareWithOptions(
		WithSourceDocument(map[string]any{}),
		WithTargetDocument(map[string]any{}),
		WithTotalPolicy(TotalPolicy(99)),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown total policy")
}

func TestCompareWithOptionsTotalPolicy(t *testing.T) {
	source := map[string]any{"a": "1"}
	target := map[string]any{"a": "1", "b": "2"}

	result, err := CompareWithOptions(
		WithSourceDocument(source),
		WithTargetDocument(target),
		WithTotalPolicy(TotalMaxOfBoth),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProperties)
	assert.Equal(t, 50.0, result.SimilarityPercentage)
}

func TestCompareWithOptionsNormalizeInputs(t *testing.T) {
	// Two raw reports with the same graph differ only in node ids; after
	// normalization both collapse to the same name-keyed structure.
	source := writeTempReport(t, "source.json",
		`{"graph": {"nodes": [{"id": "n1", "name": "orders", "entity_type": "table"}], "edges": []}}`)
	target := writeTempReport(t, "target.json",
		`{"graph": {"nodes": [{"id": "other-id", "name": "orders", "entity_type": "table"}], "edges": []}}`)

	result, err := CompareWithOptions(
		WithSourceFilePath(source),
		WithTargetFilePath(target),
		WithNormalizeInputs(true),
	)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.SimilarityPercentage,
		"normalized reports are keyed by name, not by id")
}

func TestCompareWithOptionsNormalizeOneSide(t *testing.T) {
	raw := map[string]any{
		"graph": map[string]any{
			"nodes": []any{
				map[string]any{"id": "n1", "name": "orders", "entity_type": "table"},
			},
			"edges": []any{},
		},
	}
	normalized := map[string]any{
		"entire_report": map[string]any{
			"dataframe": map[string]any{
				"orders": map[string]any{
					"id":          "different-id",
					"entity_type": "table",
					"columns":     map[string]any{},
				},
			},
			"operation": map[string]any{},
		},
	}

	result, err := CompareWithOptions(
		WithSourceDocument(raw),
		WithTargetDocument(normalized),
		WithNormalizeSource(true),
	)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.SimilarityPercentage)
}

func TestDiffWithOptions(t *testing.T) {
	result, err := DiffWithOptions(
		WithSourceDocument(map[string]any{"name": "orders", "rows": float64(10)}),
		WithTargetDocument(map[string]any{"name": "orders", "rows": float64(20)}),
	)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "document.rows", result.Changes[0].Path)
	assert.True(t, result.HasDifferences)
	require.NotNil(t, result.Similarity)
	assert.Equal(t, 50.0, result.Similarity.SimilarityPercentage)
}

func TestDiffWithOptionsValidation(t *testing.T) {
	_, err := DiffWithOptions(
		WithSourceDocument(map[string]any{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify a target")
}
