package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `{
	"graph": {
		"nodes": [
			{"id": "n1", "name": "orders", "entity_type": "table"},
			{"id": "n2", "name": "orders_clean", "entity_type": "dataframe"}
		],
		"edges": [
			{
				"operation": "select",
				"source_entity": "n1",
				"target_entity": "n2",
				"source_column": "amount",
				"target_column": "amount"
			}
		]
	}
}`

func TestNormalizeTool_FullDocument(t *testing.T) {
	input := normalizeInput{
		Report: reportInput{Content: sampleReport},
	}
	result, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result, "no tool-level error expected")

	require.NotNil(t, output.Document)
	entireReport, ok := output.Document["entire_report"].(map[string]any)
	require.True(t, ok)

	dataframe, ok := entireReport["dataframe"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, dataframe, "orders")
	assert.Contains(t, dataframe, "orders_clean")

	operations, ok := entireReport["operation"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, operations, "orders-orders_clean")

	require.Len(t, output.Sections, 1)
	assert.Equal(t, "entire_report", output.Sections[0].Section)
	assert.Equal(t, 2, output.Sections[0].Entities)
	assert.Equal(t, 1, output.Sections[0].Operations)
	assert.NotEmpty(t, output.Summary)
}

func TestNormalizeTool_SummaryOnly(t *testing.T) {
	input := normalizeInput{
		Report:      reportInput{Content: sampleReport},
		SummaryOnly: true,
	}
	result, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Nil(t, output.Document, "summary_only omits the full document")
	require.Len(t, output.Sections, 1)
	assert.Equal(t, 2, output.Sections[0].Entities)
}

func TestNormalizeTool_InvalidShape(t *testing.T) {
	input := normalizeInput{
		Report: reportInput{Content: sampleReport},
		Shape:  "id-keyed",
	}
	result, _, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestNormalizeTool_WithNameShape(t *testing.T) {
	input := normalizeInput{
		Report: reportInput{Content: sampleReport},
		Shape:  "name-keyed-with-name",
	}
	result, output, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	entireReport := output.Document["entire_report"].(map[string]any)
	dataframe := entireReport["dataframe"].(map[string]any)
	entry, ok := dataframe["orders"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "orders", entry["name"], "with-name shape keeps the name field")
}

func TestNormalizeTool_BadInput(t *testing.T) {
	result, _, err := handleNormalize(context.Background(), &mcp.CallToolRequest{}, normalizeInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
