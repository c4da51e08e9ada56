package mcpserver

import (
	"context"
	"fmt"

	"github.com/davrax/lineagetools/internal/maputil"
	"github.com/davrax/lineagetools/normalizer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type normalizeInput struct {
	Report      reportInput `json:"report"                  jsonschema:"The lineage report to normalize"`
	Shape       string      `json:"shape,omitempty"         jsonschema:"Dataframe shape: name-keyed (default) or name-keyed-with-name"`
	SummaryOnly bool        `json:"summary_only,omitempty"  jsonschema:"Return only per-section counts instead of the full normalized document"`
}

type sectionSummary struct {
	Section    string `json:"section"`
	Entities   int    `json:"entities"`
	Operations int    `json:"operations"`
}

type normalizeOutput struct {
	Document map[string]any   `json:"document,omitempty"`
	Sections []sectionSummary `json:"sections"`
	Summary  string           `json:"summary"`
}

func handleNormalize(_ context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, normalizeOutput, error) {
	var opts []normalizer.Option
	switch input.Shape {
	case "", "name-keyed":
	case "name-keyed-with-name":
		opts = append(opts, normalizer.WithDataframeShape(normalizer.ShapeNameKeyedWithName))
	default:
		return errResult(fmt.Errorf("invalid shape %q: must be name-keyed or name-keyed-with-name", input.Shape)), normalizeOutput{}, nil
	}

	result, err := input.Report.resolve()
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	normalized := normalizer.Normalize(result.Document, opts...)

	output := normalizeOutput{
		Sections: summarizeSections(normalized),
	}
	if !input.SummaryOnly {
		output.Document = normalized
	}
	output.Summary = fmt.Sprintf("Normalized %d top-level sections.", len(normalized))

	return nil, output, nil
}

// summarizeSections walks the normalized document and counts merged entities
// and operations per graph-bearing section.
func summarizeSections(normalized map[string]any) []sectionSummary {
	sections := makeSlice[sectionSummary](len(normalized))
	for _, key := range maputil.SortedKeys(normalized) {
		section, ok := normalized[key].(map[string]any)
		if !ok {
			continue
		}
		summary := sectionSummary{Section: key}
		if dataframe, ok := section["dataframe"].(map[string]any); ok {
			summary.Entities = len(dataframe)
		}
		if operations, ok := section["operation"].(map[string]any); ok {
			summary.Operations = len(operations)
		}
		sections = append(sections, summary)
	}
	return sections
}
