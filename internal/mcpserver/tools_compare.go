package mcpserver

import (
	"context"
	"fmt"

	"github.com/davrax/lineagetools/differ"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type compareInput struct {
	Source            reportInput `json:"source"                       jsonschema:"The source (baseline) lineage report"`
	Target            reportInput `json:"target"                       jsonschema:"The target lineage report to compare against the source"`
	IgnoredProperties []string    `json:"ignored_properties,omitempty" jsonschema:"Property names excluded from comparison; overrides the server default"`
	TotalPolicy       string      `json:"total_policy,omitempty"       jsonschema:"Total property count policy: source (default) or max"`
	PreProcess        bool        `json:"pre_process,omitempty"        jsonschema:"Normalize both reports before comparing"`
	NoChanges         bool        `json:"no_changes,omitempty"         jsonschema:"Omit the per-path change list from the output"`
}

type compareChange struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Message string `json:"message"`
	Ignored bool   `json:"ignored,omitempty"`
}

type compareOutput struct {
	SimilarityPercentage float64         `json:"similarity_percentage"`
	MatchingProperties   int             `json:"matching_properties"`
	TotalProperties      int             `json:"total_properties"`
	AddedCount           int             `json:"added_count"`
	RemovedCount         int             `json:"removed_count"`
	ModifiedCount        int             `json:"modified_count"`
	IgnoredCount         int             `json:"ignored_count"`
	HasDifferences       bool            `json:"has_differences"`
	Changes              []compareChange `json:"changes,omitempty"`
	Summary              string          `json:"summary"`
}

func handleCompare(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	totalPolicy := cfg.totalPolicy()
	switch input.TotalPolicy {
	case "":
	case "source":
		totalPolicy = differ.TotalFromSource
	case "max":
		totalPolicy = differ.TotalMaxOfBoth
	default:
		return errResult(fmt.Errorf("invalid total_policy %q: must be source or max", input.TotalPolicy)), compareOutput{}, nil
	}

	sourceResult, err := input.Source.resolve()
	if err != nil {
		return errResult(fmt.Errorf("resolving source: %w", err)), compareOutput{}, nil
	}
	targetResult, err := input.Target.resolve()
	if err != nil {
		return errResult(fmt.Errorf("resolving target: %w", err)), compareOutput{}, nil
	}

	ignored := cfg.ignoredProperties()
	if input.IgnoredProperties != nil {
		ignored = input.IgnoredProperties
	}

	opts := []differ.Option{
		differ.WithSourceDocument(sourceResult.Document),
		differ.WithTargetDocument(targetResult.Document),
		differ.WithIgnoredProperties(ignored),
		differ.WithTotalPolicy(totalPolicy),
	}
	if input.PreProcess {
		opts = append(opts, differ.WithNormalizeInputs(true))
	}

	result, err := differ.DiffWithOptions(opts...)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	output := compareOutput{
		SimilarityPercentage: result.Similarity.SimilarityPercentage,
		MatchingProperties:   result.Similarity.MatchingProperties,
		TotalProperties:      result.Similarity.TotalProperties,
		AddedCount:           result.AddedCount,
		RemovedCount:         result.RemovedCount,
		ModifiedCount:        result.ModifiedCount,
		IgnoredCount:         result.IgnoredCount,
		HasDifferences:       result.HasDifferences,
	}

	if !input.NoChanges {
		output.Changes = makeSlice[compareChange](len(result.Changes))
		for _, c := range result.Changes {
			output.Changes = append(output.Changes, compareChange{
				Type:    string(c.Type),
				Path:    c.Path,
				Message: c.Message,
				Ignored: c.Ignored,
			})
		}
	}

	output.Summary = buildCompareSummary(output)
	return nil, output, nil
}

func buildCompareSummary(output compareOutput) string {
	if !output.HasDifferences {
		return fmt.Sprintf("Reports match (%.2f%% similar).", output.SimilarityPercentage)
	}
	return fmt.Sprintf("Reports are %.2f%% similar: %d added, %d removed, %d modified.",
		output.SimilarityPercentage, output.AddedCount, output.RemovedCount, output.ModifiedCount)
}
