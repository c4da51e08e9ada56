/*
Package normalizer flattens lineage report graphs into a canonical merged form.

A raw lineage report nests graphs of nodes and edges inside jobs, processes,
and stages. The normalizer converts each graph into a MergedResult: nodes
become a name-keyed dataframe mapping with column-type maps, and edges that
share the same identity key (operation, source entity, target entity, source
file path, and line number) are coalesced into a single merged operation with
accumulated column lists.

# Usage

Merge a single graph:

	result := normalizer.MergeGraph(graph)
	fmt.Println(result.Dataframe, result.Operation)

Normalize a whole report:

	normalized := normalizer.Normalize(document)

Normalize walks the report recursively: the top-level graph (falling back to
report.report_result.graph) is merged once as "entire_report", and every
top-level key whose name contains ".xml" (case-insensitive) is treated as a
job collection whose processes and stages are each merged independently.
The ".xml" substring test is a narrow convention of the source report format,
not a generic rule; only string-typed keys are checked.

# Guarantees

Normalization is a pure transform: it never mutates its input and returns a
freshly built tree. It is total over JSON-like values - a missing graph, an
empty node list, or an edge referencing an unknown node id all degrade to
empty mappings or the entity name "unknown" rather than producing an error.
Output key naming (collision suffixes "_1", "_2", ..., operation keys
"sourceName-targetName") is a compatibility surface consumed by other
tooling and is deterministic for a given input ordering.
*/
package normalizer
