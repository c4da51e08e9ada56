/*
Package differ compares two JSON-like documents structurally.

The differ walks two documents in lock-step and classifies every path as
same, added, removed, or modified, and computes an aggregate similarity
percentage from the ratio of matching to total comparable properties.
It is positional and key-based only: array elements are compared by index,
never re-aligned, and object entries are matched by key.

# Usage

The package provides two API styles:

 1. Package-level functional-options entry points for one-off operations
 2. A Differ struct for reusable instances with custom configuration

Compare two in-memory documents:

	result, err := differ.CompareWithOptions(
		differ.WithSourceDocument(docA),
		differ.WithTargetDocument(docB),
	)
	fmt.Printf("%.2f%% similar\n", result.SimilarityPercentage)

Classify a single subtree while rendering:

	d := differ.New()
	status := d.Classify(leftValue, rightValue, "document.jobs")

# Ignored properties

A caller-supplied set of property names is excluded from both classification
and similarity counting. The default set covers the identity and free-text
fields of normalized lineage reports (id, source_entity, target_entity,
dropped_columns, entity_value, operation_description); it is configuration,
not a constant, and can be overridden per call.

# Purity

Every operation is a pure, synchronous, single-shot computation: inputs are
never mutated, no state persists across calls, and the engines never fail on
well-formed JSON values. The per-call visited set used to avoid
double-counting aliased substructures is scoped to one Compare call and
never leaks. Calls are safe to run concurrently as long as each gets its own
arguments.
*/
package differ
