// Package lineagetools provides tools for normalizing and comparing data-lineage
// report documents.
//
// A lineage report is a JSON (or YAML) document describing jobs, processes, and
// stages, each of which may carry a graph of nodes (tables, dataframes) and edges
// (operations between them). lineagetools flattens those graphs into a canonical
// merged form and computes structural diffs and similarity scores between two
// reports.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - parser: Load a lineage report from a file, URL, or raw bytes into a
//     plain JSON value
//   - normalizer: Flatten report graphs into name-keyed dataframe and
//     operation mappings
//   - differ: Classify every path of two documents as same, added, removed,
//     or modified, and compute an aggregate similarity percentage
//
// # Quick Start
//
// Parse and normalize a report:
//
//	import (
//		"github.com/davrax/lineagetools/normalizer"
//		"github.com/davrax/lineagetools/parser"
//	)
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("report.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	normalized := normalizer.Normalize(result.Document)
//
// Compare two documents:
//
//	import "github.com/davrax/lineagetools/differ"
//
//	cmp, err := differ.CompareWithOptions(
//		differ.WithSourceDocument(normalizedA),
//		differ.WithTargetDocument(normalizedB),
//	)
//	fmt.Printf("similarity: %.2f%%\n", cmp.SimilarityPercentage)
//
// # Design
//
// The core algorithms are pure, synchronous functions over in-memory JSON values.
// They never mutate their inputs, never perform I/O, and are safe to invoke
// concurrently as long as each call gets its own arguments. All I/O (files, URLs)
// lives in the parser package; all rendering lives in the CLI.
//
// Malformed lineage data degrades gracefully rather than failing: a node whose
// columns are neither a list nor a mapping gets an empty column map, and an edge
// referencing an unknown node id resolves to the entity name "unknown".
//
// # Command-Line Interface
//
// In addition to the library packages, lineagetools provides a command-line
// interface:
//
//	# Normalize a report
//	lineagetools normalize report.json
//
//	# Compare two reports, normalizing both first
//	lineagetools compare --pre-process old.json new.json
//
//	# Compare with a custom ignore list
//	lineagetools compare --ignore id,entity_value old.json new.json
//
// Install the CLI:
//
//	go install github.com/davrax/lineagetools/cmd/lineagetools@latest
//
// # License
//
// This library is released under the MIT License. See the LICENSE file in the
// repository for full details.
package lineagetools
