/*
Package parser loads lineage report documents into plain JSON values.

A lineage report may arrive as JSON or YAML, from a local file, an HTTP(S)
URL, an io.Reader, or a raw byte slice. The parser decodes whichever it is
given into the canonical in-memory shape the rest of lineagetools operates
on: map[string]any for mappings, []any for sequences, float64 for numbers,
plus string, bool, and nil.

# Usage

Parse a file:

	result, err := parser.ParseWithOptions(parser.WithFilePath("report.json"))
	if err != nil {
		log.Fatal(err)
	}
	doc := result.Document

Parse from a URL with a custom client:

	client := &http.Client{Timeout: 60 * time.Second}
	result, err := parser.ParseWithOptions(
		parser.WithFilePath("https://example.com/report.yaml"),
		parser.WithHTTPClient(client),
	)

# Number normalization

YAML decodes integers as int and JSON decodes every number as float64.
To keep structural comparison format-agnostic, the parser normalizes all
numeric values to float64 regardless of source format, so a report parsed
from YAML compares equal to the same report parsed from JSON.

# Errors

Parsing is the only part of lineagetools that can fail: unreadable files,
failed fetches, and malformed JSON/YAML text all surface here as returned
errors. Downstream packages (normalizer, differ) never fail on well-formed
JSON values.
*/
package parser
