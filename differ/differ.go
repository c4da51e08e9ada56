package differ

import "fmt"

// Status classifies the relationship between the values at one path of the
// two documents.
type Status string

const (
	// StatusSame indicates the values are structurally equal
	StatusSame Status = "same"
	// StatusAdded indicates the value exists only in the target document
	StatusAdded Status = "added"
	// StatusRemoved indicates the value exists only in the source document
	StatusRemoved Status = "removed"
	// StatusModified indicates the values differ
	StatusModified Status = "modified"
)

// TotalPolicy selects how the total property count of a comparison is taken.
//
// The report format has carried both policies over time; the choice is
// therefore explicit configuration rather than a hardcoded behavior.
type TotalPolicy int

const (
	// TotalFromSource counts total properties from the source document only
	// (the current policy).
	TotalFromSource TotalPolicy = iota
	// TotalMaxOfBoth takes the larger of the two documents' property counts
	// (the legacy policy).
	TotalMaxOfBoth
)

// DefaultIgnoredProperties returns the default set of property names
// excluded from classification and similarity counting. The returned slice
// is a fresh copy; callers may modify it freely.
func DefaultIgnoredProperties() []string {
	return []string{
		"id",
		"source_entity",
		"target_entity",
		"dropped_columns",
		"entity_value",
		"operation_description",
	}
}

// Change represents a single difference between two documents
type Change struct {
	// Path is the dotted path to the changed element (e.g., "document.jobs[2].name")
	Path string
	// Type indicates if this is an addition, removal, or modification
	Type Status
	// OldValue is the value in the source document (nil for additions)
	OldValue any
	// NewValue is the value in the target document (nil for removals)
	NewValue any
	// Ignored is true when the change sits under an ignored property name;
	// such changes are reported for display but never affect classification
	// of the containing object or the similarity counts.
	Ignored bool
	// Message is a human-readable description of the change
	Message string
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	var symbol string
	switch c.Type {
	case StatusAdded:
		symbol = "+"
	case StatusRemoved:
		symbol = "-"
	case StatusModified:
		symbol = "~"
	default:
		symbol = "="
	}

	if c.Ignored {
		return fmt.Sprintf("%s %s [%s, ignored] %s", symbol, c.Path, c.Type, c.Message)
	}
	return fmt.Sprintf("%s %s [%s] %s", symbol, c.Path, c.Type, c.Message)
}

// CompareResult contains the aggregate similarity score of a comparison
type CompareResult struct {
	// SimilarityPercentage is matching/total expressed 0-100, rounded
	// half-up to 2 decimal places. An empty comparison (total 0) scores 100.
	SimilarityPercentage float64
	// MatchingProperties is the number of leaf properties equal in both documents
	MatchingProperties int
	// TotalProperties is the number of comparable leaf properties, per the
	// configured TotalPolicy
	TotalProperties int
}

// DiffResult contains the full per-path classification of a comparison
type DiffResult struct {
	// Changes contains every detected difference, in deterministic
	// (sorted-key, index) order
	Changes []Change
	// AddedCount, RemovedCount, and ModifiedCount count the non-ignored changes
	AddedCount    int
	RemovedCount  int
	ModifiedCount int
	// IgnoredCount counts changes under ignored property names
	IgnoredCount int
	// HasDifferences is true if any non-ignored change was detected
	HasDifferences bool
	// Similarity is the aggregate score for the same pair of documents
	Similarity *CompareResult
}

// Differ compares JSON-like documents. The zero value ignores nothing and
// uses TotalFromSource; New returns one with the default ignore set.
type Differ struct {
	// IgnoredProperties is the set of property names excluded from
	// classification and similarity counting.
	IgnoredProperties []string
	// TotalPolicy selects how the total property count is taken
	TotalPolicy TotalPolicy
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		IgnoredProperties: DefaultIgnoredProperties(),
		TotalPolicy:       TotalFromSource,
	}
}

// ignoredSet folds the ignore list into a lookup set.
func (d *Differ) ignoredSet() map[string]bool {
	set := make(map[string]bool, len(d.IgnoredProperties))
	for _, name := range d.IgnoredProperties {
		set[name] = true
	}
	return set
}
