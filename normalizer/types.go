package normalizer

// DataframeShape selects the layout of MergedResult.Dataframe entries.
//
// The report format has carried more than one dataframe layout over time;
// the shape is therefore an explicit configuration choice rather than a
// hardcoded behavior.
type DataframeShape int

const (
	// ShapeNameKeyed is the canonical shape: dataframe entries are keyed by
	// node name and the name field itself is dropped from the entry.
	ShapeNameKeyed DataframeShape = iota
	// ShapeNameKeyedWithName keys entries by node name but keeps the name
	// field embedded in each entry (the legacy layout).
	ShapeNameKeyedWithName
)

// UnknownEntity is the entity name used when an edge references a node id
// that does not resolve in the graph's node table.
const UnknownEntity = "unknown"

// MergedOperation is the coalesced form of one or more edges sharing an
// identity key. Scalar fields are taken from the first edge seen for the
// key; the column lists accumulate across all edges sharing it, in
// edge-encounter order, with duplicates permitted.
type MergedOperation struct {
	// CodeInfo identifies the provenance of the operation. Edges without
	// code_info get a record with all fields null so every operation has a
	// deterministic comparison key.
	CodeInfo map[string]any `json:"code_info"`
	// Operation is the operation label (e.g. "join", "select").
	Operation any `json:"operation"`
	// SourceEntity and TargetEntity are the raw node ids of the edge.
	SourceEntity any `json:"source_entity"`
	TargetEntity any `json:"target_entity"`
	// OperationDescription is free text carried from the first edge.
	OperationDescription any `json:"operation_description"`
	// SourceColumns and TargetColumns accumulate the single-column fields of
	// every edge merged into this operation.
	SourceColumns []any `json:"source_columns"`
	TargetColumns []any `json:"target_columns"`
}

// asMap converts the operation to its canonical JSON value form.
func (op *MergedOperation) asMap() map[string]any {
	return map[string]any{
		"code_info":             op.CodeInfo,
		"operation":             op.Operation,
		"source_entity":         op.SourceEntity,
		"target_entity":         op.TargetEntity,
		"operation_description": op.OperationDescription,
		"source_columns":        op.SourceColumns,
		"target_columns":        op.TargetColumns,
	}
}

// MergedResult is the canonical normalized form of one graph.
type MergedResult struct {
	// Dataframe maps disambiguated node names to the node's remaining
	// fields, with columns folded into a name-to-type mapping.
	Dataframe map[string]any `json:"dataframe"`
	// Operation maps disambiguated "sourceName-targetName" keys to merged
	// operations.
	Operation map[string]*MergedOperation `json:"operation"`
}

// NewMergedResult returns an empty result with both mappings allocated.
// An absent or empty graph normalizes to exactly this value.
func NewMergedResult() *MergedResult {
	return &MergedResult{
		Dataframe: make(map[string]any),
		Operation: make(map[string]*MergedOperation),
	}
}

// Document converts the result to its canonical JSON value form, the shape
// consumed by the differ and emitted by the CLI. Key naming (collision
// suffixes, entity-pair keys) is a compatibility surface.
func (r *MergedResult) Document() map[string]any {
	ops := make(map[string]any, len(r.Operation))
	for key, op := range r.Operation {
		ops[key] = op.asMap()
	}
	return map[string]any{
		"dataframe": r.Dataframe,
		"operation": ops,
	}
}
