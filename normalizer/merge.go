package normalizer

import "fmt"

// emptyCodeInfo returns the default code_info record used for edges that
// carry none, so all edges have a deterministic merge key.
func emptyCodeInfo() map[string]any {
	return map[string]any{
		"code":       nil,
		"lineno":     nil,
		"file_path":  nil,
		"end_lineno": nil,
	}
}

// edgeKey is the exact identity tuple edges are grouped by. filePath and
// lineno hold scalar JSON values (string, float64, bool, or nil); container
// values are stringified so the struct stays comparable.
type edgeKey struct {
	operation    any
	sourceEntity any
	targetEntity any
	filePath     any
	lineno       any
}

// keyPart makes a JSON value usable as a comparable struct field.
func keyPart(v any) any {
	switch v.(type) {
	case nil, string, float64, bool:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// keyAllocator hands out unique keys within one mapping scope, resolving
// collisions by appending "_1", "_2", ... in first-seen order.
type keyAllocator struct {
	taken map[string]bool
}

func newKeyAllocator() *keyAllocator {
	return &keyAllocator{taken: make(map[string]bool)}
}

func (a *keyAllocator) assign(base string) string {
	if !a.taken[base] {
		a.taken[base] = true
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !a.taken[candidate] {
			a.taken[candidate] = true
			return candidate
		}
	}
}

// MergeGraph converts one raw graph into its canonical merged form.
//
// The graph is expected to be a mapping with "nodes" and "edges" sequences,
// but every deviation degrades gracefully: a nil or non-mapping graph yields
// an empty result, a node whose columns are neither a sequence nor a mapping
// gets an empty column map, and an edge endpoint id that does not resolve is
// keyed as "unknown". The input is never mutated.
//
// Runs in O(|nodes| + |edges|) and is deterministic for a given input
// ordering.
func MergeGraph(graph any, opts ...Option) *MergedResult {
	cfg := applyOptions(opts...)
	result := NewMergedResult()

	g, ok := graph.(map[string]any)
	if !ok {
		return result
	}

	idToName := make(map[string]string)
	dataframeKeys := newKeyAllocator()

	nodes, _ := g["nodes"].([]any)
	for _, raw := range nodes {
		node, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		name := stringField(node, "name")
		if id, ok := node["id"]; ok {
			idToName[fmt.Sprintf("%v", id)] = name
		}

		entry := make(map[string]any, len(node))
		for k, v := range node {
			if k == "name" && cfg.shape != ShapeNameKeyedWithName {
				continue
			}
			if k == "columns" {
				entry[k] = columnsToMap(v)
				continue
			}
			entry[k] = copyValue(v)
		}
		// Nodes without a columns field still get an (empty) column map in
		// the canonical shape.
		if _, ok := entry["columns"]; !ok {
			entry["columns"] = map[string]any{}
		}

		result.Dataframe[dataframeKeys.assign(name)] = entry
	}

	// Group edges by the identity tuple, accumulating columns on repeats.
	grouped := make(map[edgeKey]*MergedOperation)
	var order []edgeKey

	edges, _ := g["edges"].([]any)
	for _, raw := range edges {
		edge, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		codeInfo, ok := edge["code_info"].(map[string]any)
		if !ok {
			codeInfo = emptyCodeInfo()
		}

		key := edgeKey{
			operation:    keyPart(edge["operation"]),
			sourceEntity: keyPart(edge["source_entity"]),
			targetEntity: keyPart(edge["target_entity"]),
			filePath:     keyPart(codeInfo["file_path"]),
			lineno:       keyPart(codeInfo["lineno"]),
		}

		op, seen := grouped[key]
		if !seen {
			op = &MergedOperation{
				CodeInfo:             copyValue(codeInfo).(map[string]any),
				Operation:            copyValue(edge["operation"]),
				SourceEntity:         copyValue(edge["source_entity"]),
				TargetEntity:         copyValue(edge["target_entity"]),
				OperationDescription: copyValue(edge["operation_description"]),
				SourceColumns:        make([]any, 0, 1),
				TargetColumns:        make([]any, 0, 1),
			}
			grouped[key] = op
			order = append(order, key)
		}

		if col, ok := edge["source_column"]; ok {
			op.SourceColumns = append(op.SourceColumns, copyValue(col))
		}
		if col, ok := edge["target_column"]; ok {
			op.TargetColumns = append(op.TargetColumns, copyValue(col))
		}
	}

	// Re-key the grouped operations by resolved entity names.
	operationKeys := newKeyAllocator()
	for _, key := range order {
		op := grouped[key]
		source := resolveEntityName(idToName, op.SourceEntity)
		target := resolveEntityName(idToName, op.TargetEntity)
		result.Operation[operationKeys.assign(source+"-"+target)] = op
	}

	return result
}

// resolveEntityName maps a raw node id to its name, or "unknown" when the id
// is absent from the table.
func resolveEntityName(idToName map[string]string, id any) string {
	if id == nil {
		return UnknownEntity
	}
	if name, ok := idToName[fmt.Sprintf("%v", id)]; ok {
		return name
	}
	return UnknownEntity
}

// columnsToMap folds a raw columns value into the canonical name-to-type
// mapping. Sequences of {name, type} records are folded in order; an
// already-folded mapping is deep-copied through; anything else degrades to
// an empty map.
func columnsToMap(columns any) map[string]any {
	switch cols := columns.(type) {
	case map[string]any:
		return copyValue(cols).(map[string]any)
	case []any:
		out := make(map[string]any, len(cols))
		for _, raw := range cols {
			col, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			out[stringField(col, "name")] = copyValue(col["type"])
		}
		return out
	default:
		return map[string]any{}
	}
}

// stringField reads a string-valued field, stringifying non-string scalars.
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// copyValue deep-copies a JSON value so normalized output never aliases the
// input document.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = copyValue(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = copyValue(child)
		}
		return out
	default:
		return v
	}
}
