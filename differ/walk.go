package differ

import (
	"fmt"

	"github.com/davrax/lineagetools/internal/maputil"
)

// Diff walks both documents and returns every detected difference with its
// path, alongside the aggregate similarity score. Changes are localized:
// the walk recurses into objects and equal-length arrays and reports the
// deepest differing paths, in deterministic sorted-key/index order.
//
// Differences under ignored property names are still reported, with Ignored
// set, so a reader can see them; they do not affect the counts,
// HasDifferences, or the similarity score.
func (d *Differ) Diff(source, target any) *DiffResult {
	result := &DiffResult{Changes: make([]Change, 0)}
	d.walk(source, true, target, true, "document", false, d.ignoredSet(), result)

	for _, change := range result.Changes {
		if change.Ignored {
			result.IgnoredCount++
			continue
		}
		switch change.Type {
		case StatusAdded:
			result.AddedCount++
		case StatusRemoved:
			result.RemovedCount++
		case StatusModified:
			result.ModifiedCount++
		}
	}
	result.HasDifferences = result.AddedCount+result.RemovedCount+result.ModifiedCount > 0
	result.Similarity = d.Compare(source, target)

	return result
}

// walk recurses into object pairs unconditionally - unlike classify, which
// skips ignored keys entirely - so that differences under ignored keys are
// still surfaced (flagged Ignored) even when the containing object
// classifies as same.
func (d *Differ) walk(left any, leftOK bool, right any, rightOK bool, path string, underIgnored bool, ignored map[string]bool, result *DiffResult) {
	leftMap, leftIsMap := left.(map[string]any)
	rightMap, rightIsMap := right.(map[string]any)
	if leftOK && rightOK && leftIsMap && rightIsMap {
		for _, key := range maputil.KeyUnion(leftMap, rightMap) {
			lv, lok := leftMap[key]
			rv, rok := rightMap[key]
			d.walk(lv, lok, rv, rok, childPath(path, key), underIgnored || ignored[key], ignored, result)
		}
		return
	}

	status := d.classify(left, leftOK, right, rightOK, path, ignored)
	if status == StatusSame {
		return
	}

	// Additions and removals are atomic: report the whole subtree once.
	if status == StatusAdded || status == StatusRemoved {
		result.Changes = append(result.Changes, Change{
			Path:     path,
			Type:     status,
			OldValue: left,
			NewValue: right,
			Ignored:  underIgnored,
			Message:  describeChange(status, left, right),
		})
		return
	}

	leftArr, leftIsArr := left.([]any)
	rightArr, rightIsArr := right.([]any)
	if leftIsArr && rightIsArr && len(leftArr) == len(rightArr) {
		for i := range leftArr {
			d.walk(leftArr[i], true, rightArr[i], true, indexPath(path, i), underIgnored, ignored, result)
		}
		return
	}

	// Scalar modification, mismatched types, or arrays of differing length.
	result.Changes = append(result.Changes, Change{
		Path:     path,
		Type:     StatusModified,
		OldValue: left,
		NewValue: right,
		Ignored:  underIgnored,
		Message:  describeChange(StatusModified, left, right),
	})
}

func describeChange(status Status, left, right any) string {
	switch status {
	case StatusAdded:
		return fmt.Sprintf("added %s", summarizeValue(right))
	case StatusRemoved:
		return fmt.Sprintf("removed %s", summarizeValue(left))
	default:
		return fmt.Sprintf("changed from %s to %s", summarizeValue(left), summarizeValue(right))
	}
}

// summarizeValue renders a value compactly for change messages; containers
// are summarized by size rather than dumped.
func summarizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", val)
	case map[string]any:
		return fmt.Sprintf("object{%d}", len(val))
	case []any:
		return fmt.Sprintf("array[%d]", len(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}
