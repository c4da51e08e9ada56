package differ

import (
	"fmt"
	"reflect"

	"github.com/davrax/lineagetools/internal/maputil"
)

// Classify compares the values at one path of the two documents and returns
// their diff status. It is a pure, re-invocable primitive: it can be called
// independently for any subtree (not only from the root) and is
// deterministic given the same two subtrees and path, which lets a
// presentation layer classify nodes lazily while rendering.
//
// Both values are treated as present; null is a normal value that compares
// by equality. Use ClassifyEntry when presence itself is in question.
func (d *Differ) Classify(left, right any, path string) Status {
	return d.classify(left, true, right, true, path, d.ignoredSet())
}

// ClassifyEntry classifies a single object key or array index where either
// side may be absent. "Absent" means the key/index does not exist in that
// side's container - leftOK/rightOK carry the comma-ok result of the lookup.
// A value absent on the left is added; absent on the right is removed.
func (d *Differ) ClassifyEntry(left any, leftOK bool, right any, rightOK bool, path string) Status {
	return d.classify(left, leftOK, right, rightOK, path, d.ignoredSet())
}

// classify applies the classification rules in order: absence, object
// recursion over the key union (skipping ignored keys), array
// length-then-pairwise recursion, then deep equality.
func (d *Differ) classify(left any, leftOK bool, right any, rightOK bool, path string, ignored map[string]bool) Status {
	switch {
	case !leftOK && !rightOK:
		return StatusSame
	case !leftOK:
		return StatusAdded
	case !rightOK:
		return StatusRemoved
	}

	leftMap, leftIsMap := left.(map[string]any)
	rightMap, rightIsMap := right.(map[string]any)
	if leftIsMap && rightIsMap {
		for _, key := range maputil.KeyUnion(leftMap, rightMap) {
			if ignored[key] {
				continue
			}
			lv, lok := leftMap[key]
			rv, rok := rightMap[key]
			if d.classify(lv, lok, rv, rok, childPath(path, key), ignored) != StatusSame {
				return StatusModified
			}
		}
		return StatusSame
	}

	leftArr, leftIsArr := left.([]any)
	rightArr, rightIsArr := right.([]any)
	if leftIsArr && rightIsArr {
		// No alignment or reordering: differing lengths are modified outright.
		if len(leftArr) != len(rightArr) {
			return StatusModified
		}
		for i := range leftArr {
			if d.classify(leftArr[i], true, rightArr[i], true, indexPath(path, i), ignored) != StatusSame {
				return StatusModified
			}
		}
		return StatusSame
	}

	// Scalars, nulls, or mismatched container/scalar types.
	if equalValues(left, right) {
		return StatusSame
	}
	return StatusModified
}

// equalValues is the deep-equality fallback for scalar and mismatched-type
// comparison.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// childPath extends a dotted path with an object key.
func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// indexPath extends a dotted path with an array index.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
