package differ

import (
	"math"
	"reflect"
)

// Compare computes the aggregate similarity of two documents: the number of
// matching leaf properties over the total number of comparable ones,
// expressed as a 0-100 percentage rounded half-up to 2 decimals.
//
// Matching and total are two independent recursive counts. Each count
// carries its own per-call visited set so that structurally-shared (aliased)
// substructures reachable more than once from the same root are counted a
// single time. The sets are scoped to this call and keyed by container
// identity, never by value, so distinct-but-equal substructures still count
// separately.
//
// Compare never fails on well-formed JSON values and never mutates its
// inputs.
func (d *Differ) Compare(source, target any) *CompareResult {
	ignored := d.ignoredSet()

	matching := countMatches(source, target, ignored, newVisited())
	total := countProperties(source, ignored, newVisited())
	if d.TotalPolicy == TotalMaxOfBoth {
		if targetTotal := countProperties(target, ignored, newVisited()); targetTotal > total {
			total = targetTotal
		}
	}

	percentage := 100.0
	if total > 0 {
		percentage = round2(float64(matching) / float64(total) * 100)
	}

	return &CompareResult{
		SimilarityPercentage: percentage,
		MatchingProperties:   matching,
		TotalProperties:      total,
	}
}

// countProperties counts the comparable leaf properties of a value. A
// scalar or null counts as 1; a container contributes the sum of its
// non-ignored children (objects) or all elements (arrays). A container
// already seen in this traversal contributes 0.
func countProperties(v any, ignored map[string]bool, seen visited) int {
	switch val := v.(type) {
	case map[string]any:
		if !seen.enter(val) {
			return 0
		}
		n := 0
		for key, child := range val {
			if ignored[key] {
				continue
			}
			n += countProperties(child, ignored, seen)
		}
		return n
	case []any:
		if !seen.enter(val) {
			return 0
		}
		n := 0
		for _, child := range val {
			n += countProperties(child, ignored, seen)
		}
		return n
	default:
		return 1
	}
}

// countMatches counts the leaf properties equal in both documents. Objects
// contribute per shared, non-ignored key (one-sided keys contribute
// nothing); arrays recurse index-by-index up to the shorter length;
// type-mismatched pairs contribute 0 without recursing further. The visited
// set is keyed by the source-side container.
func countMatches(a, b any, ignored map[string]bool, seen visited) int {
	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		if !seen.enter(aMap) {
			return 0
		}
		n := 0
		for key, av := range aMap {
			if ignored[key] {
				continue
			}
			bv, ok := bMap[key]
			if !ok {
				continue
			}
			n += countMatches(av, bv, ignored, seen)
		}
		return n
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		if !seen.enter(aArr) {
			return 0
		}
		limit := len(aArr)
		if len(bArr) < limit {
			limit = len(bArr)
		}
		n := 0
		for i := 0; i < limit; i++ {
			n += countMatches(aArr[i], bArr[i], ignored, seen)
		}
		return n
	}

	// Type-mismatched container/scalar pairs contribute nothing.
	if aIsMap || bIsMap || aIsArr || bIsArr {
		return 0
	}

	if equalValues(a, b) {
		return 1
	}
	return 0
}

// visited tracks container identity during one traversal. Containers are
// keyed by their runtime data pointer - identity, not value, so equal but
// distinct substructures are still visited separately.
type visited map[uintptr]struct{}

func newVisited() visited {
	return make(visited)
}

// enter marks a container as visited and reports whether this is its first
// visit. Containers without a usable identity (nil or empty, which would
// alias the runtime's shared zero allocation) are always entered; they
// contribute nothing to the counts anyway.
func (s visited) enter(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return true
		}
		id := rv.Pointer()
		if _, ok := s[id]; ok {
			return false
		}
		s[id] = struct{}{}
		return true
	default:
		return true
	}
}

// round2 rounds half-up at the 2nd decimal place.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
