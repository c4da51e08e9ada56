// Package maputil provides small helpers for working with string-keyed maps.
package maputil

import "sort"

// SortedKeys returns the keys of m sorted lexicographically.
// A nil map yields an empty, non-nil slice.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeyUnion returns the sorted union of the keys of a and b.
func KeyUnion[V any](a, b map[string]V) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	return SortedKeys(seen)
}
