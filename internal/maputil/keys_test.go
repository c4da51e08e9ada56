package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]bool
		expected []string
	}{
		{
			name:     "sorted keys",
			input:    map[string]bool{"zebra": true, "apple": true, "mango": true},
			expected: []string{"apple", "mango", "zebra"},
		},
		{
			name:     "single key",
			input:    map[string]bool{"only": true},
			expected: []string{"only"},
		},
		{
			name:     "empty map",
			input:    map[string]bool{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedKeys(tt.input)
			assert.Equal(t, tt.expected, got, "SortedKeys(%v)", tt.input)
		})
	}
}

func TestSortedKeys_AnyValues(t *testing.T) {
	input := map[string]any{"c": 3, "a": "1", "b": nil}
	got := SortedKeys(input)
	expected := []string{"a", "b", "c"}
	assert.Equal(t, expected, got, "SortedKeys(%v)", input)
}

func TestKeyUnion(t *testing.T) {
	tests := []struct {
		name     string
		a, b     map[string]any
		expected []string
	}{
		{
			name:     "disjoint",
			a:        map[string]any{"a": 1},
			b:        map[string]any{"b": 2},
			expected: []string{"a", "b"},
		},
		{
			name:     "overlapping",
			a:        map[string]any{"a": 1, "b": 2},
			b:        map[string]any{"b": 3, "c": 4},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "both nil",
			a:        nil,
			b:        nil,
			expected: []string{},
		},
		{
			name:     "one nil",
			a:        nil,
			b:        map[string]any{"x": true},
			expected: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyUnion(tt.a, tt.b)
			assert.Equal(t, tt.expected, got)
		})
	}
}
