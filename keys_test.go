package trailhead_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
)

func TestByKeyUnique(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    []trailhead.Key
		expected []trailhead.Key
	}{
		{"Nil", nil, trailhead.ByKey{}},
		{"Zero-Value", []trailhead.Key{}, []trailhead.Key{}},
		{"Many-Zero", make([]trailhead.Key, 99), []trailhead.Key{}},
		{"Sorted", []trailhead.Key{"a", "c", "e", "d"}, []trailhead.Key{"a", "c", "d", "e"}},
		{"Uniqued", []trailhead.Key{"a", "a", "a"}, []trailhead.Key{"a"}},
		{"Filtered-Zero-Value", []trailhead.Key{"", "a", "", "b", ""}, []trailhead.Key{"a", "b"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual := trailhead.ByKey(tc.input).UniqueSort()
			require.Equal(t, tc.expected, []trailhead.Key(actual))
		})
	}
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "trailhead context key: RequestIDKey", trailhead.RequestIDKey.String())
	require.Equal(t, "RequestIDKey", trailhead.RequestIDKey.Key())
}
