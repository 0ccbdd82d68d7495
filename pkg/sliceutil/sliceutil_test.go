//go:build !integration

package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	types := []string{"GovernancePolicy", "GovernancePrinciple", "Regulation"}

	assert.True(t, Contains(types, "Regulation"))
	assert.False(t, Contains(types, "regulation"), "match is case sensitive")
	assert.False(t, Contains(nil, "Regulation"))
}

func TestMap(t *testing.T) {
	t.Run("transforms every element", func(t *testing.T) {
		lengths := Map([]string{"a", "bb", "ccc"}, func(s string) int { return len(s) })
		assert.Equal(t, []int{1, 2, 3}, lengths)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		out := Map(nil, func(s string) string { return s })
		assert.Empty(t, out)
	})
}

func TestDeduplicate(t *testing.T) {
	t.Run("keeps first occurrence order", func(t *testing.T) {
		categories := []string{"Emissions", "Reporting", "Emissions", "Scope", "Reporting"}
		assert.Equal(t, []string{"Emissions", "Reporting", "Scope"}, Deduplicate(categories))
	})

	t.Run("no duplicates is a copy", func(t *testing.T) {
		in := []string{"a", "b"}
		out := Deduplicate(in)
		assert.Equal(t, in, out)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Deduplicate([]int(nil)))
	})
}

func TestSortedKeys(t *testing.T) {
	props := map[string]any{"summary": 1, "displayName": 2, "status": 3}
	assert.Equal(t, []string{"displayName", "status", "summary"}, SortedKeys(props))
	assert.Empty(t, SortedKeys(map[string]string{}))
}
