package regions

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPartition(t *testing.T, a *Allocation, candidates []string) {
	t.Helper()
	available, selected := a.Available(), a.Selected()

	seen := map[string]bool{}
	for _, code := range available {
		assert.False(t, seen[code], "duplicate %s", code)
		seen[code] = true
	}
	for _, code := range selected {
		assert.False(t, seen[code], "%s is in both collections", code)
		seen[code] = true
	}

	union := append(append([]string{}, available...), selected...)
	sort.Strings(union)
	expected := append([]string{}, candidates...)
	sort.Strings(expected)
	assert.Equal(t, expected, union)
}

func TestAllocationPartitionInvariant(t *testing.T) {
	candidates := []string{"A", "B", "C", "D", "E", "F"}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		a := NewAllocation(candidates, []string{"C", "A"})
		assertPartition(t, a, candidates)

		for step := 0; step < 40; step++ {
			if rng.Intn(5) == 0 {
				a.SelectAll()
			} else {
				require.True(t, a.Toggle(candidates[rng.Intn(len(candidates))]))
			}
			assertPartition(t, a, candidates)
		}
	}
}

func TestAllocationToggleRoundTrip(t *testing.T) {
	candidates := []string{"A", "B", "C", "D"}

	t.Run("From available", func(t *testing.T) {
		a := NewAllocation(candidates, []string{"D", "B"})
		available, selected := a.Available(), a.Selected()

		for _, code := range available {
			require.True(t, a.Toggle(code))
			require.True(t, a.Toggle(code))
			assert.Equal(t, available, a.Available())
			assert.Equal(t, selected, a.Selected())
		}
	})

	t.Run("Last selected", func(t *testing.T) {
		a := NewAllocation(candidates, []string{"D", "B"})
		available, selected := a.Available(), a.Selected()

		require.True(t, a.Toggle("B"))
		assert.Equal(t, []string{"A", "B", "C"}, a.Available())
		require.True(t, a.Toggle("B"))
		assert.Equal(t, available, a.Available())
		assert.Equal(t, selected, a.Selected())
	})
}

// Selected order is click order: a code taken back out and picked again goes last
func TestAllocationReselectAppends(t *testing.T) {
	a := NewAllocation([]string{"A", "B", "C"}, []string{"A", "B"})

	require.True(t, a.Toggle("A"))
	assert.Equal(t, []string{"A", "C"}, a.Available())
	assert.Equal(t, []string{"B"}, a.Selected())

	require.True(t, a.Toggle("A"))
	assert.Equal(t, []string{"C"}, a.Available())
	assert.Equal(t, []string{"B", "A"}, a.Selected())

	require.True(t, a.Toggle("A"))
	require.True(t, a.Toggle("A"))
	assert.Equal(t, []string{"B", "A"}, a.Selected(), "the last picked code round-trips in place")
}

func TestAllocationToggle(t *testing.T) {
	a := NewAllocation([]string{"560001", "560003"}, nil)

	require.True(t, a.Toggle("560001"))
	assert.Equal(t, []string{"560003"}, a.Available())
	assert.Equal(t, []string{"560001"}, a.Selected())

	t.Run("Unknown code is ignored", func(t *testing.T) {
		assert.False(t, a.Toggle("999999"))
		assert.Equal(t, []string{"560003"}, a.Available())
		assert.Equal(t, []string{"560001"}, a.Selected())
	})

	t.Run("Selection keeps click order", func(t *testing.T) {
		b := NewAllocation([]string{"A", "B", "C"}, nil)
		b.Toggle("C")
		b.Toggle("A")
		assert.Equal(t, []string{"C", "A"}, b.Selected())
		assert.Equal(t, []string{"B"}, b.Available())
	})
}

func TestAllocationSelectAllBidirectional(t *testing.T) {
	a := NewAllocation([]string{"A", "B", "C"}, nil)

	a.SelectAll()
	assert.Empty(t, a.Available())
	assert.Equal(t, []string{"A", "B", "C"}, a.Selected())
	assert.True(t, a.AllSelected())

	a.SelectAll()
	assert.Equal(t, []string{"A", "B", "C"}, a.Available())
	assert.Empty(t, a.Selected())
	assert.False(t, a.AllSelected())

	t.Run("Appends after existing selection", func(t *testing.T) {
		b := NewAllocation([]string{"A", "B", "C", "D"}, []string{"C"})
		b.SelectAll()
		assert.Equal(t, []string{"C", "A", "B", "D"}, b.Selected())
	})

	t.Run("Empty pool stays empty", func(t *testing.T) {
		c := NewAllocation(nil, nil)
		c.SelectAll()
		assert.Empty(t, c.Available())
		assert.Empty(t, c.Selected())
		assert.False(t, c.AllSelected())
	})
}

func TestNewAllocationDropsForeignSelection(t *testing.T) {
	a := NewAllocation([]string{"A", "B"}, []string{"B", "Z", "B"})
	assert.Equal(t, []string{"B"}, a.Selected())
	assert.Equal(t, []string{"A"}, a.Available())
}
