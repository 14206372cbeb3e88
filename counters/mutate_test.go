package counters_test

import (
	"math/rand"
	"testing"

	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddN(t *testing.T) {
	table := counters.New[string]()
	table.Add("a")
	require.NoError(t, table.AddN("a", 2))
	require.NoError(t, table.AddN("b", 4))

	assert.Equal(t, []string{"a", "b"}, table.Items())
	assert.Equal(t, []int{3, 4}, table.Frequencies())
	assert.Equal(t, 7, table.Count())
	requireConsistent(t, table)
}

func TestAddNNegative(t *testing.T) {
	table := counters.New[string]()
	assert.ErrorIs(t, table.AddN("a", -1), counters.ErrOutOfRange)
	assert.True(t, table.IsEmpty())
}

func TestAddRange(t *testing.T) {
	table := counters.New[int]()
	table.Add(3)
	require.NoError(t, table.AddRange([]int{1, 3, 1, 2}))
	assert.Equal(t, []int{3, 1, 2}, table.Items())
	assert.Equal(t, []int{2, 2, 1}, table.Frequencies())
	requireConsistent(t, table)

	assert.ErrorIs(t, table.AddRange(nil), counters.ErrNilArgument)
}

func TestMerge(t *testing.T) {
	a, err := counters.FromItems([]string{"x", "y", "y"})
	require.NoError(t, err)
	b, err := counters.FromItems([]string{"z", "y"})
	require.NoError(t, err)

	require.NoError(t, a.Merge(b))
	assert.Equal(t, []string{"x", "y", "z"}, a.Items())
	assert.Equal(t, []int{1, 3, 1}, a.Frequencies())

	require.NoError(t, a.Merge(a))
	assert.Equal(t, []int{2, 6, 2}, a.Frequencies())
	requireConsistent(t, a)

	assert.ErrorIs(t, a.Merge(nil), counters.ErrNilArgument)
}

func TestRemove(t *testing.T) {
	table, err := counters.FromItems([]string{"a", "a", "b"})
	require.NoError(t, err)

	assert.True(t, table.Remove("a"))
	assert.Equal(t, 1, table.Get("a"))
	assert.True(t, table.Remove("b"))
	assert.False(t, table.Contains("b"))
	assert.False(t, table.Remove("b"))
	assert.Equal(t, 1, table.Count())
	requireConsistent(t, table)
}

func TestRemoveNClamps(t *testing.T) {
	table := counters.New[string]()
	require.NoError(t, table.AddN("a", 3))
	require.NoError(t, table.AddN("b", 2))

	removed, err := table.RemoveN("a", 10)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, table.Contains("a"))
	assert.Equal(t, 2, table.Count())

	removed, err = table.RemoveN("b", 1)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, table.Get("b"))
	requireConsistent(t, table)
}

func TestRemoveNEdges(t *testing.T) {
	table := counters.New[string]()
	table.Add("a")

	removed, err := table.RemoveN("a", 0)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, table.Get("a"))

	removed, err = table.RemoveN("missing", 3)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = table.RemoveN("a", -1)
	assert.ErrorIs(t, err, counters.ErrOutOfRange)
	assert.Equal(t, 1, table.Get("a"))
}

func TestRemoveAll(t *testing.T) {
	table := counters.New[string]()
	require.NoError(t, table.AddN("a", 4))
	table.Add("b")

	assert.Equal(t, 4, table.RemoveAll("a"))
	assert.Equal(t, 0, table.RemoveAll("a"))
	assert.Equal(t, []string{"b"}, table.Items())
	requireConsistent(t, table)
}

func sampleTable(t *testing.T) *counters.Table[string] {
	t.Helper()
	table := counters.New[string]()
	require.NoError(t, table.AddN("a", 1))
	require.NoError(t, table.AddN("b", 2))
	require.NoError(t, table.AddN("c", 3))
	require.NoError(t, table.AddN("d", 2))
	require.NoError(t, table.AddN("e", 5))
	return table
}

func TestRemoveFrequency(t *testing.T) {
	table := sampleTable(t)
	removed, err := table.RemoveFrequency(2)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)
	assert.Equal(t, []string{"a", "c", "e"}, table.Items())
	requireConsistent(t, table)

	removed, err = table.RemoveFrequency(4)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	_, err = table.RemoveFrequency(0)
	assert.ErrorIs(t, err, counters.ErrOutOfRange)
}

func TestRemoveBetween(t *testing.T) {
	table := sampleTable(t)
	removed, err := table.RemoveBetween(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, removed)
	assert.Equal(t, []string{"a", "e"}, table.Items())
	assert.Equal(t, []int{1, 5}, table.Frequencies())
	assert.Equal(t, 1, table.MinFrequency())
	assert.Equal(t, 5, table.MaxFrequency())
	requireConsistent(t, table)
}

func TestRemoveBetweenValidation(t *testing.T) {
	table := sampleTable(t)
	testCases := []struct {
		min, max int
		err      error
	}{
		{0, 3, counters.ErrOutOfRange},
		{1, 0, counters.ErrOutOfRange},
		{-2, -1, counters.ErrOutOfRange},
		{3, 2, counters.ErrInvalidOrdering},
	}
	for _, tc := range testCases {
		_, err := table.RemoveBetween(tc.min, tc.max)
		assert.ErrorIs(t, err, tc.err, "[%d, %d]", tc.min, tc.max)
	}
	assert.Equal(t, 13, table.Count())
}

func TestRemoveFunc(t *testing.T) {
	table := sampleTable(t)
	removed, err := table.RemoveFunc(func(s string) bool {
		return s == "b" || s == "e"
	})
	require.NoError(t, err)
	assert.Equal(t, 7, removed)
	assert.Equal(t, []string{"a", "c", "d"}, table.Items())
	requireConsistent(t, table)
}

func TestRemoveFuncNil(t *testing.T) {
	table := sampleTable(t)
	it := table.Iterator()
	_, err := table.RemoveFunc(nil)
	assert.ErrorIs(t, err, counters.ErrNilArgument)
	assert.Equal(t, 13, table.Count())
	_, err = it.Next()
	assert.NoError(t, err)
}

func TestRemovalReleasesItems(t *testing.T) {
	a, b, c := new(int), new(int), new(int)
	table := counters.New[*int]()
	table.Add(a)
	table.Add(b)
	table.Add(c)

	assert.True(t, table.Remove(a))
	removed, err := table.RemoveFunc(func(p *int) bool { return p == b })
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []*int{c}, table.Items())
	requireConsistent(t, table)

	table.Add(a)
	assert.Equal(t, []*int{c, a}, table.Items())
}

func TestRemoveItems(t *testing.T) {
	table := sampleTable(t)
	removed, err := table.RemoveItems([]string{"a", "b", "z", "b", "b"})
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.False(t, table.Contains("a"))
	assert.False(t, table.Contains("b"))
	requireConsistent(t, table)

	_, err = table.RemoveItems(nil)
	assert.ErrorIs(t, err, counters.ErrNilArgument)
}

func TestClear(t *testing.T) {
	table := sampleTable(t)
	table.Clear()
	assert.True(t, table.IsEmpty())
	assert.Equal(t, 0, table.Count())
	assert.Equal(t, 0, table.MinFrequency())
	assert.Equal(t, 0, table.MaxFrequency())
	table.Add("again")
	assert.Equal(t, []string{"again"}, table.Items())
}

func TestSwapBothPresent(t *testing.T) {
	table := sampleTable(t)
	table.Swap("a", "e")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, table.Items())
	assert.Equal(t, 5, table.Get("a"))
	assert.Equal(t, 1, table.Get("e"))
	requireConsistent(t, table)
}

func TestSwapOnePresent(t *testing.T) {
	table := counters.New[string]()
	require.NoError(t, table.Set("x", 1))
	require.NoError(t, table.Set("a", 3))

	table.Swap("a", "b")
	assert.False(t, table.Contains("a"))
	assert.Equal(t, 3, table.Get("b"))
	assert.Equal(t, []string{"x", "b"}, table.Items())

	table.Swap("c", "x")
	assert.False(t, table.Contains("x"))
	assert.Equal(t, 1, table.Get("c"))
	assert.Equal(t, []string{"c", "b"}, table.Items())
	requireConsistent(t, table)
}

func TestSwapNoop(t *testing.T) {
	table := sampleTable(t)
	it := table.Iterator()
	table.Swap("y", "z")
	table.Swap("a", "a")
	assert.Equal(t, []int{1, 2, 3, 2, 5}, table.Frequencies())
	_, err := it.Next()
	assert.NoError(t, err)
}

func TestAggregatesStayConsistent(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	table := counters.New[int]()
	for i := 0; i < 2000; i++ {
		item := rnd.Intn(12)
		n := rnd.Intn(4)
		switch rnd.Intn(8) {
		case 0:
			table.Add(item)
		case 1:
			require.NoError(t, table.AddN(item, n))
		case 2:
			table.Remove(item)
		case 3:
			_, err := table.RemoveN(item, n)
			require.NoError(t, err)
		case 4:
			require.NoError(t, table.Set(item, n))
		case 5:
			table.RemoveAll(item)
		case 6:
			table.Swap(item, rnd.Intn(12))
		case 7:
			_, err := table.RemoveBetween(1+n, 2+n)
			require.NoError(t, err)
		}
		requireConsistent(t, table)
	}
}
