package counters_test

import (
	"testing"

	"github.com/databrickslabs/sandbox/tally/counters"
	"github.com/stretchr/testify/assert"
)

func TestCounterStats(t *testing.T) {
	c := counters.NewStringCounter()
	c.Add("x")
	c.AddN("y", 3)
	c.Add("z")
	c.AddN("z", 1)

	stats := c.Stats()
	assert.Len(t, stats, 3)
	assert.Equal(t, counters.Pair[string]{Item: "y", Frequency: 3}, stats[0])
	assert.Equal(t, counters.Pair[string]{Item: "z", Frequency: 2}, stats[1])
	assert.Equal(t, "y", c.HeadOrDefault("none"))
	assert.Equal(t, []string{"y", "z", "x"}, c.Keys())
}

func TestCounterDropsNonPositive(t *testing.T) {
	c := counters.NewStringCounter()
	c.AddN("x", 2)
	c.AddN("x", -2)
	_, ok := c["x"]
	assert.False(t, ok)
	assert.Equal(t, "none", c.HeadOrDefault("none"))
}

func TestCounterTable(t *testing.T) {
	c := counters.Counter[int]{1: 2, 2: 5, 3: -1}
	table := c.Table()
	assert.Equal(t, 7, table.Count())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 5, table.Get(2))
	assert.False(t, table.Contains(3))

	without := c.Without(2)
	assert.Equal(t, counters.Counter[int]{1: 2, 3: -1}, without)
}
