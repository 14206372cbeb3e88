package counters

// Counter is an unordered tally for callers that only need to bump numbers
// and read the most frequent keys back. Use Table when insertion order,
// aggregates or iteration matter.
type Counter[K comparable] map[K]int

func NewStringCounter() Counter[string] {
	return Counter[string]{}
}

func (c Counter[K]) Add(k K) {
	c.AddN(k, 1)
}

func (c Counter[K]) AddN(k K, n int) {
	c[k] += n
	if c[k] <= 0 {
		delete(c, k)
	}
}

func (c Counter[K]) Without(without K) Counter[K] {
	out := Counter[K]{}
	for k, v := range c {
		if k == without {
			continue
		}
		out[k] = v
	}
	return out
}

// Table converts the counter into a frequency table. Map iteration order
// is random, and so is the insertion order of the result.
func (c Counter[K]) Table() *Table[K] {
	t := New[K]()
	for k, v := range c {
		if v > 0 {
			t.increase(k, v)
		}
	}
	t.refresh()
	return t
}

// Stats returns all keys with their counts, most frequent first.
func (c Counter[K]) Stats() []Pair[K] {
	return c.Table().Top(0)
}

func (c Counter[K]) Keys() (out []K) {
	for _, v := range c.Stats() {
		out = append(out, v.Item)
	}
	return out
}

func (c Counter[K]) HeadOrDefault(k K) K {
	keys := c.Keys()
	if len(keys) == 0 {
		return k
	}
	return keys[0]
}
