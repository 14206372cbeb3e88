package counters

import (
	"fmt"
	"strings"
)

// Table is a frequency table: a multiset that remembers the order in which
// distinct items were first added. Items and their frequencies live in two
// index-aligned slices, so every frequency is strictly positive and an item
// whose frequency drops to zero disappears from both.
//
// The zero value is an empty table ready to use. A Table is not safe for
// concurrent use.
type Table[T comparable] struct {
	items       []T
	frequencies []int
	index       map[T]int

	count        int
	minFrequency int
	maxFrequency int

	// version changes on every structural modification and is what
	// iterators compare against.
	version uint64
}

func New[T comparable]() *Table[T] {
	return &Table[T]{index: map[T]int{}}
}

// FromItems folds items into a new table, counting every occurrence once.
// The order of the table is the order of first occurrence.
func FromItems[T comparable](items []T) (*Table[T], error) {
	if items == nil {
		return nil, nilArgument("items")
	}
	t := New[T]()
	for _, item := range items {
		t.increase(item, 1)
	}
	t.refresh()
	return t, nil
}

// Clone makes an independent copy of other. Iterators of other are not
// carried over.
func Clone[T comparable](other *Table[T]) (*Table[T], error) {
	if other == nil {
		return nil, nilArgument("table")
	}
	t := &Table[T]{
		items:        make([]T, len(other.items)),
		frequencies:  make([]int, len(other.frequencies)),
		index:        make(map[T]int, len(other.index)),
		count:        other.count,
		minFrequency: other.minFrequency,
		maxFrequency: other.maxFrequency,
	}
	copy(t.items, other.items)
	copy(t.frequencies, other.frequencies)
	for k, v := range other.index {
		t.index[k] = v
	}
	return t, nil
}

// Count is the total number of occurrences, which is the sum of all
// frequencies.
func (t *Table[T]) Count() int {
	return t.count
}

// Len is the number of distinct items.
func (t *Table[T]) Len() int {
	return len(t.items)
}

func (t *Table[T]) IsEmpty() bool {
	return len(t.items) == 0
}

// MinFrequency is the smallest frequency in the table, or 0 if it is empty.
func (t *Table[T]) MinFrequency() int {
	return t.minFrequency
}

// MaxFrequency is the largest frequency in the table, or 0 if it is empty.
func (t *Table[T]) MaxFrequency() int {
	return t.maxFrequency
}

// Items returns the distinct items in insertion order.
func (t *Table[T]) Items() []T {
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

// Frequencies returns the frequencies aligned with Items.
func (t *Table[T]) Frequencies() []int {
	out := make([]int, len(t.frequencies))
	copy(out, t.frequencies)
	return out
}

// Get returns the frequency of item, or 0 if the table does not hold it.
func (t *Table[T]) Get(item T) int {
	i, ok := t.index[item]
	if !ok {
		return 0
	}
	return t.frequencies[i]
}

// Set overwrites the frequency of item. Setting 0 removes the item, and
// setting a positive value on an absent item inserts it at the end.
func (t *Table[T]) Set(item T, value int) error {
	if err := requireNonNegative("value", value); err != nil {
		return err
	}
	i, ok := t.index[item]
	switch {
	case !ok && value == 0:
		return nil
	case !ok:
		t.insert(item, value)
	case value == 0:
		t.removeAt(i)
	default:
		t.frequencies[i] = value
	}
	t.refresh()
	return nil
}

func (t *Table[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, item := range t.items {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%v:%d", item, t.frequencies[i])
	}
	sb.WriteString("]")
	return sb.String()
}

func (t *Table[T]) insert(item T, frequency int) {
	if t.index == nil {
		t.index = map[T]int{}
	}
	t.index[item] = len(t.items)
	t.items = append(t.items, item)
	t.frequencies = append(t.frequencies, frequency)
}

// increase adds frequency to item without refreshing aggregates, so bulk
// operations can refresh once at the end.
func (t *Table[T]) increase(item T, frequency int) {
	i, ok := t.index[item]
	if !ok {
		t.insert(item, frequency)
		return
	}
	t.frequencies[i] += frequency
}

// decrease takes at most frequency occurrences of item away and reports
// whether the item was present. Aggregates are not refreshed.
func (t *Table[T]) decrease(item T, frequency int) bool {
	i, ok := t.index[item]
	if !ok {
		return false
	}
	if t.frequencies[i] <= frequency {
		t.removeAt(i)
		return true
	}
	t.frequencies[i] -= frequency
	return true
}

func (t *Table[T]) removeAt(i int) {
	delete(t.index, t.items[i])
	last := len(t.items) - 1
	copy(t.items[i:], t.items[i+1:])
	var zero T
	t.items[last] = zero
	t.items = t.items[:last]
	t.frequencies = append(t.frequencies[:i], t.frequencies[i+1:]...)
	for j := i; j < len(t.items); j++ {
		t.index[t.items[j]] = j
	}
}

// refresh recomputes count, minimum and maximum from scratch and marks the
// table as structurally modified.
func (t *Table[T]) refresh() {
	t.version++
	t.count, t.minFrequency, t.maxFrequency = 0, 0, 0
	for i, f := range t.frequencies {
		t.count += f
		if i == 0 || f < t.minFrequency {
			t.minFrequency = f
		}
		if f > t.maxFrequency {
			t.maxFrequency = f
		}
	}
}
