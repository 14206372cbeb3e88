package counters

import "sort"

// Pair is an item together with its frequency.
type Pair[T comparable] struct {
	Item      T
	Frequency int
}

// Filter selects items by frequency. The zero Filter matches everything.
type Filter struct {
	Min int
	Max int
}

// Any matches every item in the table.
func Any() Filter {
	return Filter{}
}

// Exactly matches items with the given frequency.
func Exactly(frequency int) Filter {
	return Filter{Min: frequency, Max: frequency}
}

// Between matches items whose frequency lies in [min, max].
func Between(min, max int) Filter {
	return Filter{Min: min, Max: max}
}

func (f Filter) IsAny() bool {
	return f == Filter{}
}

// Validate applies the same bound rules as the range queries.
func (f Filter) Validate() error {
	if f.IsAny() {
		return nil
	}
	return requireBounds(f.Min, f.Max)
}

func (f Filter) Match(frequency int) bool {
	if f.IsAny() {
		return true
	}
	return frequency >= f.Min && frequency <= f.Max
}

// Max returns the items that share the highest frequency, in insertion
// order.
func (t *Table[T]) Max() ([]T, error) {
	if t.IsEmpty() {
		return nil, ErrEmpty
	}
	return t.collect(Exactly(t.maxFrequency)), nil
}

// Min returns the items that share the lowest frequency, in insertion
// order.
func (t *Table[T]) Min() ([]T, error) {
	if t.IsEmpty() {
		return nil, ErrEmpty
	}
	return t.collect(Exactly(t.minFrequency)), nil
}

// Range returns the items whose frequency is exactly frequency. The result
// is empty, not nil, when no item matches.
func (t *Table[T]) Range(frequency int) ([]T, error) {
	if frequency <= 0 {
		return nil, outOfRange("frequency", frequency)
	}
	if t.IsEmpty() {
		return nil, ErrEmpty
	}
	return t.collect(Exactly(frequency)), nil
}

// RangeBetween returns the items whose frequency lies in [min, max].
func (t *Table[T]) RangeBetween(min, max int) ([]T, error) {
	if err := requireBounds(min, max); err != nil {
		return nil, err
	}
	if t.IsEmpty() {
		return nil, ErrEmpty
	}
	return t.collect(Between(min, max)), nil
}

func (t *Table[T]) Contains(item T) bool {
	_, ok := t.index[item]
	return ok
}

// ContainsAll reports whether every element of items is in the table.
func (t *Table[T]) ContainsAll(items []T) (bool, error) {
	if items == nil {
		return false, nilArgument("items")
	}
	for _, item := range items {
		if !t.Contains(item) {
			return false, nil
		}
	}
	return true, nil
}

// ForEach calls fn for every item matching filter, in insertion order. If fn
// returns an error, the traversal stops and the error is returned. fn must
// not modify the table.
func (t *Table[T]) ForEach(fn func(item T, frequency int) error, filter Filter) error {
	if fn == nil {
		return nilArgument("fn")
	}
	if err := filter.Validate(); err != nil {
		return err
	}
	for i, item := range t.items {
		if !filter.Match(t.frequencies[i]) {
			continue
		}
		if err := fn(item, t.frequencies[i]); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the first item matching both match and filter.
func (t *Table[T]) Find(match func(T) bool, filter Filter) (item T, ok bool, err error) {
	if match == nil {
		return item, false, nilArgument("match")
	}
	if err := filter.Validate(); err != nil {
		return item, false, err
	}
	for i, v := range t.items {
		if filter.Match(t.frequencies[i]) && match(v) {
			return v, true, nil
		}
	}
	return item, false, nil
}

// Exists reports whether any item matches both match and filter.
func (t *Table[T]) Exists(match func(T) bool, filter Filter) (bool, error) {
	_, ok, err := t.Find(match, filter)
	return ok, err
}

// FindAll returns every item matching both match and filter.
func (t *Table[T]) FindAll(match func(T) bool, filter Filter) ([]T, error) {
	if match == nil {
		return nil, nilArgument("match")
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	out := []T{}
	for i, v := range t.items {
		if filter.Match(t.frequencies[i]) && match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Pairs returns all items with their frequencies in insertion order.
func (t *Table[T]) Pairs() []Pair[T] {
	out := make([]Pair[T], len(t.items))
	for i, item := range t.items {
		out[i] = Pair[T]{item, t.frequencies[i]}
	}
	return out
}

// Top returns up to n pairs with the highest frequencies. Items with equal
// frequency keep their insertion order. A non-positive n returns all pairs.
func (t *Table[T]) Top(n int) []Pair[T] {
	out := t.Pairs()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func (t *Table[T]) collect(filter Filter) []T {
	out := []T{}
	for i, item := range t.items {
		if filter.Match(t.frequencies[i]) {
			out = append(out, item)
		}
	}
	return out
}
