package counters

// ToSlice expands the table into a flat slice where every item is repeated
// by its frequency. The length of the result is Count.
func (t *Table[T]) ToSlice() []T {
	out, _ := t.export(Any())
	return out
}

// ToSliceFrequency expands only the items with the given frequency.
func (t *Table[T]) ToSliceFrequency(frequency int) ([]T, error) {
	if frequency <= 0 {
		return nil, outOfRange("frequency", frequency)
	}
	return t.export(Exactly(frequency))
}

// ToSliceBetween expands only the items whose frequency lies in [min, max].
func (t *Table[T]) ToSliceBetween(min, max int) ([]T, error) {
	if err := requireBounds(min, max); err != nil {
		return nil, err
	}
	return t.export(Between(min, max))
}

// CopyTo writes the expansion of the table into dst starting at offset and
// returns the number of elements written.
func (t *Table[T]) CopyTo(dst []T, offset int) (int, error) {
	return t.copyTo(dst, offset, Any())
}

// CopyToFrequency is CopyTo restricted to items with the given frequency.
// Only the matching occurrences need to fit into dst.
func (t *Table[T]) CopyToFrequency(dst []T, offset, frequency int) (int, error) {
	if frequency <= 0 {
		return 0, outOfRange("frequency", frequency)
	}
	return t.copyTo(dst, offset, Exactly(frequency))
}

// CopyToBetween is CopyTo restricted to items whose frequency lies in
// [min, max].
func (t *Table[T]) CopyToBetween(dst []T, offset, min, max int) (int, error) {
	if err := requireBounds(min, max); err != nil {
		return 0, err
	}
	return t.copyTo(dst, offset, Between(min, max))
}

func (t *Table[T]) export(filter Filter) ([]T, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	out := make([]T, t.occurrences(filter))
	t.expand(out, filter)
	return out, nil
}

func (t *Table[T]) copyTo(dst []T, offset int, filter Filter) (int, error) {
	if dst == nil {
		return 0, nilArgument("destination")
	}
	if offset < 0 {
		return 0, outOfRange("offset", offset)
	}
	if err := filter.Validate(); err != nil {
		return 0, err
	}
	needed := t.occurrences(filter)
	if len(dst)-offset < needed {
		return 0, &ArgumentError{
			Name:  "destination",
			Value: needed,
			kind:  ErrInsufficientCapacity,
		}
	}
	return t.expand(dst[offset:], filter), nil
}

// occurrences is the number of elements the expansion under filter has.
func (t *Table[T]) occurrences(filter Filter) int {
	if filter.IsAny() {
		return t.count
	}
	n := 0
	for _, f := range t.frequencies {
		if filter.Match(f) {
			n += f
		}
	}
	return n
}

func (t *Table[T]) expand(dst []T, filter Filter) int {
	n := 0
	for i, item := range t.items {
		f := t.frequencies[i]
		if !filter.Match(f) {
			continue
		}
		for j := 0; j < f; j++ {
			dst[n] = item
			n++
		}
	}
	return n
}
