package counters

// Add counts one more occurrence of item.
func (t *Table[T]) Add(item T) {
	t.increase(item, 1)
	t.refresh()
}

// AddN increases the frequency of item by frequency, inserting the item if
// the table does not hold it yet. Adding zero leaves the table untouched.
func (t *Table[T]) AddN(item T, frequency int) error {
	if err := requireNonNegative("frequency", frequency); err != nil {
		return err
	}
	if frequency == 0 {
		return nil
	}
	t.increase(item, frequency)
	t.refresh()
	return nil
}

// AddRange counts every element of items once.
func (t *Table[T]) AddRange(items []T) error {
	if items == nil {
		return nilArgument("items")
	}
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		t.increase(item, 1)
	}
	t.refresh()
	return nil
}

// Merge adds every item of other with its frequency.
func (t *Table[T]) Merge(other *Table[T]) error {
	if other == nil {
		return nilArgument("table")
	}
	if other.IsEmpty() {
		return nil
	}
	items, frequencies := other.Items(), other.Frequencies()
	for i, item := range items {
		t.increase(item, frequencies[i])
	}
	t.refresh()
	return nil
}

// Remove takes one occurrence of item away and reports whether the item was
// present.
func (t *Table[T]) Remove(item T) bool {
	removed, _ := t.RemoveN(item, 1)
	return removed
}

// RemoveN takes up to frequency occurrences of item away. The amount is
// clamped to the current frequency, and the item is dropped when nothing is
// left. It reports whether the item was present; removing zero is a no-op
// that reports false.
func (t *Table[T]) RemoveN(item T, frequency int) (bool, error) {
	if err := requireNonNegative("frequency", frequency); err != nil {
		return false, err
	}
	if frequency == 0 {
		return false, nil
	}
	if !t.decrease(item, frequency) {
		return false, nil
	}
	t.refresh()
	return true, nil
}

// RemoveAll drops item regardless of its frequency and returns the frequency
// it had.
func (t *Table[T]) RemoveAll(item T) int {
	i, ok := t.index[item]
	if !ok {
		return 0
	}
	frequency := t.frequencies[i]
	t.removeAt(i)
	t.refresh()
	return frequency
}

// RemoveFrequency drops every item whose frequency is exactly frequency and
// returns the number of occurrences removed.
func (t *Table[T]) RemoveFrequency(frequency int) (int, error) {
	if frequency <= 0 {
		return 0, outOfRange("frequency", frequency)
	}
	return t.removeWhere(func(_ T, f int) bool {
		return f == frequency
	}), nil
}

// RemoveBetween drops every item whose frequency lies in [min, max] and
// returns the number of occurrences removed.
func (t *Table[T]) RemoveBetween(min, max int) (int, error) {
	if err := requireBounds(min, max); err != nil {
		return 0, err
	}
	return t.removeWhere(func(_ T, f int) bool {
		return f >= min && f <= max
	}), nil
}

// RemoveFunc drops every item for which match returns true and returns the
// number of occurrences removed.
func (t *Table[T]) RemoveFunc(match func(T) bool) (int, error) {
	if match == nil {
		return 0, nilArgument("match")
	}
	return t.removeWhere(func(item T, _ int) bool {
		return match(item)
	}), nil
}

// RemoveItems takes one occurrence away for every element of items and
// returns how many of them were present at the time.
func (t *Table[T]) RemoveItems(items []T) (int, error) {
	if items == nil {
		return 0, nilArgument("items")
	}
	removed := 0
	for _, item := range items {
		if t.decrease(item, 1) {
			removed++
		}
	}
	if removed > 0 {
		t.refresh()
	}
	return removed, nil
}

// Clear empties the table. Outstanding iterators are invalidated even if
// the table was already empty.
func (t *Table[T]) Clear() {
	t.items = nil
	t.frequencies = nil
	t.index = map[T]int{}
	t.refresh()
}

// Swap exchanges the frequencies of a and b when both are present. When
// only one of them is present, the absent one takes over its slot and
// frequency, so afterwards the table holds the other item instead. Nothing
// happens when neither is present or a equals b.
func (t *Table[T]) Swap(a, b T) {
	if a == b {
		return
	}
	i, aok := t.index[a]
	j, bok := t.index[b]
	switch {
	case aok && bok:
		t.frequencies[i], t.frequencies[j] = t.frequencies[j], t.frequencies[i]
	case aok:
		t.replaceAt(i, b)
	case bok:
		t.replaceAt(j, a)
	default:
		return
	}
	t.refresh()
}

func (t *Table[T]) replaceAt(i int, item T) {
	delete(t.index, t.items[i])
	t.items[i] = item
	t.index[item] = i
}

func (t *Table[T]) removeWhere(match func(item T, frequency int) bool) int {
	removed := 0
	items := t.items[:0]
	frequencies := t.frequencies[:0]
	for i, item := range t.items {
		f := t.frequencies[i]
		if match(item, f) {
			removed += f
			delete(t.index, item)
			continue
		}
		items = append(items, item)
		frequencies = append(frequencies, f)
	}
	if removed == 0 {
		return 0
	}
	// release the items left behind past the new length
	clear(t.items[len(items):])
	t.items, t.frequencies = items, frequencies
	for i, item := range t.items {
		t.index[item] = i
	}
	t.refresh()
	return removed
}
