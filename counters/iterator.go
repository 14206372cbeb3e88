package counters

import (
	"context"

	"github.com/databricks/databricks-sdk-go/listing"
)

// Iterator walks a table item by item, yielding every item as many times as
// its frequency. It borrows the table's storage, so once the table is
// structurally modified the iterator refuses to continue and reports
// ErrConcurrentModification instead of returning stale data.
type Iterator[T comparable] struct {
	table   *Table[T]
	version uint64
	current T
	// index is -1 before the first call to Next and len(items) once the
	// iterator is exhausted.
	index  int
	repeat int
	closed bool
}

// Iterator creates a live iterator positioned before the first item.
func (t *Table[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{
		table:   t,
		version: t.version,
		index:   -1,
	}
}

func (it *Iterator[T]) check() error {
	if it.closed {
		return ErrClosed
	}
	if it.version != it.table.version {
		return ErrConcurrentModification
	}
	return nil
}

// Next advances to the next occurrence and reports whether there is one.
// Once it returns false it keeps returning false.
func (it *Iterator[T]) Next() (bool, error) {
	if err := it.check(); err != nil {
		return false, err
	}
	items, frequencies := it.table.items, it.table.frequencies
	switch {
	case it.index == -1:
		it.index = 0
		if len(items) == 0 {
			return false, nil
		}
		it.current = items[0]
	case it.index == len(items):
		return false, nil
	default:
		it.repeat++
		if it.repeat < frequencies[it.index] {
			return true, nil
		}
		it.index++
		it.repeat = 0
		if it.index == len(items) {
			var zero T
			it.current = zero
			return false, nil
		}
		it.current = items[it.index]
	}
	return true, nil
}

// Current is the occurrence Next moved to. Before the first successful call
// to Next and after exhaustion it is the zero value of T.
func (it *Iterator[T]) Current() T {
	return it.current
}

// Reset moves the iterator back before the first item.
func (it *Iterator[T]) Reset() error {
	if err := it.check(); err != nil {
		return err
	}
	var zero T
	it.current = zero
	it.index = -1
	it.repeat = 0
	return nil
}

// Close releases the iterator. Closing twice is fine.
func (it *Iterator[T]) Close() {
	it.closed = true
	it.table = nil
}

// Listing exposes a live iterator through the SDK listing protocol, so
// helpers like listing.ToSlice work on tables.
func (t *Table[T]) Listing() listing.Iterator[T] {
	return &listingIterator[T]{it: t.Iterator()}
}

type listingIterator[T comparable] struct {
	it     *Iterator[T]
	peeked bool
	more   bool
	err    error
}

// HasNext also returns true when advancing failed, so that the error
// surfaces from Next. A peeked result is checked against the table again.
func (l *listingIterator[T]) HasNext(context.Context) bool {
	if l.err != nil {
		return true
	}
	if l.peeked {
		l.err = l.it.check()
	} else {
		l.more, l.err = l.it.Next()
		l.peeked = true
	}
	return l.more || l.err != nil
}

func (l *listingIterator[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if !l.HasNext(ctx) {
		return zero, listing.ErrNoMoreItems
	}
	if l.err != nil {
		return zero, l.err
	}
	l.peeked = false
	return l.it.Current(), nil
}
