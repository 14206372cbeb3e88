package counters

import (
	"errors"
	"fmt"
)

var (
	ErrNilArgument            = errors.New("a required argument is nil")
	ErrOutOfRange             = errors.New("argument is out of the allowed range")
	ErrInvalidOrdering        = errors.New("maximum bound is less than minimum bound")
	ErrInsufficientCapacity   = errors.New("destination does not have enough room")
	ErrEmpty                  = errors.New("the table is empty")
	ErrConcurrentModification = errors.New("the table was modified after the iterator was created")
	ErrClosed                 = errors.New("the iterator is closed")
)

// ArgumentError reports which argument of a call was rejected. It unwraps
// to one of the sentinel errors above, so callers check the kind with
// errors.Is.
type ArgumentError struct {
	Name  string
	Value any
	kind  error
}

func (err *ArgumentError) Error() string {
	if err.Value == nil {
		return fmt.Sprintf("%s: %s", err.Name, err.kind)
	}
	return fmt.Sprintf("%s (%v): %s", err.Name, err.Value, err.kind)
}

func (err *ArgumentError) Unwrap() error {
	return err.kind
}

func nilArgument(name string) error {
	return &ArgumentError{Name: name, kind: ErrNilArgument}
}

func outOfRange(name string, value int) error {
	return &ArgumentError{Name: name, Value: value, kind: ErrOutOfRange}
}

// requireNonNegative is used for amounts, where zero means "do nothing".
func requireNonNegative(name string, value int) error {
	if value < 0 {
		return outOfRange(name, value)
	}
	return nil
}

// requireBounds validates an inclusive frequency range. Both bounds must be
// positive, because a frequency of zero means the item is absent.
func requireBounds(min, max int) error {
	if min <= 0 {
		return outOfRange("min frequency", min)
	}
	if max <= 0 {
		return outOfRange("max frequency", max)
	}
	if max < min {
		return &ArgumentError{
			Name:  "max frequency",
			Value: fmt.Sprintf("%d < %d", max, min),
			kind:  ErrInvalidOrdering,
		}
	}
	return nil
}
