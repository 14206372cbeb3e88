// Package stats holds small descriptive statistics over slices of numbers.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/databrickslabs/sandbox/tally/counters"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

var ErrNotQuadratic = errors.New("leading coefficient is zero")

// Mean is the arithmetic mean, or 0 for no values.
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// Variance is the population variance, or 0 for no values.
func Variance[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := float64(v) - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// Median returns the middle value of a sorted slice, or the two middle
// values when the length is even. The input must already be sorted.
func Median[T any](sorted []T) []T {
	n := len(sorted)
	if n == 0 {
		return nil
	}
	half := n / 2
	if n%2 == 0 {
		return []T{sorted[half-1], sorted[half]}
	}
	return []T{sorted[half]}
}

// MedianOf sorts a copy of values and returns its median.
func MedianOf[T constraints.Ordered](values []T) []T {
	sorted := make([]T, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	return Median(sorted)
}

// Mode returns every value that occurs most often, in order of first
// occurrence. It fails with counters.ErrEmpty when values is empty.
func Mode[T comparable](values []T) ([]T, error) {
	table, err := counters.FromItems(values)
	if err != nil {
		return nil, fmt.Errorf("mode: %w", err)
	}
	modes, err := table.Max()
	if err != nil {
		return nil, fmt.Errorf("mode: %w", err)
	}
	return modes, nil
}

// Quadratic returns the real roots of ax² + bx + c = 0 in ascending order.
// There are zero, one or two of them.
func Quadratic(a, b, c float64) ([]float64, error) {
	if a == 0 {
		return nil, ErrNotQuadratic
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return []float64{}, nil
	case d == 0:
		return []float64{-b / (2 * a)}, nil
	}
	sq := math.Sqrt(d)
	x1, x2 := (-b-sq)/(2*a), (-b+sq)/(2*a)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	return []float64{x1, x2}, nil
}
