package record

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Array is an array-like value. Records apply selectors to every Array they
// hold at once.
type Array interface {
	// Len returns the number of elements.
	Len() int

	// Select returns a new Array holding the selected elements.
	Select(sel Selector) (Array, error)

	// ArgSort returns the permutation that sorts the array ascending.
	// The sort is stable: equal elements keep their original relative order.
	ArgSort() []int
}

// Selector picks positions out of an Array.
type Selector interface {
	// positions resolves the selector against an array of length n.
	positions(n int) ([]int, error)
}

// Range bound sentinels.
const (
	// End as a Start or Stop means "past the last element".
	End = math.MaxInt

	// Begin as a Stop with a negative Step means "before the first element".
	Begin = math.MinInt
)

// Range selects a strided span. Negative bounds count from the end and
// out-of-range bounds are clamped. A zero Step is invalid.
type Range struct {
	Start, Stop, Step int
}

// Span returns the Range [start, stop) with step 1.
func Span(start, stop int) Range {
	return Range{Start: start, Stop: stop, Step: 1}
}

// Reversed selects every element in reverse order.
var Reversed = Range{Start: End, Stop: Begin, Step: -1}

func (r Range) positions(n int) ([]int, error) {
	if r.Step == 0 {
		return nil, fmt.Errorf("%w: range step cannot be zero", ErrInvalidSelector)
	}
	lower, upper := 0, n
	if r.Step < 0 {
		lower, upper = -1, n-1
	}
	clamp := func(i int) int {
		if i < 0 {
			i += n
			if i < lower {
				return lower
			}
			return i
		}
		return min(i, upper)
	}
	start, stop := clamp(r.Start), clamp(r.Stop)

	var out []int
	// Strides are compared against the remaining distance so huge steps
	// cannot overflow.
	if r.Step > 0 {
		for i := start; i < stop; i += r.Step {
			out = append(out, i)
			if r.Step >= stop-i {
				break
			}
		}
	} else {
		for i := start; i > stop; i += r.Step {
			out = append(out, i)
			if -(r.Step + 1) >= i-stop-1 {
				break
			}
		}
	}
	return out, nil
}

// Indices selects explicit positions, in order, with repetition allowed.
// Negative positions count from the end.
type Indices []int

func (ix Indices) positions(n int) ([]int, error) {
	out := make([]int, len(ix))
	for j, i := range ix {
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: index %d for length %d", ErrIndexOutOfRange, ix[j], n)
		}
		out[j] = i
	}
	return out, nil
}

// Mask selects the positions whose flag is true. Its length must match the
// array length.
type Mask []bool

func (mk Mask) positions(n int) ([]int, error) {
	if len(mk) != n {
		return nil, fmt.Errorf("%w: mask length %d for length %d", ErrInvalidSelector, len(mk), n)
	}
	var out []int
	for i, ok := range mk {
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// Vector is an Array over ordered elements.
type Vector[T cmp.Ordered] []T

// Vec builds a Vector from its arguments.
func Vec[T cmp.Ordered](elems ...T) Vector[T] {
	return Vector[T](elems)
}

func (v Vector[T]) Len() int {
	return len(v)
}

// Select gathers the selected elements into a new Vector.
func (v Vector[T]) Select(sel Selector) (Array, error) {
	pos, err := sel.positions(len(v))
	if err != nil {
		return nil, err
	}
	out := make(Vector[T], len(pos))
	for j, i := range pos {
		out[j] = v[i]
	}
	return out, nil
}

// ArgSort orders by cmp.Compare, so NaN sorts before every other float.
func (v Vector[T]) ArgSort() []int {
	perm := make([]int, len(v))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return cmp.Compare(v[a], v[b])
	})
	return perm
}
