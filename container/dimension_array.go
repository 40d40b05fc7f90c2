package container

import (
	"cmp"
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/hupe1980/ndimage/internal/errs"
)

// StaticSize is the number of elements a DimensionArray stores inline.
const StaticSize = 4

// DimensionArray is a sequence holding one value per image dimension.
//
// Up to StaticSize elements live in an inline array; longer sequences use a
// heap slice of exactly the requested length. Growth is never amortized, so
// this type is a poor fit for append-heavy workloads.
//
// The zero value is an empty array ready to use. Do not copy a non-empty
// DimensionArray by assignment: a heap-backed copy would share storage with
// the original. Use Clone, CopyFrom or MoveFrom instead.
//
// Elements must be plain values that do not own external resources.
type DimensionArray[T comparable] struct {
	size   int
	static [StaticSize]T
	heap   []T // len(heap) == size iff size > StaticSize, nil otherwise
}

// IntegerArray holds signed integers, e.g. sizes or strides.
type IntegerArray = DimensionArray[int]

// FloatArray holds floating-point values, e.g. per-axis scales.
type FloatArray = DimensionArray[float64]

// BooleanArray holds per-dimension flags.
type BooleanArray = DimensionArray[bool]

// New returns an array of n elements, all set to fill.
func New[T comparable](n int, fill T) DimensionArray[T] {
	var a DimensionArray[T]
	a.Resize(n, fill)
	return a
}

// Of returns an array holding values in order.
func Of[T comparable](values ...T) DimensionArray[T] {
	return FromSlice(values)
}

// FromSlice returns an array holding a copy of s.
func FromSlice[T comparable](s []T) DimensionArray[T] {
	var a DimensionArray[T]
	var zero T
	a.Resize(len(s), zero)
	copy(a.Slice(), s)
	return a
}

func (a *DimensionArray[T]) isDynamic() bool {
	return a.size > StaticSize
}

// Slice returns a view of the elements. The view aliases the array and is
// valid until the next call that changes its length. It is never nil.
func (a *DimensionArray[T]) Slice() []T {
	if a.isDynamic() {
		return a.heap
	}
	return a.static[:a.size]
}

// Values returns a copy of the elements as a regular slice.
func (a *DimensionArray[T]) Values() []T {
	out := make([]T, a.size)
	copy(out, a.Slice())
	return out
}

// Len returns the number of elements.
func (a *DimensionArray[T]) Len() int { return a.size }

// Empty reports whether the array has no elements.
func (a *DimensionArray[T]) Empty() bool { return a.size == 0 }

// At returns the element at index i.
func (a *DimensionArray[T]) At(i int) T { return a.Slice()[i] }

// Set stores v at index i.
func (a *DimensionArray[T]) Set(i int, v T) { a.Slice()[i] = v }

// Front returns the first element.
func (a *DimensionArray[T]) Front() T { return a.Slice()[0] }

// Back returns the last element.
func (a *DimensionArray[T]) Back() T { return a.Slice()[a.size-1] }

// Resize sets the length to n. Existing elements below min(old, n) keep
// their value and order; new elements are set to fill.
//
// Resize panics with a parameter error for negative n, and with a runtime
// error if n elements cannot be addressed.
func (a *DimensionArray[T]) Resize(n int, fill T) {
	if n == a.size {
		return
	}
	if n < 0 {
		panic(errs.Parameter(errs.ArrayIllegalSize))
	}
	if n > StaticSize {
		var zero T
		if elem := int(unsafe.Sizeof(zero)); elem > 0 && n > math.MaxInt/elem {
			panic(errs.Runtime(errs.ArrayOverflow, nil))
		}
		// heap -> heap or static -> heap, always exact
		tmp := make([]T, n)
		copied := copy(tmp, a.Slice())
		for i := copied; i < n; i++ {
			tmp[i] = fill
		}
		a.heap = tmp
		a.size = n
		return
	}
	if a.isDynamic() {
		// heap -> static
		copy(a.static[:n], a.heap[:n])
		a.heap = nil
		a.size = n
		return
	}
	for i := a.size; i < n; i++ {
		a.static[i] = fill
	}
	a.size = n
}

// Clear sets the length to 0, releasing heap storage.
func (a *DimensionArray[T]) Clear() {
	var zero T
	a.Resize(0, zero)
}

// PushBack appends v.
func (a *DimensionArray[T]) PushBack(v T) {
	a.Resize(a.size+1, v)
}

// PopBack removes the last element. The array must not be empty.
func (a *DimensionArray[T]) PopBack() {
	errs.Assert(a.size > 0, "PopBack on empty array")
	var zero T
	a.Resize(a.size-1, zero)
}

// Insert places v at index i, shifting subsequent elements up by one.
// i must be in [0, Len()].
func (a *DimensionArray[T]) Insert(i int, v T) {
	errs.Assert(i >= 0 && i <= a.size, "insert index in range")
	a.Resize(a.size+1, v)
	s := a.Slice()
	copy(s[i+1:], s[i:a.size-1])
	s[i] = v
}

// Erase removes the element at index i, shifting subsequent elements down
// by one. i must be in [0, Len()).
func (a *DimensionArray[T]) Erase(i int) {
	errs.Assert(i >= 0 && i < a.size, "erase index in range")
	s := a.Slice()
	copy(s[i:], s[i+1:])
	var zero T
	a.Resize(a.size-1, zero)
}

// Swap exchanges the contents of a and other. No element storage is
// allocated, whichever side is heap-backed.
func (a *DimensionArray[T]) Swap(other *DimensionArray[T]) {
	if a == other {
		return
	}
	a.static, other.static = other.static, a.static
	a.heap, other.heap = other.heap, a.heap
	a.size, other.size = other.size, a.size
}

// Clone returns a deep copy.
func (a *DimensionArray[T]) Clone() DimensionArray[T] {
	var out DimensionArray[T]
	out.CopyFrom(a)
	return out
}

// CopyFrom replaces the contents of a with a copy of other.
func (a *DimensionArray[T]) CopyFrom(other *DimensionArray[T]) {
	if a == other {
		return
	}
	var zero T
	a.Resize(other.size, zero)
	copy(a.Slice(), other.Slice())
}

// MoveFrom transfers the contents of other into a. Afterwards other is empty
// and may be reused; no heap storage is shared between the two.
func (a *DimensionArray[T]) MoveFrom(other *DimensionArray[T]) {
	if a == other {
		return
	}
	a.size = other.size
	a.heap = other.heap
	a.static = other.static
	var zero [StaticSize]T
	other.static = zero
	other.heap = nil
	other.size = 0
}

// Equal reports whether both arrays have the same length and elements.
func (a *DimensionArray[T]) Equal(other *DimensionArray[T]) bool {
	if a.size != other.size {
		return false
	}
	lhs, rhs := a.Slice(), other.Slice()
	for i := range lhs {
		if lhs[i] != rhs[i] {
			return false
		}
	}
	return true
}

// NotEqual is the negation of Equal.
func (a *DimensionArray[T]) NotEqual(other *DimensionArray[T]) bool {
	return !a.Equal(other)
}

// EqualSlice reports whether the array holds exactly the elements of s.
func (a *DimensionArray[T]) EqualSlice(s []T) bool {
	if a.size != len(s) {
		return false
	}
	for i, v := range a.Slice() {
		if v != s[i] {
			return false
		}
	}
	return true
}

// String formats the array as "{a, b, c}".
func (a *DimensionArray[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range a.Slice() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Sort orders the elements of a from smallest to largest.
//
// Insertion sort: arrays are expected to be short, and it needs no extra
// storage.
func Sort[T cmp.Ordered](a *DimensionArray[T]) {
	s := a.Slice()
	for i := 1; i < len(s); i++ {
		elem := s[i]
		j := i
		for j > 0 && s[j-1] > elem {
			s[j] = s[j-1]
			j--
		}
		s[j] = elem
	}
}

// SortWith orders a from smallest to largest and applies the same
// permutation to other, so that pairs (a[i], other[i]) stay together.
// It panics if the lengths differ.
func SortWith[T cmp.Ordered, S comparable](a *DimensionArray[T], other *DimensionArray[S]) {
	if a.Len() != other.Len() {
		panic(errs.Assertion(errs.ArraySizesDontMatch))
	}
	s, o := a.Slice(), other.Slice()
	for i := 1; i < len(s); i++ {
		elem, oelem := s[i], o[i]
		j := i
		for j > 0 && s[j-1] > elem {
			s[j] = s[j-1]
			o[j] = o[j-1]
			j--
		}
		s[j] = elem
		o[j] = oelem
	}
}

// Number is the set of element types the arithmetic helpers accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Product returns the product of all elements (1 for an empty array).
func Product[T Number](a *DimensionArray[T]) T {
	var p T = 1
	for _, v := range a.Slice() {
		p *= v
	}
	return p
}

// Sum returns the sum of all elements.
func Sum[T Number](a *DimensionArray[T]) T {
	var s T
	for _, v := range a.Slice() {
		s += v
	}
	return s
}
