package engine

import (
	"fmt"
	"math/rand"
)

// Array is the sequence of values being sorted. Swap is the only mutation.
type Array []int

// NewRandom fills size slots with independent uniform values in [minVal, maxVal].
func NewRandom(rnd *rand.Rand, size, minVal, maxVal int) (Array, error) {
	if size < 0 {
		return nil, fmt.Errorf("size must be >= 0, got %d", size)
	}
	if minVal > maxVal {
		return nil, fmt.Errorf("min %d is greater than max %d", minVal, maxVal)
	}
	arr := make(Array, size)
	span := maxVal - minVal + 1
	for i := range arr {
		arr[i] = minVal + rnd.Intn(span)
	}
	return arr, nil
}

// Len returns the number of values.
func (a Array) Len() int {
	return len(a)
}

// At returns the value at index i.
func (a Array) At(i int) (int, error) {
	if i < 0 || i >= len(a) {
		return 0, indexError(i, len(a))
	}
	return a[i], nil
}

// Swap exchanges positions i and j in place.
func (a Array) Swap(i, j int) error {
	if i < 0 || i >= len(a) {
		return indexError(i, len(a))
	}
	if j < 0 || j >= len(a) {
		return indexError(j, len(a))
	}
	a[i], a[j] = a[j], a[i]
	return nil
}

// Clone returns an independent copy.
func (a Array) Clone() Array {
	if a == nil {
		return nil
	}
	out := make(Array, len(a))
	copy(out, a)
	return out
}

// IsSorted reports whether the values are in non-decreasing order.
// The simulation never uses it to decide termination.
func (a Array) IsSorted() bool {
	for k := 0; k+1 < len(a); k++ {
		if a[k] > a[k+1] {
			return false
		}
	}
	return true
}
