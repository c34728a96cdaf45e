package buffer

import (
	"gomokuzero/utils"

	"golang.org/x/exp/rand"
)

// Ring is a bounded FIFO store. Once full, every insertion evicts the oldest
// item. It is not safe for concurrent use.
type Ring[T any] struct {
	items []T
	head  int // index of the oldest item once the ring is full
	size  int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("ring capacity must be positive")
	}
	return &Ring[T]{items: make([]T, capacity)}
}

func (r *Ring[T]) Len() int {
	return r.size
}

func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Extend appends items in order, evicting the oldest ones beyond capacity.
func (r *Ring[T]) Extend(items ...T) {
	for _, item := range items {
		if r.size < len(r.items) {
			r.items[(r.head+r.size)%len(r.items)] = item
			r.size++
			continue
		}
		r.items[r.head] = item
		r.head = (r.head + 1) % len(r.items)
	}
}

func (r *Ring[T]) at(i int) T {
	return r.items[(r.head+i)%len(r.items)]
}

// Items returns a copy of the contents, oldest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.size)
	for i := range out {
		out[i] = r.at(i)
	}
	return out
}

// Sample draws k distinct items uniformly at random. Asking for more items
// than the ring holds is a contract violation.
func (r *Ring[T]) Sample(k int, rng *rand.Rand) ([]T, error) {
	if k < 0 || k > r.size {
		return nil, utils.Violation("cannot sample %d items from a buffer of %d", k, r.size)
	}

	// Partial Fisher-Yates over the logical indices
	indices := make([]int, r.size)
	for i := range indices {
		indices[i] = i
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(r.size-i)
		indices[i], indices[j] = indices[j], indices[i]
		out[i] = r.at(indices[i])
	}
	return out, nil
}
