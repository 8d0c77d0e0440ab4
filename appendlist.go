package appendlist

import (
	"errors"
	"fmt"
)

// ErrChunkSize is returned by NewSized for a first chunk size that is not a
// positive power of two.
var ErrChunkSize = errors.New("first chunk size must be a positive power of two")

// List is an append-only sequence whose elements never move once pushed.
//
// Elements live in chunks. A chunk is allocated once with its final capacity
// and is only ever appended to within that capacity, so the backing array of
// a chunk is never reallocated and a pointer to one of its elements stays
// valid for the lifetime of the list. Chunk i holds firstChunkSize << i
// elements, which keeps the number of chunks logarithmic in the length and
// makes both Push and Get O(1) without amortization.
//
// The zero value is an empty list using DefaultFirstChunkSize.
//
// A List has a single logical writer: Push may be called while pointers
// returned by earlier Push, Get or At calls are held and read, but concurrent
// Push calls (or a Push concurrent with reads from another goroutine) need
// external synchronization.
type List[T any] struct {
	layout layout
	chunks [][]T
	length int
}

// ChunkInfo describes the physical state of one chunk.
type ChunkInfo struct {
	ID       int
	Start    int
	Capacity int
	Len      int
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// NewSized creates an empty list whose first chunk holds firstChunkSize
// elements.
func NewSized[T any](firstChunkSize int) (*List[T], error) {
	if !isPowerOfTwo(firstChunkSize) {
		return nil, fmt.Errorf("%w: got %d", ErrChunkSize, firstChunkSize)
	}

	return &List[T]{layout: layout{first: firstChunkSize}}, nil
}

// Push appends item and returns a pointer to the stored element. The pointer
// stays valid, and keeps referring to the same element, no matter how many
// elements are pushed afterwards.
func (l *List[T]) Push(item T) *T {
	l.checkInvariants()

	id := l.layout.indexChunk(l.length)

	if id < len(l.chunks) {
		if invariantChecks && id != len(l.chunks)-1 {
			invariantViolation("push into chunk %d while the last chunk is %d", id, len(l.chunks)-1)
		}
	} else {
		if invariantChecks && id != len(l.chunks) {
			invariantViolation("push allocates chunk %d after %d chunks", id, len(l.chunks))
		}

		// the directory may grow, the chunk itself never will
		l.chunks = append(l.chunks, make([]T, 0, l.layout.chunkSize(id)))
	}

	chunk := &l.chunks[id]
	capacity := cap(*chunk)
	*chunk = append(*chunk, item)
	l.length++

	if invariantChecks && cap(*chunk) != capacity {
		invariantViolation("chunk %d reallocated from capacity %d to %d", id, capacity, cap(*chunk))
	}

	l.checkInvariants()

	return &(*chunk)[len(*chunk)-1]
}

// Extend pushes every item in order.
func (l *List[T]) Extend(items ...T) {
	for _, item := range items {
		l.Push(item)
	}
}

// Len returns the number of elements ever pushed.
func (l *List[T]) Len() int {
	l.checkInvariants()

	return l.length
}

// Get returns a pointer to the element at index, or false when index is out
// of range.
func (l *List[T]) Get(index int) (*T, bool) {
	if index < 0 || index >= l.Len() {
		return nil, false
	}

	id := l.layout.indexChunk(index)
	return &l.chunks[id][index-l.layout.chunkStart(id)], true
}

// At is like Get but panics when index is out of range.
func (l *List[T]) At(index int) *T {
	item, ok := l.Get(index)
	if !ok {
		panic(fmt.Sprintf("appendlist: index out of range [%d] with length %d", index, l.length))
	}

	return item
}

// FirstChunkSize returns the capacity of the list's first chunk.
func (l *List[T]) FirstChunkSize() int {
	return l.layout.firstSize()
}

// Chunks reports the physical layout of the list, one entry per allocated
// chunk in creation order.
func (l *List[T]) Chunks() []ChunkInfo {
	result := make([]ChunkInfo, len(l.chunks))
	for id, chunk := range l.chunks {
		result[id] = ChunkInfo{
			ID:       id,
			Start:    l.layout.chunkStart(id),
			Capacity: cap(chunk),
			Len:      len(chunk),
		}
	}

	return result
}
