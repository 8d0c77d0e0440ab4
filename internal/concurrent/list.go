package concurrent

import (
	"sync"

	"appendlist"
)

// List guards an appendlist.List so several goroutines may push and read at
// once. Pointers returned by Push and Get may be read without the lock:
// a push only writes to slots no pointer refers to yet.
type List[T any] struct {
	mutex sync.RWMutex
	items *appendlist.List[T]
}

func NewList[T any]() *List[T] {
	return &List[T]{items: appendlist.New[T]()}
}

func NewListSized[T any](firstChunkSize int) (*List[T], error) {
	items, err := appendlist.NewSized[T](firstChunkSize)
	if err != nil {
		return nil, err
	}

	return &List[T]{items: items}, nil
}

func (list *List[T]) Push(item T) *T {
	list.mutex.Lock()
	defer list.mutex.Unlock()

	return list.items.Push(item)
}

// Extend pushes all items as one contiguous run.
func (list *List[T]) Extend(items []T) {
	list.mutex.Lock()
	defer list.mutex.Unlock()

	list.items.Extend(items...)
}

func (list *List[T]) Get(index int) (*T, bool) {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	return list.items.Get(index)
}

func (list *List[T]) Len() int {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	return list.items.Len()
}

func (list *List[T]) Chunks() []appendlist.ChunkInfo {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	return list.items.Chunks()
}

// Items copies the current elements out.
func (list *List[T]) Items() []T {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	return list.items.Clone()
}

// Unwrap hands out the wrapped list. Callers must ensure no Push runs
// concurrently with their use of it.
func (list *List[T]) Unwrap() *appendlist.List[T] {
	return list.items
}
