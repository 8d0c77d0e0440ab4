package appendlist

import "iter"

// Iterator is a forward cursor over a List. Elements pushed after the
// iterator was created are visited too, as long as the cursor has not yet
// reported the end of the list.
type Iterator[T any] struct {
	list  *List[T]
	index int
}

// Iter returns a new cursor positioned before the first element.
func (l *List[T]) Iter() *Iterator[T] {
	l.checkInvariants()

	return &Iterator[T]{list: l}
}

// Next returns the next element, or false once every element currently in
// the list was visited. A later Push makes Next return elements again.
func (it *Iterator[T]) Next() (*T, bool) {
	item, ok := it.list.Get(it.index)
	if ok {
		it.index++
	}

	return item, ok
}

// Remaining is the exact number of elements Next would still return if the
// list did not grow.
func (it *Iterator[T]) Remaining() int {
	return it.list.Len() - it.index
}

// All yields index and element pairs in insertion order.
func (l *List[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		it := l.Iter()
		for {
			index := it.index
			item, ok := it.Next()
			if !ok || !yield(index, item) {
				return
			}
		}
	}
}

// Values yields the elements in insertion order.
func (l *List[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		it := l.Iter()
		for item, ok := it.Next(); ok; item, ok = it.Next() {
			if !yield(item) {
				return
			}
		}
	}
}
