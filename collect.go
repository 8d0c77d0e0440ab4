package appendlist

import (
	"fmt"
	"iter"
	"strings"
)

// From builds a list holding items in order.
func From[T any](items ...T) *List[T] {
	list := New[T]()
	list.Extend(items...)
	return list
}

// Collect pushes every value of seq into a new list.
func Collect[T any](seq iter.Seq[T]) *List[T] {
	list := New[T]()
	for item := range seq {
		list.Push(item)
	}

	return list
}

// Equal reports whether both lists hold equal elements in the same order.
func Equal[T comparable](a, b *List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T, U any](a *List[T], b *List[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}

	left, right := a.Iter(), b.Iter()
	for {
		x, okX := left.Next()
		y, okY := right.Next()
		switch {
		case !okX && !okY:
			return true
		case okX != okY || !eq(*x, *y):
			return false
		}
	}
}

// Clone copies the elements into a new slice.
func (l *List[T]) Clone() []T {
	result := make([]T, 0, l.Len())
	for _, chunk := range l.chunks {
		result = append(result, chunk...)
	}

	return result
}

// String renders the list like fmt renders a slice.
func (l *List[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for index, item := range l.All() {
		if index > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, *item)
	}
	sb.WriteByte(']')

	return sb.String()
}
