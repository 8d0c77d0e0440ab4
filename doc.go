// Package appendlist provides List, an append-only sequence that can be
// pushed to while pointers to its elements are held.
//
// A growable slice cannot give that guarantee: append may move the backing
// array and any *T taken from the old one silently stops observing the list.
// List never moves an element once stored, so the pointer returned by Push
// (or by Get and At) is the element for as long as the list exists:
//
//	list := appendlist.New[int]()
//	first := list.Push(1)
//	for i := 2; i <= 1000; i++ {
//		list.Push(i)
//	}
//	fmt.Println(first == list.At(0)) // true
//
// Building with the appendlist_invariants tag checks the chunk layout before
// and after every Push and on every Len, and panics on any inconsistency.
package appendlist
