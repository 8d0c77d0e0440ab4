package appendlist

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// checkInvariants panics when the chunk layout disagrees with the length.
// It is a no-op unless built with the appendlist_invariants tag.
func (l *List[T]) checkInvariants() {
	if !invariantChecks {
		return
	}

	if err := l.verifyLayout(); err != nil {
		panic(fmt.Sprintf("appendlist: internal invariant violated: %v", err))
	}
}

// verifyLayout compares the physical chunks with what the layout arithmetic
// predicts for the current length and returns every mismatch.
func (l *List[T]) verifyLayout() error {
	errs := new(multierror.Error)

	if l.length == 0 {
		if len(l.chunks) != 0 {
			errs.Errors = append(errs.Errors, fmt.Errorf("empty list holds %d chunks", len(l.chunks)))
		}

		return errs.ErrorOrNil()
	}

	if expected := l.layout.indexChunk(l.length-1) + 1; expected != len(l.chunks) {
		errs.Errors = append(errs.Errors,
			fmt.Errorf("length %d needs %d chunks but %d are allocated", l.length, expected, len(l.chunks)))

		// the remaining checks index chunks by id
		return errs.ErrorOrNil()
	}

	last := len(l.chunks) - 1
	for id, chunk := range l.chunks {
		size := l.layout.chunkSize(id)
		if cap(chunk) < size {
			errs.Errors = append(errs.Errors,
				fmt.Errorf("chunk %d has capacity %d, needs %d", id, cap(chunk), size))
		}

		if id < last && len(chunk) != size {
			errs.Errors = append(errs.Errors,
				fmt.Errorf("chunk %d is not the last one but holds %d of %d elements", id, len(chunk), size))
		}
	}

	if fill, expected := len(l.chunks[last]), l.length-l.layout.chunkStart(last); fill != expected {
		errs.Errors = append(errs.Errors,
			fmt.Errorf("last chunk %d holds %d elements, length %d implies %d", last, fill, l.length, expected))
	}

	return errs.ErrorOrNil()
}

func invariantViolation(format string, args ...any) {
	panic("appendlist: internal invariant violated: " + fmt.Sprintf(format, args...))
}
