package promise

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Promise holds the outcome of an effect running on its own goroutine.
type Promise[T any] struct {
	err   error
	value T
	wg    *sync.WaitGroup
}

func New[T any](effect func() (T, error)) *Promise[T] {
	return NewWithGroup(&errgroup.Group{}, effect)
}

// NewWithGroup schedules effect on group, so the group's limit bounds how
// many effects run at once. It blocks while the group is at its limit.
func NewWithGroup[T any](group *errgroup.Group, effect func() (T, error)) *Promise[T] {
	wg := &sync.WaitGroup{}
	wg.Add(1)
	promise := &Promise[T]{wg: wg}
	group.Go(func() error {
		defer promise.wg.Done()

		value, err := effect()
		if err != nil {
			promise.err = err
			return err
		}

		promise.value = value
		return nil
	})

	return promise
}

func (promise *Promise[T]) Wait() (T, error) {
	promise.wg.Wait()
	return promise.value, promise.err
}

// Wait returns the values in order or the first error found.
func Wait[T any](promises ...*Promise[T]) ([]T, error) {
	result := make([]T, len(promises))
	for index, p := range promises {
		v, err := p.Wait()
		if err != nil {
			return nil, err
		}

		result[index] = v
	}

	return result, nil
}

// Settle waits for every promise. Values of failed promises are left as zero
// values and all errors are returned together.
func Settle[T any](promises ...*Promise[T]) ([]T, error) {
	result := make([]T, len(promises))
	var errs *multierror.Error
	for index, p := range promises {
		v, err := p.Wait()
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		result[index] = v
	}

	return result, errs.ErrorOrNil()
}
