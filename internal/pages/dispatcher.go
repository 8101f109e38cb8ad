package pages

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of names resolved at once.
const DefaultConcurrency = 5

// NameOpener opens the page of one package name.
type NameOpener interface {
	Open(executionContext context.Context, packageName string, selection Selection) error
}

// Dispatcher fans package names out to a NameOpener.
type Dispatcher struct {
	opener      NameOpener
	concurrency int
}

// NewDispatcher constructs a Dispatcher. A non-positive concurrency selects DefaultConcurrency.
func NewDispatcher(opener NameOpener, concurrency int) *Dispatcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Dispatcher{opener: opener, concurrency: concurrency}
}

// Dispatch starts names in order, at most concurrency at a time, and returns the first error.
// Once an operation fails no further names are started; operations already running are not cancelled.
func (dispatcher *Dispatcher) Dispatch(executionContext context.Context, packageNames []string, selection Selection) error {
	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(dispatcher.concurrency)

	for _, packageName := range packageNames {
		if groupContext.Err() != nil {
			break
		}
		group.Go(func() error {
			// A slot may free up after a sibling failed.
			if groupContext.Err() != nil {
				return nil
			}
			return dispatcher.opener.Open(executionContext, packageName, selection)
		})
	}

	if waitError := group.Wait(); waitError != nil {
		return waitError
	}
	return executionContext.Err()
}
