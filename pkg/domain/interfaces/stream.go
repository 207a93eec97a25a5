package interfaces

import "context"

// UpdateStream turns repeated fetches of one source into at-most-once change notifications.
//
// Poll performs exactly one fetch cycle. It returns (nil, nil) when nothing changed, including
// the first call which only records a baseline, and a non-nil item exactly once per new item.
// On error the stream state is left untouched, so the next call behaves as if the failed one
// never happened. Implementations do no locking: at most one Poll may be in flight per stream.
type UpdateStream[T any] interface {
	Poll(ctx context.Context) (*T, error)
}
