// Package enrich places candidate locations relative to a reference point.
// Work is expressed as stages of steps: steps in a stage run concurrently on
// the same item and the stage completes only when every step has settled.
package enrich

import (
	"context"
)

// Step is a single enrichment operation that mutates the given item.
// Steps in the same stage run concurrently, so they must write to disjoint
// parts of the item. A failing step returns an error; the pipeline logs it
// and carries on.
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for a single item.
type Stage[T any] struct {
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
func NewStage[T any](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}
