package enrich

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Pipeline applies a sequence of stages to items. Stages run one after the
// other; the steps of one stage run in parallel.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Run applies every stage to item and returns the number of failed steps.
// Failures never abort the run.
func (p *Pipeline[T]) Run(ctx context.Context, item *T) int {
	var mu sync.Mutex
	failed := 0
	for _, stage := range p.stages {
		var wg sync.WaitGroup
		for _, step := range stage.steps {
			wg.Add(1)
			go func(step Step[T]) {
				defer wg.Done()
				if err := step(ctx, item); err != nil {
					log.WithError(err).Debug("enrichment step failed")
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}(step)
		}
		wg.Wait() // stage barrier
	}
	return failed
}
