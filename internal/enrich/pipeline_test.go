package enrich

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type PipelineItem struct {
	mu      sync.Mutex
	Results map[string]any
}

func NewPipelineItem() *PipelineItem {
	return &PipelineItem{Results: make(map[string]any)}
}

func (p *PipelineItem) set(key string, val any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Results[key] = val
}

func StepAddValue(key string, val any) Step[PipelineItem] {
	return func(ctx context.Context, item *PipelineItem) error {
		item.set(key, val)
		return nil
	}
}

func StepError(_ context.Context, _ *PipelineItem) error {
	return errors.New("mock step failed")
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name       string
		stages     []Stage[PipelineItem]
		expected   map[string]any
		wantFailed int
	}{
		{
			name:     "single step",
			stages:   []Stage[PipelineItem]{NewStage(StepAddValue("foo", "bar"))},
			expected: map[string]any{"foo": "bar"},
		},
		{
			name: "two steps in one stage run in parallel",
			stages: []Stage[PipelineItem]{
				NewStage(StepAddValue("x", 1), StepAddValue("y", 2)),
			},
			expected: map[string]any{"x": 1, "y": 2},
		},
		{
			name: "multi-stage sequential dependency",
			stages: []Stage[PipelineItem]{
				NewStage(StepAddValue("a", "first")),
				NewStage(func(_ context.Context, item *PipelineItem) error {
					item.mu.Lock()
					defer item.mu.Unlock()
					item.Results["b"] = item.Results["a"].(string) + "+second"
					return nil
				}),
			},
			expected: map[string]any{"a": "first", "b": "first+second"},
		},
		{
			name: "step error does not break pipeline",
			stages: []Stage[PipelineItem]{
				NewStage(StepError, StepAddValue("same-stage", true)),
				NewStage(StepAddValue("ok", true)),
			},
			expected:   map[string]any{"same-stage": true, "ok": true},
			wantFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			item := NewPipelineItem()
			failed := NewPipeline(tt.stages...).Run(ctx, item)

			if !reflect.DeepEqual(item.Results, tt.expected) {
				t.Errorf("got %+v, expected %+v", item.Results, tt.expected)
			}
			if failed != tt.wantFailed {
				t.Errorf("failed = %d, expected %d", failed, tt.wantFailed)
			}
		})
	}
}
