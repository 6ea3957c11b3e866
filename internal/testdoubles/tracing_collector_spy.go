package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// SpanSpy implements eventstore.SpanContext.
type SpanSpy struct {
	Name       string
	Status     string
	Attributes map[string]string
	Finished   bool
	mu         sync.Mutex
}

func (s *SpanSpy) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = status
}

func (s *SpanSpy) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attributes[key] = value
}

// TracingCollectorSpy implements eventstore.TracingCollector and keeps every started span.
type TracingCollectorSpy struct {
	spans []*SpanSpy
	mu    sync.Mutex
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (t *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	span := &SpanSpy{Name: name, Attributes: maps.Clone(attrs)}
	if span.Attributes == nil {
		span.Attributes = make(map[string]string)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = append(t.spans, span)

	return ctx, span
}

func (t *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpanSpy)
	if !ok {
		return
	}

	span.mu.Lock()
	defer span.mu.Unlock()
	span.Status = status
	span.Finished = true
	for k, v := range attrs {
		span.Attributes[k] = v
	}
}

// Spans returns all started spans in start order.
func (t *TracingCollectorSpy) Spans() []*SpanSpy {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]*SpanSpy(nil), t.spans...)
}
