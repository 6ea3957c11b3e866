package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MetricRecord is one captured metrics call.
type MetricRecord struct {
	Kind     string
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// MetricsCollectorSpy implements eventstore.ContextualMetricsCollector and captures every call.
type MetricsCollectorSpy struct {
	records []MetricRecord
	mu      sync.Mutex
}

func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (c *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	c.record(MetricRecord{Kind: "duration", Metric: metric, Duration: duration, Labels: labels})
}

func (c *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	c.record(MetricRecord{Kind: "counter", Metric: metric, Labels: labels})
}

func (c *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	c.record(MetricRecord{Kind: "value", Metric: metric, Value: value, Labels: labels})
}

func (c *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	c.RecordDuration(metric, duration, labels)
}

func (c *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	c.IncrementCounter(metric, labels)
}

func (c *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	c.RecordValue(metric, value, labels)
}

func (c *MetricsCollectorSpy) record(r MetricRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r.Labels = maps.Clone(r.Labels)
	c.records = append(c.records, r)
}

// Records returns the captured calls for metric.
func (c *MetricsCollectorSpy) Records(metric string) []MetricRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := make([]MetricRecord, 0)
	for _, r := range c.records {
		if r.Metric == metric {
			found = append(found, r)
		}
	}

	return found
}
