// Package report implements execution report sinks: the CSV output contract,
// a pebble-backed archive, an optional Kafka publisher, and fan-out plumbing.
package report

import (
	"sync"

	"github.com/petalex/engine/pkg/exchange"
)

// Sink consumes the execution report stream. Write is always called
// sequentially, in emission order; Close flushes and releases resources.
type Sink interface {
	Write(rep *exchange.ExecutionReport) error
	Close() error
}

// MultiSink fans every report out to each child in order. A write error
// stops the fan-out so the stream's prefix stays consistent across sinks.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Write(rep *exchange.ExecutionReport) error {
	for _, s := range m.sinks {
		if err := s.Write(rep); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// MemorySink captures reports in process, for tests and the API's recent
// view. Reads may happen concurrently with the engine's writes.
type MemorySink struct {
	mu      sync.RWMutex
	reports []exchange.ExecutionReport
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) Write(rep *exchange.ExecutionReport) error {
	m.mu.Lock()
	m.reports = append(m.reports, *rep)
	m.mu.Unlock()
	return nil
}

func (m *MemorySink) Close() error { return nil }

// Reports returns a copy of everything captured so far.
func (m *MemorySink) Reports() []exchange.ExecutionReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]exchange.ExecutionReport, len(m.reports))
	copy(out, m.reports)
	return out
}

// Recent returns up to limit reports, newest first.
func (m *MemorySink) Recent(limit int) ([]exchange.ExecutionReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit > len(m.reports) {
		limit = len(m.reports)
	}
	out := make([]exchange.ExecutionReport, 0, limit)
	for i := len(m.reports) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.reports[i])
	}
	return out, nil
}
