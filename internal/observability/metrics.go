package observability

import (
	"sync"
)

// Metrics provides basic in-memory counters for store operations.
type Metrics struct {
	mu         sync.Mutex
	opCount    map[string]int64
	errorCount map[string]int64
	eventCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		opCount:    make(map[string]int64),
		errorCount: make(map[string]int64),
		eventCount: make(map[string]int64),
	}
}

// RecordOp increments the counter for a successful store operation.
func (m *Metrics) RecordOp(store, op string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opCount[store+"|"+op]++
}

// RecordError increments error counters by store, operation and error code.
func (m *Metrics) RecordError(store, op, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[store+"|"+op+"|"+code]++
}

// RecordEvent increments the counter for a published domain event.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventCount[eventType]++
}

// OpCount returns the counter for a store operation.
func (m *Metrics) OpCount(store, op string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opCount[store+"|"+op]
}

// ErrorCount returns the counter for an error key.
func (m *Metrics) ErrorCount(store, op, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[store+"|"+op+"|"+code]
}

// Snapshot copies all counters for reporting.
func (m *Metrics) Snapshot() (ops, errors, events map[string]int64) {
	ops = map[string]int64{}
	errors = map[string]int64{}
	events = map[string]int64{}
	if m == nil {
		return ops, errors, events
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.opCount {
		ops[k] = v
	}
	for k, v := range m.errorCount {
		errors[k] = v
	}
	for k, v := range m.eventCount {
		events[k] = v
	}
	return ops, errors, events
}
