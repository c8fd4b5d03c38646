package monitor

import (
	"sync"
	"time"

	"digital.vasic.gauntlet/pkg/challenge"
)

// Collector captures evaluation events and aggregate statistics.
// It is safe for concurrent use; handlers run on the emitting
// goroutine.
type Collector struct {
	mu       sync.RWMutex
	events   []Event
	handlers []func(Event)
	stats    Stats
}

// Stats holds aggregate run statistics.
type Stats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Errored   int           `json:"errored"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		events: make([]Event, 0, 64),
		stats:  Stats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler called for each emitted event.
func (c *Collector) OnEvent(handler func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *Collector) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	switch event.Type {
	case EventPassed:
		c.stats.Total++
		c.stats.Passed++
	case EventFailed:
		c.stats.Total++
		c.stats.Failed++
	case EventErrored:
		c.stats.Total++
		c.stats.Errored++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitStarted emits a challenge started event.
func (c *Collector) EmitStarted(
	id challenge.ID, name string,
) {
	c.Emit(Event{
		Type:        EventStarted,
		ChallengeID: id,
		Name:        name,
	})
}

// EmitResult emits the terminal event for one evaluation row.
// errored distinguishes rows that failed to evaluate from rows
// that evaluated to a wrong answer.
func (c *Collector) EmitResult(
	res challenge.EvaluationResult, errored bool,
) {
	eventType := EventFailed
	switch {
	case errored:
		eventType = EventErrored
	case res.Correct:
		eventType = EventPassed
	}

	c.Emit(Event{
		Type:        eventType,
		ChallengeID: res.ChallengeID,
		Name:        res.Name,
		Difficulty:  res.Difficulty,
		Matching:    res.Matching,
		Expected:    res.ExpectedCount,
	})
}

// Events returns a copy of all recorded events.
func (c *Collector) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Snapshot returns the current aggregate statistics.
func (c *Collector) Snapshot() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
