// Package metrics aggregates timing and outcome counts for a
// gauntlet run, broken down by difficulty tier.
package metrics

import (
	"sync"
	"time"

	"digital.vasic.gauntlet/pkg/challenge"
)

// RunMetrics collects per-challenge evaluation metrics. It is
// safe for concurrent use.
type RunMetrics struct {
	mu        sync.RWMutex
	outcomes  map[string]int
	durations map[challenge.ID]time.Duration
	total     time.Duration
}

// Outcome labels used in counter keys.
const (
	OutcomePassed  = "passed"
	OutcomeFailed  = "failed"
	OutcomeErrored = "errored"
)

// NewRunMetrics creates an empty metrics collector.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		outcomes:  make(map[string]int),
		durations: make(map[challenge.ID]time.Duration),
	}
}

// Record registers one evaluated challenge. The outcome is one
// of the Outcome constants; difficulty is the display tier name.
func (m *RunMetrics) Record(
	id challenge.ID,
	difficulty, outcome string,
	duration time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[difficulty+":"+outcome]++
	m.durations[id] = duration
	m.total += duration
}

// Count returns the number of evaluations recorded for a
// difficulty and outcome pair.
func (m *RunMetrics) Count(difficulty, outcome string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.outcomes[difficulty+":"+outcome]
}

// PassRate returns the fraction of recorded evaluations at the
// given difficulty that passed. Zero recorded evaluations yield
// a zero rate.
func (m *RunMetrics) PassRate(difficulty string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	passed := m.outcomes[difficulty+":"+OutcomePassed]
	total := passed +
		m.outcomes[difficulty+":"+OutcomeFailed] +
		m.outcomes[difficulty+":"+OutcomeErrored]
	if total == 0 {
		return 0
	}
	return float64(passed) / float64(total)
}

// Duration returns the recorded evaluation duration for one
// challenge.
func (m *RunMetrics) Duration(
	id challenge.ID,
) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.durations[id]
	return d, ok
}

// TotalDuration returns the summed evaluation time for the run.
func (m *RunMetrics) TotalDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}

// Slowest returns the challenge with the longest recorded
// evaluation, or false when nothing has been recorded.
func (m *RunMetrics) Slowest() (challenge.ID, time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		slowest challenge.ID
		max     time.Duration
		found   bool
	)
	for id, d := range m.durations {
		if !found || d > max {
			slowest, max, found = id, d, true
		}
	}
	return slowest, max, found
}
