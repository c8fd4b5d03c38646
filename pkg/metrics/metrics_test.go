package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMetrics_CountsAndPassRate(t *testing.T) {
	m := NewRunMetrics()

	m.Record("a", "Easy", OutcomePassed, 100*time.Millisecond)
	m.Record("b", "Easy", OutcomeFailed, 200*time.Millisecond)
	m.Record("c", "Hard", OutcomePassed, 300*time.Millisecond)
	m.Record("d", "Hard", OutcomeErrored, 50*time.Millisecond)

	assert.Equal(t, 1, m.Count("Easy", OutcomePassed))
	assert.Equal(t, 1, m.Count("Easy", OutcomeFailed))
	assert.Equal(t, 0, m.Count("Medium", OutcomePassed))

	assert.InDelta(t, 0.5, m.PassRate("Easy"), 1e-9)
	assert.InDelta(t, 0.5, m.PassRate("Hard"), 1e-9)
	assert.Zero(t, m.PassRate("Medium"))
}

func TestRunMetrics_Durations(t *testing.T) {
	m := NewRunMetrics()

	m.Record("a", "Easy", OutcomePassed, 100*time.Millisecond)
	m.Record("b", "Hard", OutcomeFailed, 400*time.Millisecond)

	d, ok := m.Duration("b")
	require.True(t, ok)
	assert.Equal(t, 400*time.Millisecond, d)

	_, ok = m.Duration("missing")
	assert.False(t, ok)

	assert.Equal(t, 500*time.Millisecond, m.TotalDuration())

	id, max, ok := m.Slowest()
	require.True(t, ok)
	assert.EqualValues(t, "b", id)
	assert.Equal(t, 400*time.Millisecond, max)
}

func TestRunMetrics_EmptySlowest(t *testing.T) {
	_, _, ok := NewRunMetrics().Slowest()
	assert.False(t, ok)
}
