package eval

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.gauntlet/pkg/challenge"
	"digital.vasic.gauntlet/pkg/metrics"
	"digital.vasic.gauntlet/pkg/monitor"
	"digital.vasic.gauntlet/pkg/truth"
)

// stubEngine returns a fixed sequence or a fixed error.
type stubEngine struct {
	starts []string
	err    error
	calls  int
}

func (s *stubEngine) Expand(
	ctx context.Context, req truth.ExpandRequest,
) ([]truth.Occurrence, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]truth.Occurrence, len(s.starts))
	for i, start := range s.starts {
		out[i] = truth.Occurrence{Start: start}
	}
	return out, nil
}

// stubAgent returns scripted responses keyed by the challenge
// name embedded in the user prompt.
type stubAgent struct {
	responses map[string]string
	errs      map[string]error
	calls     int
}

func (s *stubAgent) Complete(
	ctx context.Context, system, user string,
) (string, error) {
	s.calls++
	for name, err := range s.errs {
		if containsName(user, name) {
			return "", err
		}
	}
	for name, resp := range s.responses {
		if containsName(user, name) {
			return resp, nil
		}
	}
	return "[]", nil
}

func containsName(user, name string) bool {
	return strings.Contains(user, "Challenge: "+name+"\n")
}

func precomputedChallenge(
	t *testing.T, id, name string, answer []string,
) challenge.Challenge {
	t.Helper()
	gt, err := challenge.Precomputed(answer)
	require.NoError(t, err)
	return challenge.Challenge{
		ID:              challenge.ID(id),
		Name:            name,
		Question:        "When does the event occur?",
		RRule:           "FREQ=DAILY;COUNT=3",
		DTStart:         "2026-01-05T09:00:00",
		Timezone:        "UTC",
		DurationMinutes: 30,
		Difficulty:      challenge.DifficultyEasy,
		Truth:           gt,
	}
}

var seq = []string{
	"2026-01-05T09:00:00+00:00",
	"2026-01-06T09:00:00+00:00",
	"2026-01-07T09:00:00+00:00",
}

func TestRunner_CorrectAnswer(t *testing.T) {
	c := precomputedChallenge(t, "daily", "Daily Drill", seq)
	ag := &stubAgent{responses: map[string]string{
		"Daily Drill": `["2026-01-05T09:00:00Z",` +
			`"2026-01-06T09:00:00Z",` +
			`"2026-01-07T09:00:00Z"]`,
	}}

	runner := NewRunner(
		truth.NewResolver(&stubEngine{}), ag,
		WithModel("gpt-4o"), WithProvider("openai"),
	)
	report := runner.Run(
		context.Background(), []challenge.Challenge{c},
	)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.True(t, res.Correct)
	assert.Equal(t, 3, res.Matching)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Extra)
	assert.Equal(t, "1/1", report.Score)
}

func TestRunner_FencedResponseParsed(t *testing.T) {
	c := precomputedChallenge(t, "daily", "Daily Drill", seq)
	ag := &stubAgent{responses: map[string]string{
		"Daily Drill": "Here is my answer:\n```json\n" +
			`["2026-01-05T09:00:00+00:00",` +
			`"2026-01-06T09:00:00+00:00",` +
			`"2026-01-07T09:00:00+00:00"]` +
			"\n```\nLet me know if you need more.",
	}}

	runner := NewRunner(truth.NewResolver(&stubEngine{}), ag)
	report := runner.Run(
		context.Background(), []challenge.Challenge{c},
	)

	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Correct)
}

func TestRunner_PermutedAnswerFails(t *testing.T) {
	c := precomputedChallenge(t, "daily", "Daily Drill", seq)
	ag := &stubAgent{responses: map[string]string{
		"Daily Drill": `["2026-01-07T09:00:00+00:00",` +
			`"2026-01-06T09:00:00+00:00",` +
			`"2026-01-05T09:00:00+00:00"]`,
	}}

	runner := NewRunner(truth.NewResolver(&stubEngine{}), ag)
	report := runner.Run(
		context.Background(), []challenge.Challenge{c},
	)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.False(t, res.Correct)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Extra)
	assert.Equal(t, "0/1", report.Score)
}

func TestRunner_BatchIsolation(t *testing.T) {
	a := precomputedChallenge(t, "a", "Alpha", seq[:1])
	b := precomputedChallenge(t, "b", "Bravo", seq[:2])
	c := precomputedChallenge(t, "c", "Charlie", seq)

	ag := &stubAgent{
		responses: map[string]string{
			"Alpha":   `["2026-01-05T09:00:00+00:00"]`,
			"Charlie": `["2026-01-05T09:00:00+00:00","2026-01-06T09:00:00+00:00","2026-01-07T09:00:00+00:00"]`,
		},
		errs: map[string]error{
			"Bravo": errors.New("rate limited"),
		},
	}

	collector := monitor.NewCollector()
	runMetrics := metrics.NewRunMetrics()
	runner := NewRunner(
		truth.NewResolver(&stubEngine{}), ag,
		WithCollector(collector),
		WithMetrics(runMetrics),
	)
	report := runner.Run(
		context.Background(),
		[]challenge.Challenge{a, b, c},
	)

	require.Len(t, report.Results, 3)

	failed := report.Results[1]
	assert.False(t, failed.Correct)
	assert.Contains(t, failed.RawResponse, "rate limited")
	assert.Equal(t, seq[:2], failed.Missing)
	assert.Empty(t, failed.Actual)

	assert.True(t, report.Results[0].Correct)
	assert.True(t, report.Results[2].Correct)
	assert.Equal(t, "2/3", report.Score)

	stats := collector.Snapshot()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Passed)
	assert.Equal(t, 1, stats.Errored)

	assert.Equal(
		t, 2, runMetrics.Count("Easy", metrics.OutcomePassed),
	)
	assert.Equal(
		t, 1, runMetrics.Count("Easy", metrics.OutcomeErrored),
	)
}

func TestRunner_ParseFailureTagsRawResponse(t *testing.T) {
	c := precomputedChallenge(t, "daily", "Daily Drill", seq)
	ag := &stubAgent{responses: map[string]string{
		"Daily Drill": "I cannot answer that.",
	}}

	runner := NewRunner(truth.NewResolver(&stubEngine{}), ag)
	report := runner.Run(
		context.Background(), []challenge.Challenge{c},
	)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.False(t, res.Correct)
	// The recorded row must carry the failure cause so an
	// unparseable response is distinguishable from a wrong one,
	// and keep the agent text for diagnosis.
	assert.Contains(
		t, res.RawResponse, "failed to parse agent response",
	)
	assert.Contains(t, res.RawResponse, "I cannot answer that.")
	assert.Equal(t, seq, res.Missing)
}

func TestRunner_CachedAnswersSkipEngine(t *testing.T) {
	gt, err := challenge.Cached(seq)
	require.NoError(t, err)
	c := precomputedChallenge(t, "daily", "Daily Drill", seq)
	c.Truth = gt

	ag := &stubAgent{responses: map[string]string{
		"Daily Drill": `["2026-01-05T09:00:00+00:00",` +
			`"2026-01-06T09:00:00+00:00",` +
			`"2026-01-07T09:00:00+00:00"]`,
	}}
	engine := &stubEngine{err: errors.New("must not be called")}

	runner := NewRunner(truth.NewResolver(engine), ag)
	report := runner.Run(
		context.Background(), []challenge.Challenge{c},
	)

	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Correct)
	assert.Zero(t, engine.calls)
}

func TestRunner_ResolutionFailureRow(t *testing.T) {
	c := precomputedChallenge(t, "daily", "Daily Drill", seq)
	c.Truth = challenge.Computed()

	ag := &stubAgent{}
	engine := &stubEngine{err: errors.New("engine down")}
	runner := NewRunner(truth.NewResolver(engine), ag)

	report := runner.Run(
		context.Background(), []challenge.Challenge{c},
	)

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.False(t, res.Correct)
	assert.Contains(t, res.RawResponse, "engine down")
	assert.Zero(t, ag.calls)
}

func TestRunner_ReportMetadata(t *testing.T) {
	c := precomputedChallenge(t, "daily", "Daily Drill", seq)
	ag := &stubAgent{}

	runner := NewRunner(
		truth.NewResolver(&stubEngine{}), ag,
		WithModel("claude-sonnet-4"),
		WithProvider("anthropic"),
	)
	report := runner.Run(
		context.Background(), []challenge.Challenge{c},
	)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "claude-sonnet-4", report.Model)
	assert.Equal(t, "anthropic", report.Provider)

	_, err := time.Parse(time.RFC3339, report.Timestamp)
	assert.NoError(t, err)
}

func TestRunner_EmptyBank(t *testing.T) {
	runner := NewRunner(
		truth.NewResolver(&stubEngine{}), &stubAgent{},
	)
	report := runner.Run(context.Background(), nil)

	assert.Empty(t, report.Results)
	assert.Equal(t, "0/0", report.Score)
}
