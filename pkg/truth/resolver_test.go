package truth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.gauntlet/pkg/challenge"
)

// stubEngine is a deterministic Engine stand-in.
type stubEngine struct {
	calls       int
	lastRequest ExpandRequest
	occurrences []Occurrence
	err         error
}

func (s *stubEngine) Expand(
	_ context.Context, req ExpandRequest,
) ([]Occurrence, error) {
	s.calls++
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.occurrences, nil
}

func engineChallenge() challenge.Challenge {
	return challenge.Challenge{
		ID:              "dst-spring",
		Name:            "Spring Forward",
		RRule:           "FREQ=DAILY;COUNT=3",
		DTStart:         "2026-03-07T02:30:00",
		Timezone:        "America/New_York",
		DurationMinutes: 30,
		Until:           "2026-03-10T00:00:00",
		MaxCount:        3,
		Difficulty:      challenge.DifficultyHard,
		Truth:           challenge.Computed(),
	}
}

func TestResolve_DelegatesToEngine(t *testing.T) {
	engine := &stubEngine{
		occurrences: []Occurrence{
			{Start: "2026-03-07T07:30:00+00:00"},
			{Start: "2026-03-09T06:30:00+00:00"},
		},
	}
	r := NewResolver(engine)

	got, err := r.Resolve(context.Background(), engineChallenge())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2026-03-07T07:30:00+00:00",
		"2026-03-09T06:30:00+00:00",
	}, got)
	assert.Equal(t, 1, engine.calls)

	// The full rule parameters travel to the engine.
	req := engine.lastRequest
	assert.Equal(t, "FREQ=DAILY;COUNT=3", req.RRule)
	assert.Equal(t, "America/New_York", req.Timezone)
	assert.Equal(t, "2026-03-10T00:00:00", req.Until)
	assert.Equal(t, 3, req.MaxCount)
	assert.Equal(t, 30, req.DurationMinutes)
}

func TestResolve_PrecomputedBypassesEngine(t *testing.T) {
	answer := []string{"2026-03-01T07:00:00+00:00"}
	truth, err := challenge.Precomputed(answer)
	require.NoError(t, err)

	c := engineChallenge()
	c.ID = "excluded-holidays"
	c.Truth = truth

	engine := &stubEngine{err: errors.New("must not be called")}
	r := NewResolver(engine)

	got, err := r.Resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, answer, got)
	assert.Zero(t, engine.calls)
}

func TestResolve_CachedAnswerBypassesEngine(t *testing.T) {
	answer := []string{
		"2026-03-07T07:30:00+00:00",
		"2026-03-09T06:30:00+00:00",
	}
	truth, err := challenge.Cached(answer)
	require.NoError(t, err)

	c := engineChallenge()
	c.Truth = truth

	engine := &stubEngine{err: errors.New("must not be called")}
	r := NewResolver(engine)

	got, err := r.Resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, answer, got)
	assert.Zero(t, engine.calls)
}

func TestResolveFresh_RecomputesCachedAnswer(t *testing.T) {
	truth, err := challenge.Cached(
		[]string{"2026-03-07T07:30:00+00:00"},
	)
	require.NoError(t, err)

	c := engineChallenge()
	c.Truth = truth

	engine := &stubEngine{
		occurrences: []Occurrence{
			{Start: "2026-03-08T07:30:00+00:00"},
		},
	}
	r := NewResolver(engine)

	got, err := r.ResolveFresh(context.Background(), c)
	require.NoError(t, err)

	// The stale cache is ignored in favor of the engine.
	assert.Equal(
		t, []string{"2026-03-08T07:30:00+00:00"}, got,
	)
	assert.Equal(t, 1, engine.calls)
}

func TestResolveFresh_PrecomputedStillBypasses(t *testing.T) {
	answer := []string{"2026-03-01T07:00:00+00:00"}
	truth, err := challenge.Precomputed(answer)
	require.NoError(t, err)

	c := engineChallenge()
	c.Truth = truth

	engine := &stubEngine{err: errors.New("must not be called")}
	r := NewResolver(engine)

	got, err := r.ResolveFresh(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, answer, got)
	assert.Zero(t, engine.calls)
}

func TestResolve_EngineFailure(t *testing.T) {
	cause := errors.New("Invalid RRULE: FREQ=SOMETIMES")
	engine := &stubEngine{err: cause}
	r := NewResolver(engine)

	_, err := r.Resolve(context.Background(), engineChallenge())
	require.Error(t, err)

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(
		t, challenge.ID("dst-spring"), resErr.ChallengeID,
	)
	assert.ErrorIs(t, err, cause)
}
