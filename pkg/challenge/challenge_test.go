package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validChallenge() Challenge {
	return Challenge{
		ID:              "weekly-warmup",
		Name:            "Weekly Warmup",
		Question:        "When does the Sunday sync occur?",
		RRule:           "FREQ=WEEKLY;BYDAY=SU;COUNT=2",
		DTStart:         "2026-03-01T07:00:00",
		Timezone:        "UTC",
		DurationMinutes: 30,
		Difficulty:      DifficultyEasy,
		Truth:           Computed(),
	}
}

func TestChallengeValidate(t *testing.T) {
	c := validChallenge()
	require.NoError(t, c.Validate())
}

func TestChallengeValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Challenge)
		want   string
	}{
		{
			name:   "missing id",
			mutate: func(c *Challenge) { c.ID = "" },
			want:   "id is required",
		},
		{
			name:   "missing name",
			mutate: func(c *Challenge) { c.Name = "" },
			want:   "name is required",
		},
		{
			name:   "missing rrule",
			mutate: func(c *Challenge) { c.RRule = "" },
			want:   "rrule is required",
		},
		{
			name:   "missing dtstart",
			mutate: func(c *Challenge) { c.DTStart = "" },
			want:   "dtstart is required",
		},
		{
			name:   "missing timezone",
			mutate: func(c *Challenge) { c.Timezone = "" },
			want:   "timezone is required",
		},
		{
			name:   "negative max count",
			mutate: func(c *Challenge) { c.MaxCount = -1 },
			want:   "max_count must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validChallenge()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDifficultyOrdering(t *testing.T) {
	assert.Less(t, DifficultyEasy, DifficultyMedium)
	assert.Less(t, DifficultyMedium, DifficultyHard)
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{
		DifficultyEasy, DifficultyMedium, DifficultyHard,
	} {
		got, err := ParseDifficulty(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDifficulty("Impossible")
	require.Error(t, err)
}

func TestGroundTruth_Precomputed(t *testing.T) {
	answer := []string{"2026-03-01T07:00:00+00:00"}
	g, err := Precomputed(answer)
	require.NoError(t, err)

	assert.Equal(t, ModePrecomputed, g.Mode())
	got, ok := g.Answer()
	require.True(t, ok)
	assert.Equal(t, answer, got)

	// The stored answer is a copy, not an alias.
	answer[0] = "mutated"
	got2, _ := g.Answer()
	assert.Equal(t, "2026-03-01T07:00:00+00:00", got2[0])
}

func TestGroundTruth_PrecomputedRequiresAnswer(t *testing.T) {
	_, err := Precomputed(nil)
	require.Error(t, err)
	_, err = Precomputed([]string{})
	require.Error(t, err)
}

func TestGroundTruth_Computed(t *testing.T) {
	g := Computed()
	assert.Equal(t, ModeEngine, g.Mode())
	_, ok := g.Answer()
	assert.False(t, ok)
	_, ok = g.CachedAnswer()
	assert.False(t, ok)
}

func TestGroundTruth_Cached(t *testing.T) {
	answer := []string{"2026-03-01T07:00:00+00:00"}
	g, err := Cached(answer)
	require.NoError(t, err)

	// The cache does not change the mode; re-verification must
	// still go to the engine.
	assert.Equal(t, ModeEngine, g.Mode())

	_, ok := g.Answer()
	assert.False(t, ok)

	got, ok := g.CachedAnswer()
	require.True(t, ok)
	assert.Equal(t, answer, got)
}

func TestGroundTruth_CachedRequiresAnswer(t *testing.T) {
	_, err := Cached(nil)
	require.Error(t, err)
	_, err = Cached([]string{})
	require.Error(t, err)
}

func TestGroundTruth_PrecomputedCachedAnswer(t *testing.T) {
	answer := []string{"2026-03-01T07:00:00+00:00"}
	g, err := Precomputed(answer)
	require.NoError(t, err)

	got, ok := g.CachedAnswer()
	require.True(t, ok)
	assert.Equal(t, answer, got)
}

func TestGroundTruth_ZeroValueIsEngine(t *testing.T) {
	var g GroundTruth
	assert.Equal(t, ModeEngine, g.Mode())
}
