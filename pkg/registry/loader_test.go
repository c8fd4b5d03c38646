package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.gauntlet/pkg/challenge"
)

const sampleBank = `{
	"version": "1.0",
	"name": "test bank",
	"challenges": [
		{
			"id": "weekly-warmup",
			"name": "Weekly Warmup",
			"question": "When does the Sunday sync occur?",
			"rrule": "FREQ=WEEKLY;BYDAY=SU;COUNT=2",
			"dtstart": "2026-03-01T07:00:00",
			"timezone": "UTC",
			"duration_minutes": 30,
			"difficulty": "Easy"
		},
		{
			"id": "excluded-holidays",
			"name": "Excluded Holidays",
			"question": "Which daily standups survive the exclusions?",
			"rrule": "FREQ=DAILY;COUNT=5",
			"dtstart": "2026-01-05T09:00:00",
			"timezone": "Europe/London",
			"duration_minutes": 15,
			"exdates": ["2026-01-07"],
			"difficulty": "Medium",
			"verification_mode": "precomputed",
			"correct_answer": [
				"2026-01-05T09:00:00+00:00",
				"2026-01-06T09:00:00+00:00",
				"2026-01-08T09:00:00+00:00",
				"2026-01-09T09:00:00+00:00"
			]
		}
	]
}`

func writeBank(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_JSON(t *testing.T) {
	reg, err := Load(writeBank(t, "bank.json", sampleBank))
	require.NoError(t, err)

	require.Equal(t, 2, reg.Count())

	list := reg.List()
	assert.Equal(t, challenge.ID("weekly-warmup"), list[0].ID)
	assert.Equal(t, challenge.ID("excluded-holidays"), list[1].ID)

	first := list[0]
	assert.Equal(t, challenge.ModeEngine, first.Truth.Mode())
	assert.Equal(t, challenge.DifficultyEasy, first.Difficulty)

	second := list[1]
	assert.Equal(
		t, challenge.ModePrecomputed, second.Truth.Mode(),
	)
	answer, ok := second.Truth.Answer()
	require.True(t, ok)
	assert.Len(t, answer, 4)
}

func TestLoad_YAML(t *testing.T) {
	content := `
version: "1.0"
name: yaml bank
challenges:
  - id: weekly-warmup
    name: Weekly Warmup
    question: When does the Sunday sync occur?
    rrule: FREQ=WEEKLY;BYDAY=SU;COUNT=2
    dtstart: "2026-03-01T07:00:00"
    timezone: UTC
    duration_minutes: 30
    difficulty: Easy
`
	reg, err := Load(writeBank(t, "bank.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Count())
}

func TestLoad_EngineAnswerBecomesCache(t *testing.T) {
	content := `{
		"version": "1.0",
		"challenges": [
			{"id": "weekly-warmup", "name": "Weekly Warmup",
			 "question": "q", "rrule": "FREQ=WEEKLY;BYDAY=SU;COUNT=2",
			 "dtstart": "2026-03-01T07:00:00", "timezone": "UTC",
			 "duration_minutes": 30, "difficulty": "Easy",
			 "correct_answer": [
				"2026-03-01T07:00:00+00:00",
				"2026-03-08T07:00:00+00:00"
			 ]}
		]
	}`
	reg, err := Load(writeBank(t, "refreshed.json", content))
	require.NoError(t, err)

	c, err := reg.Get("weekly-warmup")
	require.NoError(t, err)

	// A resolved answer on an engine challenge is kept as cached
	// ground truth, not discarded; the mode stays engine.
	assert.Equal(t, challenge.ModeEngine, c.Truth.Mode())
	answer, ok := c.Truth.CachedAnswer()
	require.True(t, ok)
	assert.Equal(t, []string{
		"2026-03-01T07:00:00+00:00",
		"2026-03-08T07:00:00+00:00",
	}, answer)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/bank.json")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "/nonexistent/bank.json", loadErr.Source)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(writeBank(t, "bad.json", "{not json"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "malformed bank")
}

func TestLoad_EmptyBank(t *testing.T) {
	_, err := Load(writeBank(
		t, "empty.json", `{"version":"1.0","challenges":[]}`,
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no challenges")
}

func TestLoad_DuplicateID(t *testing.T) {
	content := `{
		"version": "1.0",
		"challenges": [
			{"id": "same", "name": "A", "question": "q",
			 "rrule": "FREQ=DAILY", "dtstart": "2026-01-01T00:00:00",
			 "timezone": "UTC", "duration_minutes": 10,
			 "difficulty": "Easy"},
			{"id": "same", "name": "B", "question": "q",
			 "rrule": "FREQ=DAILY", "dtstart": "2026-01-01T00:00:00",
			 "timezone": "UTC", "duration_minutes": 10,
			 "difficulty": "Easy"}
		]
	}`
	_, err := Load(writeBank(t, "dup.json", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestLoad_PrecomputedWithoutAnswer(t *testing.T) {
	content := `{
		"version": "1.0",
		"challenges": [
			{"id": "x", "name": "X", "question": "q",
			 "rrule": "FREQ=DAILY", "dtstart": "2026-01-01T00:00:00",
			 "timezone": "UTC", "duration_minutes": 10,
			 "difficulty": "Easy",
			 "verification_mode": "precomputed"}
		]
	}`
	_, err := Load(writeBank(t, "noanswer.json", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-empty answer")
}

func TestLoad_UnknownDifficulty(t *testing.T) {
	content := `{
		"version": "1.0",
		"challenges": [
			{"id": "x", "name": "X", "question": "q",
			 "rrule": "FREQ=DAILY", "dtstart": "2026-01-01T00:00:00",
			 "timezone": "UTC", "duration_minutes": 10,
			 "difficulty": "Brutal"}
		]
	}`
	_, err := Load(writeBank(t, "difficulty.json", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown difficulty")
}

func TestRegistryGet(t *testing.T) {
	reg, err := Load(writeBank(t, "bank.json", sampleBank))
	require.NoError(t, err)

	c, err := reg.Get("weekly-warmup")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Warmup", c.Name)

	_, err = reg.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "weekly-warmup")
}

func TestSaveResolved_RoundTrip(t *testing.T) {
	reg, err := Load(writeBank(t, "bank.json", sampleBank))
	require.NoError(t, err)

	answers := map[challenge.ID][]string{
		"weekly-warmup": {
			"2026-03-01T07:00:00+00:00",
			"2026-03-08T07:00:00+00:00",
		},
	}

	out := filepath.Join(t.TempDir(), "resolved.json")
	require.NoError(t, SaveResolved(out, reg, answers))

	// The refreshed bank must load cleanly and carry the
	// resolved answers.
	reloaded, err := Load(out)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Count())

	precomputed, err := reloaded.Get("excluded-holidays")
	require.NoError(t, err)
	answer, ok := precomputed.Truth.Answer()
	require.True(t, ok)
	assert.Len(t, answer, 4)

	// The engine challenge keeps its resolved answer as a cache
	// without switching to precomputed mode.
	engine, err := reloaded.Get("weekly-warmup")
	require.NoError(t, err)
	assert.Equal(t, challenge.ModeEngine, engine.Truth.Mode())
	cached, ok := engine.Truth.CachedAnswer()
	require.True(t, ok)
	assert.Equal(t, answers["weekly-warmup"], cached)
}
