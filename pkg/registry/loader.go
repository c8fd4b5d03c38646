package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.gauntlet/pkg/challenge"
)

// LoadError reports a missing or malformed challenge bank. It is
// fatal to the whole run.
type LoadError struct {
	// Source is the bank file path.
	Source string
	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf(
		"failed to load challenge bank %s: %v", e.Source, e.Err,
	)
}

func (e *LoadError) Unwrap() error { return e.Err }

// bankFile is the on-disk structure of a challenge bank.
type bankFile struct {
	Version    string           `json:"version" yaml:"version"`
	Name       string           `json:"name" yaml:"name"`
	Challenges []bankDefinition `json:"challenges" yaml:"challenges"`
}

// bankDefinition is the raw, pre-validation form of one
// challenge as it appears in the bank file. Field names match
// the published bank format.
type bankDefinition struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Question         string   `json:"question" yaml:"question"`
	RRule            string   `json:"rrule" yaml:"rrule"`
	DTStart          string   `json:"dtstart" yaml:"dtstart"`
	Timezone         string   `json:"timezone" yaml:"timezone"`
	DurationMinutes  int      `json:"duration_minutes" yaml:"duration_minutes"`
	Until            string   `json:"until,omitempty" yaml:"until,omitempty"`
	ExDates          []string `json:"exdates,omitempty" yaml:"exdates,omitempty"`
	MaxCount         int      `json:"max_count,omitempty" yaml:"max_count,omitempty"`
	Difficulty       string   `json:"difficulty" yaml:"difficulty"`
	WhyLLMsFail      string   `json:"why_llms_fail,omitempty" yaml:"why_llms_fail,omitempty"`
	VerificationMode string   `json:"verification_mode,omitempty" yaml:"verification_mode,omitempty"`
	CorrectAnswer    []string `json:"correct_answer,omitempty" yaml:"correct_answer,omitempty"`
}

// Load reads a challenge bank from a JSON or YAML file and
// returns a read-only registry over it. Any structural or
// semantic problem in the bank yields a *LoadError.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	var bank bankFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &bank)
	default:
		err = json.Unmarshal(data, &bank)
	}
	if err != nil {
		return nil, &LoadError{
			Source: path,
			Err:    fmt.Errorf("malformed bank: %w", err),
		}
	}

	challenges, err := buildChallenges(bank.Challenges)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	return newRegistry(challenges), nil
}

// buildChallenges converts raw definitions into validated
// Challenge values, preserving file order.
func buildChallenges(
	defs []bankDefinition,
) ([]challenge.Challenge, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("bank contains no challenges")
	}

	seen := make(map[challenge.ID]bool, len(defs))
	out := make([]challenge.Challenge, 0, len(defs))

	for i, def := range defs {
		c, err := buildChallenge(def)
		if err != nil {
			return nil, fmt.Errorf("challenges[%d]: %w", i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf(
				"challenges[%d]: duplicate id: %s", i, c.ID,
			)
		}
		seen[c.ID] = true
		out = append(out, c)
	}

	return out, nil
}

func buildChallenge(
	def bankDefinition,
) (challenge.Challenge, error) {
	difficulty, err := challenge.ParseDifficulty(def.Difficulty)
	if err != nil {
		return challenge.Challenge{}, err
	}

	truth, err := buildGroundTruth(def)
	if err != nil {
		return challenge.Challenge{}, err
	}

	c := challenge.Challenge{
		ID:              challenge.ID(def.ID),
		Name:            def.Name,
		Question:        def.Question,
		RRule:           def.RRule,
		DTStart:         def.DTStart,
		Timezone:        def.Timezone,
		DurationMinutes: def.DurationMinutes,
		Until:           def.Until,
		ExDates:         def.ExDates,
		MaxCount:        def.MaxCount,
		Difficulty:      difficulty,
		WhyHard:         def.WhyLLMsFail,
		Truth:           truth,
	}

	if err := c.Validate(); err != nil {
		return challenge.Challenge{}, err
	}
	return c, nil
}

func buildGroundTruth(
	def bankDefinition,
) (challenge.GroundTruth, error) {
	switch def.VerificationMode {
	case "", string(challenge.ModeEngine):
		// A bank refreshed by verify carries resolved answers
		// for engine challenges; keep them as cached ground
		// truth so a test run needs no engine round trips.
		if len(def.CorrectAnswer) > 0 {
			truth, err := challenge.Cached(def.CorrectAnswer)
			if err != nil {
				return challenge.GroundTruth{}, fmt.Errorf(
					"challenge %s: %w", def.ID, err,
				)
			}
			return truth, nil
		}
		return challenge.Computed(), nil
	case string(challenge.ModePrecomputed):
		truth, err := challenge.Precomputed(def.CorrectAnswer)
		if err != nil {
			return challenge.GroundTruth{}, fmt.Errorf(
				"challenge %s: %w", def.ID, err,
			)
		}
		return truth, nil
	default:
		return challenge.GroundTruth{}, fmt.Errorf(
			"challenge %s: unknown verification_mode: %q",
			def.ID, def.VerificationMode,
		)
	}
}
