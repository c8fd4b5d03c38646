package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"digital.vasic.gauntlet/pkg/challenge"
)

// SaveResolved writes the registry's challenges back out as a
// JSON bank, filling in correct_answer from the supplied
// resolved answers. Precomputed challenges keep their stored
// answer. Used by the verify command to refresh a bank with
// engine-verified ground truth.
func SaveResolved(
	path string,
	reg *Registry,
	answers map[challenge.ID][]string,
) error {
	bank := bankFile{
		Version:    "1.0",
		Name:       "rrule-gauntlet",
		Challenges: make([]bankDefinition, 0, reg.Count()),
	}

	for _, c := range reg.List() {
		def := definitionFromChallenge(c)
		if answer, ok := c.Truth.Answer(); ok {
			def.CorrectAnswer = answer
		} else if answer, ok := answers[c.ID]; ok {
			def.CorrectAnswer = answer
		}
		bank.Challenges = append(bank.Challenges, def)
	}

	data, err := json.MarshalIndent(bank, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bank: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf(
			"failed to write bank %s: %w", path, err,
		)
	}
	return nil
}

func definitionFromChallenge(
	c challenge.Challenge,
) bankDefinition {
	return bankDefinition{
		ID:               string(c.ID),
		Name:             c.Name,
		Question:         c.Question,
		RRule:            c.RRule,
		DTStart:          c.DTStart,
		Timezone:         c.Timezone,
		DurationMinutes:  c.DurationMinutes,
		Until:            c.Until,
		ExDates:          c.ExDates,
		MaxCount:         c.MaxCount,
		Difficulty:       c.Difficulty.String(),
		WhyLLMsFail:      c.WhyHard,
		VerificationMode: string(c.Truth.Mode()),
	}
}
