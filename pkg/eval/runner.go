// Package eval orchestrates gauntlet runs: resolve ground truth,
// prompt the agent, parse its answer, and compare, producing one
// result row per challenge regardless of per-challenge failures.
package eval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"digital.vasic.gauntlet/pkg/agent"
	"digital.vasic.gauntlet/pkg/challenge"
	"digital.vasic.gauntlet/pkg/compare"
	"digital.vasic.gauntlet/pkg/logging"
	"digital.vasic.gauntlet/pkg/metrics"
	"digital.vasic.gauntlet/pkg/monitor"
	"digital.vasic.gauntlet/pkg/prompt"
	"digital.vasic.gauntlet/pkg/truth"
)

// Runner evaluates challenges sequentially against one agent.
// Each challenge is isolated: a resolution, invocation, or parse
// failure produces a failing result row and evaluation continues
// with the next challenge. N challenges always yield N rows.
type Runner struct {
	resolver  *truth.Resolver
	agent     agent.Agent
	collector *monitor.Collector
	logger    logging.Logger
	metrics   *metrics.RunMetrics
	model     string
	provider  string
}

// NewRunner creates a Runner with the supplied options.
func NewRunner(
	resolver *truth.Resolver, ag agent.Agent, opts ...Option,
) *Runner {
	r := &Runner{
		resolver: resolver,
		agent:    ag,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates every challenge in order and assembles the run
// report. Bank order is preserved in the result rows.
func (r *Runner) Run(
	ctx context.Context, challenges []challenge.Challenge,
) challenge.RunReport {
	results := make(
		[]challenge.EvaluationResult, 0, len(challenges),
	)

	for _, c := range challenges {
		if r.collector != nil {
			r.collector.EmitStarted(c.ID, c.Name)
		}
		r.logEvent("challenge_started",
			logging.StringField("challenge_id", string(c.ID)),
			logging.StringField("name", c.Name),
		)

		started := time.Now()
		result, errored := r.evaluate(ctx, c)
		results = append(results, result)

		if r.collector != nil {
			r.collector.EmitResult(result, errored)
		}
		if r.metrics != nil {
			outcome := metrics.OutcomeFailed
			switch {
			case errored:
				outcome = metrics.OutcomeErrored
			case result.Correct:
				outcome = metrics.OutcomePassed
			}
			r.metrics.Record(
				c.ID, result.Difficulty, outcome,
				time.Since(started),
			)
		}
		r.logEvent("challenge_completed",
			logging.StringField("challenge_id", string(c.ID)),
			logging.BoolField("correct", result.Correct),
			logging.BoolField("errored", errored),
			logging.IntField("matching", result.Matching),
		)
	}

	report := challenge.RunReport{
		RunID:     uuid.NewString(),
		Model:     r.model,
		Provider:  r.provider,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   results,
	}
	report.Score = challenge.FormatScore(
		report.Passed(), len(results),
	)
	return report
}

// evaluate runs the full lifecycle for one challenge. The second
// return value reports whether the row failed to evaluate, as
// opposed to evaluating to a wrong answer.
func (r *Runner) evaluate(
	ctx context.Context, c challenge.Challenge,
) (challenge.EvaluationResult, bool) {
	expected, err := r.resolver.Resolve(ctx, c)
	if err != nil {
		r.logEvent("resolution_failed",
			logging.StringField("challenge_id", string(c.ID)),
			logging.ErrorField(err),
		)
		return failingResult(c, nil, err), true
	}

	raw, err := r.agent.Complete(
		ctx, prompt.SystemInstruction, prompt.Build(c),
	)
	if err != nil {
		r.logEvent("invocation_failed",
			logging.StringField("challenge_id", string(c.ID)),
			logging.ErrorField(err),
		)
		return failingResult(c, expected, err), true
	}

	actual, err := agent.ParseResponse(raw)
	if err != nil {
		r.logEvent("parse_failed",
			logging.StringField("challenge_id", string(c.ID)),
			logging.ErrorField(err),
		)
		result := failingResult(c, expected, err)
		// Keep the agent text for diagnosis, but lead with the
		// failure cause so errored rows stay distinguishable
		// from merely incorrect ones.
		result.RawResponse = fmt.Sprintf(
			"%s\n%s", err.Error(), raw,
		)
		return result, true
	}

	result := challenge.EvaluationResult{
		ChallengeID: c.ID,
		Name:        c.Name,
		Difficulty:  c.Difficulty.String(),
		Expected:    expected,
		Actual:      actual,
		RawResponse: raw,
		Verdict:     compare.Compare(expected, actual),
	}
	return result, false
}

// failingResult builds the row recorded when a challenge could
// not be evaluated. The whole expected sequence is reported as
// missing and the error text takes the raw response slot.
func failingResult(
	c challenge.Challenge, expected []string, err error,
) challenge.EvaluationResult {
	missing := make([]string, len(expected))
	copy(missing, expected)

	return challenge.EvaluationResult{
		ChallengeID: c.ID,
		Name:        c.Name,
		Difficulty:  c.Difficulty.String(),
		Expected:    expected,
		Actual:      []string{},
		RawResponse: err.Error(),
		Verdict: challenge.Verdict{
			Correct:       false,
			ExpectedCount: len(expected),
			ActualCount:   0,
			Matching:      0,
			Missing:       missing,
			Extra:         []string{},
		},
	}
}

func (r *Runner) logEvent(
	msg string, fields ...logging.Field,
) {
	if r.logger == nil {
		return
	}
	r.logger.Info(msg, fields...)
}
