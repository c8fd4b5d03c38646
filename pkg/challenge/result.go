package challenge

import "fmt"

// Verdict captures the outcome of comparing an expected
// occurrence sequence against an actual one.
//
// Correct is order-sensitive: it is true only when the two
// normalized sequences are equal element-for-element. Missing
// and Extra are membership-based diagnostics and ignore order,
// so partial-credit information survives permuted or truncated
// answers. The two policies are intentionally different: an
// agent that returns the right instants shuffled has not solved
// the challenge, but the diagnostics should still show that no
// instants were invented or lost.
type Verdict struct {
	// Correct is true iff the normalized sequences are equal
	// position-for-position.
	Correct bool `json:"correct"`

	// ExpectedCount is the length of the expected sequence.
	ExpectedCount int `json:"expected_count"`

	// ActualCount is the length of the actual sequence.
	ActualCount int `json:"actual_count"`

	// Matching counts index positions where the two sequences
	// agree, over the shorter of the two.
	Matching int `json:"matching"`

	// Missing lists expected entries absent from the actual
	// sequence (membership test, not positional).
	Missing []string `json:"missing"`

	// Extra lists actual entries absent from the expected
	// sequence.
	Extra []string `json:"extra"`
}

// EvaluationResult is one run's outcome for one challenge. It is
// created exactly once per (challenge, run) pair and never
// mutated afterwards.
type EvaluationResult struct {
	ChallengeID ID     `json:"id"`
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`

	// Expected is the resolved ground-truth sequence.
	Expected []string `json:"expected"`

	// Actual is the sequence parsed from the agent response.
	// Empty when invocation or parsing failed.
	Actual []string `json:"actual"`

	// RawResponse is the unparsed agent output. For failing
	// rows this carries the underlying error text, which is
	// what distinguishes an errored row from a merely
	// incorrect one.
	RawResponse string `json:"raw_response"`

	Verdict
}

// RunReport aggregates one batch of evaluation results.
type RunReport struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Model is the agent model identifier.
	Model string `json:"model"`

	// Provider is the agent provider identifier.
	Provider string `json:"provider"`

	// Timestamp is the run completion time, ISO-8601 UTC.
	Timestamp string `json:"timestamp"`

	// Score is the fractional score, "passed/total".
	Score string `json:"score"`

	// Results holds one entry per challenge, in bank order.
	Results []EvaluationResult `json:"challenges"`
}

// Passed counts the results whose verdict is correct.
func (r *RunReport) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Correct {
			n++
		}
	}
	return n
}

// FormatScore renders the canonical "passed/total" score string.
func FormatScore(passed, total int) string {
	return fmt.Sprintf("%d/%d", passed, total)
}
