package challenge

// ResolutionMode distinguishes how a challenge's ground truth is
// obtained.
type ResolutionMode string

const (
	// ModeEngine resolves the answer by expanding the rule via
	// the Truth Engine.
	ModeEngine ResolutionMode = "engine"
	// ModePrecomputed uses an answer stored in the bank, with no
	// engine call. Used for rule features the engine capability
	// does not accept directly (EXDATE).
	ModePrecomputed ResolutionMode = "precomputed"
)

// GroundTruth is a closed variant: either the answer is computed
// by the Truth Engine, or it was precomputed and stored with the
// challenge. The precomputed variant always carries a non-empty
// answer; use the constructors to obtain a valid value.
//
// An engine-mode value may additionally carry a cached answer
// from an earlier verification pass. The cache spares a fresh
// run an engine round trip; it does not change the mode.
type GroundTruth struct {
	mode   ResolutionMode
	answer []string
}

// Computed returns a GroundTruth that delegates to the Truth
// Engine.
func Computed() GroundTruth {
	return GroundTruth{mode: ModeEngine}
}

// Cached returns an engine-mode GroundTruth carrying an answer
// resolved on an earlier verification pass. The mode stays
// engine: re-verification still consults the Truth Engine.
func Cached(answer []string) (GroundTruth, error) {
	if len(answer) == 0 {
		return GroundTruth{}, errEmptyAnswer
	}
	a := make([]string, len(answer))
	copy(a, answer)
	return GroundTruth{mode: ModeEngine, answer: a}, nil
}

// Precomputed returns a GroundTruth carrying a stored answer.
// The answer is the ordered sequence of UTC occurrence starts.
func Precomputed(answer []string) (GroundTruth, error) {
	if len(answer) == 0 {
		return GroundTruth{}, errEmptyAnswer
	}
	a := make([]string, len(answer))
	copy(a, answer)
	return GroundTruth{mode: ModePrecomputed, answer: a}, nil
}

// Mode reports the resolution mode of this ground truth.
func (g GroundTruth) Mode() ResolutionMode {
	if g.mode == "" {
		return ModeEngine
	}
	return g.mode
}

// Answer returns the stored answer and true when the ground
// truth is precomputed; otherwise nil and false. Cached
// engine-mode answers are not reported here; see CachedAnswer.
func (g GroundTruth) Answer() ([]string, bool) {
	if g.Mode() != ModePrecomputed {
		return nil, false
	}
	a := make([]string, len(g.answer))
	copy(a, g.answer)
	return a, true
}

// CachedAnswer returns any stored answer regardless of mode:
// the precomputed answer or an engine-mode cached answer. False
// when the ground truth has no answer and must be resolved by
// the engine.
func (g GroundTruth) CachedAnswer() ([]string, bool) {
	if len(g.answer) == 0 {
		return nil, false
	}
	a := make([]string, len(g.answer))
	copy(a, g.answer)
	return a, true
}

type groundTruthError string

func (e groundTruthError) Error() string { return string(e) }

const errEmptyAnswer = groundTruthError(
	"precomputed ground truth requires a non-empty answer",
)
