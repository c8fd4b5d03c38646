package truth

import (
	"context"

	"digital.vasic.gauntlet/pkg/challenge"
)

// Resolver obtains the expected occurrence sequence for a
// challenge. Precomputed challenges return their stored answer
// without touching the engine; everything else delegates to the
// Engine capability.
type Resolver struct {
	engine Engine
}

// NewResolver creates a resolver backed by the given engine.
func NewResolver(engine Engine) *Resolver {
	return &Resolver{engine: engine}
}

// Resolve returns the ordered sequence of UTC occurrence starts
// for the challenge. A stored answer, precomputed or cached from
// an earlier verification, is returned without an engine call.
// Engine failures come back as a *ResolutionError tagged with
// the challenge ID; a failure never concerns more than the one
// challenge being resolved.
func (r *Resolver) Resolve(
	ctx context.Context, c challenge.Challenge,
) ([]string, error) {
	if answer, ok := c.Truth.CachedAnswer(); ok {
		return answer, nil
	}
	return r.expand(ctx, c)
}

// ResolveFresh resolves like Resolve but bypasses cached
// engine-mode answers: engine challenges always go to the
// engine. Precomputed challenges still return their stored
// answer. Used by verification, which exists to recompute.
func (r *Resolver) ResolveFresh(
	ctx context.Context, c challenge.Challenge,
) ([]string, error) {
	if answer, ok := c.Truth.Answer(); ok {
		return answer, nil
	}
	return r.expand(ctx, c)
}

func (r *Resolver) expand(
	ctx context.Context, c challenge.Challenge,
) ([]string, error) {
	req := ExpandRequest{
		RRule:           c.RRule,
		DTStart:         c.DTStart,
		DurationMinutes: c.DurationMinutes,
		Timezone:        c.Timezone,
		Until:           c.Until,
		MaxCount:        c.MaxCount,
	}

	occurrences, err := r.engine.Expand(ctx, req)
	if err != nil {
		return nil, &ResolutionError{
			ChallengeID: c.ID,
			Err:         err,
		}
	}

	starts := make([]string, len(occurrences))
	for i, occ := range occurrences {
		starts[i] = occ.Start
	}
	return starts, nil
}
