package cli

import (
	"digital.vasic.gauntlet/pkg/challenge"
	"digital.vasic.gauntlet/pkg/env"
	"digital.vasic.gauntlet/pkg/registry"
	"digital.vasic.gauntlet/pkg/truth"
)

const (
	defaultBankPath  = "challenges/gauntlet.json"
	defaultEngineURL = "http://localhost:8000"

	engineURLVar = "TRUTH_ENGINE_URL"
)

// selectChallenges narrows the bank to one challenge when id is
// set, or returns the whole bank in order.
func selectChallenges(
	reg *registry.Registry, id string,
) ([]challenge.Challenge, error) {
	if id == "" {
		return reg.List(), nil
	}
	c, err := reg.Get(challenge.ID(id))
	if err != nil {
		return nil, err
	}
	return []challenge.Challenge{c}, nil
}

// newResolver builds a resolver over the HTTP truth engine. An
// explicit URL wins over the environment, which wins over the
// default local engine address.
func newResolver(
	engineURL string, loader env.Loader,
) *truth.Resolver {
	if engineURL == "" {
		engineURL = loader.GetWithDefault(
			engineURLVar, defaultEngineURL,
		)
	}
	return truth.NewResolver(truth.NewHTTPEngine(engineURL))
}
