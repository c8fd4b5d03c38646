// Package registry loads challenge banks and exposes them as a
// read-only, ordered collection.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"digital.vasic.gauntlet/pkg/challenge"
)

// Registry holds a loaded challenge bank. Challenges keep the
// order they appear in the bank file. A Registry is immutable
// after construction; there is no mutation API.
type Registry struct {
	ordered []challenge.Challenge
	byID    map[challenge.ID]int
}

// newRegistry builds a registry from an ordered challenge list.
// IDs must already be unique; the loader validates that.
func newRegistry(challenges []challenge.Challenge) *Registry {
	byID := make(map[challenge.ID]int, len(challenges))
	for i, c := range challenges {
		byID[c.ID] = i
	}
	return &Registry{ordered: challenges, byID: byID}
}

// List returns all challenges in bank order. The returned slice
// is a copy; callers cannot affect the registry through it.
func (r *Registry) List() []challenge.Challenge {
	out := make([]challenge.Challenge, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get retrieves a challenge by ID.
func (r *Registry) Get(
	id challenge.ID,
) (challenge.Challenge, error) {
	i, ok := r.byID[id]
	if !ok {
		return challenge.Challenge{}, fmt.Errorf(
			"challenge not found: %s (available: %s)",
			id, joinIDs(r.IDs()),
		)
	}
	return r.ordered[i], nil
}

// IDs returns all challenge IDs in bank order.
func (r *Registry) IDs() []challenge.ID {
	out := make([]challenge.ID, len(r.ordered))
	for i, c := range r.ordered {
		out[i] = c.ID
	}
	return out
}

// Count returns the number of loaded challenges.
func (r *Registry) Count() int {
	return len(r.ordered)
}

// ByDifficulty returns challenges of the given tier, keeping
// bank order within the tier.
func (r *Registry) ByDifficulty(
	d challenge.Difficulty,
) []challenge.Challenge {
	var out []challenge.Challenge
	for _, c := range r.ordered {
		if c.Difficulty == d {
			out = append(out, c)
		}
	}
	return out
}

func joinIDs(ids []challenge.ID) string {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = string(id)
	}
	sort.Strings(ss)
	return strings.Join(ss, ", ")
}
