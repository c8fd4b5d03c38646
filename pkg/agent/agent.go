// Package agent provides the reasoning-agent capability used to
// answer gauntlet challenges: provider-backed clients and the
// parser that recovers an occurrence sequence from free-form
// model output.
package agent

import (
	"context"
	"fmt"
)

// Provider identifiers recognized by New. Anything else is a
// configuration error, not a runtime one.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Agent is the reasoning-agent capability: one blocking call
// that turns a system instruction and a user prompt into raw
// response text.
type Agent interface {
	// Complete sends the prompt pair and returns the raw
	// response text.
	Complete(
		ctx context.Context, system, user string,
	) (string, error)
}

// ConfigurationError reports an unrecognized provider
// identifier. It is fatal and surfaced before any evaluation
// begins.
type ConfigurationError struct {
	// Provider is the unrecognized identifier.
	Provider string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"unknown provider: %q (supported: %s, %s)",
		e.Provider, ProviderOpenAI, ProviderAnthropic,
	)
}

// InvocationError reports a per-challenge transport, auth, or
// provider failure during an agent call. It is recovered locally
// and recorded as a failing evaluation row.
type InvocationError struct {
	// Provider is the provider that failed.
	Provider string
	// Model is the model identifier used for the call.
	Model string
	// Err is the underlying cause.
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf(
		"agent invocation failed (%s/%s): %v",
		e.Provider, e.Model, e.Err,
	)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// New constructs an Agent for the given provider identifier.
// Exactly two provider profiles are recognized.
func New(provider, model, apiKey string) (Agent, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIAgent(model, apiKey), nil
	case ProviderAnthropic:
		return NewAnthropicAgent(model, apiKey), nil
	default:
		return nil, &ConfigurationError{Provider: provider}
	}
}
