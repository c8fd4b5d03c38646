package agent

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIAgent answers prompts through the OpenAI chat
// completions API. Temperature is pinned to zero: grading needs
// the model's most deterministic answer, not a creative one.
type OpenAIAgent struct {
	client openai.Client
	model  string
}

// NewOpenAIAgent creates an agent for the given model using the
// supplied API key.
func NewOpenAIAgent(model, apiKey string) *OpenAIAgent {
	return &OpenAIAgent{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Complete sends a system+user prompt pair and returns the raw
// completion text.
func (a *OpenAIAgent) Complete(
	ctx context.Context, system, user string,
) (string, error) {
	completion, err := a.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: openai.ChatModel(a.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
			Temperature: openai.Float(0),
		},
	)
	if err != nil {
		return "", &InvocationError{
			Provider: ProviderOpenAI,
			Model:    a.model,
			Err:      err,
		}
	}

	if len(completion.Choices) == 0 {
		return "", &InvocationError{
			Provider: ProviderOpenAI,
			Model:    a.model,
			Err:      fmt.Errorf("completion has no choices"),
		}
	}

	return completion.Choices[0].Message.Content, nil
}
