package llm

import (
	"context"
	"errors"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"skillmatrix/config"
)

// TextGenerator is the external text-generation collaborator: one prompt in,
// one free-form completion out. No streaming, no retry; callers treat a failed
// call as a failed enrichment pass.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator implements TextGenerator against an OpenAI-compatible
// chat-completions endpoint. Construct it once in main and inject it wherever
// generation is needed; nothing in the codebase reaches for a global client.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIGenerator builds a generator from the deployment's OpenAI config.
func NewOpenAIGenerator(cfg config.OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is not configured")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4
	}
	log.Printf("INFO: [LLM] Text-generation client configured (model: %s).", model)
	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

// Unavailable returns a TextGenerator whose every call fails with the given
// reason. main falls back to it when no API key is configured, so the rest of
// the wiring never has to nil-check the generator.
func Unavailable(reason error) TextGenerator {
	return unavailableGenerator{reason: reason}
}

type unavailableGenerator struct {
	reason error
}

func (g unavailableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("text generation unavailable: %w", g.reason)
}

// Generate issues a single chat-completion call and returns the first choice's
// content.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("ERROR: [LLM] Chat completion call failed: %v", err)
		return "", fmt.Errorf("chat completion call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		log.Printf("ERROR: [LLM] Chat completion returned no choices.")
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
