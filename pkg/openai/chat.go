package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"

	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/nlp"
)

var ErrNoChoices = errors.New("no response from ChatGPT")

type IChatGPT interface {
	nlp.IntentExtractor
	nlp.ResponseSynthesizer
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() (IChatGPT, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}

	return NewChatGPTWithConfig(openai.DefaultConfig(apiKey), os.Getenv("OPENAI_CHAT_MODEL")), nil
}

// NewChatGPTWithConfig allows pointing the client at a compatible endpoint.
func NewChatGPTWithConfig(cfg openai.ClientConfig, model string) IChatGPT {
	if model == "" {
		model = openai.GPT4oMini
	}

	return &chatGPTService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *chatGPTService) Extract(ctx context.Context, message string, known entity.Slots) (*nlp.Extraction, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "Return ONLY valid JSON, nothing else.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: nlp.ExtractionPrompt(message, known),
				},
			},
			Temperature: 0.1,
			MaxTokens:   200,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return nlp.ParseModelExtraction(resp.Choices[0].Message.Content, nlp.SourceOpenAI)
}

func (c *chatGPTService) Synthesize(ctx context.Context, turn nlp.TurnData) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: nlp.SynthesisPrompt(turn),
				},
			},
			Temperature: 0.6,
			MaxTokens:   400,
		},
	)
	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
