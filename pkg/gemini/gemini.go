package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/nlp"
)

var ErrNoCandidates = errors.New("gemini: no response candidates")

type IGemini interface {
	nlp.IntentExtractor
	nlp.ResponseSynthesizer
	Close()
}

type geminiClient struct {
	modelName string
	client    *genai.Client
}

func NewGeminiClient(ctx context.Context) (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiClient{
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) Extract(ctx context.Context, message string, known entity.Slots) (*nlp.Extraction, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.1)

	text, err := g.generate(ctx, model, nlp.ExtractionPrompt(message, known))
	if err != nil {
		return nil, err
	}

	return nlp.ParseModelExtraction(text, nlp.SourceGemini)
}

func (g *geminiClient) Synthesize(ctx context.Context, turn nlp.TurnData) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.6)

	return g.generate(ctx, model, nlp.SynthesisPrompt(turn))
}

func (g *geminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", ErrNoCandidates
	}

	var out strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(out.String()), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
