package config

import (
	"SovicoAssistant/pkg/gemini"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/nlp"
	"SovicoAssistant/pkg/openai"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"os"
	"strings"
	"time"
)

const defaultExtractorTimeout = 8 * time.Second

// LanguageModel is the optional model-backed pair used by the orchestrator.
// Both halves fall back to the deterministic rules and templates.
type LanguageModel struct {
	Extractor   nlp.IntentExtractor
	Synthesizer nlp.ResponseSynthesizer
	Close       func()
}

// NewLanguageModel builds the provider named by LLM_PROVIDER. An empty
// provider returns a nil model.
func NewLanguageModel(ctx context.Context, log *logrus.Logger, m *metrics.Metrics, provider string) (*LanguageModel, error) {
	timeout := defaultExtractorTimeout
	if raw := os.Getenv("EXTRACTOR_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid EXTRACTOR_TIMEOUT %q: %w", raw, err)
		}
		timeout = d
	}

	type model interface {
		nlp.IntentExtractor
		nlp.ResponseSynthesizer
	}

	var (
		primary model
		closer  = func() {}
	)

	switch strings.ToLower(provider) {
	case "":
		return nil, nil
	case "gemini":
		client, err := gemini.NewGeminiClient(ctx)
		if err != nil {
			return nil, err
		}
		primary, closer = client, client.Close
	case "openai":
		client, err := openai.NewChatGPT()
		if err != nil {
			return nil, err
		}
		primary = client
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}

	onFallback := func(err error) {
		m.ExtractorFallbacks.Inc()
		log.WithFields(logrus.Fields{
			"provider": provider,
			"error":    err.Error(),
		}).Warn("Language model unavailable, using rules")
	}

	extractor := nlp.NewFallbackExtractor(primary, nlp.NewRuleExtractor(), timeout)
	extractor.OnFallback = onFallback

	synthesizer := nlp.NewFallbackSynthesizer(primary, timeout)
	synthesizer.OnFallback = onFallback

	log.WithField("provider", provider).Info("Language model enabled")

	return &LanguageModel{
		Extractor:   extractor,
		Synthesizer: synthesizer,
		Close:       closer,
	}, nil
}
