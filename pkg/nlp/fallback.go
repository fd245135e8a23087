package nlp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SovicoAssistant/internal/entity"
)

var ErrEmptyReply = errors.New("nlp: synthesizer returned an empty reply")

// FallbackExtractor bounds the primary extractor with a timeout and answers
// from the secondary one when the primary is slow or fails.
type FallbackExtractor struct {
	primary   IntentExtractor
	secondary IntentExtractor
	timeout   time.Duration

	// OnFallback, when set, is told why the secondary was used.
	OnFallback func(err error)
}

func NewFallbackExtractor(primary, secondary IntentExtractor, timeout time.Duration) *FallbackExtractor {
	return &FallbackExtractor{
		primary:   primary,
		secondary: secondary,
		timeout:   timeout,
	}
}

type extractOutcome struct {
	extraction *Extraction
	err        error
}

func (f *FallbackExtractor) Extract(ctx context.Context, message string, known entity.Slots) (*Extraction, error) {
	if f.primary == nil {
		return f.secondary.Extract(ctx, message, known)
	}

	c, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan extractOutcome, 1)
	go func() {
		extraction, err := f.primary.Extract(c, message, known)
		done <- extractOutcome{extraction: extraction, err: err}
	}()

	var err error
	select {
	case out := <-done:
		if out.err == nil && out.extraction != nil {
			return out.extraction, nil
		}
		err = out.err
		if err == nil {
			err = errors.New("nlp: primary extractor returned nothing")
		}
	case <-c.Done():
		err = fmt.Errorf("nlp: primary extractor: %w", c.Err())
	}

	if f.OnFallback != nil {
		f.OnFallback(err)
	}

	return f.secondary.Extract(ctx, message, known)
}

// FallbackSynthesizer rephrases the draft through the primary synthesizer and
// keeps the draft when that fails or takes too long.
type FallbackSynthesizer struct {
	primary ResponseSynthesizer
	timeout time.Duration

	OnFallback func(err error)
}

func NewFallbackSynthesizer(primary ResponseSynthesizer, timeout time.Duration) *FallbackSynthesizer {
	return &FallbackSynthesizer{
		primary: primary,
		timeout: timeout,
	}
}

type synthOutcome struct {
	reply string
	err   error
}

func (f *FallbackSynthesizer) Synthesize(ctx context.Context, turn TurnData) (string, error) {
	if f.primary == nil {
		return turn.Draft, nil
	}

	c, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan synthOutcome, 1)
	go func() {
		reply, err := f.primary.Synthesize(c, turn)
		done <- synthOutcome{reply: reply, err: err}
	}()

	var err error
	select {
	case out := <-done:
		if out.err == nil && out.reply != "" {
			return out.reply, nil
		}
		err = out.err
		if err == nil {
			err = ErrEmptyReply
		}
	case <-c.Done():
		err = fmt.Errorf("nlp: primary synthesizer: %w", c.Err())
	}

	if f.OnFallback != nil {
		f.OnFallback(err)
	}

	return turn.Draft, nil
}

// TemplateSynthesizer returns the templated draft unchanged.
type TemplateSynthesizer struct{}

func (TemplateSynthesizer) Synthesize(_ context.Context, turn TurnData) (string, error) {
	return turn.Draft, nil
}
