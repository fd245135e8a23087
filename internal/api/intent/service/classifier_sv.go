package intentService

import (
	"SovicoAssistant/internal/api/intent"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/nlp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var searchExtractor = nlp.NewRuleExtractor()

func (s *classifierService) AnalyzeIntent(ctx context.Context, message string, recent intent.RecentContext, userID string) intent.Result {
	s.history.Append(userID, message)

	var slots entity.Slots
	if extraction, err := searchExtractor.Extract(ctx, message, entity.Slots{}); err == nil {
		slots = extraction.Slots
	}

	booking := scoreBooking(message, recent)
	search := scoreSearch(message, slots)
	info := scoreInfo(message, recent)
	selected := pick(booking, search, info)

	s.logDecision(ctx, userID, logrus.Fields{
		"booking":    booking.Confidence,
		"search":     search.Confidence,
		"info":       info.Confidence,
		"has_search": recent.HasRecentSearch(),
		"selected":   selected.Intent,
	})

	return selected
}

func (s *classifierService) ShouldProceedWithBooking(ctx context.Context, message string, recent intent.RecentContext, userID string) intent.Decision {
	result := s.AnalyzeIntent(ctx, message, recent, userID)

	if result.Intent != intent.IntentBookFlight || result.Confidence <= 0 {
		return intent.Decision{
			Confidence: result.Confidence,
			Reason:     "No booking intent detected",
			Result:     result,
		}
	}

	switch {
	case result.Confidence >= 0.8:
		return intent.Decision{
			ShouldBook: true,
			Confidence: result.Confidence,
			Reason:     "Strong booking intent detected",
			Result:     result,
		}
	case result.Confidence >= 0.5:
		return intent.Decision{
			ShouldConfirm: true,
			Confidence:    result.Confidence,
			Reason:        "Ambiguous intent - need confirmation",
			Result:        result,
		}
	case recent.HasRecentSearch():
		return intent.Decision{
			ShouldConfirm: true,
			Confidence:    result.Confidence,
			Reason:        "Low confidence but has context - need confirmation",
			Result:        result,
		}
	}

	return intent.Decision{
		Confidence: result.Confidence,
		Reason:     "Low confidence - not booking intent",
		Result:     result,
	}
}
