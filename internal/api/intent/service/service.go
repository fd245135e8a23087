package intentService

import (
	"SovicoAssistant/internal/api/intent"
	contextPkg "SovicoAssistant/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IClassifierService interface {
	AnalyzeIntent(ctx context.Context, message string, recent intent.RecentContext, userID string) intent.Result
	ShouldProceedWithBooking(ctx context.Context, message string, recent intent.RecentContext, userID string) intent.Decision
	History(userID string) []string
}

type classifierService struct {
	log     *logrus.Logger
	history HistoryStore
}

func NewClassifierService(log *logrus.Logger, history HistoryStore) IClassifierService {
	if history == nil {
		history = NewMemoryHistory(historySize)
	}

	return &classifierService{
		log:     log,
		history: history,
	}
}

func (s *classifierService) History(userID string) []string {
	return s.history.Recent(userID)
}

func (s *classifierService) logDecision(ctx context.Context, userID string, fields logrus.Fields) {
	fields["request_id"] = contextPkg.GetRequestID(ctx)
	fields["user_id"] = userID
	s.log.WithFields(fields).Debug("Intent analysis")
}
