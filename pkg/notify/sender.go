package notify

import (
	"context"

	"SovicoAssistant/pkg/utils"

	"github.com/sirupsen/logrus"
)

// MessageSender delivers a text message to a phone number.
type MessageSender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

// LogSender is the development sender: it only writes the masked phone to the log.
type LogSender struct {
	Log *logrus.Logger
}

func (s LogSender) SendMessage(_ context.Context, phoneNumber, message string) error {
	s.Log.WithFields(logrus.Fields{
		"phone":  utils.MaskPhone(phoneNumber),
		"length": len(message),
	}).Info("SMS delivery simulated")
	return nil
}
