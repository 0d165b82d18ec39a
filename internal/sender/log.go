package sender

import (
	"context"

	"go.uber.org/zap"
)

// LogSender is the development dispatcher: it writes the notification to the
// log instead of delivering it.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, destination, subject, body string) error {
	s.log.Info("notification (not delivered, log sender)",
		zap.String("to", destination),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
