package mail

import (
	"context"
	"log/slog"

	"github.com/phrazzld/bloggers-api/internal/platform/logger"
)

// LogSender records messages in the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger falls back to slog.Default.
func NewLogSender(l *slog.Logger) *LogSender {
	if l == nil {
		l = slog.Default()
	}
	return &LogSender{logger: l.With(slog.String("component", "mail"))}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	msg = msg.normalized()
	if err := msg.validate(); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "email not delivered (log driver)",
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.TextBody))
	return nil
}
