package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Message is one outbound chat notification
type Message struct {
	Channel string // logical channel; routing is the sender's concern
	Text    string
}

// Sender delivers notifications to the configured chat platform.
// Actual HTTP delivery lives behind this boundary.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes notifications to the application log. Used when no chat
// webhook is configured so notification paths stay exercised in deployment.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("chat notification",
		slog.String("channel", msg.Channel),
		slog.String("text", msg.Text),
	)
	return nil
}

// MemorySender records sent messages for assertions in tests
type MemorySender struct {
	mu       sync.Mutex
	Messages []Message
}

// NewMemorySender creates a MemorySender
func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

// Send records the message
func (s *MemorySender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return nil
}

// Sent returns a copy of the messages sent so far
func (s *MemorySender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}
