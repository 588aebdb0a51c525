package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/strengthsync/strengthsync/internal/model"
)

// Default logical channel for org-wide announcements
const channelGeneral = "general"

// Service builds and sends chat notifications for domain events
type Service struct {
	sender Sender
	logger *slog.Logger
}

// New creates a new NotifyService
func New(sender Sender, logger *slog.Logger) *Service {
	return &Service{
		sender: sender,
		logger: logger,
	}
}

// ChallengeWon announces a participant's first win on a challenge
func (s *Service) ChallengeWon(ctx context.Context, challenge *model.Challenge, member *model.Member, score int) {
	text := fmt.Sprintf("%s just got bingo in %q with %d points!", member.DisplayName, challenge.Title, score)
	s.send(ctx, Message{Channel: channelGeneral, Text: text})
}

// ChallengeActivated announces that a challenge is open for joining
func (s *Service) ChallengeActivated(ctx context.Context, challenge *model.Challenge) {
	text := fmt.Sprintf("A new challenge is live: %q. Join and start claiming squares!", challenge.Title)
	s.send(ctx, Message{Channel: channelGeneral, Text: text})
}

// BadgeAwarded announces a badge grant
func (s *Service) BadgeAwarded(ctx context.Context, member *model.Member, badge model.Badge) {
	text := fmt.Sprintf("%s earned the %q badge: %s", member.DisplayName, badge.Name, badge.Description)
	s.send(ctx, Message{Channel: channelGeneral, Text: text})
}

// send delivers a message, logging delivery failures without propagating
// them; notifications are best-effort and never fail the triggering request.
func (s *Service) send(ctx context.Context, msg Message) {
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Warn("chat notification failed",
			slog.String("channel", msg.Channel),
			slog.String("error", err.Error()),
		)
	}
}
