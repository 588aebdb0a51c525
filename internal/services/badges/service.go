package badges

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/strengthsync/strengthsync/internal/dependencies/clock"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// builtin badge definitions, keyed by slug
var builtin = map[model.BadgeSlug]model.Badge{
	model.BadgeFirstBingo: {
		Slug:        model.BadgeFirstBingo,
		Name:        "First Bingo",
		Description: "Won a bingo challenge for the first time",
	},
	model.BadgeAssessmentComplete: {
		Slug:        model.BadgeAssessmentComplete,
		Name:        "Know Thyself",
		Description: "Uploaded a strength assessment report",
	},
	model.BadgeChallengeComplete: {
		Slug:        model.BadgeChallengeComplete,
		Name:        "Challenge Finisher",
		Description: "Participated in a challenge through to completion",
	},
}

// Service grants badges to members. Awards are idempotent per (member, badge).
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new BadgeService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Definition returns a built-in badge definition
func Definition(slug model.BadgeSlug) (model.Badge, error) {
	badge, ok := builtin[slug]
	if !ok {
		return model.Badge{}, model.ErrBadgeNotFound
	}
	return badge, nil
}

// Award grants a badge to a member. Awarding a badge the member already
// holds is a no-op and returns the existing award.
func (s *Service) Award(ctx context.Context, memberID model.MemberID, slug model.BadgeSlug, reason string) (*model.BadgeAward, error) {
	if _, err := Definition(slug); err != nil {
		return nil, err
	}

	existing, err := s.storage.GetBadgeAward(ctx, memberID, slug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrBadgeNotFound) {
		return nil, err
	}

	award := &model.BadgeAward{
		ID:        uuid.NewString(),
		Slug:      slug,
		MemberID:  memberID,
		Reason:    reason,
		AwardedAt: s.clock.Now(),
	}

	if err := s.storage.SaveBadgeAward(ctx, award); err != nil {
		return nil, err
	}

	s.logger.Info("badge awarded",
		slog.String("member_id", string(memberID)),
		slog.String("badge", string(slug)),
	)

	return award, nil
}

// ListForMember returns all badges a member has earned
func (s *Service) ListForMember(ctx context.Context, memberID model.MemberID) ([]*model.BadgeAward, error) {
	return s.storage.ListBadgeAwards(ctx, memberID)
}

// Interface for dependency injection
type ServiceInterface interface {
	Award(ctx context.Context, memberID model.MemberID, slug model.BadgeSlug, reason string) (*model.BadgeAward, error)
	ListForMember(ctx context.Context, memberID model.MemberID) ([]*model.BadgeAward, error)
}

var _ ServiceInterface = (*Service)(nil)
