package strengths

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/strengthsync/strengthsync/internal/dependencies/clock"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// Service manages member strength rankings and backs the claim eligibility
// capability used by the challenge board engine
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new StrengthsService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// SetAssessment replaces a member's current assessment with the given ranks
func (s *Service) SetAssessment(ctx context.Context, memberID model.MemberID, source string, ranks []model.StrengthRank) (*model.Assessment, error) {
	if err := ValidateRanks(ranks); err != nil {
		return nil, err
	}

	if _, err := s.storage.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		ID:         uuid.NewString(),
		MemberID:   memberID,
		Source:     source,
		UploadedAt: s.clock.Now(),
		Ranks:      ranks,
	}

	if err := s.storage.SaveAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	s.logger.Info("assessment saved",
		slog.String("member_id", string(memberID)),
		slog.String("assessment_id", assessment.ID),
		slog.Int("theme_count", len(ranks)),
	)

	return assessment, nil
}

// ValidateRanks checks that every theme is known, every rank is in range,
// and no rank or theme appears twice
func ValidateRanks(ranks []model.StrengthRank) error {
	seenThemes := make(map[string]bool, len(ranks))
	seenRanks := make(map[int]bool, len(ranks))

	for _, r := range ranks {
		if !model.IsKnownTheme(r.Theme) {
			return model.ErrUnknownTheme
		}
		if r.Rank < 1 || r.Rank > model.MaxRank {
			return model.ErrInvalidRank
		}
		if seenThemes[r.Theme] || seenRanks[r.Rank] {
			return model.ErrDuplicateRank
		}
		seenThemes[r.Theme] = true
		seenRanks[r.Rank] = true
	}

	return nil
}

// GetAssessment returns a member's current assessment
func (s *Service) GetAssessment(ctx context.Context, memberID model.MemberID) (*model.Assessment, error) {
	return s.storage.GetAssessment(ctx, memberID)
}

// TopStrengths returns a member's themes ranked at or above the cutoff,
// strongest first
func (s *Service) TopStrengths(ctx context.Context, memberID model.MemberID, cutoff int) ([]string, error) {
	assessment, err := s.storage.GetAssessment(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return assessment.TopThemes(cutoff), nil
}

// IsEligible reports whether the member may be used as claim evidence for
// the given theme: they must belong to the org, be active, and hold the
// theme at rank <= TopStrengthRank.
func (s *Service) IsEligible(ctx context.Context, orgID model.OrgID, memberID model.MemberID, theme string) (bool, error) {
	member, err := s.storage.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}

	if member.OrgID != orgID || !member.IsActive() {
		return false, nil
	}

	assessment, err := s.storage.GetAssessment(ctx, memberID)
	if err != nil {
		if errors.Is(err, model.ErrNoAssessment) {
			return false, nil
		}
		return false, err
	}

	rank := assessment.RankOf(theme)
	return rank >= 1 && rank <= model.TopStrengthRank, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	SetAssessment(ctx context.Context, memberID model.MemberID, source string, ranks []model.StrengthRank) (*model.Assessment, error)
	GetAssessment(ctx context.Context, memberID model.MemberID) (*model.Assessment, error)
	TopStrengths(ctx context.Context, memberID model.MemberID, cutoff int) ([]string, error)
	IsEligible(ctx context.Context, orgID model.OrgID, memberID model.MemberID, theme string) (bool, error)
}

var _ ServiceInterface = (*Service)(nil)
