package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/badges"
	"github.com/strengthsync/strengthsync/internal/services/strengths"
)

// Service handles strength report uploads: extract text, parse ranks,
// store the assessment, and award the assessment badge.
type Service struct {
	extractor TextExtractor
	strengths *strengths.Service
	badges    *badges.Service
	logger    *slog.Logger
}

// New creates a new ReportService
func New(extractor TextExtractor, strengthsService *strengths.Service, badgeService *badges.Service, logger *slog.Logger) *Service {
	return &Service{
		extractor: extractor,
		strengths: strengthsService,
		badges:    badgeService,
		logger:    logger,
	}
}

// Upload processes an uploaded report document for a member
func (s *Service) Upload(ctx context.Context, memberID model.MemberID, filename string, data []byte) (*model.Assessment, error) {
	text, err := s.extractor.ExtractText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedReport, err)
	}

	ranks, err := ParseRanks(text)
	if err != nil {
		return nil, err
	}

	assessment, err := s.strengths.SetAssessment(ctx, memberID, filename, ranks)
	if err != nil {
		return nil, err
	}

	// Badge failure must not fail the upload
	if _, err := s.badges.Award(ctx, memberID, model.BadgeAssessmentComplete, "uploaded strength report"); err != nil {
		s.logger.Warn("could not award assessment badge",
			slog.String("member_id", string(memberID)),
			slog.String("error", err.Error()),
		)
	}

	return assessment, nil
}
