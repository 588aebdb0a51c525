package challenge

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/strengthsync/strengthsync/internal/dependencies/clock"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/badges"
	"github.com/strengthsync/strengthsync/internal/services/bingo"
	"github.com/strengthsync/strengthsync/internal/services/boardgen"
	"github.com/strengthsync/strengthsync/internal/services/notify"
	"github.com/strengthsync/strengthsync/internal/services/strengths"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// FirstWinBonus is the one-time score bonus applied when a participant
// first wins their board
const FirstWinBonus = 50

// Controller manages the challenge lifecycle and claim orchestration
type Controller struct {
	storage   storage.Storage
	boardgen  *boardgen.Service
	strengths *strengths.Service
	badges    *badges.Service
	notify    *notify.Service
	clock     clock.Clock
	logger    *slog.Logger
}

// NewController creates a new ChallengeController
func NewController(
	storage storage.Storage,
	boardgenService *boardgen.Service,
	strengthsService *strengths.Service,
	badgeService *badges.Service,
	notifyService *notify.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		boardgen:  boardgenService,
		strengths: strengthsService,
		badges:    badgeService,
		notify:    notifyService,
		clock:     clock,
		logger:    logger,
	}
}

// Create creates a challenge in DRAFT
func (c *Controller) Create(ctx context.Context, orgID model.OrgID, createdBy model.MemberID, title string, rules model.ChallengeRules) (*model.Challenge, error) {
	if rules.WinCondition == "" {
		rules.WinCondition = model.DefaultRules().WinCondition
	}
	if rules.BoardSize == 0 {
		rules.BoardSize = model.DefaultRules().BoardSize
	}
	if err := boardgen.ValidateSize(rules.BoardSize); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	challenge := &model.Challenge{
		ID:        model.ChallengeID(uuid.NewString()),
		OrgID:     orgID,
		Type:      model.ChallengeTypeBingo,
		Title:     title,
		Status:    model.ChallengeStatusDraft,
		Rules:     rules,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	c.logger.Info("challenge created",
		slog.String("challenge_id", string(challenge.ID)),
		slog.String("org_id", string(orgID)),
		slog.String("win_condition", rules.WinCondition),
	)

	return challenge, nil
}

// GetChallenge retrieves a challenge by ID
func (c *Controller) GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	return c.storage.GetChallenge(ctx, id)
}

// ListChallenges lists an org's challenges, newest first
func (c *Controller) ListChallenges(ctx context.Context, orgID model.OrgID) ([]*model.Challenge, error) {
	challenges, err := c.storage.ListChallenges(ctx, orgID)
	if err != nil {
		return nil, err
	}
	sort.Slice(challenges, func(i, j int) bool {
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})
	return challenges, nil
}

// Activate moves a DRAFT challenge to ACTIVE and announces it
func (c *Controller) Activate(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	challenge, err := c.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}
	if challenge.Status != model.ChallengeStatusDraft {
		return nil, model.ErrChallengeNotDraft
	}

	challenge.Status = model.ChallengeStatusActive
	challenge.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	c.notify.ChallengeActivated(ctx, challenge)

	return challenge, nil
}

// Complete closes an ACTIVE challenge and awards the participation badge
func (c *Controller) Complete(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	challenge, err := c.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}
	if challenge.Status != model.ChallengeStatusActive {
		return nil, model.ErrChallengeNotActive
	}

	challenge.Status = model.ChallengeStatusCompleted
	challenge.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	participants, err := c.storage.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, p := range participants {
		if _, err := c.badges.Award(ctx, p.MemberID, model.BadgeChallengeComplete, "challenge "+string(id)+" completed"); err != nil {
			c.logger.Warn("could not award completion badge",
				slog.String("member_id", string(p.MemberID)),
				slog.String("error", err.Error()),
			)
		}
	}

	c.logger.Info("challenge completed",
		slog.String("challenge_id", string(id)),
		slog.Int("participant_count", len(participants)),
	)

	return challenge, nil
}

// Archive moves a COMPLETED challenge to ARCHIVED
func (c *Controller) Archive(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	challenge, err := c.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	challenge.Status = model.ChallengeStatusArchived
	challenge.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Join enrolls a member in an ACTIVE challenge, generating their board
func (c *Controller) Join(ctx context.Context, challengeID model.ChallengeID, memberID model.MemberID) (*model.Participant, error) {
	challenge, err := c.storage.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.Joinable() {
		return nil, model.ErrChallengeNotActive
	}

	member, err := c.storage.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.OrgID != challenge.OrgID {
		return nil, model.ErrNotOrgMember
	}
	if !member.IsActive() {
		return nil, model.ErrMemberInactive
	}

	if _, err := c.storage.GetParticipant(ctx, challengeID, memberID); err == nil {
		return nil, model.ErrAlreadyJoined
	}

	progress, err := c.boardgen.NewProgress(challenge.Rules.BoardSize)
	if err != nil {
		return nil, err
	}

	participant := &model.Participant{
		ChallengeID: challengeID,
		MemberID:    memberID,
		Progress:    progress,
		Score:       bingo.Score(&progress),
		JoinedAt:    c.clock.Now(),
	}

	if err := c.storage.SaveParticipant(ctx, participant); err != nil {
		return nil, err
	}

	c.logger.Info("member joined challenge",
		slog.String("challenge_id", string(challengeID)),
		slog.String("member_id", string(memberID)),
	)

	return participant, nil
}

// GetParticipant returns a member's enrollment record for a challenge
func (c *Controller) GetParticipant(ctx context.Context, challengeID model.ChallengeID, memberID model.MemberID) (*model.Participant, error) {
	return c.storage.GetParticipant(ctx, challengeID, memberID)
}

// ClaimSquare is the claim orchestration: load the acting member's progress,
// run the board engine with the strengths eligibility capability, persist the
// updated progress, and apply one-time first-win side effects.
func (c *Controller) ClaimSquare(ctx context.Context, challengeID model.ChallengeID, actingMemberID model.MemberID, row, col int, claimingMemberID model.MemberID) (*bingo.ClaimResult, error) {
	challenge, err := c.storage.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.Status != model.ChallengeStatusActive {
		return nil, model.ErrChallengeNotActive
	}

	participant, err := c.storage.GetParticipant(ctx, challengeID, actingMemberID)
	if err != nil {
		return nil, err
	}

	// Stored progress is an untrusted JSON blob; validate its shape before
	// the engine indexes into it.
	if err := participant.Progress.Validate(challenge.Rules.BoardSize); err != nil {
		return nil, err
	}

	if !participant.Progress.Board.InBounds(row, col) {
		return nil, model.ErrInvalidPosition
	}

	claimingName := string(claimingMemberID)
	if claiming, err := c.storage.GetMember(ctx, claimingMemberID); err == nil {
		claimingName = claiming.DisplayName
	}

	eligible := func(ctx context.Context, memberID model.MemberID, theme string) (bool, error) {
		return c.strengths.IsEligible(ctx, challenge.OrgID, memberID, theme)
	}

	wasWon := participant.Progress.HasWon

	result, err := bingo.ClaimSquare(ctx, &participant.Progress, challenge.Rules, bingo.Claim{
		Row:                row,
		Col:                col,
		ClaimingMemberID:   claimingMemberID,
		ClaimingMemberName: claimingName,
		ActingMemberID:     actingMemberID,
	}, eligible)
	if err != nil {
		return nil, err
	}

	// First-win side effects are gated on the hasWon transition so a
	// retried request can never award them twice.
	firstWin := !wasWon && result.HasWon
	if firstWin && participant.CompletedAt == nil {
		now := c.clock.Now()
		participant.CompletedAt = &now
	}

	// The board score is recomputed on every claim; the bonus applies on
	// top of it for as long as the completion stands.
	participant.Score = result.Score
	if participant.CompletedAt != nil {
		participant.Score += FirstWinBonus
	}
	result.Score = participant.Score

	if err := c.storage.SaveParticipant(ctx, participant); err != nil {
		return nil, err
	}

	if firstWin {
		c.applyFirstWinEffects(ctx, challenge, participant)
	}

	return result, nil
}

// applyFirstWinEffects awards the first-bingo badge and announces the win
func (c *Controller) applyFirstWinEffects(ctx context.Context, challenge *model.Challenge, participant *model.Participant) {
	if _, err := c.badges.Award(ctx, participant.MemberID, model.BadgeFirstBingo, "won challenge "+string(challenge.ID)); err != nil {
		c.logger.Warn("could not award first-bingo badge",
			slog.String("member_id", string(participant.MemberID)),
			slog.String("error", err.Error()),
		)
	}

	member, err := c.storage.GetMember(ctx, participant.MemberID)
	if err != nil {
		return
	}
	c.notify.ChallengeWon(ctx, challenge, member, participant.Score)

	c.logger.Info("challenge won",
		slog.String("challenge_id", string(challenge.ID)),
		slog.String("member_id", string(participant.MemberID)),
		slog.Int("score", participant.Score),
	)
}

// Leaderboard returns a challenge's participants ordered by score descending,
// ties broken by earliest completion then earliest join
func (c *Controller) Leaderboard(ctx context.Context, challengeID model.ChallengeID) ([]*model.Participant, error) {
	if _, err := c.storage.GetChallenge(ctx, challengeID); err != nil {
		return nil, err
	}

	participants, err := c.storage.ListParticipants(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	sort.Slice(participants, func(i, j int) bool {
		a, b := participants[i], participants[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.CompletedAt != nil && b.CompletedAt != nil:
			if !a.CompletedAt.Equal(*b.CompletedAt) {
				return a.CompletedAt.Before(*b.CompletedAt)
			}
		case a.CompletedAt != nil:
			return true
		case b.CompletedAt != nil:
			return false
		}
		return a.JoinedAt.Before(b.JoinedAt)
	})

	return participants, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, orgID model.OrgID, createdBy model.MemberID, title string, rules model.ChallengeRules) (*model.Challenge, error)
	GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error)
	ListChallenges(ctx context.Context, orgID model.OrgID) ([]*model.Challenge, error)
	Activate(ctx context.Context, id model.ChallengeID) (*model.Challenge, error)
	Complete(ctx context.Context, id model.ChallengeID) (*model.Challenge, error)
	Archive(ctx context.Context, id model.ChallengeID) (*model.Challenge, error)
	Join(ctx context.Context, challengeID model.ChallengeID, memberID model.MemberID) (*model.Participant, error)
	GetParticipant(ctx context.Context, challengeID model.ChallengeID, memberID model.MemberID) (*model.Participant, error)
	ClaimSquare(ctx context.Context, challengeID model.ChallengeID, actingMemberID model.MemberID, row, col int, claimingMemberID model.MemberID) (*bingo.ClaimResult, error)
	Leaderboard(ctx context.Context, challengeID model.ChallengeID) ([]*model.Participant, error)
}

var _ ControllerInterface = (*Controller)(nil)
