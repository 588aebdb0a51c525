package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/strengthsync/strengthsync/internal/dependencies/mocks"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/badges"
	"github.com/strengthsync/strengthsync/internal/services/boardgen"
	"github.com/strengthsync/strengthsync/internal/services/notify"
	"github.com/strengthsync/strengthsync/internal/services/strengths"
	"github.com/strengthsync/strengthsync/internal/storage/memory"
	"github.com/strengthsync/strengthsync/internal/testutil"
)

// boardThemes3 is the fixed layout used for deterministic 3x3 boards,
// row-major with the free space at the center
var boardThemes3 = [3][3]string{
	{"Achiever", "Activator", "Adaptability"},
	{"Analytical", model.FreeSpace, "Arranger"},
	{"Belief", "Command", "Communication"},
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	sent       *notify.MemorySender
	badges     *badges.Service
	strengths  *strengths.Service
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.sent = notify.NewMemorySender()
	logger := testutil.NopLogger()

	s.badges = badges.New(s.storage, s.clock, logger)
	s.strengths = strengths.New(s.storage, s.clock, logger)

	s.controller = NewController(
		s.storage,
		boardgen.New(mocks.NewMockRandom()),
		s.strengths,
		s.badges,
		notify.New(s.sent, logger),
		s.clock,
		logger,
	)
	s.ctx = context.Background()
}

func (s *ControllerSuite) seedMember(id model.MemberID, orgID model.OrgID) *model.Member {
	member := &model.Member{
		ID:          id,
		OrgID:       orgID,
		DisplayName: string(id),
		Role:        model.RoleMember,
		Status:      model.MemberStatusActive,
	}
	s.Require().NoError(s.storage.SaveMember(s.ctx, member))
	return member
}

// seedAssessment ranks the named themes 1..n and fills the rest of the
// catalog with the remaining ranks
func (s *ControllerSuite) seedAssessment(memberID model.MemberID, topThemes ...string) {
	ranks := make([]model.StrengthRank, 0, model.ThemeCount())
	rank := 1
	for _, theme := range topThemes {
		ranks = append(ranks, model.StrengthRank{Theme: theme, Rank: rank})
		rank++
	}
	named := make(map[string]bool, len(topThemes))
	for _, theme := range topThemes {
		named[theme] = true
	}
	for _, theme := range model.AllThemes() {
		if named[theme] {
			continue
		}
		ranks = append(ranks, model.StrengthRank{Theme: theme, Rank: rank})
		rank++
	}
	_, err := s.strengths.SetAssessment(s.ctx, memberID, "seed", ranks)
	s.Require().NoError(err)
}

func (s *ControllerSuite) activeChallenge(winCondition string) *model.Challenge {
	challenge, err := s.controller.Create(s.ctx, "org-1", "manager-1", "Q1 Bingo", model.ChallengeRules{
		WinCondition: winCondition,
		BoardSize:    3,
	})
	s.Require().NoError(err)
	challenge, err = s.controller.Activate(s.ctx, challenge.ID)
	s.Require().NoError(err)
	return challenge
}

// seedBoard installs a deterministic 3x3 board for the acting member
func (s *ControllerSuite) seedBoard(challengeID model.ChallengeID, memberID model.MemberID) *model.Participant {
	board := model.Board{Size: 3, Squares: make([][]model.Square, 3)}
	for row := 0; row < 3; row++ {
		board.Squares[row] = make([]model.Square, 3)
		for col := 0; col < 3; col++ {
			theme := boardThemes3[row][col]
			board.Squares[row][col] = model.Square{
				Theme:  theme,
				Domain: string(model.DomainOfTheme(theme)),
				Marked: theme == model.FreeSpace,
			}
		}
	}
	participant := &model.Participant{
		ChallengeID: challengeID,
		MemberID:    memberID,
		Progress:    model.Progress{Board: board, CompletedLines: []string{}},
		Score:       1,
		JoinedAt:    s.clock.Now(),
	}
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, participant))
	return participant
}

// allBoardThemes returns every claimable theme on the fixed layout
func allBoardThemes() []string {
	var themes []string
	for _, row := range boardThemes3 {
		for _, theme := range row {
			if theme != model.FreeSpace {
				themes = append(themes, theme)
			}
		}
	}
	return themes
}

// Lifecycle

func (s *ControllerSuite) TestCreateAppliesDefaults() {
	challenge, err := s.controller.Create(s.ctx, "org-1", "manager-1", "Defaults", model.ChallengeRules{})
	s.Require().NoError(err)

	s.Equal(model.ChallengeStatusDraft, challenge.Status)
	s.Equal(model.ChallengeTypeBingo, challenge.Type)
	s.Equal(model.WinConditionRowOrColumn, challenge.Rules.WinCondition)
	s.Equal(5, challenge.Rules.BoardSize)
}

func (s *ControllerSuite) TestCreateRejectsInvalidSize() {
	_, err := s.controller.Create(s.ctx, "org-1", "manager-1", "Bad", model.ChallengeRules{BoardSize: 4})
	s.ErrorIs(err, model.ErrInvalidBoardSize)
}

func (s *ControllerSuite) TestActivateAnnounces() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)

	s.Equal(model.ChallengeStatusActive, challenge.Status)
	messages := s.sent.Sent()
	s.Require().Len(messages, 1)
	s.Contains(messages[0].Text, "Q1 Bingo")
}

func (s *ControllerSuite) TestActivateRequiresDraft() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)

	_, err := s.controller.Activate(s.ctx, challenge.ID)
	s.ErrorIs(err, model.ErrChallengeNotDraft)
}

func (s *ControllerSuite) TestCompleteAwardsParticipationBadge() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	_, err := s.controller.Join(s.ctx, challenge.ID, "player-1")
	s.Require().NoError(err)

	completed, err := s.controller.Complete(s.ctx, challenge.ID)
	s.Require().NoError(err)
	s.Equal(model.ChallengeStatusCompleted, completed.Status)

	awards, err := s.badges.ListForMember(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Len(awards, 1)
	s.Equal(model.BadgeChallengeComplete, awards[0].Slug)
}

func (s *ControllerSuite) TestCompleteRequiresActive() {
	challenge, err := s.controller.Create(s.ctx, "org-1", "manager-1", "Draft", model.ChallengeRules{})
	s.Require().NoError(err)

	_, err = s.controller.Complete(s.ctx, challenge.ID)
	s.ErrorIs(err, model.ErrChallengeNotActive)
}

func (s *ControllerSuite) TestArchive() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	_, err := s.controller.Complete(s.ctx, challenge.ID)
	s.Require().NoError(err)

	archived, err := s.controller.Archive(s.ctx, challenge.ID)
	s.Require().NoError(err)
	s.Equal(model.ChallengeStatusArchived, archived.Status)
}

func (s *ControllerSuite) TestListChallengesNewestFirst() {
	first, err := s.controller.Create(s.ctx, "org-1", "manager-1", "First", model.ChallengeRules{})
	s.Require().NoError(err)
	s.clock.Advance(time.Hour)
	second, err := s.controller.Create(s.ctx, "org-1", "manager-1", "Second", model.ChallengeRules{})
	s.Require().NoError(err)

	challenges, err := s.controller.ListChallenges(s.ctx, "org-1")
	s.Require().NoError(err)
	s.Require().Len(challenges, 2)
	s.Equal(second.ID, challenges[0].ID)
	s.Equal(first.ID, challenges[1].ID)
}

// Join

func (s *ControllerSuite) TestJoinGeneratesBoard() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")

	participant, err := s.controller.Join(s.ctx, challenge.ID, "player-1")
	s.Require().NoError(err)

	s.NoError(participant.Progress.Validate(3))
	s.False(participant.Progress.HasWon)
	// Only the free space is marked, no lines yet
	s.Equal(1, participant.Score)
	s.Nil(participant.CompletedAt)
}

func (s *ControllerSuite) TestJoinRequiresActiveChallenge() {
	challenge, err := s.controller.Create(s.ctx, "org-1", "manager-1", "Draft", model.ChallengeRules{})
	s.Require().NoError(err)
	s.seedMember("player-1", "org-1")

	_, err = s.controller.Join(s.ctx, challenge.ID, "player-1")
	s.ErrorIs(err, model.ErrChallengeNotActive)
}

func (s *ControllerSuite) TestJoinRejectsOtherOrg() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("outsider", "org-2")

	_, err := s.controller.Join(s.ctx, challenge.ID, "outsider")
	s.ErrorIs(err, model.ErrNotOrgMember)
}

func (s *ControllerSuite) TestJoinRejectsInactiveMember() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	member := s.seedMember("player-1", "org-1")
	member.Status = model.MemberStatusInactive
	s.Require().NoError(s.storage.SaveMember(s.ctx, member))

	_, err := s.controller.Join(s.ctx, challenge.ID, "player-1")
	s.ErrorIs(err, model.ErrMemberInactive)
}

func (s *ControllerSuite) TestJoinTwice() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	_, err := s.controller.Join(s.ctx, challenge.ID, "player-1")
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, challenge.ID, "player-1")
	s.ErrorIs(err, model.ErrAlreadyJoined)
}

// Claims

func (s *ControllerSuite) TestClaimSquare() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	s.seedMember("evidence-1", "org-1")
	s.seedAssessment("evidence-1", "Achiever")
	s.seedBoard(challenge.ID, "player-1")

	result, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 0, "evidence-1")
	s.Require().NoError(err)

	s.True(result.Square.Marked)
	s.Equal("evidence-1", result.Square.MarkedByName)
	s.Equal(2, result.Score)
	s.False(result.HasWon)

	stored, err := s.storage.GetParticipant(s.ctx, challenge.ID, "player-1")
	s.Require().NoError(err)
	s.Equal(2, stored.Score)
	s.True(stored.Progress.Board.At(0, 0).Marked)
}

func (s *ControllerSuite) TestClaimRequiresActiveChallenge() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	s.seedBoard(challenge.ID, "player-1")
	_, err := s.controller.Complete(s.ctx, challenge.ID)
	s.Require().NoError(err)

	_, err = s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 0, "evidence-1")
	s.ErrorIs(err, model.ErrChallengeNotActive)
}

func (s *ControllerSuite) TestClaimRequiresParticipation() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")

	_, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 0, "evidence-1")
	s.ErrorIs(err, model.ErrNotParticipant)
}

func (s *ControllerSuite) TestClaimOutOfBounds() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	s.seedBoard(challenge.ID, "player-1")

	_, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 3, 0, "evidence-1")
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ControllerSuite) TestClaimRejectsCorruptedStoredProgress() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	participant := s.seedBoard(challenge.ID, "player-1")

	// Simulate a stored blob damaged outside the engine's control
	participant.Progress.Board.Squares[1] = participant.Progress.Board.Squares[1][:2]
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, participant))

	_, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 0, "evidence-1")
	s.ErrorIs(err, model.ErrMalformedProgress)
}

func (s *ControllerSuite) TestClaimIneligibleEvidence() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	s.seedMember("evidence-1", "org-1")
	// No assessment uploaded for the evidence member
	s.seedBoard(challenge.ID, "player-1")

	_, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 0, "evidence-1")
	s.ErrorIs(err, model.ErrIneligibleMember)
}

func (s *ControllerSuite) TestFirstWinAppliesBonusAndEffects() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	s.seedMember("evidence-1", "org-1")
	s.seedAssessment("evidence-1", allBoardThemes()...)
	s.seedBoard(challenge.ID, "player-1")

	_, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 0, "evidence-1")
	s.Require().NoError(err)
	_, err = s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 1, "evidence-1")
	s.Require().NoError(err)

	winTime := s.clock.Now()
	result, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 0, 2, "evidence-1")
	s.Require().NoError(err)

	s.True(result.HasWon)
	s.Equal([]string{"row-0"}, result.CompletedLines)
	// 1 line and 4 marked squares, plus the first-win bonus
	s.Equal(14+FirstWinBonus, result.Score)

	stored, err := s.storage.GetParticipant(s.ctx, challenge.ID, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(stored.CompletedAt)
	s.Equal(winTime, *stored.CompletedAt)
	s.Equal(14+FirstWinBonus, stored.Score)

	awards, err := s.badges.ListForMember(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Len(awards, 1)
	s.Equal(model.BadgeFirstBingo, awards[0].Slug)

	messages := s.sent.Sent()
	s.Require().Len(messages, 2) // activation plus the win announcement
	s.Contains(messages[1].Text, "player-1")
	s.Contains(messages[1].Text, "Q1 Bingo")
}

func (s *ControllerSuite) TestWinEffectsApplyOnlyOnce() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	s.seedMember("player-1", "org-1")
	s.seedMember("evidence-1", "org-1")
	s.seedAssessment("evidence-1", allBoardThemes()...)
	s.seedBoard(challenge.ID, "player-1")

	for _, pos := range [][2]int{{0, 0}, {0, 1}, {0, 2}} {
		_, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", pos[0], pos[1], "evidence-1")
		s.Require().NoError(err)
	}
	won, err := s.storage.GetParticipant(s.ctx, challenge.ID, "player-1")
	s.Require().NoError(err)
	firstWinAt := *won.CompletedAt

	s.clock.Advance(time.Hour)
	result, err := s.controller.ClaimSquare(s.ctx, challenge.ID, "player-1", 2, 0, "evidence-1")
	s.Require().NoError(err)

	// The win stands, the completion time does not move, the bonus is not
	// granted again
	s.True(result.HasWon)
	s.Equal(15+FirstWinBonus, result.Score)

	stored, err := s.storage.GetParticipant(s.ctx, challenge.ID, "player-1")
	s.Require().NoError(err)
	s.Equal(firstWinAt, *stored.CompletedAt)

	awards, err := s.badges.ListForMember(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Len(awards, 1)

	s.Len(s.sent.Sent(), 2)
}

// Leaderboard

func (s *ControllerSuite) TestLeaderboardOrdering() {
	challenge := s.activeChallenge(model.WinConditionRowOrColumn)
	base := s.clock.Now()
	early := base.Add(time.Minute)
	late := base.Add(time.Hour)

	save := func(id model.MemberID, score int, completedAt *time.Time, joinedAt time.Time) {
		s.Require().NoError(s.storage.SaveParticipant(s.ctx, &model.Participant{
			ChallengeID: challenge.ID,
			MemberID:    id,
			Score:       score,
			CompletedAt: completedAt,
			JoinedAt:    joinedAt,
		}))
	}
	save("top-score", 64, &late, base)
	save("won-early", 30, &early, base)
	save("won-late", 30, &late, base)
	save("never-won", 30, nil, base)
	save("joined-first", 10, nil, base)
	save("joined-later", 10, nil, late)

	participants, err := s.controller.Leaderboard(s.ctx, challenge.ID)
	s.Require().NoError(err)

	var order []model.MemberID
	for _, p := range participants {
		order = append(order, p.MemberID)
	}
	s.Equal([]model.MemberID{
		"top-score", "won-early", "won-late", "never-won", "joined-first", "joined-later",
	}, order)
}

func (s *ControllerSuite) TestLeaderboardUnknownChallenge() {
	_, err := s.controller.Leaderboard(s.ctx, "nope")
	s.ErrorIs(err, model.ErrChallengeNotFound)
}
