package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/strengthsync/strengthsync/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ArchivedChallengeTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Organization tests

func (s *StorageSuite) TestSaveAndGetOrganization() {
	org := &model.Organization{
		ID:        "org-1",
		Name:      "Acme Corp",
		Slug:      "acme",
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SaveOrganization(s.ctx, org)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetOrganization(s.ctx, "org-1")
	s.Require().NoError(err)
	s.Equal(org.Name, retrieved.Name)

	bySlug, err := s.storage.GetOrganizationBySlug(s.ctx, "acme")
	s.Require().NoError(err)
	s.Equal(org.ID, bySlug.ID)
}

func (s *StorageSuite) TestGetOrganizationNotFound() {
	_, err := s.storage.GetOrganization(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrOrgNotFound)

	_, err = s.storage.GetOrganizationBySlug(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrOrgNotFound)
}

// Member tests

func (s *StorageSuite) TestSaveAndGetMember() {
	member := &model.Member{
		ID:          "member-1",
		OrgID:       "org-1",
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Role:        model.RoleOwner,
		Status:      model.MemberStatusActive,
	}

	err := s.storage.SaveMember(s.ctx, member)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMember(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Equal(member.DisplayName, retrieved.DisplayName)
	s.Equal(member.Role, retrieved.Role)
	s.True(retrieved.IsActive())
}

func (s *StorageSuite) TestGetMemberNotFound() {
	_, err := s.storage.GetMember(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *StorageSuite) TestListMembersFiltersByOrg() {
	_ = s.storage.SaveMember(s.ctx, &model.Member{ID: "member-1", OrgID: "org-1"})
	_ = s.storage.SaveMember(s.ctx, &model.Member{ID: "member-2", OrgID: "org-1"})
	_ = s.storage.SaveMember(s.ctx, &model.Member{ID: "member-3", OrgID: "org-2"})

	members, err := s.storage.ListMembers(s.ctx, "org-1")
	s.Require().NoError(err)
	s.Len(members, 2)
}

func (s *StorageSuite) TestListMembersEmptyOrg() {
	members, err := s.storage.ListMembers(s.ctx, "org-empty")
	s.Require().NoError(err)
	s.Empty(members)
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{
		MemberID:     "member-1",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
	}

	err := s.storage.SaveAccount(s.ctx, account)
	s.Require().NoError(err)

	byEmail, err := s.storage.GetAccountByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(account.MemberID, byEmail.MemberID)
	s.Equal(account.PasswordHash, byEmail.PasswordHash)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.storage.GetAccountByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Assessment tests

func (s *StorageSuite) TestSaveAndGetAssessment() {
	assessment := &model.Assessment{
		ID:       "assessment-1",
		MemberID: "member-1",
		Source:   "report.txt",
		Ranks: []model.StrengthRank{
			{Theme: "Achiever", Rank: 1},
			{Theme: "Empathy", Rank: 2},
		},
	}

	err := s.storage.SaveAssessment(s.ctx, assessment)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAssessment(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Equal(assessment.ID, retrieved.ID)
	s.Len(retrieved.Ranks, 2)
	s.Equal("Achiever", retrieved.Ranks[0].Theme)
}

func (s *StorageSuite) TestGetAssessmentNotFound() {
	_, err := s.storage.GetAssessment(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrNoAssessment)
}

// Challenge tests

func (s *StorageSuite) TestSaveAndGetChallenge() {
	challenge := &model.Challenge{
		ID:     "challenge-1",
		OrgID:  "org-1",
		Type:   model.ChallengeTypeBingo,
		Title:  "Q1 Bingo",
		Status: model.ChallengeStatusActive,
		Rules:  model.DefaultRules(),
	}

	err := s.storage.SaveChallenge(s.ctx, challenge)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetChallenge(s.ctx, "challenge-1")
	s.Require().NoError(err)
	s.Equal(challenge.Title, retrieved.Title)
	s.Equal(challenge.Rules.BoardSize, retrieved.Rules.BoardSize)
}

func (s *StorageSuite) TestGetChallengeNotFound() {
	_, err := s.storage.GetChallenge(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrChallengeNotFound)
}

func (s *StorageSuite) TestArchivedChallengeExpires() {
	challenge := &model.Challenge{
		ID:     "challenge-1",
		OrgID:  "org-1",
		Status: model.ChallengeStatusArchived,
	}

	err := s.storage.SaveChallenge(s.ctx, challenge)
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetChallenge(s.ctx, "challenge-1")
	s.ErrorIs(err, model.ErrChallengeNotFound)

	// The org listing tolerates the expired entry
	challenges, err := s.storage.ListChallenges(s.ctx, "org-1")
	s.Require().NoError(err)
	s.Empty(challenges)
}

func (s *StorageSuite) TestListChallengesFiltersByOrg() {
	_ = s.storage.SaveChallenge(s.ctx, &model.Challenge{ID: "c-1", OrgID: "org-1"})
	_ = s.storage.SaveChallenge(s.ctx, &model.Challenge{ID: "c-2", OrgID: "org-2"})

	challenges, err := s.storage.ListChallenges(s.ctx, "org-1")
	s.Require().NoError(err)
	s.Require().Len(challenges, 1)
	s.Equal(model.ChallengeID("c-1"), challenges[0].ID)
}

// Participant tests

func (s *StorageSuite) TestSaveAndGetParticipant() {
	completed := time.Now().UTC()
	participant := &model.Participant{
		ChallengeID: "challenge-1",
		MemberID:    "member-1",
		Progress: model.Progress{
			Board: model.Board{
				Size: 3,
				Squares: [][]model.Square{
					{{Theme: "Achiever"}, {Theme: "Activator"}, {Theme: "Adaptability"}},
					{{Theme: "Analytical"}, {Theme: model.FreeSpace, Marked: true}, {Theme: "Arranger"}},
					{{Theme: "Belief"}, {Theme: "Command"}, {Theme: "Communication"}},
				},
			},
			CompletedLines: []string{},
		},
		Score:       64,
		CompletedAt: &completed,
		JoinedAt:    time.Now().UTC(),
	}

	err := s.storage.SaveParticipant(s.ctx, participant)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetParticipant(s.ctx, "challenge-1", "member-1")
	s.Require().NoError(err)
	s.Equal(64, retrieved.Score)
	s.NotNil(retrieved.CompletedAt)
	// The board round-trips through JSON intact
	s.NoError(retrieved.Progress.Validate(3))
	s.Equal("Achiever", retrieved.Progress.Board.At(0, 0).Theme)
}

func (s *StorageSuite) TestGetParticipantNotFound() {
	_, err := s.storage.GetParticipant(s.ctx, "challenge-1", "nonexistent")
	s.ErrorIs(err, model.ErrNotParticipant)
}

func (s *StorageSuite) TestListParticipantsFiltersByChallenge() {
	_ = s.storage.SaveParticipant(s.ctx, &model.Participant{ChallengeID: "c-1", MemberID: "member-1"})
	_ = s.storage.SaveParticipant(s.ctx, &model.Participant{ChallengeID: "c-1", MemberID: "member-2"})
	_ = s.storage.SaveParticipant(s.ctx, &model.Participant{ChallengeID: "c-2", MemberID: "member-1"})

	participants, err := s.storage.ListParticipants(s.ctx, "c-1")
	s.Require().NoError(err)
	s.Len(participants, 2)
}

// Badge award tests

func (s *StorageSuite) TestSaveAndGetBadgeAward() {
	award := &model.BadgeAward{
		ID:        "award-1",
		Slug:      model.BadgeFirstBingo,
		MemberID:  "member-1",
		Reason:    "won challenge c-1",
		AwardedAt: time.Now().UTC(),
	}

	err := s.storage.SaveBadgeAward(s.ctx, award)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBadgeAward(s.ctx, "member-1", model.BadgeFirstBingo)
	s.Require().NoError(err)
	s.Equal(award.ID, retrieved.ID)
	s.Equal(award.Reason, retrieved.Reason)
}

func (s *StorageSuite) TestGetBadgeAwardNotFound() {
	_, err := s.storage.GetBadgeAward(s.ctx, "member-1", model.BadgeFirstBingo)
	s.ErrorIs(err, model.ErrBadgeNotFound)
}

func (s *StorageSuite) TestListBadgeAwardsFiltersByMember() {
	_ = s.storage.SaveBadgeAward(s.ctx, &model.BadgeAward{ID: "a-1", Slug: model.BadgeFirstBingo, MemberID: "member-1"})
	_ = s.storage.SaveBadgeAward(s.ctx, &model.BadgeAward{ID: "a-2", Slug: model.BadgeAssessmentComplete, MemberID: "member-1"})
	_ = s.storage.SaveBadgeAward(s.ctx, &model.BadgeAward{ID: "a-3", Slug: model.BadgeFirstBingo, MemberID: "member-2"})

	awards, err := s.storage.ListBadgeAwards(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Len(awards, 2)
}
