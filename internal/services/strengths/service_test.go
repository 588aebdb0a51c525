package strengths

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/strengthsync/strengthsync/internal/dependencies/mocks"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/storage/memory"
	"github.com/strengthsync/strengthsync/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedMember(id model.MemberID, orgID model.OrgID, status model.MemberStatus) {
	err := s.storage.SaveMember(s.ctx, &model.Member{
		ID:          id,
		OrgID:       orgID,
		DisplayName: string(id),
		Role:        model.RoleMember,
		Status:      status,
	})
	s.Require().NoError(err)
}

// fullRanks assigns every catalog theme a rank, with the given themes first
func fullRanks(topThemes ...string) []model.StrengthRank {
	ranks := make([]model.StrengthRank, 0, model.ThemeCount())
	used := make(map[string]bool, len(topThemes))
	rank := 1
	for _, theme := range topThemes {
		ranks = append(ranks, model.StrengthRank{Theme: theme, Rank: rank})
		used[theme] = true
		rank++
	}
	for _, theme := range model.AllThemes() {
		if used[theme] {
			continue
		}
		ranks = append(ranks, model.StrengthRank{Theme: theme, Rank: rank})
		rank++
	}
	return ranks
}

// SetAssessment tests

func (s *ServiceSuite) TestSetAssessmentSucceeds() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	assessment, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", fullRanks("Achiever"))
	s.Require().NoError(err)

	s.NotEmpty(assessment.ID)
	s.Equal(model.MemberID("member-1"), assessment.MemberID)
	s.Equal("report.txt", assessment.Source)
	s.Equal(s.clock.Now(), assessment.UploadedAt)
	s.Len(assessment.Ranks, model.ThemeCount())
}

func (s *ServiceSuite) TestSetAssessmentReplacesPrevious() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	_, err := s.service.SetAssessment(s.ctx, "member-1", "old.txt", fullRanks("Achiever"))
	s.Require().NoError(err)
	_, err = s.service.SetAssessment(s.ctx, "member-1", "new.txt", fullRanks("Empathy"))
	s.Require().NoError(err)

	current, err := s.service.GetAssessment(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Equal("new.txt", current.Source)
	s.Equal(1, current.RankOf("Empathy"))
}

func (s *ServiceSuite) TestSetAssessmentUnknownMember() {
	_, err := s.service.SetAssessment(s.ctx, "ghost", "report.txt", fullRanks())
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *ServiceSuite) TestSetAssessmentRejectsUnknownTheme() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	ranks := fullRanks()
	ranks[0].Theme = "Procrastination"

	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", ranks)
	s.ErrorIs(err, model.ErrUnknownTheme)
}

func (s *ServiceSuite) TestSetAssessmentRejectsOutOfRangeRank() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	ranks := fullRanks()
	ranks[0].Rank = 35

	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", ranks)
	s.ErrorIs(err, model.ErrInvalidRank)
}

func (s *ServiceSuite) TestSetAssessmentRejectsDuplicateRank() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	ranks := fullRanks()
	ranks[1].Rank = ranks[0].Rank

	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", ranks)
	s.ErrorIs(err, model.ErrDuplicateRank)
}

// TopStrengths tests

func (s *ServiceSuite) TestTopStrengthsOrderedByRank() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)
	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt",
		fullRanks("Strategic", "Achiever", "Empathy"))
	s.Require().NoError(err)

	top, err := s.service.TopStrengths(s.ctx, "member-1", 3)
	s.Require().NoError(err)
	s.Equal([]string{"Strategic", "Achiever", "Empathy"}, top)
}

func (s *ServiceSuite) TestTopStrengthsNoAssessment() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	_, err := s.service.TopStrengths(s.ctx, "member-1", model.TopStrengthRank)
	s.ErrorIs(err, model.ErrNoAssessment)
}

// IsEligible tests

func (s *ServiceSuite) TestIsEligibleTopTheme() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)
	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", fullRanks("Achiever"))
	s.Require().NoError(err)

	ok, err := s.service.IsEligible(s.ctx, "org-1", "member-1", "Achiever")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *ServiceSuite) TestIsEligibleRankBoundary() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	// Put ten named themes at ranks 1..10; everything else lands at 11+
	top := []string{
		"Achiever", "Arranger", "Belief", "Consistency", "Deliberative",
		"Discipline", "Focus", "Responsibility", "Restorative", "Activator",
	}
	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", fullRanks(top...))
	s.Require().NoError(err)

	// Rank 10 is eligible
	ok, err := s.service.IsEligible(s.ctx, "org-1", "member-1", "Activator")
	s.Require().NoError(err)
	s.True(ok)

	// Anything ranked 11 or below is not
	assessment, err := s.service.GetAssessment(s.ctx, "member-1")
	s.Require().NoError(err)
	for _, r := range assessment.Ranks {
		if r.Rank == 11 {
			ok, err := s.service.IsEligible(s.ctx, "org-1", "member-1", r.Theme)
			s.Require().NoError(err)
			s.False(ok)
		}
	}
}

func (s *ServiceSuite) TestIsEligibleUnknownMember() {
	ok, err := s.service.IsEligible(s.ctx, "org-1", "ghost", "Achiever")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestIsEligibleNoAssessment() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)

	ok, err := s.service.IsEligible(s.ctx, "org-1", "member-1", "Achiever")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestIsEligibleWrongOrg() {
	s.seedMember("member-1", "org-1", model.MemberStatusActive)
	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", fullRanks("Achiever"))
	s.Require().NoError(err)

	ok, err := s.service.IsEligible(s.ctx, "org-2", "member-1", "Achiever")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestIsEligibleInactiveMember() {
	s.seedMember("member-1", "org-1", model.MemberStatusInactive)
	_, err := s.service.SetAssessment(s.ctx, "member-1", "report.txt", fullRanks("Achiever"))
	s.Require().NoError(err)

	ok, err := s.service.IsEligible(s.ctx, "org-1", "member-1", "Achiever")
	s.Require().NoError(err)
	s.False(ok)
}
