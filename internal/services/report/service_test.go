package report

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/strengthsync/strengthsync/internal/dependencies/mocks"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/badges"
	"github.com/strengthsync/strengthsync/internal/services/strengths"
	"github.com/strengthsync/strengthsync/internal/storage/memory"
	"github.com/strengthsync/strengthsync/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	badges  *badges.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	clock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	strengthsService := strengths.New(s.storage, clock, testutil.NopLogger())
	s.badges = badges.New(s.storage, clock, testutil.NopLogger())
	s.service = New(PlainTextExtractor{}, strengthsService, s.badges, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedMember(id model.MemberID) {
	err := s.storage.SaveMember(s.ctx, &model.Member{
		ID:          id,
		OrgID:       "org-1",
		DisplayName: string(id),
		Role:        model.RoleMember,
		Status:      model.MemberStatusActive,
	})
	s.Require().NoError(err)
}

// fullReport builds report text ranking every catalog theme
func fullReport() string {
	var sb strings.Builder
	sb.WriteString("Your Signature Themes\n\n")
	for i, theme := range sortedThemes() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, theme)
	}
	return sb.String()
}

func sortedThemes() []string {
	themes := model.AllThemes()
	for i := 1; i < len(themes); i++ {
		for j := i; j > 0 && themes[j] < themes[j-1]; j-- {
			themes[j], themes[j-1] = themes[j-1], themes[j]
		}
	}
	return themes
}

// ParseRanks tests

func (s *ServiceSuite) TestParseFullReport() {
	ranks, err := ParseRanks(fullReport())
	s.Require().NoError(err)
	s.Len(ranks, model.ThemeCount())
	s.Equal(1, ranks[0].Rank)
}

func (s *ServiceSuite) TestParseTopTenOnlyReport() {
	themes := sortedThemes()[:model.TopStrengthRank]
	var sb strings.Builder
	for i, theme := range themes {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, theme)
	}

	ranks, err := ParseRanks(sb.String())
	s.Require().NoError(err)
	s.Len(ranks, model.TopStrengthRank)
}

func (s *ServiceSuite) TestParseIgnoresNarrativeLines() {
	text := "Many years of research.\n1. Achiever\nSome commentary here.\n" +
		strings.Join(reportLines(2, sortedThemes()), "\n")

	ranks, err := ParseRanks(text)
	s.Require().NoError(err)
	s.Equal("Achiever", ranks[0].Theme)
}

func (s *ServiceSuite) TestParseNormalizesCase() {
	text := "1. ACHIEVER\n" + strings.Join(reportLines(2, sortedThemes()), "\n")

	ranks, err := ParseRanks(text)
	s.Require().NoError(err)
	s.Equal("Achiever", ranks[0].Theme)
}

func (s *ServiceSuite) TestParseDuplicateRank() {
	text := "1. Achiever\n1. Empathy\n"
	_, err := ParseRanks(text)
	s.ErrorIs(err, model.ErrDuplicateRank)
}

func (s *ServiceSuite) TestParseGapInRanksIsMalformed() {
	// Rank 5 missing from the top ten
	var sb strings.Builder
	for i, theme := range sortedThemes()[:model.TopStrengthRank] {
		if i+1 == 5 {
			continue
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, theme)
	}

	_, err := ParseRanks(sb.String())
	s.ErrorIs(err, model.ErrMalformedReport)
}

func (s *ServiceSuite) TestParseEmptyReport() {
	_, err := ParseRanks("just prose, no rankings")
	s.ErrorIs(err, model.ErrMalformedReport)
}

// reportLines formats themes[startRank-1:] as report lines numbered from startRank
func reportLines(startRank int, themes []string) []string {
	var lines []string
	for i := startRank - 1; i < len(themes); i++ {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, themes[i]))
	}
	return lines
}

// Upload tests

func (s *ServiceSuite) TestUploadStoresAssessment() {
	s.seedMember("member-1")

	assessment, err := s.service.Upload(s.ctx, "member-1", "report.txt", []byte(fullReport()))
	s.Require().NoError(err)

	s.Equal("report.txt", assessment.Source)
	s.Len(assessment.Ranks, model.ThemeCount())

	stored, err := s.storage.GetAssessment(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Equal(assessment.ID, stored.ID)
}

func (s *ServiceSuite) TestUploadAwardsBadge() {
	s.seedMember("member-1")

	_, err := s.service.Upload(s.ctx, "member-1", "report.txt", []byte(fullReport()))
	s.Require().NoError(err)

	awards, err := s.badges.ListForMember(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Require().Len(awards, 1)
	s.Equal(model.BadgeAssessmentComplete, awards[0].Slug)
}

func (s *ServiceSuite) TestUploadMalformedReport() {
	s.seedMember("member-1")

	_, err := s.service.Upload(s.ctx, "member-1", "report.txt", []byte("not a report"))
	s.ErrorIs(err, model.ErrMalformedReport)

	_, err = s.storage.GetAssessment(s.ctx, "member-1")
	s.ErrorIs(err, model.ErrNoAssessment)
}

func (s *ServiceSuite) TestUploadUnknownMember() {
	_, err := s.service.Upload(s.ctx, "ghost", "report.txt", []byte(fullReport()))
	s.ErrorIs(err, model.ErrMemberNotFound)
}
