package response

import (
	"time"

	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/auth"
	"github.com/strengthsync/strengthsync/internal/services/bingo"
)

// Member represents a member in API responses
type Member struct {
	ID          string `json:"id"`
	OrgID       string `json:"org_id,omitempty"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

// MemberFromModel converts a model.Member to a response Member
func MemberFromModel(m *model.Member) Member {
	return Member{
		ID:          string(m.ID),
		OrgID:       string(m.OrgID),
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Role:        string(m.Role),
		Status:      string(m.Status),
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Member       Member `json:"member"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Member:       MemberFromModel(&s.Member),
		SessionToken: s.Token,
	}
}

// Organization represents an organization in API responses
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationFromModel converts model.Organization
func OrganizationFromModel(o *model.Organization) Organization {
	return Organization{
		ID:        string(o.ID),
		Name:      o.Name,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt,
	}
}

// StrengthRank represents one ranked theme
type StrengthRank struct {
	Theme  string `json:"theme"`
	Domain string `json:"domain"`
	Rank   int    `json:"rank"`
}

// Assessment represents a member's strengths assessment
type Assessment struct {
	ID         string         `json:"id"`
	MemberID   string         `json:"member_id"`
	Source     string         `json:"source,omitempty"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Ranks      []StrengthRank `json:"ranks"`
	TopThemes  []string       `json:"top_themes"`
}

// AssessmentFromModel converts model.Assessment
func AssessmentFromModel(a *model.Assessment) Assessment {
	ranks := make([]StrengthRank, len(a.Ranks))
	for i, r := range a.Ranks {
		ranks[i] = StrengthRank{
			Theme:  r.Theme,
			Domain: string(model.DomainOfTheme(r.Theme)),
			Rank:   r.Rank,
		}
	}
	return Assessment{
		ID:         a.ID,
		MemberID:   string(a.MemberID),
		Source:     a.Source,
		UploadedAt: a.UploadedAt,
		Ranks:      ranks,
		TopThemes:  a.TopThemes(model.TopStrengthRank),
	}
}

// ChallengeRules represents challenge configuration
type ChallengeRules struct {
	WinCondition string `json:"win_condition"`
	BoardSize    int    `json:"board_size"`
}

// Challenge represents a challenge in API responses
type Challenge struct {
	ID        string         `json:"id"`
	OrgID     string         `json:"org_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Status    string         `json:"status"`
	Rules     ChallengeRules `json:"rules"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
}

// ChallengeFromModel converts model.Challenge
func ChallengeFromModel(c *model.Challenge) Challenge {
	return Challenge{
		ID:     string(c.ID),
		OrgID:  string(c.OrgID),
		Type:   string(c.Type),
		Title:  c.Title,
		Status: string(c.Status),
		Rules: ChallengeRules{
			WinCondition: c.Rules.WinCondition,
			BoardSize:    c.Rules.BoardSize,
		},
		CreatedBy: string(c.CreatedBy),
		CreatedAt: c.CreatedAt,
	}
}

// Participant represents a member's progress in a challenge.
// Progress serializes with its own JSON tags (board, completedLines, hasWon).
type Participant struct {
	ChallengeID string         `json:"challenge_id"`
	MemberID    string         `json:"member_id"`
	Progress    model.Progress `json:"progress"`
	Score       int            `json:"score"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	JoinedAt    time.Time      `json:"joined_at"`
}

// ParticipantFromModel converts model.Participant
func ParticipantFromModel(p *model.Participant) Participant {
	return Participant{
		ChallengeID: string(p.ChallengeID),
		MemberID:    string(p.MemberID),
		Progress:    p.Progress,
		Score:       p.Score,
		CompletedAt: p.CompletedAt,
		JoinedAt:    p.JoinedAt,
	}
}

// LeaderboardEntry is one row of a challenge leaderboard
type LeaderboardEntry struct {
	Rank        int        `json:"rank"`
	MemberID    string     `json:"member_id"`
	DisplayName string     `json:"display_name"`
	Score       int        `json:"score"`
	HasWon      bool       `json:"has_won"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ClaimResponse is the response after claiming a board square
type ClaimResponse struct {
	Square         model.Square `json:"square"`
	CompletedLines []string     `json:"completed_lines"`
	NewLines       int          `json:"new_lines"`
	HasWon         bool         `json:"has_won"`
	Score          int          `json:"score"`
}

// ClaimResponseFromResult converts a bingo.ClaimResult
func ClaimResponseFromResult(r *bingo.ClaimResult) ClaimResponse {
	return ClaimResponse{
		Square:         r.Square,
		CompletedLines: r.CompletedLines,
		NewLines:       r.NewLines,
		HasWon:         r.HasWon,
		Score:          r.Score,
	}
}

// BadgeAward represents a granted badge
type BadgeAward struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Reason    string    `json:"reason,omitempty"`
	AwardedAt time.Time `json:"awarded_at"`
}

// ChatCommandResponse is the reply to an inbound chat command
type ChatCommandResponse struct {
	Text string `json:"text"`
}
