package model

import "time"

// ChallengeID uniquely identifies a challenge
type ChallengeID string

// ChallengeType distinguishes challenge formats. Bingo is the only
// format currently implemented.
type ChallengeType string

const (
	ChallengeTypeBingo ChallengeType = "bingo"
)

// ChallengeStatus is the lifecycle phase of a challenge
type ChallengeStatus string

const (
	ChallengeStatusDraft     ChallengeStatus = "DRAFT"
	ChallengeStatusActive    ChallengeStatus = "ACTIVE"
	ChallengeStatusCompleted ChallengeStatus = "COMPLETED"
	ChallengeStatusArchived  ChallengeStatus = "ARCHIVED"
)

// Win conditions for bingo challenges
const (
	WinConditionRowOrColumn = "row_or_column"
	WinConditionFullBoard   = "full_board"
)

// ChallengeRules configures how a challenge is played and won
type ChallengeRules struct {
	WinCondition string `json:"win_condition"`
	BoardSize    int    `json:"board_size"`
}

// DefaultRules returns the standard bingo configuration
func DefaultRules() ChallengeRules {
	return ChallengeRules{
		WinCondition: WinConditionRowOrColumn,
		BoardSize:    5,
	}
}

// Challenge is a gamified activity run within one organization
type Challenge struct {
	ID        ChallengeID
	OrgID     OrgID
	Type      ChallengeType
	Title     string
	Status    ChallengeStatus
	Rules     ChallengeRules
	CreatedBy MemberID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Joinable reports whether members may currently join
func (c *Challenge) Joinable() bool {
	return c.Status == ChallengeStatusActive
}

// Participant is a member's enrollment and progress record within one
// challenge. Score and progress are mutated on each successful square claim;
// CompletedAt is set exactly once, on first win.
type Participant struct {
	ChallengeID ChallengeID
	MemberID    MemberID
	Progress    Progress
	Score       int
	CompletedAt *time.Time
	JoinedAt    time.Time
}
