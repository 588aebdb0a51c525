package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Member:
		o.printMember(v)
	case AuthResult:
		o.printAuthResult(v)
	case Organization:
		o.printOrganization(v)
	case []Member:
		o.printMembers(v)
	case Assessment:
		o.printAssessment(v)
	case Challenge:
		o.printChallenge(v)
	case []Challenge:
		o.printChallenges(v)
	case Participant:
		o.printParticipant(v)
	case ClaimResult:
		o.printClaimResult(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case []BadgeAward:
		o.printBadges(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Member response type (matches API)
type Member struct {
	ID          string `json:"id"`
	OrgID       string `json:"org_id,omitempty"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

// AuthResult combines member and token
type AuthResult struct {
	Member       Member `json:"member"`
	SessionToken string `json:"session_token"`
}

// Organization response type
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// StrengthRank response type
type StrengthRank struct {
	Theme  string `json:"theme"`
	Domain string `json:"domain"`
	Rank   int    `json:"rank"`
}

// Assessment response type
type Assessment struct {
	MemberID  string         `json:"member_id"`
	Source    string         `json:"source,omitempty"`
	Ranks     []StrengthRank `json:"ranks"`
	TopThemes []string       `json:"top_themes"`
}

// ChallengeRules response type
type ChallengeRules struct {
	WinCondition string `json:"win_condition"`
	BoardSize    int    `json:"board_size"`
}

// Challenge response type
type Challenge struct {
	ID     string         `json:"id"`
	OrgID  string         `json:"org_id"`
	Title  string         `json:"title"`
	Status string         `json:"status"`
	Rules  ChallengeRules `json:"rules"`
}

// Square response type
type Square struct {
	Theme        string `json:"theme"`
	Domain       string `json:"domain,omitempty"`
	Marked       bool   `json:"marked"`
	MarkedByName string `json:"markedByName,omitempty"`
}

// Board response type
type Board struct {
	Size    int        `json:"size"`
	Squares [][]Square `json:"squares"`
}

// Progress response type
type Progress struct {
	Board          Board    `json:"board"`
	CompletedLines []string `json:"completedLines"`
	HasWon         bool     `json:"hasWon"`
}

// Participant response type
type Participant struct {
	ChallengeID string     `json:"challenge_id"`
	MemberID    string     `json:"member_id"`
	Progress    Progress   `json:"progress"`
	Score       int        `json:"score"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ClaimResult response type
type ClaimResult struct {
	Square         Square   `json:"square"`
	CompletedLines []string `json:"completed_lines"`
	NewLines       int      `json:"new_lines"`
	HasWon         bool     `json:"has_won"`
	Score          int      `json:"score"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	MemberID    string `json:"member_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	HasWon      bool   `json:"has_won"`
}

// BadgeAward response type
type BadgeAward struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Reason    string    `json:"reason,omitempty"`
	AwardedAt time.Time `json:"awarded_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printMember(m Member) {
	fmt.Printf("Member: %s (%s)\n", m.DisplayName, m.ID)
	fmt.Printf("Email: %s\n", m.Email)
	fmt.Printf("Role: %s\n", m.Role)
	fmt.Printf("Status: %s\n", m.Status)
	if m.OrgID != "" {
		fmt.Printf("Organization: %s\n", m.OrgID)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printMember(a.Member)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printOrganization(org Organization) {
	fmt.Printf("Organization: %s (%s)\n", org.Name, org.ID)
	fmt.Printf("Slug: %s\n", org.Slug)
}

func (o *Output) printMembers(members []Member) {
	fmt.Printf("Members (%d):\n", len(members))
	for _, m := range members {
		fmt.Printf("  - %s (%s) - %s, %s\n", m.DisplayName, m.ID, m.Role, m.Status)
	}
}

func (o *Output) printAssessment(a Assessment) {
	fmt.Printf("Assessment for %s", a.MemberID)
	if a.Source != "" {
		fmt.Printf(" (from %s)", a.Source)
	}
	fmt.Println()
	fmt.Println("Top themes:")
	for i, theme := range a.TopThemes {
		fmt.Printf("  %d. %s\n", i+1, theme)
	}
}

func (o *Output) printChallenge(c Challenge) {
	fmt.Printf("Challenge: %s (%s)\n", c.Title, c.ID)
	fmt.Printf("Status: %s\n", c.Status)
	fmt.Printf("Win Condition: %s\n", c.Rules.WinCondition)
	fmt.Printf("Board Size: %d\n", c.Rules.BoardSize)
}

func (o *Output) printChallenges(challenges []Challenge) {
	fmt.Printf("Challenges (%d):\n", len(challenges))
	for _, c := range challenges {
		fmt.Printf("  - %s (%s) [%s]\n", c.Title, c.ID, c.Status)
	}
}

func (o *Output) printParticipant(p Participant) {
	fmt.Printf("Challenge: %s\n", p.ChallengeID)
	fmt.Printf("Score: %d\n", p.Score)
	if p.Progress.HasWon {
		fmt.Println("Status: WON")
	}
	if len(p.Progress.CompletedLines) > 0 {
		fmt.Printf("Completed Lines: %v\n", p.Progress.CompletedLines)
	}
	fmt.Println("\nBoard:")
	o.printBoard(p.Progress.Board)
}

func (o *Output) printBoard(b Board) {
	for row := 0; row < b.Size && row < len(b.Squares); row++ {
		for col := 0; col < b.Size && col < len(b.Squares[row]); col++ {
			sq := b.Squares[row][col]
			mark := " "
			if sq.Marked {
				mark = "X"
			}
			fmt.Printf("  [%s] %-14s", mark, sq.Theme)
		}
		fmt.Println()
	}
}

func (o *Output) printClaimResult(c ClaimResult) {
	fmt.Printf("Claimed %q", c.Square.Theme)
	if c.Square.MarkedByName != "" {
		fmt.Printf(" (evidence: %s)", c.Square.MarkedByName)
	}
	fmt.Println()
	if c.NewLines > 0 {
		fmt.Printf("Lines completed: %s\n", strings.Join(c.CompletedLines, ", "))
	}
	fmt.Printf("Score: %d\n", c.Score)
	if c.HasWon {
		fmt.Println("BINGO! You won this challenge.")
	}
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	fmt.Printf("Leaderboard (%d):\n", len(entries))
	for _, e := range entries {
		wonStr := ""
		if e.HasWon {
			wonStr = " [won]"
		}
		fmt.Printf("  %d. %s - %d points%s\n", e.Rank, e.DisplayName, e.Score, wonStr)
	}
}

func (o *Output) printBadges(awards []BadgeAward) {
	fmt.Printf("Badges (%d):\n", len(awards))
	for _, a := range awards {
		fmt.Printf("  - %s (%s)\n", a.Name, a.AwardedAt.Format("2006-01-02"))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
