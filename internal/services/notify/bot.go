package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/strengthsync/strengthsync/internal/model"
)

// StrengthsLookup is the slice of the strengths service the bot needs
type StrengthsLookup interface {
	TopStrengths(ctx context.Context, memberID model.MemberID, cutoff int) ([]string, error)
}

// MemberLookup resolves member display names for replies
type MemberLookup interface {
	GetMember(ctx context.Context, id model.MemberID) (*model.Member, error)
}

// LeaderboardLookup is the slice of the challenge controller the bot needs
type LeaderboardLookup interface {
	Leaderboard(ctx context.Context, challengeID model.ChallengeID) ([]*model.Participant, error)
	GetChallenge(ctx context.Context, challengeID model.ChallengeID) (*model.Challenge, error)
}

// Bot answers conversational commands arriving from the chat platform's
// inbound webhook. It is a thin shim: parse the command text, call the
// relevant service, format a reply string.
type Bot struct {
	strengths   StrengthsLookup
	leaderboard LeaderboardLookup
	members     MemberLookup
}

// NewBot creates a chat command bot
func NewBot(strengths StrengthsLookup, leaderboard LeaderboardLookup, members MemberLookup) *Bot {
	return &Bot{
		strengths:   strengths,
		leaderboard: leaderboard,
		members:     members,
	}
}

const helpText = `Available commands:
- strengths: show your top strengths
- leaderboard <challenge-id>: show a challenge's standings
- help: show this message`

// HandleCommand parses a command line and returns the reply text.
// Unknown commands get the help text rather than an error; the chat
// platform should always receive a renderable reply.
func (b *Bot) HandleCommand(ctx context.Context, member *model.Member, text string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return helpText, nil
	}

	switch strings.ToLower(fields[0]) {
	case "strengths":
		return b.handleStrengths(ctx, member)
	case "leaderboard":
		if len(fields) < 2 {
			return "Usage: leaderboard <challenge-id>", nil
		}
		return b.handleLeaderboard(ctx, member, model.ChallengeID(fields[1]))
	case "help":
		return helpText, nil
	default:
		return helpText, nil
	}
}

func (b *Bot) handleStrengths(ctx context.Context, member *model.Member) (string, error) {
	themes, err := b.strengths.TopStrengths(ctx, member.ID, model.TopStrengthRank)
	if err != nil {
		if errors.Is(err, model.ErrNoAssessment) {
			return "You haven't uploaded a strength report yet.", nil
		}
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Top strengths for %s:\n", member.DisplayName)
	for i, theme := range themes {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, theme, model.DomainOfTheme(theme))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (b *Bot) handleLeaderboard(ctx context.Context, member *model.Member, challengeID model.ChallengeID) (string, error) {
	challenge, err := b.leaderboard.GetChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, model.ErrChallengeNotFound) {
			return "No challenge with that ID.", nil
		}
		return "", err
	}
	if challenge.OrgID != member.OrgID {
		return "No challenge with that ID.", nil
	}

	participants, err := b.leaderboard.Leaderboard(ctx, challengeID)
	if err != nil {
		return "", err
	}
	if len(participants) == 0 {
		return fmt.Sprintf("Nobody has joined %q yet.", challenge.Title), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Leaderboard for %q:\n", challenge.Title)
	for i, p := range participants {
		name := string(p.MemberID)
		if m, err := b.members.GetMember(ctx, p.MemberID); err == nil {
			name = m.DisplayName
		}
		marker := ""
		if p.CompletedAt != nil {
			marker = " (bingo)"
		}
		fmt.Fprintf(&sb, "%d. %s: %d points%s\n", i+1, name, p.Score, marker)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
