package bingo

import (
	"context"
	"fmt"

	"github.com/strengthsync/strengthsync/internal/model"
)

// EligibilityFunc confirms that a member actually holds the given theme
// within their top-ranked strengths. Backed by assessment storage; injected
// so the engine stays free of I/O.
type EligibilityFunc func(ctx context.Context, memberID model.MemberID, theme string) (bool, error)

// PointsPerLine is the score weight of each completed line; every marked
// square (the free space included) adds one further point.
const PointsPerLine = 10

// Claim describes one square-claim attempt. The acting member is the owner
// of the board; the claiming member is the teammate being used as evidence
// for the square's theme.
type Claim struct {
	Row                int
	Col                int
	ClaimingMemberID   model.MemberID
	ClaimingMemberName string
	ActingMemberID     model.MemberID
}

// ClaimResult reports the outcome of a successful claim
type ClaimResult struct {
	Square         model.Square
	CompletedLines []string
	NewLines       int
	HasWon         bool
	Score          int
}

// ClaimSquare validates a claim against the participant's progress, marks the
// square, and recomputes lines, score and the win state from the full board.
//
// On success the passed Progress is mutated in place and a ClaimResult is
// returned; on failure the Progress is left untouched. The engine performs no
// I/O: persisting the updated Progress, and any one-time side effects of a
// first win, belong to the caller.
func ClaimSquare(ctx context.Context, progress *model.Progress, rules model.ChallengeRules, claim Claim, eligible EligibilityFunc) (*ClaimResult, error) {
	board := &progress.Board

	if !board.InBounds(claim.Row, claim.Col) {
		return nil, model.ErrInvalidPosition
	}

	square := board.At(claim.Row, claim.Col)

	// The free space is pre-marked, so it must be rejected as unclaimable
	// before the marked check or callers would see the wrong failure.
	if square.IsFree() {
		return nil, model.ErrFreeSpaceClaim
	}
	if square.Marked {
		return nil, model.ErrAlreadyMarked
	}

	ok, err := eligible(ctx, claim.ClaimingMemberID, square.Theme)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrIneligibleMember, square.Theme)
	}

	if claim.ClaimingMemberID == claim.ActingMemberID {
		return nil, model.ErrSelfClaimDisallowed
	}

	square.Marked = true
	square.MarkedBy = claim.ClaimingMemberID
	square.MarkedByName = claim.ClaimingMemberName

	// Lines and score are recomputed from scratch rather than tracked
	// incrementally, so both stay a pure function of current board state.
	previousLines := len(progress.CompletedLines)
	completedLines := board.CompletedLines()
	marks := board.CountMarked()
	score := PointsPerLine*len(completedLines) + marks

	won := false
	switch rules.WinCondition {
	case model.WinConditionRowOrColumn:
		won = len(completedLines) > 0
	case model.WinConditionFullBoard:
		won = board.IsFull()
	default:
		// Unknown win conditions fail open to "not yet won"
	}

	progress.CompletedLines = completedLines
	progress.HasWon = progress.HasWon || won

	return &ClaimResult{
		Square:         *square,
		CompletedLines: completedLines,
		NewLines:       len(completedLines) - previousLines,
		HasWon:         progress.HasWon,
		Score:          score,
	}, nil
}

// Score recomputes a progress value's score from board state alone
func Score(progress *model.Progress) int {
	return PointsPerLine*len(progress.Board.CompletedLines()) + progress.Board.CountMarked()
}
