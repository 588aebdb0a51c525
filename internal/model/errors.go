package model

import "errors"

// Common errors used across the application
var (
	// Organization errors
	ErrOrgNotFound  = errors.New("organization not found")
	ErrOrgSlugTaken = errors.New("organization slug already taken")

	// Member errors
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberInactive  = errors.New("member is inactive")
	ErrNotOrgMember    = errors.New("member does not belong to organization")
	ErrLastOwner       = errors.New("organization must retain at least one owner")
	ErrInvalidRole     = errors.New("invalid member role")
	ErrEmailExists     = errors.New("email already registered")
	ErrAccountNotFound = errors.New("account not found")

	// Strength errors
	ErrUnknownTheme    = errors.New("unknown strength theme")
	ErrInvalidRank     = errors.New("strength rank out of range")
	ErrDuplicateRank   = errors.New("duplicate strength rank")
	ErrNoAssessment    = errors.New("member has no strength assessment")
	ErrMalformedReport = errors.New("report could not be parsed")

	// Challenge errors
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeNotActive = errors.New("challenge is not active")
	ErrChallengeNotDraft  = errors.New("challenge is not in draft")
	ErrAlreadyJoined      = errors.New("member has already joined this challenge")
	ErrNotParticipant     = errors.New("member is not a participant in this challenge")
	ErrInvalidBoardSize   = errors.New("board size must be 3 or 5")

	// Board claim errors (each maps to a distinct API failure code)
	ErrInvalidPosition     = errors.New("position is outside the board")
	ErrAlreadyMarked       = errors.New("square is already marked")
	ErrFreeSpaceClaim      = errors.New("the free space cannot be claimed")
	ErrIneligibleMember    = errors.New("member does not hold this theme in their top strengths")
	ErrSelfClaimDisallowed = errors.New("cannot claim a square using yourself as evidence")
	ErrMalformedProgress   = errors.New("stored challenge progress is malformed")

	// Badge errors
	ErrBadgeNotFound = errors.New("badge not found")
)
