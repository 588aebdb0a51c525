package model

import "time"

// BadgeSlug identifies a badge definition
type BadgeSlug string

// Built-in badges
const (
	BadgeFirstBingo         BadgeSlug = "first-bingo"
	BadgeAssessmentComplete BadgeSlug = "assessment-complete"
	BadgeChallengeComplete  BadgeSlug = "challenge-complete"
)

// Badge is a badge definition
type Badge struct {
	Slug        BadgeSlug
	Name        string
	Description string
}

// BadgeAward records a badge granted to a member.
// Awards are idempotent per (member, badge).
type BadgeAward struct {
	ID        string
	Slug      BadgeSlug
	MemberID  MemberID
	Reason    string
	AwardedAt time.Time
}
