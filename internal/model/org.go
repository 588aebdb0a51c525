package model

import "time"

// OrgID uniquely identifies an organization
type OrgID string

// Organization is the top-level tenant boundary. All members, challenges
// and badge awards belong to exactly one organization.
type Organization struct {
	ID        OrgID
	Name      string
	Slug      string // URL-safe unique handle
	CreatedAt time.Time
}
