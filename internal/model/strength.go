package model

import "time"

// StrengthRank is one theme's position in a member's assessment results
type StrengthRank struct {
	Theme string
	Rank  int // 1 is the member's strongest theme
}

// Assessment is a member's parsed strength report.
// A member has at most one current assessment; re-uploading replaces it.
type Assessment struct {
	ID         string
	MemberID   MemberID
	Source     string // e.g. original report filename
	UploadedAt time.Time
	Ranks      []StrengthRank // all themes, ranks 1..MaxRank
}

// TopThemes returns the themes ranked at or above (numerically at or below)
// the given cutoff, in rank order.
func (a *Assessment) TopThemes(cutoff int) []string {
	var themes []string
	for rank := 1; rank <= cutoff; rank++ {
		for _, r := range a.Ranks {
			if r.Rank == rank {
				themes = append(themes, r.Theme)
			}
		}
	}
	return themes
}

// RankOf returns the rank a theme holds in this assessment, or 0 if absent
func (a *Assessment) RankOf(theme string) int {
	for _, r := range a.Ranks {
		if r.Theme == theme {
			return r.Rank
		}
	}
	return 0
}
