package report

import (
	"strconv"
	"strings"

	"github.com/strengthsync/strengthsync/internal/model"
)

// ParseRanks parses extracted report text into strength ranks.
//
// Report exports list one theme per line in the form "<rank>. <theme>"
// (e.g. "1. Achiever"); surrounding narrative lines are ignored. A report
// must yield at least the top strengths cutoff worth of consecutively
// ranked themes starting at 1 to be accepted.
func ParseRanks(text string) ([]model.StrengthRank, error) {
	var ranks []model.StrengthRank
	seen := make(map[int]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		dot := strings.Index(line, ".")
		if dot <= 0 {
			continue
		}

		rank, err := strconv.Atoi(strings.TrimSpace(line[:dot]))
		if err != nil || rank < 1 || rank > model.MaxRank {
			continue
		}

		theme := normalizeTheme(strings.TrimSpace(line[dot+1:]))
		if !model.IsKnownTheme(theme) {
			continue
		}
		if seen[rank] {
			return nil, model.ErrDuplicateRank
		}

		seen[rank] = true
		ranks = append(ranks, model.StrengthRank{Theme: theme, Rank: rank})
	}

	// Require an unbroken 1..N prefix covering at least the top strengths
	for rank := 1; rank <= model.TopStrengthRank; rank++ {
		if !seen[rank] {
			return nil, model.ErrMalformedReport
		}
	}

	return ranks, nil
}

// normalizeTheme maps a report line's theme text onto catalog casing
func normalizeTheme(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, name := range model.AllThemes() {
		if strings.EqualFold(name, raw) {
			return name
		}
	}
	return raw
}
