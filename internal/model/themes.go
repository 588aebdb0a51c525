package model

// ThemeDomain groups strength themes by the kind of contribution they describe
type ThemeDomain string

const (
	DomainExecuting            ThemeDomain = "executing"
	DomainInfluencing          ThemeDomain = "influencing"
	DomainRelationshipBuilding ThemeDomain = "relationship_building"
	DomainStrategicThinking    ThemeDomain = "strategic_thinking"
)

// MaxRank is the lowest (worst) rank a theme can hold in an assessment
const MaxRank = 34

// TopStrengthRank is the rank cutoff for a theme to count as one of a
// member's "top" strengths, used for claim eligibility
const TopStrengthRank = 10

// themeCatalog maps every assessment theme to its domain.
// The catalog is fixed: assessments rank all 34 themes.
var themeCatalog = map[string]ThemeDomain{
	// Executing
	"Achiever":       DomainExecuting,
	"Arranger":       DomainExecuting,
	"Belief":         DomainExecuting,
	"Consistency":    DomainExecuting,
	"Deliberative":   DomainExecuting,
	"Discipline":     DomainExecuting,
	"Focus":          DomainExecuting,
	"Responsibility": DomainExecuting,
	"Restorative":    DomainExecuting,

	// Influencing
	"Activator":      DomainInfluencing,
	"Command":        DomainInfluencing,
	"Communication":  DomainInfluencing,
	"Competition":    DomainInfluencing,
	"Maximizer":      DomainInfluencing,
	"Self-Assurance": DomainInfluencing,
	"Significance":   DomainInfluencing,
	"Woo":            DomainInfluencing,

	// Relationship building
	"Adaptability":      DomainRelationshipBuilding,
	"Connectedness":     DomainRelationshipBuilding,
	"Developer":         DomainRelationshipBuilding,
	"Empathy":           DomainRelationshipBuilding,
	"Harmony":           DomainRelationshipBuilding,
	"Includer":          DomainRelationshipBuilding,
	"Individualization": DomainRelationshipBuilding,
	"Positivity":        DomainRelationshipBuilding,
	"Relator":           DomainRelationshipBuilding,

	// Strategic thinking
	"Analytical":   DomainStrategicThinking,
	"Context":      DomainStrategicThinking,
	"Futuristic":   DomainStrategicThinking,
	"Ideation":     DomainStrategicThinking,
	"Input":        DomainStrategicThinking,
	"Intellection": DomainStrategicThinking,
	"Learner":      DomainStrategicThinking,
	"Strategic":    DomainStrategicThinking,
}

// IsKnownTheme reports whether name is a theme in the catalog
func IsKnownTheme(name string) bool {
	_, ok := themeCatalog[name]
	return ok
}

// DomainOfTheme returns the domain a theme belongs to, or "" if unknown
func DomainOfTheme(name string) ThemeDomain {
	return themeCatalog[name]
}

// AllThemes returns every theme name in the catalog.
// Order is not stable; callers that need determinism should sort.
func AllThemes() []string {
	themes := make([]string, 0, len(themeCatalog))
	for name := range themeCatalog {
		themes = append(themes, name)
	}
	return themes
}

// ThemeCount is the number of themes in the catalog
func ThemeCount() int {
	return len(themeCatalog)
}
