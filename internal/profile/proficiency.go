package profile

import "strings"

// Proficiency levels accepted for skills.
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// proficiencyAliases maps common synonyms onto the canonical levels.
var proficiencyAliases = map[string]string{
	"novice":     ProficiencyBeginner,
	"basic":      ProficiencyBeginner,
	"mid":        ProficiencyIntermediate,
	"moderate":   ProficiencyIntermediate,
	"proficient": ProficiencyAdvanced,
	"master":     ProficiencyExpert,
}

// NormalizeProficiency lower-cases, trims, and resolves aliases. Unknown
// values pass through unchanged and are rejected by validation.
func NormalizeProficiency(s string) string {
	p := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := proficiencyAliases[p]; ok {
		return canonical
	}
	return p
}
