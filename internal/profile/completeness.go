package profile

// Completeness weights. They sum to exactly 100.
const (
	WeightHeadline             = 10
	WeightSummary              = 10
	WeightLocation             = 10
	WeightResumeFile           = 15
	WeightHasSkill             = 15
	WeightHasExperience        = 20
	WeightHasEducation         = 10
	WeightHasCertOrAchievement = 10
)

// OnboardingThreshold is the completeness score below which a user is
// steered into onboarding.
const OnboardingThreshold = 30

// CompletenessInput is a snapshot of the profile and the live sizes of
// its child collections.
type CompletenessInput struct {
	Headline   string
	Summary    string
	Location   string
	ResumeFile string

	SkillCount         int
	ExperienceCount    int
	EducationCount     int
	CertificationCount int
	AchievementCount   int
}

// CompletenessScore computes the 0-100 weighted score from presence of
// profile fields and non-emptiness of child collections. It is a pure
// function; callers persist the result immediately after every mutation
// so the stored score never drifts from the stored children.
func CompletenessScore(in CompletenessInput) int {
	score := 0
	if in.Headline != "" {
		score += WeightHeadline
	}
	if in.Summary != "" {
		score += WeightSummary
	}
	if in.Location != "" {
		score += WeightLocation
	}
	if in.ResumeFile != "" {
		score += WeightResumeFile
	}
	if in.SkillCount > 0 {
		score += WeightHasSkill
	}
	if in.ExperienceCount > 0 {
		score += WeightHasExperience
	}
	if in.EducationCount > 0 {
		score += WeightHasEducation
	}
	if in.CertificationCount > 0 || in.AchievementCount > 0 {
		score += WeightHasCertOrAchievement
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// NeedsOnboarding reports whether a score is below the onboarding threshold.
func NeedsOnboarding(score int) bool {
	return score < OnboardingThreshold
}
