package profile

import "testing"

func TestCompletenessScore(t *testing.T) {
	tests := []struct {
		name     string
		input    CompletenessInput
		expected int
	}{
		{"empty profile", CompletenessInput{}, 0},
		{"headline only", CompletenessInput{Headline: "Engineer"}, 10},
		{"summary only", CompletenessInput{Summary: "About me"}, 10},
		{"location only", CompletenessInput{Location: "Berlin"}, 10},
		{"resume file only", CompletenessInput{ResumeFile: "resumes/cv.pdf"}, 15},
		{"one skill only", CompletenessInput{SkillCount: 1}, 15},
		{"one experience only", CompletenessInput{ExperienceCount: 1}, 20},
		{"one education only", CompletenessInput{EducationCount: 1}, 10},
		{"certification only", CompletenessInput{CertificationCount: 1}, 10},
		{"achievement only", CompletenessInput{AchievementCount: 1}, 10},
		{
			// Certifications and achievements share one weight.
			"cert and achievement do not double count",
			CompletenessInput{CertificationCount: 2, AchievementCount: 3},
			10,
		},
		{
			"headline summary location and a skill",
			CompletenessInput{
				Headline:   "Engineer",
				Summary:    "About me",
				Location:   "Berlin",
				SkillCount: 1,
			},
			45,
		},
		{
			"everything present sums to exactly 100",
			CompletenessInput{
				Headline:           "Engineer",
				Summary:            "About me",
				Location:           "Berlin",
				ResumeFile:         "resumes/cv.pdf",
				SkillCount:         5,
				ExperienceCount:    3,
				EducationCount:     2,
				CertificationCount: 1,
				AchievementCount:   1,
			},
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletenessScore(tt.input); got != tt.expected {
				t.Errorf("CompletenessScore() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCompletenessScore_Bounds(t *testing.T) {
	// Exhaustive presence combinations stay inside [0, 100].
	for mask := 0; mask < 256; mask++ {
		in := CompletenessInput{}
		if mask&1 != 0 {
			in.Headline = "x"
		}
		if mask&2 != 0 {
			in.Summary = "x"
		}
		if mask&4 != 0 {
			in.Location = "x"
		}
		if mask&8 != 0 {
			in.ResumeFile = "x"
		}
		if mask&16 != 0 {
			in.SkillCount = 1
		}
		if mask&32 != 0 {
			in.ExperienceCount = 1
		}
		if mask&64 != 0 {
			in.EducationCount = 1
		}
		if mask&128 != 0 {
			in.AchievementCount = 1
		}

		score := CompletenessScore(in)
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of bounds for mask %d", score, mask)
		}
	}
}

func TestNeedsOnboarding(t *testing.T) {
	tests := []struct {
		score    int
		expected bool
	}{
		{0, true},
		{29, true},
		{30, false},
		{45, false},
		{100, false},
	}

	for _, tt := range tests {
		if got := NeedsOnboarding(tt.score); got != tt.expected {
			t.Errorf("NeedsOnboarding(%d) = %v, want %v", tt.score, got, tt.expected)
		}
	}
}
