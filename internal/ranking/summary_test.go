package ranking

import (
	"testing"

	"talentboard/pkg/models"
)

func analyzed(name string, score int, skills ...string) models.ApplicantWithScore {
	a := applicant(name, score)
	a.Recommendation = "Recommended"
	a.Skills = skills
	return a
}

func TestBuildSummaryStats(t *testing.T) {
	applicants := []models.ApplicantWithScore{
		analyzed("a", 95),
		analyzed("b", 85),
		analyzed("c", 70),
		analyzed("d", 40),
	}

	s := BuildSummary(applicants)

	if s.TotalApplicants != 4 {
		t.Errorf("TotalApplicants = %d, want 4", s.TotalApplicants)
	}
	if s.AnalyzedApplicants != 4 {
		t.Errorf("AnalyzedApplicants = %d, want 4", s.AnalyzedApplicants)
	}
	if s.AverageScore != 72 {
		t.Errorf("AverageScore = %d, want 72", s.AverageScore)
	}
	if s.ExcellentCandidates != 1 {
		t.Errorf("ExcellentCandidates = %d, want 1", s.ExcellentCandidates)
	}
	if s.TopScorers != 2 {
		t.Errorf("TopScorers = %d, want 2", s.TopScorers)
	}
}

func TestBuildSummaryExcludesPendingFromAverage(t *testing.T) {
	pending := applicant("pending", 0)
	pending.Recommendation = RecommendationPending

	applicants := []models.ApplicantWithScore{
		analyzed("a", 80),
		analyzed("b", 60),
		pending,
	}

	s := BuildSummary(applicants)

	if s.TotalApplicants != 3 {
		t.Errorf("TotalApplicants = %d, want 3", s.TotalApplicants)
	}
	if s.AnalyzedApplicants != 2 {
		t.Errorf("AnalyzedApplicants = %d, want 2", s.AnalyzedApplicants)
	}
	if s.AverageScore != 70 {
		t.Errorf("AverageScore = %d, want 70", s.AverageScore)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil)

	if s.TotalApplicants != 0 || s.AnalyzedApplicants != 0 || s.AverageScore != 0 {
		t.Errorf("empty summary has non-zero stats: %+v", s)
	}
	if s.TopApplicants == nil || len(s.TopApplicants) != 0 {
		t.Errorf("TopApplicants should be an empty slice, got %v", s.TopApplicants)
	}
	if s.CommonSkills == nil || len(s.CommonSkills) != 0 {
		t.Errorf("CommonSkills should be an empty slice, got %v", s.CommonSkills)
	}
}

func TestBuildSummaryNeedsHelp(t *testing.T) {
	weak := analyzed("weak", 30)
	weak.Improvements = []string{"a", "b", "c"}
	strong := analyzed("strong", 90)
	strong.Improvements = []string{"a"}

	s := BuildSummary([]models.ApplicantWithScore{weak, strong})

	if s.NeedsHelp != 1 {
		t.Errorf("NeedsHelp = %d, want 1", s.NeedsHelp)
	}
}

func TestBuildSummaryTopApplicants(t *testing.T) {
	applicants := []models.ApplicantWithScore{
		analyzed("a", 50),
		analyzed("b", 90),
		analyzed("c", 70),
		analyzed("d", 80),
		analyzed("e", 60),
	}

	s := BuildSummary(applicants)

	if len(s.TopApplicants) != 3 {
		t.Fatalf("TopApplicants has %d entries, want 3", len(s.TopApplicants))
	}
	if !equalInts(scores(s.TopApplicants), []int{90, 80, 70}) {
		t.Errorf("TopApplicants scores = %v", scores(s.TopApplicants))
	}
}

func TestCommonSkills(t *testing.T) {
	applicants := []models.ApplicantWithScore{
		analyzed("a", 80, "Go", "SQL"),
		analyzed("b", 70, "Go", "Docker"),
		analyzed("c", 60, "Go", "SQL", "Kubernetes"),
	}

	s := BuildSummary(applicants)

	if len(s.CommonSkills) != 4 {
		t.Fatalf("CommonSkills has %d entries, want 4", len(s.CommonSkills))
	}
	if s.CommonSkills[0].Skill != "Go" || s.CommonSkills[0].Count != 3 {
		t.Errorf("most common = %+v, want Go x3", s.CommonSkills[0])
	}
	if s.CommonSkills[1].Skill != "SQL" || s.CommonSkills[1].Count != 2 {
		t.Errorf("second = %+v, want SQL x2", s.CommonSkills[1])
	}
	// Docker and Kubernetes tie at 1; first-encounter order breaks the tie.
	if s.CommonSkills[2].Skill != "Docker" || s.CommonSkills[3].Skill != "Kubernetes" {
		t.Errorf("tie order = %q, %q, want Docker then Kubernetes",
			s.CommonSkills[2].Skill, s.CommonSkills[3].Skill)
	}
}

func TestCommonSkillsCapped(t *testing.T) {
	a := analyzed("a", 50, "s1", "s2", "s3", "s4", "s5", "s6", "s7")

	s := BuildSummary([]models.ApplicantWithScore{a})

	if len(s.CommonSkills) != commonSkillCount {
		t.Errorf("CommonSkills has %d entries, want %d", len(s.CommonSkills), commonSkillCount)
	}
}
