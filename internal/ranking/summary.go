package ranking

import (
	"sort"

	"talentboard/pkg/models"
)

// Summary aggregation thresholds.
const (
	excellentThreshold = 90
	topScorerThreshold = 80
	needsHelpMin       = 3

	topApplicantCount = 3
	commonSkillCount  = 5
)

// BuildSummary computes cross-job aggregation stats over all of an
// employer's applicants. An applicant counts as analyzed when it carries
// a structured feedback payload or a non-zero score; the mean is taken
// over analyzed applicants only, since a zero score means "pending
// analysis" rather than an actual result.
func BuildSummary(applicants []models.ApplicantWithScore) *models.Summary {
	summary := &models.Summary{
		TotalApplicants: len(applicants),
		TopApplicants:   []models.ApplicantWithScore{},
		CommonSkills:    []models.SkillCount{},
	}

	total := 0
	for i := range applicants {
		a := &applicants[i]
		if a.Score > 0 || a.Recommendation != RecommendationPending {
			summary.AnalyzedApplicants++
			total += a.Score
		}
		if a.Score >= excellentThreshold {
			summary.ExcellentCandidates++
		}
		if a.Score >= topScorerThreshold {
			summary.TopScorers++
		}
		if len(a.Improvements) >= needsHelpMin {
			summary.NeedsHelp++
		}
	}

	if summary.AnalyzedApplicants > 0 {
		summary.AverageScore = total / summary.AnalyzedApplicants
	}

	ranked := SortApplicants(applicants, SortScoreDesc)
	summary.TopApplicants = TopN(ranked, topApplicantCount)
	summary.CommonSkills = commonSkills(applicants, commonSkillCount)

	return summary
}

// commonSkills returns the n most frequent skill strings across all
// applicants. Ties are broken by first-encounter order, which keeps the
// result stable across rebuilds of the same data.
func commonSkills(applicants []models.ApplicantWithScore, n int) []models.SkillCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for i := range applicants {
		for _, skill := range applicants[i].Skills {
			if skill == "" {
				continue
			}
			if _, seen := counts[skill]; !seen {
				firstSeen[skill] = order
				order++
			}
			counts[skill]++
		}
	}

	skills := make([]models.SkillCount, 0, len(counts))
	for skill, count := range counts {
		skills = append(skills, models.SkillCount{Skill: skill, Count: count})
	}

	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Count != skills[j].Count {
			return skills[i].Count > skills[j].Count
		}
		return firstSeen[skills[i].Skill] < firstSeen[skills[j].Skill]
	})

	if len(skills) > n {
		skills = skills[:n]
	}
	return skills
}
