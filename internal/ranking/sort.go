package ranking

import (
	"sort"
	"strings"

	"talentboard/pkg/models"
)

// SortKey selects the ordering applied within each job's applicant list.
type SortKey string

const (
	SortScoreDesc      SortKey = "scoreDesc"
	SortScoreAsc       SortKey = "scoreAsc"
	SortExperienceDesc SortKey = "experienceDesc"
	SortExperienceAsc  SortKey = "experienceAsc"
	SortNameAsc        SortKey = "nameAsc"
	SortSkillsDesc     SortKey = "skillsDesc"
	SortDateDesc       SortKey = "dateDesc"
	SortDateAsc        SortKey = "dateAsc"
)

// DefaultSort is applied when no sort key is given.
const DefaultSort = SortScoreDesc

// ParseSortKey maps a query value to a SortKey, falling back to the
// default for unknown values.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortScoreDesc, SortScoreAsc, SortExperienceDesc, SortExperienceAsc,
		SortNameAsc, SortSkillsDesc, SortDateDesc, SortDateAsc:
		return SortKey(s)
	}
	return DefaultSort
}

// SortApplicants returns a new slice ordered by the given key. The input
// slice is never mutated, and the sort is stable so re-sorting an
// already-sorted list by the same key is a no-op on order.
func SortApplicants(applicants []models.ApplicantWithScore, key SortKey) []models.ApplicantWithScore {
	out := make([]models.ApplicantWithScore, len(applicants))
	copy(out, applicants)

	var less func(a, b *models.ApplicantWithScore) bool
	switch key {
	case SortScoreAsc:
		less = func(a, b *models.ApplicantWithScore) bool { return a.Score < b.Score }
	case SortExperienceDesc:
		less = func(a, b *models.ApplicantWithScore) bool {
			return strings.ToLower(a.Experience) > strings.ToLower(b.Experience)
		}
	case SortExperienceAsc:
		less = func(a, b *models.ApplicantWithScore) bool {
			return strings.ToLower(a.Experience) < strings.ToLower(b.Experience)
		}
	case SortNameAsc:
		less = func(a, b *models.ApplicantWithScore) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortSkillsDesc:
		less = func(a, b *models.ApplicantWithScore) bool { return len(a.Skills) > len(b.Skills) }
	case SortDateDesc:
		less = func(a, b *models.ApplicantWithScore) bool { return a.AppliedAt.After(b.AppliedAt) }
	case SortDateAsc:
		less = func(a, b *models.ApplicantWithScore) bool { return a.AppliedAt.Before(b.AppliedAt) }
	default:
		less = func(a, b *models.ApplicantWithScore) bool { return a.Score > b.Score }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// TopN truncates a sorted applicant list to its first n entries.
// Truncation must happen after sorting, never before; a non-positive n
// means no limit.
func TopN(applicants []models.ApplicantWithScore, n int) []models.ApplicantWithScore {
	if n <= 0 || n >= len(applicants) {
		return applicants
	}
	return applicants[:n]
}
