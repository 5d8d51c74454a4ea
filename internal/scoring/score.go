// Package scoring implements the heuristic career-fit scoring engine.
// Scoring is deterministic and total: any submission produces a full ranked
// result, there is no rejection path inside the engine.
package scoring

import (
	"sort"
	"strings"

	"github.com/pathify/pathify-backend/internal/catalog"
	"github.com/pathify/pathify-backend/internal/types"
)

// Scoring constants. The match percent is a heuristic fit indicator,
// not a probability.
const (
	baseScore       = 50
	overlapPerSkill = 6
	overlapCap      = 18
	minPercent      = 1
	maxPercent      = 97

	maxStrengths     = 5
	maxMatches       = 5
	personalityPivot = 3.0
	personalityScale = 4.0
)

// Fixed forecast metadata attached to every match.
var (
	defaultSalaryForecast = types.SalaryForecast{Entry: 4.0, Mid: 12.0, Senior: 30.0}
	demandTrend6M         = "+12%"
	demandRegions         = []string{"India", "US", "Remote"}
)

// Score ranks every catalog career against the submission and returns the
// top matches, sorted by descending match percent. Ties preserve catalog
// order. With the fixed 5-entry catalog the result is always all 5.
func Score(sub *types.AssessmentSubmission) []types.CareerMatch {
	interests := lowerSet(sub.Interests)
	skills := lowerSet(sub.Skills)
	tilt := personalityTilt(sub.PersonalityAnswers)
	strengths := firstStrengths(sub.Skills)

	matches := make([]types.CareerMatch, 0, len(catalog.Profiles()))
	for _, profile := range catalog.Profiles() {
		score := baseScore
		score += interestBoost(profile, interests)
		score += overlapBoost(profile.Skills, skills)
		score += tilt
		score = clamp(score, minPercent, maxPercent)

		matches = append(matches, types.CareerMatch{
			Career:         profile.Name,
			MatchPercent:   score,
			WhyMatch:       profile.Why,
			Strengths:      strengths,
			SkillGap:       skillGap(profile.Skills, skills),
			SalaryForecast: defaultSalaryForecast,
			DemandTrends: types.DemandTrends{
				CurrentIndex: score,
				Trend6M:      demandTrend6M,
				Regions:      demandRegions,
			},
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercent > matches[j].MatchPercent
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches
}

// interestBoost returns the profile's bonus when any of its trigger tags is
// present in the normalized interest set.
func interestBoost(profile catalog.CareerProfile, interests map[string]bool) int {
	for _, trigger := range profile.Interest.Triggers {
		if interests[trigger] {
			return profile.Interest.Bonus
		}
	}
	return 0
}

// overlapBoost counts required skills present in the submission's skill set
// and converts the overlap to a capped bonus. An overlap of 3 already
// saturates the cap.
func overlapBoost(required []string, skills map[string]bool) int {
	overlap := 0
	for _, skill := range required {
		if skills[strings.ToLower(skill)] {
			overlap++
		}
	}
	boost := overlap * overlapPerSkill
	if boost > overlapCap {
		boost = overlapCap
	}
	return boost
}

// personalityTilt nudges the score based on how far the respondent's average
// answer sits from the midpoint. The float-to-int conversion truncates toward
// zero. An empty answer sequence floors the divisor at 1, yielding an average
// of 0 and a uniform -12 tilt.
func personalityTilt(answers []int) int {
	sum := 0
	for _, a := range answers {
		sum += a
	}
	divisor := len(answers)
	if divisor < 1 {
		divisor = 1
	}
	avg := float64(sum) / float64(divisor)
	return int((avg - personalityPivot) * personalityScale)
}

// skillGap returns the required skills absent from the submission's skill
// set, in profile order with the profile's original casing.
func skillGap(required []string, skills map[string]bool) []string {
	gap := make([]string, 0, len(required))
	for _, skill := range required {
		if !skills[strings.ToLower(skill)] {
			gap = append(gap, skill)
		}
	}
	return gap
}

// firstStrengths picks the first few submission skills as reported strengths.
// Input order and casing are preserved; duplicates collapse case-insensitively
// so the output is deterministic for identical submissions.
func firstStrengths(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	strengths := make([]string, 0, maxStrengths)
	for _, skill := range skills {
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		strengths = append(strengths, skill)
		if len(strengths) == maxStrengths {
			break
		}
	}
	return strengths
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
