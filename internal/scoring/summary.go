package scoring

import (
	"fmt"
	"strings"

	"github.com/pathify/pathify-backend/internal/types"
)

const (
	defaultLanguage = "en"
	maxGapHighlight = 5

	overviewText  = "Assessment complete. Top matches generated based on interests, skills, and personality alignment."
	trendSentence = "Steady market demand with positive 6M trend"
)

// Summarize builds the preview summary for a scored assessment. The matches
// slice must be the non-empty output of Score.
func Summarize(matches []types.CareerMatch, language string) types.PreviewSummary {
	if language == "" {
		language = defaultLanguage
	}

	top := matches[0]
	gapFocus := "Minimal"
	if len(top.SkillGap) > 0 {
		gap := top.SkillGap
		if len(gap) > maxGapHighlight {
			gap = gap[:maxGapHighlight]
		}
		gapFocus = strings.Join(gap, ", ")
	}

	return types.PreviewSummary{
		Language: language,
		Overview: overviewText,
		Highlights: []string{
			fmt.Sprintf("Top Career: %s", top.Career),
			fmt.Sprintf("Skill Gap Focus: %s", gapFocus),
			trendSentence,
		},
	}
}
