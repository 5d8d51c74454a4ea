// Package roadmap selects or synthesizes a staged career roadmap.
// A curated template from the store wins when present; otherwise a default
// roadmap is generated from the catalog. The two branches never merge.
package roadmap

import (
	"context"
	"fmt"

	"github.com/pathify/pathify-backend/internal/catalog"
	"github.com/pathify/pathify-backend/internal/types"
)

// TemplateSource looks up persisted career templates. A nil template with a
// nil error means no template exists for the career (exact-key match only).
type TemplateSource interface {
	FindTemplate(ctx context.Context, career string) (*types.CareerTemplate, error)
}

// Generate returns the roadmap for a career: the stored template when one
// exists, the synthesized default otherwise. Unknown career names degrade
// gracefully to the Software Engineer skill set; the career field always
// echoes the requested name. Only a failing template store surfaces an error.
func Generate(ctx context.Context, career string, source TemplateSource) (*types.Roadmap, error) {
	if career == "" {
		career = catalog.DefaultCareer
	}

	template, err := source.FindTemplate(ctx, career)
	if err != nil {
		return nil, fmt.Errorf("failed to look up template for %q: %w", career, err)
	}

	if template != nil {
		return fromTemplate(career, template), nil
	}
	return synthesize(career), nil
}

// fromTemplate builds the roadmap directly from the stored template, used
// as-is with no validation against the catalog.
func fromTemplate(career string, t *types.CareerTemplate) *types.Roadmap {
	summary := t.Summary
	if summary == "" {
		summary = fmt.Sprintf("Roadmap for %s", career)
	}
	return &types.Roadmap{
		Career:         career,
		Summary:        summary,
		RequiredSkills: t.RequiredSkills,
		Stages:         t.Stages,
		Actions:        t.DefaultActions,
	}
}

// synthesize builds the default staged roadmap. The stages are identical for
// every career; only the required skills and summary vary.
func synthesize(career string) *types.Roadmap {
	profile := catalog.Lookup(career)
	return &types.Roadmap{
		Career:         career,
		Summary:        fmt.Sprintf("A clear, stage-wise pathway to become a %s.", career),
		RequiredSkills: profile.Skills,
		Stages:         defaultStages(),
		Actions:        defaultActions(),
	}
}

// defaultStages returns the fixed 5-stage fallback roadmap.
func defaultStages() types.StageList {
	return types.StageList{
		{Label: "Classes 8–10", Items: []string{"Math foundations", "Intro to CS", "Logic puzzles", "Build small projects"}},
		{Label: "Classes 11–12", Items: []string{"Choose PCM", "Python + DSA basics", "Hackathons", "Git + GitHub"}},
		{Label: "Graduation", Items: []string{"Data Structures & Algorithms", "Internship", "System Design basics", "Open Source"}},
		{Label: "Certifications", Items: []string{"Coursera Specialization", "AWS Cloud Practitioner", "Security basics"}},
		{Label: "Portfolio", Items: []string{"3-5 polished projects", "README docs", "Case studies", "Personal website"}},
	}
}

// defaultActions returns the fixed fallback action list.
func defaultActions() []string {
	return []string{"Complete DSA 150", "Build 2 real-world projects", "Internship hunt", "Leetcode 100"}
}
