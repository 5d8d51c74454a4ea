package roadmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathify/pathify-backend/internal/catalog"
	"github.com/pathify/pathify-backend/internal/types"
)

// stubSource is an in-memory TemplateSource for tests.
type stubSource struct {
	templates map[string]*types.CareerTemplate
	err       error
}

func (s *stubSource) FindTemplate(_ context.Context, career string) (*types.CareerTemplate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.templates[career], nil
}

func TestGenerate_TemplatePrecedence(t *testing.T) {
	template := &types.CareerTemplate{
		Career:         "Software Engineer",
		Summary:        "Curated pathway",
		RequiredSkills: []string{"Go", "Kubernetes"},
		Stages: types.StageList{
			{Label: "Year 1", Items: []string{"Learn Go"}},
			{Label: "Year 2", Items: []string{"Ship services"}},
		},
		DefaultActions: []string{"Contribute upstream"},
	}
	source := &stubSource{templates: map[string]*types.CareerTemplate{
		"Software Engineer": template,
	}}

	rm, err := Generate(context.Background(), "Software Engineer", source)

	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", rm.Career)
	assert.Equal(t, "Curated pathway", rm.Summary)
	assert.Equal(t, template.RequiredSkills, rm.RequiredSkills)
	assert.Equal(t, template.Stages, rm.Stages)
	assert.Equal(t, template.DefaultActions, rm.Actions)
}

func TestGenerate_TemplateLookupIsExactKey(t *testing.T) {
	source := &stubSource{templates: map[string]*types.CareerTemplate{
		"software engineer": {Career: "software engineer", Summary: "lowercase key"},
	}}

	rm, err := Generate(context.Background(), "Software Engineer", source)

	require.NoError(t, err)
	// Case differs, so the lookup misses and the default is synthesized.
	assert.NotEqual(t, "lowercase key", rm.Summary)
	assert.Len(t, rm.Stages, 5)
}

func TestGenerate_TemplateWithEmptySummaryGetsDefault(t *testing.T) {
	source := &stubSource{templates: map[string]*types.CareerTemplate{
		"Data Scientist": {
			Career:         "Data Scientist",
			RequiredSkills: []string{"Statistics"},
			Stages:         types.StageList{{Label: "Start", Items: []string{"Study"}}},
		},
	}}

	rm, err := Generate(context.Background(), "Data Scientist", source)

	require.NoError(t, err)
	assert.Equal(t, "Roadmap for Data Scientist", rm.Summary)
}

func TestGenerate_FallbackForUnknownCareer(t *testing.T) {
	rm, err := Generate(context.Background(), "Nonexistent Career", &stubSource{})

	require.NoError(t, err)
	assert.Equal(t, "Nonexistent Career", rm.Career)
	assert.Equal(t, catalog.Lookup(catalog.DefaultCareer).Skills, rm.RequiredSkills)
	assert.Equal(t, "A clear, stage-wise pathway to become a Nonexistent Career.", rm.Summary)

	require.Len(t, rm.Stages, 5)
	assert.Equal(t, []string{
		"Classes 8–10",
		"Classes 11–12",
		"Graduation",
		"Certifications",
		"Portfolio",
	}, rm.Stages.Labels())
	assert.Len(t, rm.Actions, 4)
}

func TestGenerate_KnownCareerWithoutTemplateUsesCatalogSkills(t *testing.T) {
	rm, err := Generate(context.Background(), "UI/UX Designer", &stubSource{})

	require.NoError(t, err)
	assert.Equal(t, catalog.Lookup("UI/UX Designer").Skills, rm.RequiredSkills)
}

func TestGenerate_EmptyCareerDefaultsToSoftwareEngineer(t *testing.T) {
	rm, err := Generate(context.Background(), "", &stubSource{})

	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", rm.Career)
}

func TestGenerate_StoreErrorPropagates(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}

	rm, err := Generate(context.Background(), "Software Engineer", source)

	assert.Nil(t, rm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDefaultStages_EveryStageHasItems(t *testing.T) {
	for _, stage := range defaultStages() {
		assert.NotEmpty(t, stage.Items, "stage %s", stage.Label)
		assert.GreaterOrEqual(t, len(stage.Items), 3, "stage %s", stage.Label)
	}
}
