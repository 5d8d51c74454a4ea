package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pathify/pathify-backend/internal/types"
)

// TemplateSummary is a lightweight view of a template for listing
type TemplateSummary struct {
	Career  string `json:"career"`
	Summary string `json:"summary"`
}

// FindTemplate retrieves a career template by its exact career name.
// Returns nil with no error when no template exists.
func (db *DB) FindTemplate(ctx context.Context, career string) (*types.CareerTemplate, error) {
	var (
		t       types.CareerTemplate
		skills  []byte
		stages  []byte
		actions []byte
		prompts []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT career, summary, required_skills, roadmap, default_actions, prompts
		 FROM career_templates WHERE career = $1`,
		career,
	).Scan(&t.Career, &t.Summary, &skills, &stages, &actions, &prompts)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find template %q: %w", career, err)
	}

	if err := json.Unmarshal(skills, &t.RequiredSkills); err != nil {
		return nil, fmt.Errorf("failed to decode required_skills for %q: %w", career, err)
	}
	if err := json.Unmarshal(stages, &t.Stages); err != nil {
		return nil, fmt.Errorf("failed to decode roadmap stages for %q: %w", career, err)
	}
	if err := json.Unmarshal(actions, &t.DefaultActions); err != nil {
		return nil, fmt.Errorf("failed to decode default_actions for %q: %w", career, err)
	}
	if len(prompts) > 0 {
		if err := json.Unmarshal(prompts, &t.Prompts); err != nil {
			return nil, fmt.Errorf("failed to decode prompts for %q: %w", career, err)
		}
	}

	return &t, nil
}

// UpsertTemplate creates or replaces a template keyed by career name.
// Last write wins.
func (db *DB) UpsertTemplate(ctx context.Context, t *types.CareerTemplate) error {
	skills, err := json.Marshal(t.RequiredSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal required_skills: %w", err)
	}
	stages, err := json.Marshal(t.Stages)
	if err != nil {
		return fmt.Errorf("failed to marshal roadmap stages: %w", err)
	}
	actions, err := json.Marshal(t.DefaultActions)
	if err != nil {
		return fmt.Errorf("failed to marshal default_actions: %w", err)
	}
	var prompts []byte
	if t.Prompts != nil {
		prompts, err = json.Marshal(t.Prompts)
		if err != nil {
			return fmt.Errorf("failed to marshal prompts: %w", err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO career_templates (career, summary, required_skills, roadmap, default_actions, prompts)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (career) DO UPDATE SET
		     summary = $2,
		     required_skills = $3,
		     roadmap = $4,
		     default_actions = $5,
		     prompts = $6,
		     updated_at = NOW()`,
		t.Career, t.Summary, skills, stages, actions, prompts,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert template %q: %w", t.Career, err)
	}
	return nil
}

// ListTemplates retrieves career and summary for all stored templates
func (db *DB) ListTemplates(ctx context.Context) ([]TemplateSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT career, summary FROM career_templates ORDER BY career`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []TemplateSummary
	for rows.Next() {
		var t TemplateSummary
		if err := rows.Scan(&t.Career, &t.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}
