package db

import (
	"context"
	"fmt"
)

// Schema is the DDL for the document and template stores. Applied by the
// init_db tool; the server assumes the tables exist.
const Schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS documents (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    collection TEXT NOT NULL,
    content    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_documents_collection
    ON documents (collection, created_at);

-- roadmap uses JSON, not JSONB: JSONB normalizes object key order and the
-- stage order of a roadmap is meaningful.
CREATE TABLE IF NOT EXISTS career_templates (
    id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    career          TEXT NOT NULL UNIQUE,
    summary         TEXT NOT NULL DEFAULT '',
    required_skills JSONB NOT NULL,
    roadmap         JSON NOT NULL,
    default_actions JSONB NOT NULL,
    prompts         JSONB,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema creates the tables if they do not exist
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
