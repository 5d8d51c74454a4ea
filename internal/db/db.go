// Package db provides PostgreSQL access for the document and template stores.
// Submissions, waitlist entries and contact messages are persisted as JSONB
// documents in named collections; career templates get a typed table.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// CreateDocument persists a record into a named collection and returns its ID.
// Records are stored as JSONB; the store never reads them back on the hot path.
func (db *DB) CreateDocument(ctx context.Context, collection string, record any) (uuid.UUID, error) {
	content, err := json.Marshal(record)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal %s record: %w", collection, err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO documents (collection, content)
		 VALUES ($1, $2)
		 RETURNING id`,
		collection, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create %s document: %w", collection, err)
	}
	return id, nil
}

// CountDocuments returns the number of records in a collection
func (db *DB) CountDocuments(ctx context.Context, collection string) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = $1`,
		collection,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s documents: %w", collection, err)
	}
	return count, nil
}

// ListDocuments retrieves up to limit records from a collection in insertion order
func (db *DB) ListDocuments(ctx context.Context, collection string, limit int) ([]json.RawMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT content FROM documents
		 WHERE collection = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		collection, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", collection, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", collection, err)
		}
		docs = append(docs, json.RawMessage(content))
	}
	return docs, nil
}

// ListCollections returns the distinct collection names currently stored
func (db *DB) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT collection FROM documents ORDER BY collection`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection name: %w", err)
		}
		collections = append(collections, name)
	}
	return collections, nil
}
