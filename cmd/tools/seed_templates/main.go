// Command seed_templates upserts curated roadmap templates from a JSON file.
//
// The file holds an array of career templates, each validated against the
// template schema before it is written. Existing templates for the same
// career are replaced.
//
// Usage:
//
//	go run cmd/tools/seed_templates/main.go templates.json
//
// Requires DATABASE_URL environment variable to be set.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pathify/pathify-backend/internal/db"
	"github.com/pathify/pathify-backend/internal/schemas"
	"github.com/pathify/pathify-backend/internal/types"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: seed_templates <templates.json>")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	var rawTemplates []json.RawMessage
	if err := json.Unmarshal(data, &rawTemplates); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to parse template file: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	seeded := 0
	for i, raw := range rawTemplates {
		if err := schemas.ValidateCareerTemplate(raw); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Template %d is invalid: %v\n", i+1, err)
			os.Exit(1)
		}

		var tpl types.CareerTemplate
		if err := json.Unmarshal(raw, &tpl); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to decode template %d: %v\n", i+1, err)
			os.Exit(1)
		}

		if err := database.UpsertTemplate(ctx, &tpl); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to upsert %q: %v\n", tpl.Career, err)
			os.Exit(1)
		}

		fmt.Printf("Upserted template: %s\n", tpl.Career)
		seeded++
	}

	fmt.Printf("Done. %d template(s) seeded.\n", seeded)
}
