// Command init_db creates the documents and career_templates tables.
//
// Usage:
//
//	go run cmd/tools/init_db/main.go
//
// Requires DATABASE_URL environment variable to be set.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pathify/pathify-backend/internal/db"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.InitSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to initialize schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Schema initialized.")
}
