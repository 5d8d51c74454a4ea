// Package config provides configuration loading and validation for the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the server configuration. Values can come from a JSON
// file, the environment, or CLI flags; missing values use defaults.
type Config struct {
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Optional Google Sheets mirror
	GoogleSheetID            string `json:"google_sheet_id,omitempty"`
	GoogleServiceAccountJSON string `json:"google_service_account_json,omitempty"`

	// Optional Gemini overview generation
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	GeminiModel  string `json:"gemini_model,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	port := 8000
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	return Config{
		Port:                     port,
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		GoogleSheetID:            os.Getenv("GOOGLE_SHEET_ID"),
		GoogleServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		GeminiAPIKey:             os.Getenv("GEMINI_API_KEY"),
		GeminiModel:              os.Getenv("GEMINI_MODEL"),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required")
	}
	// The sheet mirror needs both the sheet and credentials, or neither.
	if (c.GoogleSheetID == "") != (c.GoogleServiceAccountJSON == "") {
		return fmt.Errorf("config error: 'google_sheet_id' and 'google_service_account_json' must be set together")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GoogleSheetID == "" {
		result.GoogleSheetID = defaults.GoogleSheetID
	}
	if result.GoogleServiceAccountJSON == "" {
		result.GoogleServiceAccountJSON = defaults.GoogleServiceAccountJSON
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}

	return result
}
