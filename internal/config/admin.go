// Package config provides admin credential configuration and verification.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// AdminConfig holds the single admin principal's credential. There are no
// user accounts; template administration is guarded by one bcrypt-hashed
// password issued out of band.
type AdminConfig struct {
	PasswordHash string
	BcryptCost   int
}

// NewAdminConfig creates an admin configuration from environment variables.
// It reads ADMIN_PASSWORD_HASH (bcrypt hash; empty leaves admin endpoints
// disabled) and BCRYPT_COST (default: 12, used when hashing new credentials).
func NewAdminConfig() (*AdminConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	return &AdminConfig{
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		BcryptCost:   cost,
	}, nil
}

// Enabled reports whether an admin credential is configured.
func (c *AdminConfig) Enabled() bool {
	return c != nil && c.PasswordHash != ""
}

// HashPassword hashes a password using bcrypt.
func (c *AdminConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against the configured hash.
func (c *AdminConfig) VerifyPassword(pw string) bool {
	if !c.Enabled() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pw)) == nil
}
