// Package sheets mirrors selected records to a Google Spreadsheet.
// The mirror is optional: when no service account or sheet is configured the
// client is disabled and every append is a no-op. Append failures never fail
// the originating request.
package sheets

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/pathify/pathify-backend/internal/types"
)

// Worksheet ranges for the mirrored record types.
const (
	waitlistRange = "Sheet1!A:E"
	contactRange  = "Contact!A:D"
)

// Client appends rows to the configured spreadsheet. A nil Client is valid
// and disabled.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New creates a sheets client from service account JSON credentials.
// Returns a nil (disabled) client when credentials or sheet ID are missing.
func New(ctx context.Context, serviceAccountJSON, spreadsheetID string) (*Client, error) {
	if serviceAccountJSON == "" || spreadsheetID == "" {
		return nil, nil
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(serviceAccountJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Enabled reports whether the mirror is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.svc != nil
}

// AppendWaitlist mirrors a waitlist entry to the primary worksheet.
// Returns true when the row was appended.
func (c *Client) AppendWaitlist(ctx context.Context, entry *types.WaitlistEntry) bool {
	source := entry.Source
	if source == "" {
		source = "website"
	}
	return c.appendRow(ctx, waitlistRange, []any{
		entry.Name,
		entry.Email,
		entry.Instagram,
		source,
		time.Now().UTC().Format(time.RFC3339),
	})
}

// AppendContact mirrors a contact message to the Contact worksheet.
// Returns true when the row was appended.
func (c *Client) AppendContact(ctx context.Context, msg *types.ContactMessage) bool {
	return c.appendRow(ctx, contactRange, []any{
		msg.Name,
		msg.Email,
		msg.Message,
		time.Now().UTC().Format(time.RFC3339),
	})
}

func (c *Client) appendRow(ctx context.Context, writeRange string, row []any) bool {
	if !c.Enabled() {
		return false
	}

	values := &sheetsapi.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, writeRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("[sheets] append to %s failed: %v", writeRange, err)
		return false
	}
	return true
}
