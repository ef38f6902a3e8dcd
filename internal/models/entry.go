package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry represents one persisted survey submission
type Entry struct {
	ID               string            `json:"id" db:"id"`
	Name             string            `json:"name" db:"name"`
	FirstImpressions []string          `json:"firstImpressions" db:"first_impressions"`
	MessageTypes     []string          `json:"messageTypes" db:"message_types"`
	Contents         map[string]string `json:"contents" db:"contents"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
}

// LegacyMessageType is the category assigned to pre-migration submissions
// that carried a single free-text "content" field.
const LegacyMessageType = "freeform"

// FirstImpressionOptions is the controlled vocabulary for impression tags.
// Unknown tags in a submission are stored as-is; the list exists for
// clients and the exporter, not for server-side rejection.
var FirstImpressionOptions = []string{
	"cute", "pretty", "graceful", "bright", "friendly", "warm", "sharp",
}

// MessageTypeOptions is the controlled vocabulary for message categories
var MessageTypeOptions = []string{
	"welcome", "get-along", "house-tips", "jokes", LegacyMessageType,
}

// NewEntryID builds a collision-resistant entry id from a wall-clock
// component and a random high-entropy suffix.
func NewEntryID(now time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("%d_%x", now.UnixMilli(), u[:8])
}

// ExportTimeFormat is the fixed-width ISO-8601 UTC layout used for
// spreadsheet and flat-file output.
const ExportTimeFormat = "2006-01-02T15:04:05.000Z"
