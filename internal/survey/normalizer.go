// Package survey converts raw submission payloads into canonical entries.
//
// Two request shapes reach the API: the structured shape with per-category
// contents, and the pre-migration legacy shape with a single free-text
// "content" field. Both are resolved once here into one Entry.
package survey

import (
	"errors"
	"strings"
	"time"

	"github.com/wedding-message-vault/internal/models"
)

// Validation errors surfaced to the client as 400 responses
var (
	ErrMissingName     = errors.New("name required")
	ErrMissingContent  = errors.New("content required")
	ErrMissingContents = errors.New("contents required")
)

// IsValidationError reports whether err is one of the submission
// validation failures (as opposed to a store failure).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingContent) ||
		errors.Is(err, ErrMissingContents)
}

// submission is the tagged-union view of a raw payload, resolved once
// at the boundary instead of re-checking the shape per field.
type submission struct {
	name             string
	firstImpressions []string
	messageTypes     []string
	contents         map[string]string
	legacyContent    string
	isLegacy         bool
}

// Normalize validates a raw submission payload and produces a canonical
// entry stamped with a fresh id and creation time. It is pure over the
// payload, the clock, and the id source; malformed optional fields
// degrade to empty values rather than failing.
func Normalize(raw map[string]any, now time.Time) (*models.Entry, error) {
	sub := resolve(raw)

	if sub.name == "" {
		return nil, ErrMissingName
	}

	if sub.isLegacy {
		// Unreachable through resolve (legacy detection requires
		// non-empty content) but kept as the acceptance gate.
		if sub.legacyContent == "" {
			return nil, ErrMissingContent
		}
		now = now.UTC().Truncate(time.Millisecond)
		return &models.Entry{
			ID:               models.NewEntryID(now),
			Name:             sub.name,
			FirstImpressions: []string{},
			MessageTypes:     []string{models.LegacyMessageType},
			Contents:         map[string]string{models.LegacyMessageType: sub.legacyContent},
			CreatedAt:        now,
		}, nil
	}

	hasAnyText := false
	for _, v := range sub.contents {
		if strings.TrimSpace(v) != "" {
			hasAnyText = true
			break
		}
	}
	if !hasAnyText {
		return nil, ErrMissingContents
	}

	now = now.UTC().Truncate(time.Millisecond)
	return &models.Entry{
		ID:               models.NewEntryID(now),
		Name:             sub.name,
		FirstImpressions: sub.firstImpressions,
		MessageTypes:     sub.messageTypes,
		Contents:         sub.contents,
		CreatedAt:        now,
	}, nil
}

// resolve coerces the untyped payload into the tagged union. A submission
// is legacy if and only if its trimmed content is non-empty, it declares
// no messageTypes, and its contents mapping is empty; a payload mixing
// legacy content with any structured field is structured and the content
// is dropped.
func resolve(raw map[string]any) submission {
	sub := submission{
		name:             strings.TrimSpace(asString(raw["name"])),
		firstImpressions: asStringSlice(raw["firstImpressions"]),
		messageTypes:     asStringSlice(raw["messageTypes"]),
		contents:         asStringMap(raw["contents"]),
		legacyContent:    strings.TrimSpace(asString(raw["content"])),
	}
	sub.isLegacy = sub.legacyContent != "" &&
		len(sub.messageTypes) == 0 &&
		len(sub.contents) == 0
	return sub
}

// Coercion helpers: malformed input degrades to empty, never errors.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asStringMap(v any) map[string]string {
	fields, ok := v.(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(fields))
	for k, item := range fields {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}
