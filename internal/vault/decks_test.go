package vault

import (
	"testing"
	"time"

	"github.com/wedding-message-vault/internal/models"
)

var baseTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func entryAt(id, name string, minutes int, contents map[string]string, tags ...string) models.Entry {
	return models.Entry{
		ID:               id,
		Name:             name,
		FirstImpressions: tags,
		Contents:         contents,
		CreatedAt:        baseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestProjectGroupsByName(t *testing.T) {
	entries := []models.Entry{
		entryAt("e1", "June", 0, map[string]string{"welcome": "hello"}),
		entryAt("e2", "June", 10, map[string]string{"jokes": "haha"}),
	}

	decks := Project(entries, FilterAll)

	if len(decks) != 1 {
		t.Fatalf("Expected 1 deck, got %d", len(decks))
	}
	deck := decks[0]
	if deck.Name != "June" {
		t.Errorf("Expected deck for June, got %q", deck.Name)
	}
	if len(deck.Slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(deck.Slides))
	}
	// Slides read chronologically, oldest first
	if deck.Slides[0].SourceEntryID != "e1" || deck.Slides[1].SourceEntryID != "e2" {
		t.Errorf("Slides not in ascending time order: %v", deck.Slides)
	}
	if !deck.LatestAt.Equal(baseTime.Add(10 * time.Minute)) {
		t.Errorf("Expected latestAt of newest entry, got %v", deck.LatestAt)
	}
}

func TestProjectDeckOrderNewestPersonFirst(t *testing.T) {
	entries := []models.Entry{
		entryAt("e1", "Old", 0, map[string]string{"welcome": "a"}),
		entryAt("e2", "New", 30, map[string]string{"welcome": "b"}),
	}

	decks := Project(entries, "")
	if len(decks) != 2 {
		t.Fatalf("Expected 2 decks, got %d", len(decks))
	}
	if decks[0].Name != "New" || decks[1].Name != "Old" {
		t.Errorf("Decks must order by latest activity descending: %s, %s", decks[0].Name, decks[1].Name)
	}
}

func TestProjectMultipleCategoriesOneEntry(t *testing.T) {
	entries := []models.Entry{
		{
			ID:           "e1",
			Name:         "June",
			MessageTypes: []string{"welcome", "jokes"},
			Contents:     map[string]string{"jokes": "haha", "welcome": "hello"},
			CreatedAt:    baseTime,
		},
	}

	decks := Project(entries, FilterAll)
	if len(decks[0].Slides) != 2 {
		t.Fatalf("Expected one slide per populated category, got %d", len(decks[0].Slides))
	}
	// Declared messageTypes order settles same-timestamp slides
	if decks[0].Slides[0].Category != "welcome" || decks[0].Slides[1].Category != "jokes" {
		t.Errorf("Slides not in declared category order: %v", decks[0].Slides)
	}
}

func TestProjectSkipsEmptyText(t *testing.T) {
	entries := []models.Entry{
		entryAt("e1", "June", 0, map[string]string{"welcome": "hi", "jokes": "   "}),
	}

	decks := Project(entries, FilterAll)
	if len(decks[0].Slides) != 1 {
		t.Fatalf("Whitespace-only contents must not produce slides, got %d", len(decks[0].Slides))
	}
	if decks[0].Slides[0].Text != "hi" {
		t.Errorf("Expected trimmed text, got %q", decks[0].Slides[0].Text)
	}
}

func TestProjectImpressionsUnion(t *testing.T) {
	entries := []models.Entry{
		entryAt("e1", "June", 0, map[string]string{"welcome": "a"}, "cute", "warm"),
		entryAt("e2", "June", 5, map[string]string{"jokes": "b"}, "warm", "bright"),
	}

	decks := Project(entries, FilterAll)
	got := decks[0].FirstImpressions
	if len(got) != 3 {
		t.Fatalf("Expected union of 3 tags, got %v", got)
	}
}

func TestProjectCategoryFilter(t *testing.T) {
	entries := []models.Entry{
		entryAt("e1", "June", 0, map[string]string{"welcome": "a", "jokes": "b"}),
		entryAt("e2", "Rob", 5, map[string]string{"welcome": "c"}),
	}

	decks := Project(entries, "jokes")

	if len(decks) != 1 {
		t.Fatalf("Decks with no matching slide must be dropped, got %d decks", len(decks))
	}
	if decks[0].Name != "June" {
		t.Errorf("Expected June's deck, got %q", decks[0].Name)
	}
	if len(decks[0].Slides) != 1 || decks[0].Slides[0].Category != "jokes" {
		t.Errorf("Expected only jokes slides, got %v", decks[0].Slides)
	}
}

func TestProjectFilterSentinels(t *testing.T) {
	entries := []models.Entry{
		entryAt("e1", "June", 0, map[string]string{"welcome": "a"}),
	}

	for _, filter := range []string{"", FilterAll} {
		decks := Project(entries, filter)
		if len(decks) != 1 || len(decks[0].Slides) != 1 {
			t.Errorf("Filter %q must keep everything, got %v", filter, decks)
		}
	}
}

func TestProjectEmpty(t *testing.T) {
	decks := Project(nil, FilterAll)
	if decks == nil || len(decks) != 0 {
		t.Errorf("Expected empty non-nil deck list, got %v", decks)
	}
}
