package vault

import (
	"testing"
	"time"

	"github.com/wedding-message-vault/internal/models"
)

func entryWithTags(name string, tags ...string) models.Entry {
	return models.Entry{
		ID:               name + "-id",
		Name:             name,
		FirstImpressions: tags,
		Contents:         map[string]string{"welcome": "hi"},
		CreatedAt:        time.Now(),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	if summary.Respondents != 0 {
		t.Errorf("Expected 0 respondents, got %d", summary.Respondents)
	}
	if summary.Top == nil || len(summary.Top) != 0 {
		t.Errorf("Expected empty top, got %v", summary.Top)
	}
	if summary.Sorted == nil || len(summary.Sorted) != 0 {
		t.Errorf("Expected empty sorted, got %v", summary.Sorted)
	}
}

func TestSummarizeCounts(t *testing.T) {
	entries := []models.Entry{
		entryWithTags("A", "cute"),
		entryWithTags("B", "cute", "bright"),
	}

	summary := Summarize(entries)

	if summary.Respondents != 2 {
		t.Fatalf("Expected 2 respondents, got %d", summary.Respondents)
	}
	if len(summary.Sorted) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(summary.Sorted))
	}

	cute := summary.Sorted[0]
	if cute.Label != "cute" || cute.Count != 2 || cute.Pct != 100 {
		t.Errorf("Expected cute count=2 pct=100, got %+v", cute)
	}
	bright := summary.Sorted[1]
	if bright.Label != "bright" || bright.Count != 1 || bright.Pct != 50 {
		t.Errorf("Expected bright count=1 pct=50, got %+v", bright)
	}
}

func TestSummarizeEntriesWithoutTagsExcluded(t *testing.T) {
	entries := []models.Entry{
		entryWithTags("A", "warm"),
		{ID: "b-id", Name: "B", Contents: map[string]string{"welcome": "hi"}, CreatedAt: time.Now()},
	}

	summary := Summarize(entries)
	if summary.Respondents != 1 {
		t.Errorf("Tagless entries must not count toward the denominator, got %d", summary.Respondents)
	}
	if summary.Sorted[0].Pct != 100 {
		t.Errorf("Expected pct=100 for the only respondent, got %d", summary.Sorted[0].Pct)
	}
}

func TestSummarizeDuplicateTagCountedOncePerEntry(t *testing.T) {
	entries := []models.Entry{
		entryWithTags("A", "cute", "cute", "cute"),
	}

	summary := Summarize(entries)
	if summary.Sorted[0].Count != 1 {
		t.Errorf("Duplicate tags within one entry must collapse, got count=%d", summary.Sorted[0].Count)
	}
}

func TestSummarizeSameNameCountsPerEntry(t *testing.T) {
	// Dedup is at the entry level, not the person level
	entries := []models.Entry{
		entryWithTags("A", "cute"),
		entryWithTags("A", "cute"),
	}

	summary := Summarize(entries)
	if summary.Respondents != 2 {
		t.Errorf("Each entry counts separately, got %d respondents", summary.Respondents)
	}
	if summary.Sorted[0].Count != 2 {
		t.Errorf("Expected count=2, got %d", summary.Sorted[0].Count)
	}
}

func TestSummarizeTieBreakFirstSeen(t *testing.T) {
	entries := []models.Entry{
		entryWithTags("A", "warm", "bright"),
		entryWithTags("B", "bright", "warm"),
	}

	summary := Summarize(entries)
	if summary.Sorted[0].Label != "warm" || summary.Sorted[1].Label != "bright" {
		t.Errorf("Ties must keep first-seen order, got %v", summary.Sorted)
	}
}

func TestSummarizeTopCapped(t *testing.T) {
	entries := []models.Entry{
		entryWithTags("A", "cute", "pretty", "bright", "warm", "sharp"),
	}

	summary := Summarize(entries)
	if len(summary.Top) != 3 {
		t.Errorf("Expected top capped at 3, got %d", len(summary.Top))
	}
	if len(summary.Sorted) != 5 {
		t.Errorf("Expected 5 tags in sorted, got %d", len(summary.Sorted))
	}
}

func TestSummarizeRounding(t *testing.T) {
	// 1 of 3 respondents: 33.33 -> 33; 2 of 3: 66.67 -> 67
	entries := []models.Entry{
		entryWithTags("A", "cute", "bright"),
		entryWithTags("B", "bright"),
		entryWithTags("C", "graceful"),
	}

	summary := Summarize(entries)
	byLabel := map[string]models.TagCount{}
	for _, tc := range summary.Sorted {
		byLabel[tc.Label] = tc
	}
	if byLabel["cute"].Pct != 33 {
		t.Errorf("Expected cute pct=33, got %d", byLabel["cute"].Pct)
	}
	if byLabel["bright"].Pct != 67 {
		t.Errorf("Expected bright pct=67, got %d", byLabel["bright"].Pct)
	}
}
