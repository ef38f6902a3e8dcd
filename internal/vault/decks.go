package vault

import (
	"sort"
	"strings"

	"github.com/wedding-message-vault/internal/models"
)

// FilterAll is the sentinel category filter that keeps every slide
const FilterAll = "ALL"

// fallback for rows persisted before name validation existed
const unnamedDeck = "unknown"

// Project groups entries into per-person decks of categorized slides.
// Decks are ordered newest person first (descending latest activity);
// slides within a deck are ordered oldest first, so a deck reads
// chronologically. filterCategory drops slides of other categories and
// any deck left empty; "" and FilterAll disable filtering.
func Project(entries []models.Entry, filterCategory string) []models.Deck {
	ordered := make([]models.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	byName := make(map[string]*models.Deck)
	seenTags := make(map[string]map[string]bool)
	var names []string

	for _, e := range ordered {
		name := e.Name
		if name == "" {
			name = unnamedDeck
		}

		deck, ok := byName[name]
		if !ok {
			deck = &models.Deck{
				Name:             name,
				FirstImpressions: []string{},
				Slides:           []models.Slide{},
				LatestAt:         e.CreatedAt,
			}
			byName[name] = deck
			seenTags[name] = make(map[string]bool)
			names = append(names, name)
		}

		for _, tag := range e.FirstImpressions {
			if !seenTags[name][tag] {
				seenTags[name][tag] = true
				deck.FirstImpressions = append(deck.FirstImpressions, tag)
			}
		}

		for _, category := range categoriesOf(e) {
			clean := strings.TrimSpace(e.Contents[category])
			if clean == "" {
				continue
			}
			deck.Slides = append(deck.Slides, models.Slide{
				SourceEntryID: e.ID,
				Category:      category,
				Text:          clean,
				CreatedAt:     e.CreatedAt,
			})
		}

		if e.CreatedAt.After(deck.LatestAt) {
			deck.LatestAt = e.CreatedAt
		}
	}

	decks := make([]models.Deck, 0, len(names))
	for _, name := range names {
		deck := *byName[name]
		sort.SliceStable(deck.Slides, func(i, j int) bool {
			return deck.Slides[i].CreatedAt.Before(deck.Slides[j].CreatedAt)
		})
		decks = append(decks, deck)
	}

	sort.SliceStable(decks, func(i, j int) bool {
		return decks[i].LatestAt.After(decks[j].LatestAt)
	})

	if filterCategory == "" || filterCategory == FilterAll {
		return decks
	}

	filtered := make([]models.Deck, 0, len(decks))
	for _, deck := range decks {
		kept := make([]models.Slide, 0, len(deck.Slides))
		for _, s := range deck.Slides {
			if s.Category == filterCategory {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			continue
		}
		deck.Slides = kept
		filtered = append(filtered, deck)
	}
	return filtered
}

// categoriesOf yields the entry's contents keys in a stable order: the
// declared messageTypes order first, then any undeclared keys sorted.
// Contents is authoritative for which slides exist; messageTypes only
// settles their relative order.
func categoriesOf(e models.Entry) []string {
	out := make([]string, 0, len(e.Contents))
	taken := make(map[string]bool, len(e.Contents))

	for _, category := range e.MessageTypes {
		if _, ok := e.Contents[category]; ok && !taken[category] {
			taken[category] = true
			out = append(out, category)
		}
	}

	var rest []string
	for category := range e.Contents {
		if !taken[category] {
			rest = append(rest, category)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
