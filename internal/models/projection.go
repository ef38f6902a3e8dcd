package models

import "time"

// Slide is one (category, text) unit of a single entry. Slides are a
// read-time projection and are never persisted.
type Slide struct {
	SourceEntryID string    `json:"sourceId"`
	Category      string    `json:"type"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Deck groups all slides submitted under one name, newest person first
// at the deck level, oldest message first within the deck.
type Deck struct {
	Name             string    `json:"name"`
	FirstImpressions []string  `json:"firstImpressions"`
	Slides           []Slide   `json:"slides"`
	LatestAt         time.Time `json:"latestAt"`
}

// TagCount is one aggregated impression tag with its respondent share
type TagCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Pct   int    `json:"pct"`
}

// Summary is the percentage-based aggregation of impression tags across
// all entries that declared at least one tag.
type Summary struct {
	Respondents int        `json:"respondents"`
	Top         []TagCount `json:"top"`
	Sorted      []TagCount `json:"sorted"`
}
