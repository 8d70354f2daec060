// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
)

// ScoreEntry is one persisted leaderboard row: a player name and its match
// win count. Collections keep entries in insertion order.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// EncodeScores serializes a collection for stores that persist raw values.
// A nil collection encodes as an empty array.
func EncodeScores(entries []ScoreEntry) ([]byte, error) {
	if entries == nil {
		entries = []ScoreEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}
	return b, nil
}

// DecodeScores parses a collection written by EncodeScores. Empty input and
// JSON null decode to an empty collection.
func DecodeScores(b []byte) ([]ScoreEntry, error) {
	entries := []ScoreEntry{}
	if len(b) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	if entries == nil {
		entries = []ScoreEntry{}
	}
	return entries, nil
}
