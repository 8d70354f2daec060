// Package types contains common types used across the application
package types

// Entry represents a ranked leaderboard row
type Entry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}
