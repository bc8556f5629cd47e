// internal/models/run.go
package models

import "time"

// AnalysisRun records which tier produced a report for a place.
type AnalysisRun struct {
	ID          string    `json:"id" db:"id"`
	PlaceID     string    `json:"placeId" db:"place_id"`
	Tier        string    `json:"tier" db:"tier"`
	IsDemo      bool      `json:"isDemo" db:"is_demo"`
	ReviewCount int       `json:"reviewCount" db:"review_count"`
	DurationMs  int64     `json:"durationMs" db:"duration_ms"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
