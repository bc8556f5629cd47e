// internal/models/review.go
package models

// RawReview is a single visitor review as returned by a source.
type RawReview struct {
	ID         string `json:"id"`
	Rating     int    `json:"rating"`
	Author     string `json:"author"`
	Body       string `json:"body"`
	Created    string `json:"created"`
	VisitCount int    `json:"visitCount"`
}
