// internal/models/place.go
package models

// PlaceMetadata is what a source knows about a place besides its reviews.
// Any field may be zero when the source only had partial data.
type PlaceMetadata struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	ReviewCount int     `json:"reviewCount"`
	ReviewScore float64 `json:"reviewScore"`
	Address     string  `json:"address,omitempty"`
}

// HasName reports whether the metadata identifies the place.
func (m *PlaceMetadata) HasName() bool {
	return m != nil && m.Name != ""
}
