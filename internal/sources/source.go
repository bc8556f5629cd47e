// Package sources defines the contract shared by every review provider.
// Adapters never return errors: a transport failure, timeout, non-2xx status
// or unexpected payload becomes an Absent result.
package sources

import (
	"context"

	"sonnimal/internal/models"
)

// DefaultPageSize is the review page size requested from providers.
const DefaultPageSize = 50

// Result is either a present value or absent.
type Result[T any] struct {
	value   T
	present bool
}

func Present[T any](v T) Result[T] {
	return Result[T]{value: v, present: true}
}

func Absent[T any]() Result[T] {
	return Result[T]{}
}

func (r Result[T]) IsPresent() bool { return r.present }

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.present
}

// OrElse returns the value, or fallback when absent.
func (r Result[T]) OrElse(fallback T) T {
	if r.present {
		return r.value
	}
	return fallback
}

// ReviewPage is one page of visitor reviews and the provider's total count.
type ReviewPage struct {
	Reviews []models.RawReview
	Total   int
}

// Adapter is implemented by every provider tier.
type Adapter interface {
	Name() string
	FetchMetadata(ctx context.Context, placeID string) Result[models.PlaceMetadata]
	FetchReviews(ctx context.Context, placeID string, page, size int) Result[ReviewPage]
}
