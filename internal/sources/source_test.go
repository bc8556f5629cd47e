package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"sonnimal/internal/common/logger"
	"sonnimal/internal/models"
)

type stubAdapter struct {
	name        string
	meta        Result[models.PlaceMetadata]
	reviews     Result[ReviewPage]
	metaCalls   int
	reviewCalls int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) FetchMetadata(ctx context.Context, placeID string) Result[models.PlaceMetadata] {
	s.metaCalls++
	return s.meta
}

func (s *stubAdapter) FetchReviews(ctx context.Context, placeID string, page, size int) Result[ReviewPage] {
	s.reviewCalls++
	return s.reviews
}

// ==========================
// Result
// ==========================

func TestResult(t *testing.T) {
	p := Present(42)
	v, ok := p.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.True(t, p.IsPresent())

	a := Absent[int]()
	_, ok = a.Get()
	assert.False(t, ok)
	assert.Equal(t, 7, a.OrElse(7))
	assert.Equal(t, 42, p.OrElse(7))
}

// ==========================
// Chain
// ==========================

func TestChain_FetchMetadata_FirstNamedWins(t *testing.T) {
	first := &stubAdapter{name: "api", meta: Present(models.PlaceMetadata{Category: "한식"})}
	second := &stubAdapter{name: "web", meta: Present(models.PlaceMetadata{Name: "진미 식당"})}
	third := &stubAdapter{name: "never", meta: Present(models.PlaceMetadata{Name: "x"})}

	chain := NewChain(logger.NewNoOpLogger(), first, second, third)
	meta, ok := chain.FetchMetadata(context.Background(), "1234567").Get()

	assert.True(t, ok)
	assert.Equal(t, "진미 식당", meta.Name)
	assert.Equal(t, 1, first.metaCalls)
	assert.Equal(t, 1, second.metaCalls)
	assert.Equal(t, 0, third.metaCalls)
}

func TestChain_FetchReviews_SkipsEmptyPages(t *testing.T) {
	empty := &stubAdapter{name: "api", reviews: Present(ReviewPage{Total: 10})}
	full := &stubAdapter{name: "web", reviews: Present(ReviewPage{
		Reviews: []models.RawReview{{ID: "r1", Rating: 4, Body: "맛있어요 정말로"}},
		Total:   1,
	})}

	chain := NewChain(logger.NewNoOpLogger(), empty, full)
	rp, ok := chain.FetchReviews(context.Background(), "1234567", 1, DefaultPageSize).Get()

	assert.True(t, ok)
	assert.Len(t, rp.Reviews, 1)
	assert.Equal(t, 1, empty.reviewCalls)
}

func TestChain_AllAbsent(t *testing.T) {
	a := &stubAdapter{name: "api", meta: Absent[models.PlaceMetadata](), reviews: Absent[ReviewPage]()}
	chain := NewChain(logger.NewNoOpLogger(), a)

	assert.False(t, chain.FetchMetadata(context.Background(), "1234567").IsPresent())
	assert.False(t, chain.FetchReviews(context.Background(), "1234567", 1, 50).IsPresent())
}
