package sources

import (
	"context"

	"sonnimal/internal/common/logger"
	"sonnimal/internal/common/metrics"
	"sonnimal/internal/models"
)

// Chain tries its adapters in order and returns the first present answer.
// Metadata only counts when it carries a name, reviews only when the page is
// non-empty.
type Chain struct {
	adapters []Adapter
	logger   logger.Logger
}

func NewChain(log logger.Logger, adapters ...Adapter) *Chain {
	return &Chain{adapters: adapters, logger: log}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) FetchMetadata(ctx context.Context, placeID string) Result[models.PlaceMetadata] {
	for _, a := range c.adapters {
		if meta, ok := a.FetchMetadata(ctx, placeID).Get(); ok && meta.HasName() {
			metrics.RecordSourceAttempt(a.Name(), "metadata", true)
			return Present(meta)
		}
		metrics.RecordSourceAttempt(a.Name(), "metadata", false)
		c.logger.Debug("metadata tier absent", map[string]interface{}{
			"source":  a.Name(),
			"placeId": placeID,
		})
	}
	return Absent[models.PlaceMetadata]()
}

func (c *Chain) FetchReviews(ctx context.Context, placeID string, page, size int) Result[ReviewPage] {
	for _, a := range c.adapters {
		if rp, ok := a.FetchReviews(ctx, placeID, page, size).Get(); ok && len(rp.Reviews) > 0 {
			metrics.RecordSourceAttempt(a.Name(), "reviews", true)
			return Present(rp)
		}
		metrics.RecordSourceAttempt(a.Name(), "reviews", false)
		c.logger.Debug("reviews tier absent", map[string]interface{}{
			"source":  a.Name(),
			"placeId": placeID,
		})
	}
	return Absent[ReviewPage]()
}
