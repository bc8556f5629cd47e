// Package naverapi talks to the place GraphQL endpoint used by the desktop
// place pages.
package naverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	commonhttp "sonnimal/internal/common/http"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/models"
	"sonnimal/internal/sources"
)

const (
	Name = "naverapi"

	anonymousAuthor = "익명"
)

type Adapter struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

var _ sources.Adapter = (*Adapter)(nil)

func New(config *Config, log logger.Logger) *Adapter {
	timeout := config.MetadataTimeout
	if config.ReviewsTimeout > timeout {
		timeout = config.ReviewsTimeout
	}
	return &Adapter{
		config: config,
		client: commonhttp.NewClientWithOptions(commonhttp.Options{
			Timeout:       timeout,
			RatePerSecond: config.RatePerSecond,
			Headers: map[string]string{
				"Content-Type": "application/json",
				"Origin":       "https://pcmap.place.naver.com",
				"Referer":      "https://pcmap.place.naver.com/",
			},
		}),
		logger: log.With(map[string]interface{}{"source": Name}),
	}
}

func (a *Adapter) Name() string { return Name }

func (a *Adapter) FetchMetadata(ctx context.Context, placeID string) sources.Result[models.PlaceMetadata] {
	ctx, cancel := context.WithTimeout(ctx, a.config.MetadataTimeout)
	defer cancel()

	var resp placeInfoResponse
	err := a.post(ctx, operation{
		OperationName: "getPlaceInfo",
		Variables:     map[string]string{"id": placeID},
		Query:         placeInfoQuery,
	}, &resp)
	if err != nil {
		a.warn("metadata", placeID, err)
		return sources.Absent[models.PlaceMetadata]()
	}
	if len(resp) == 0 || resp[0].Data.Place == nil {
		a.warn("metadata", placeID, fmt.Errorf("place missing from response"))
		return sources.Absent[models.PlaceMetadata]()
	}

	p := resp[0].Data.Place
	return sources.Present(models.PlaceMetadata{
		Name:        p.Name,
		Category:    p.Category,
		ReviewCount: p.VisitorReviewCount,
		ReviewScore: p.VisitorReviewScore,
	})
}

func (a *Adapter) FetchReviews(ctx context.Context, placeID string, page, size int) sources.Result[sources.ReviewPage] {
	ctx, cancel := context.WithTimeout(ctx, a.config.ReviewsTimeout)
	defer cancel()

	var resp visitorReviewsResponse
	err := a.post(ctx, operation{
		OperationName: "getVisitorReviews",
		Variables: map[string]interface{}{
			"input": reviewsInput{
				BusinessID:     placeID,
				BusinessType:   "restaurant",
				Page:           page,
				Size:           size,
				IncludeContent: true,
			},
		},
		Query: visitorReviewsQuery,
	}, &resp)
	if err != nil {
		a.warn("reviews", placeID, err)
		return sources.Absent[sources.ReviewPage]()
	}
	if len(resp) == 0 || resp[0].Data.VisitorReviews == nil || len(resp[0].Data.VisitorReviews.Items) == 0 {
		a.warn("reviews", placeID, fmt.Errorf("no review items in response"))
		return sources.Absent[sources.ReviewPage]()
	}

	vr := resp[0].Data.VisitorReviews
	reviews := make([]models.RawReview, 0, len(vr.Items))
	for _, item := range vr.Items {
		author := anonymousAuthor
		if item.Author != nil && item.Author.Nickname != "" {
			author = item.Author.Nickname
		}
		reviews = append(reviews, models.RawReview{
			ID:         item.ID,
			Rating:     int(math.Round(item.Rating)),
			Author:     author,
			Body:       item.Body,
			Created:    item.Created,
			VisitCount: item.VisitCount,
		})
	}

	return sources.Present(sources.ReviewPage{Reviews: reviews, Total: vr.Total})
}

func (a *Adapter) post(ctx context.Context, op operation, out interface{}) error {
	body, err := json.Marshal([]operation{op})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.GraphQLURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		if commonhttp.IsTimeout(err) {
			return fmt.Errorf("%s timed out: %w", op.OperationName, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *Adapter) warn(operation, placeID string, err error) {
	a.logger.Warn("naver api fetch failed", map[string]interface{}{
		"operation": operation,
		"placeId":   placeID,
		"error":     err.Error(),
	})
}
