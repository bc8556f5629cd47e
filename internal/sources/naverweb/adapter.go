// Package naverweb scrapes the mobile place pages. It reads the embedded
// __NEXT_DATA__ block when present and falls back to the page title.
package naverweb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	commonhttp "sonnimal/internal/common/http"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/models"
	"sonnimal/internal/sources"
)

const Name = "naverweb"

type Adapter struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
	now    func() time.Time
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
				"Accept":          "text/html",
				"Accept-Language": "ko-KR,ko;q=0.9",
			},
		}),
		logger: log.With(map[string]interface{}{"source": Name}),
		now:    time.Now,
	}
}

func (a *Adapter) Name() string { return Name }

func (a *Adapter) FetchMetadata(ctx context.Context, placeID string) sources.Result[models.PlaceMetadata] {
	ctx, cancel := context.WithTimeout(ctx, a.config.MetadataTimeout)
	defer cancel()

	doc, err := a.fetchPage(ctx, a.pageURL(placeID, "home"))
	if err != nil {
		a.warn("metadata", placeID, err)
		return sources.Absent[models.PlaceMetadata]()
	}

	if data := parseEmbedded(embeddedBlock(doc), a.createdFallback()); data != nil && data.place != nil {
		return sources.Present(*data.place)
	}

	if name := titleName(doc); name != "" {
		return sources.Present(models.PlaceMetadata{Name: name})
	}

	a.warn("metadata", placeID, fmt.Errorf("no embedded data or title"))
	return sources.Absent[models.PlaceMetadata]()
}

// FetchReviews ignores page and size: the review page renders one batch.
func (a *Adapter) FetchReviews(ctx context.Context, placeID string, page, size int) sources.Result[sources.ReviewPage] {
	ctx, cancel := context.WithTimeout(ctx, a.config.ReviewsTimeout)
	defer cancel()

	doc, err := a.fetchPage(ctx, a.pageURL(placeID, "review/visitor"))
	if err != nil {
		a.warn("reviews", placeID, err)
		return sources.Absent[sources.ReviewPage]()
	}

	data := parseEmbedded(embeddedBlock(doc), a.createdFallback())
	if data == nil || len(data.reviews) == 0 {
		a.warn("reviews", placeID, fmt.Errorf("no embedded reviews"))
		return sources.Absent[sources.ReviewPage]()
	}

	return sources.Present(sources.ReviewPage{Reviews: data.reviews, Total: len(data.reviews)})
}

func (a *Adapter) pageURL(placeID, path string) string {
	return fmt.Sprintf("%s/restaurant/%s/%s", strings.TrimRight(a.config.BaseURL, "/"), placeID, path)
}

func (a *Adapter) fetchPage(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("page returned %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func (a *Adapter) createdFallback() string {
	return a.now().UTC().Format(time.RFC3339)
}

func (a *Adapter) warn(operation, placeID string, err error) {
	a.logger.Warn("naver page fetch failed", map[string]interface{}{
		"operation": operation,
		"placeId":   placeID,
		"timeout":   commonhttp.IsTimeout(err),
		"error":     err.Error(),
	})
}
