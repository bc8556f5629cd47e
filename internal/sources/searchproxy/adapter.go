// Package searchproxy looks a place up through SerpApi's Naver engine when
// the provider itself cannot be reached.
package searchproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	commonhttp "sonnimal/internal/common/http"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/models"
	"sonnimal/internal/sources"
)

const Name = "searchproxy"

type Adapter struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger

	mu          sync.Mutex
	lastOutcome string
}

var _ sources.Adapter = (*Adapter)(nil)

func New(config *Config, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{"source": Name}),
	}
}

func (a *Adapter) Name() string { return Name }

// LastOutcome describes what the most recent lookup saw. Diagnostic only.
func (a *Adapter) LastOutcome() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastOutcome
}

func (a *Adapter) setOutcome(format string, args ...interface{}) {
	a.mu.Lock()
	a.lastOutcome = fmt.Sprintf(format, args...)
	a.mu.Unlock()
}

func (a *Adapter) FetchMetadata(ctx context.Context, placeID string) sources.Result[models.PlaceMetadata] {
	if a.config.APIKey == "" {
		a.setOutcome("skipped: no api key")
		return sources.Absent[models.PlaceMetadata]()
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	data, err := a.search(ctx, placeID)
	if err != nil {
		a.setOutcome("request failed: %v", err)
		a.logger.Warn("search proxy failed", map[string]interface{}{
			"placeId": placeID,
			"timeout": commonhttp.IsTimeout(err),
			"error":   err.Error(),
		})
		return sources.Absent[models.PlaceMetadata]()
	}

	m, ok := extractPlace(data)
	if !ok {
		a.setOutcome("no place in response (%d top-level keys)", len(data))
		return sources.Absent[models.PlaceMetadata]()
	}

	a.setOutcome("matched %s", m.shape)
	a.logger.Info("search proxy matched place", map[string]interface{}{
		"placeId": placeID,
		"shape":   m.shape,
		"name":    m.meta.Name,
	})
	return sources.Present(m.meta)
}

// FetchReviews is always absent; search results carry no review bodies.
func (a *Adapter) FetchReviews(ctx context.Context, placeID string, page, size int) sources.Result[sources.ReviewPage] {
	return sources.Absent[sources.ReviewPage]()
}

func (a *Adapter) search(ctx context.Context, placeID string) (map[string]interface{}, error) {
	searchURL, err := url.Parse(a.config.BaseURL)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("engine", a.config.Engine)
	params.Set("query", placeID)
	params.Set("where", a.config.Where)
	params.Set("api_key", a.config.APIKey)
	searchURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}
