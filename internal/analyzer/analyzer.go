// Package analyzer runs the ordered fallback from a pasted place URL to a
// finished report: cache, primary sources, search proxy, synthetic demo.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"sonnimal/internal/cache"
	"sonnimal/internal/common/errors"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/common/metrics"
	"sonnimal/internal/common/observability"
	"sonnimal/internal/history"
	"sonnimal/internal/models"
	"sonnimal/internal/placeid"
	"sonnimal/internal/sentiment"
	"sonnimal/internal/sources"
	"sonnimal/internal/synthetic"
)

// Tiers, in the order they are tried.
const (
	TierCache     = "cache"
	TierPrimary   = "primary"
	TierMetadata  = "metadata"
	TierProxy     = "proxy"
	TierSynthetic = "synthetic"
)

type Options struct {
	PageSize           int
	SyntheticEnabled   bool
	MergeProxySkeleton bool
	CacheSynthetic     bool
}

func DefaultOptions() Options {
	return Options{PageSize: sources.DefaultPageSize, SyntheticEnabled: true}
}

// Deps are the collaborators of an Analyzer. Primary is required; the rest
// fall back to no-ops when nil.
type Deps struct {
	Primary       sources.Adapter
	Proxy         sources.Adapter
	Cache         cache.Store
	History       history.Store
	Engine        *sentiment.Engine
	Observability *observability.Observability
}

type Analyzer struct {
	primary sources.Adapter
	proxy   sources.Adapter
	cache   cache.Store
	history history.Store
	engine  *sentiment.Engine
	obs     *observability.Observability
	tracing *observability.Tracing
	options Options
	logger  logger.Logger
}

// Outcome is a report plus the tier that produced it.
type Outcome struct {
	Result *models.AnalysisResult
	Tier   string
}

func New(deps Deps, opts Options, log logger.Logger) *Analyzer {
	if opts.PageSize <= 0 {
		opts.PageSize = sources.DefaultPageSize
	}
	a := &Analyzer{
		primary: deps.Primary,
		proxy:   deps.Proxy,
		cache:   deps.Cache,
		history: deps.History,
		engine:  deps.Engine,
		obs:     deps.Observability,
		tracing: deps.Observability.Tracer(),
		options: opts,
		logger:  log.With(map[string]interface{}{"component": "analyzer"}),
	}
	if a.cache == nil {
		a.cache = cache.Noop{}
	}
	if a.history == nil {
		a.history = history.Noop{}
	}
	if a.engine == nil {
		a.engine = sentiment.New()
	}
	return a
}

// Analyze extracts the place identifier from rawURL and returns its report.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*models.AnalysisResult, error) {
	outcome, err := a.AnalyzeURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return outcome.Result, nil
}

func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*Outcome, error) {
	placeID, ok := placeid.Extract(rawURL)
	if !ok {
		return nil, errors.NewInputInvalidError("no place identifier in url")
	}
	return a.AnalyzePlace(ctx, placeID)
}

// AnalyzePlace runs the fallback chain for a known identifier.
func (a *Analyzer) AnalyzePlace(ctx context.Context, placeID string) (outcome *Outcome, err error) {
	start := time.Now()
	ctx, span := a.tracing.StartSpan(ctx, "analyze", map[string]string{"placeId": placeID})

	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = errors.NewUnexpectedFaultError(fmt.Errorf("panic: %v", r))
			a.logger.Error("analysis panicked", map[string]interface{}{
				"placeId": placeID,
				"panic":   fmt.Sprint(r),
			})
		}
		observability.EndSpan(span, err)
	}()

	outcome, err = a.run(ctx, placeID)
	if err != nil {
		a.logger.Warn("analysis failed", map[string]interface{}{
			"placeId": placeID,
			"error":   err.Error(),
		})
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.RecordAnalysis(outcome.Tier, elapsed)
	a.obs.RecordAnalysis(ctx, outcome.Tier, elapsed)

	a.logger.Info("analysis served", map[string]interface{}{
		"placeId":  placeID,
		"tier":     outcome.Tier,
		"isDemo":   outcome.Result.IsDemo,
		"duration": elapsed.Milliseconds(),
	})

	if outcome.Tier != TierCache {
		a.history.Record(ctx, &models.AnalysisRun{
			PlaceID:     placeID,
			Tier:        outcome.Tier,
			IsDemo:      outcome.Result.IsDemo,
			ReviewCount: outcome.Result.Stats.TotalReviews,
			DurationMs:  elapsed.Milliseconds(),
		})
	}
	return outcome, nil
}

func (a *Analyzer) run(ctx context.Context, placeID string) (*Outcome, error) {
	if cached, ok := a.cache.Get(ctx, placeID); ok {
		return &Outcome{Result: cached, Tier: TierCache}, nil
	}

	meta, page, err := a.fetchPrimary(ctx, placeID)
	if err != nil {
		return nil, errors.NewUnexpectedFaultError(err)
	}

	if len(page.Reviews) > 0 {
		var metaPtr *models.PlaceMetadata
		if meta.HasName() || meta.ReviewCount > 0 || meta.ReviewScore > 0 {
			metaPtr = &meta
		}
		result := a.engine.Analyze(placeID, page.Reviews, metaPtr)
		a.cache.Set(ctx, placeID, result)
		return &Outcome{Result: result, Tier: TierPrimary}, nil
	}

	if meta.HasName() {
		result := assembleMinimalReport(placeID, meta)
		a.cache.Set(ctx, placeID, result)
		return &Outcome{Result: result, Tier: TierMetadata}, nil
	}

	if a.proxy != nil {
		if found, ok := a.proxy.FetchMetadata(ctx, placeID).Get(); ok && found.HasName() {
			result := a.proxyReport(placeID, found)
			a.cache.Set(ctx, placeID, result)
			return &Outcome{Result: result, Tier: TierProxy}, nil
		}
	}

	if !a.options.SyntheticEnabled {
		return nil, errors.NewNoDataFoundError(placeID)
	}

	result := synthetic.Generate(placeID)
	if a.options.CacheSynthetic {
		a.cache.Set(ctx, placeID, result)
	}
	return &Outcome{Result: result, Tier: TierSynthetic}, nil
}

// fetchPrimary asks the primary source for metadata and the first review
// page at the same time. A panic in either call is returned as an error.
func (a *Analyzer) fetchPrimary(ctx context.Context, placeID string) (models.PlaceMetadata, sources.ReviewPage, error) {
	var (
		meta models.PlaceMetadata
		page sources.ReviewPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() {
		meta, _ = a.primary.FetchMetadata(gctx, placeID).Get()
	}))
	g.Go(guard(func() {
		page, _ = a.primary.FetchReviews(gctx, placeID, 1, a.options.PageSize).Get()
	}))
	if err := g.Wait(); err != nil {
		return models.PlaceMetadata{}, sources.ReviewPage{}, err
	}

	return meta, page, nil
}

func guard(fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		fn()
		return nil
	}
}

func (a *Analyzer) proxyReport(placeID string, meta models.PlaceMetadata) *models.AnalysisResult {
	if !a.options.MergeProxySkeleton {
		return assembleMinimalReport(placeID, meta)
	}

	// Identity and stats are real; every analytical section is demo filler.
	result := synthetic.Generate(placeID)
	result.Restaurant.Name = meta.Name
	if meta.ReviewCount > 0 {
		result.Stats.TotalReviews = meta.ReviewCount
	}
	if meta.ReviewScore > 0 {
		result.Stats.AverageRating = meta.ReviewScore
	}
	return result
}

// assembleMinimalReport is the partial report for a place whose identity is
// known but whose reviews are not.
func assembleMinimalReport(placeID string, meta models.PlaceMetadata) *models.AnalysisResult {
	return &models.AnalysisResult{
		Restaurant: models.Restaurant{
			Name:    sentiment.DisplayName(placeID, &meta),
			PlaceID: placeID,
			Period:  sentiment.Period,
		},
		Stats: models.Stats{
			TotalReviews:  meta.ReviewCount,
			AverageRating: meta.ReviewScore,
		},
		Categories:  []models.CategoryScore{},
		Complaints:  []models.RankedItem{},
		Praises:     []models.RankedItem{},
		ActionItems: []models.ActionItem{},
		Reviews:     []models.ReviewWithReply{},
		IsDemo:      false,
	}
}
