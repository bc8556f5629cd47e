package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonnimal/internal/analyzer"
	apperrors "sonnimal/internal/common/errors"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAnalyzer struct {
	outcome *analyzer.Outcome
	err     error
	gotURL  string
}

func (s *stubAnalyzer) AnalyzeURL(ctx context.Context, rawURL string) (*analyzer.Outcome, error) {
	s.gotURL = rawURL
	return s.outcome, s.err
}

type stubHistory struct {
	runs     []models.AnalysisRun
	err      error
	gotLimit int
}

func (h *stubHistory) Record(ctx context.Context, run *models.AnalysisRun) {}

func (h *stubHistory) Recent(ctx context.Context, placeID string, limit int) ([]models.AnalysisRun, error) {
	h.gotLimit = limit
	return h.runs, h.err
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ==========================
// POST /api/analyze
// ==========================

func TestAnalyze_OK(t *testing.T) {
	a := &stubAnalyzer{outcome: &analyzer.Outcome{
		Tier: analyzer.TierPrimary,
		Result: &models.AnalysisResult{
			Restaurant: models.Restaurant{Name: "진미 식당", PlaceID: "1243837618", Period: "최근 30일"},
		},
	}}
	router := NewServer(a, nil, nil, logger.NewTestLogger(t)).Router()

	w := do(t, router, http.MethodPost, "/api/analyze", `{"url":"https://pcmap.place.naver.com/restaurant/1243837618/home"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, analyzer.TierPrimary, w.Header().Get(TierHeader))
	assert.Equal(t, "https://pcmap.place.naver.com/restaurant/1243837618/home", a.gotURL)

	var got models.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "진미 식당", got.Restaurant.Name)
}

func TestAnalyze_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"malformed body", `{"url":`, nil, http.StatusBadRequest, "INPUT_INVALID"},
		{"missing url", `{}`, nil, http.StatusBadRequest, "INPUT_INVALID"},
		{"no identifier", `{"url":"https://example.com"}`, apperrors.NewInputInvalidError("no id"), http.StatusBadRequest, "INPUT_INVALID"},
		{"no data", `{"url":"https://place.naver.com/restaurant/1234567"}`, apperrors.NewNoDataFoundError("1234567"), http.StatusBadGateway, "NO_DATA_FOUND"},
		{"fault", `{"url":"https://place.naver.com/restaurant/1234567"}`, apperrors.NewUnexpectedFaultError(errors.New("nil map")), http.StatusInternalServerError, "UNEXPECTED_FAULT"},
		{"plain error", `{"url":"https://place.naver.com/restaurant/1234567"}`, errors.New("???"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewServer(&stubAnalyzer{err: tt.err}, nil, nil, logger.NewNoOpLogger()).Router()

			w := do(t, router, http.MethodPost, "/api/analyze", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestAnalyze_FaultHidesInternalMessage(t *testing.T) {
	router := NewServer(&stubAnalyzer{err: apperrors.NewUnexpectedFaultError(errors.New("secret detail"))}, nil, nil, logger.NewNoOpLogger()).Router()

	w := do(t, router, http.MethodPost, "/api/analyze", `{"url":"https://place.naver.com/restaurant/1234567"}`)

	assert.NotContains(t, w.Body.String(), "secret detail")
}

// ==========================
// GET /api/places/:placeId/runs
// ==========================

func TestRuns(t *testing.T) {
	hist := &stubHistory{runs: []models.AnalysisRun{{ID: "r1", PlaceID: "1243837618", Tier: "proxy"}}}
	router := NewServer(&stubAnalyzer{}, hist, nil, logger.NewNoOpLogger()).Router()

	w := do(t, router, http.MethodGet, "/api/places/1243837618/runs?limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, hist.gotLimit)
	assert.Contains(t, w.Body.String(), `"tier":"proxy"`)
}

func TestRuns_BadID(t *testing.T) {
	router := NewServer(&stubAnalyzer{}, &stubHistory{}, nil, logger.NewNoOpLogger()).Router()

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/places/abc/runs", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/places/123/runs", "").Code)
}

func TestRuns_HistoryError(t *testing.T) {
	router := NewServer(&stubAnalyzer{}, &stubHistory{err: errors.New("down")}, nil, logger.NewNoOpLogger()).Router()

	w := do(t, router, http.MethodGet, "/api/places/1243837618/runs", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRuns_DefaultsToEmptyList(t *testing.T) {
	router := NewServer(&stubAnalyzer{}, nil, nil, logger.NewNoOpLogger()).Router()

	w := do(t, router, http.MethodGet, "/api/places/1243837618/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"runs":[]`)
}

// ==========================
// Probes
// ==========================

func TestProbes(t *testing.T) {
	failing := func(ctx context.Context) error { return errors.New("redis down") }

	router := NewServer(&stubAnalyzer{}, nil, failing, logger.NewNoOpLogger()).Router()
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", "").Code)

	w := do(t, router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis down")

	ok := NewServer(&stubAnalyzer{}, nil, nil, logger.NewNoOpLogger()).Router()
	assert.Equal(t, http.StatusOK, do(t, ok, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, do(t, ok, http.MethodGet, "/metrics", "").Code)
}
