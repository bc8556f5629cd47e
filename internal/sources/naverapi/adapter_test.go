package naverapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonnimal/internal/common/logger"
)

func newTestAdapter(t *testing.T, url string) *Adapter {
	t.Helper()
	return New(&Config{
		GraphQLURL:      url,
		MetadataTimeout: 500 * time.Millisecond,
		ReviewsTimeout:  500 * time.Millisecond,
	}, logger.NewTestLogger(t))
}

func decodeOps(t *testing.T, r *http.Request) []map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var ops []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &ops))
	return ops
}

// ==========================
// FetchMetadata
// ==========================

func TestFetchMetadata_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "https://pcmap.place.naver.com", r.Header.Get("Origin"))
		assert.Equal(t, "https://pcmap.place.naver.com/", r.Header.Get("Referer"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")

		ops := decodeOps(t, r)
		require.Len(t, ops, 1)
		assert.Equal(t, "getPlaceInfo", ops[0]["operationName"])
		assert.Equal(t, "1243837618", ops[0]["variables"].(map[string]interface{})["id"])

		w.Write([]byte(`[{"data":{"place":{"name":"진미 식당","category":"한식","visitorReviewCount":321,"visitorReviewScore":4.42}}}]`))
	}))
	defer server.Close()

	meta, ok := newTestAdapter(t, server.URL).FetchMetadata(context.Background(), "1243837618").Get()

	require.True(t, ok)
	assert.Equal(t, "진미 식당", meta.Name)
	assert.Equal(t, "한식", meta.Category)
	assert.Equal(t, 321, meta.ReviewCount)
	assert.InDelta(t, 4.42, meta.ReviewScore, 0.0001)
}

func TestFetchMetadata_Absent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>blocked</html>`))
			},
		},
		{
			name: "null place",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"data":{"place":null}}]`))
			},
		},
		{
			name: "empty batch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(700 * time.Millisecond)
				w.Write([]byte(`[{"data":{"place":{"name":"late"}}}]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			result := newTestAdapter(t, server.URL).FetchMetadata(context.Background(), "1243837618")
			assert.False(t, result.IsPresent())
		})
	}
}

func TestFetchMetadata_Unreachable(t *testing.T) {
	result := newTestAdapter(t, "http://127.0.0.1:1/graphql").FetchMetadata(context.Background(), "1243837618")
	assert.False(t, result.IsPresent())
}

// ==========================
// FetchReviews
// ==========================

func TestFetchReviews_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ops := decodeOps(t, r)
		require.Len(t, ops, 1)
		assert.Equal(t, "getVisitorReviews", ops[0]["operationName"])

		input := ops[0]["variables"].(map[string]interface{})["input"].(map[string]interface{})
		assert.Equal(t, "1243837618", input["businessId"])
		assert.Equal(t, "restaurant", input["businessType"])
		assert.Equal(t, float64(2), input["page"])
		assert.Equal(t, float64(50), input["size"])
		assert.Equal(t, true, input["includeContent"])
		assert.Equal(t, false, input["isPhotoUsed"])

		w.Write([]byte(`[{"data":{"visitorReviews":{"items":[
			{"id":"a1","rating":5,"author":{"nickname":"먹보"},"body":"정말 맛있어요","created":"2025-01-28T10:00:00+09:00","visitCount":2},
			{"id":"a2","rating":2,"author":null,"body":"너무 오래 기다렸어요","created":"2025-01-20","visitCount":0}
		],"total":120}}}]`))
	}))
	defer server.Close()

	page, ok := newTestAdapter(t, server.URL).FetchReviews(context.Background(), "1243837618", 2, 50).Get()

	require.True(t, ok)
	assert.Equal(t, 120, page.Total)
	require.Len(t, page.Reviews, 2)
	assert.Equal(t, "먹보", page.Reviews[0].Author)
	assert.Equal(t, 5, page.Reviews[0].Rating)
	assert.Equal(t, 2, page.Reviews[0].VisitCount)
	assert.Equal(t, "익명", page.Reviews[1].Author)
	assert.Equal(t, "너무 오래 기다렸어요", page.Reviews[1].Body)
}

func TestFetchReviews_EmptyItemsIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"data":{"visitorReviews":{"items":[],"total":0}}}]`))
	}))
	defer server.Close()

	result := newTestAdapter(t, server.URL).FetchReviews(context.Background(), "1243837618", 1, 50)
	assert.False(t, result.IsPresent())
}

func TestFetchReviews_ErrorsPayloadIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"errors":[{"message":"Unauthorized"}]}]`))
	}))
	defer server.Close()

	result := newTestAdapter(t, server.URL).FetchReviews(context.Background(), "1243837618", 1, 50)
	assert.False(t, result.IsPresent())
}
