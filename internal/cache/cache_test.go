package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonnimal/internal/common/logger"
	"sonnimal/internal/models"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Restaurant: models.Restaurant{Name: "진미 식당", PlaceID: "1243837618", Period: "최근 30일"},
		Stats:      models.Stats{TotalReviews: 12, AverageRating: 4.2, NeedResponse: 1, ReviewChange: 9},
		Categories: []models.CategoryScore{{Name: "음식 맛", Score: 4.0, Percentage: 80, WarningLevel: models.WarningNone}},
		Complaints: []models.RankedItem{{Rank: 1, Text: "음식이 짜요", Count: 2}},
		Praises:    []models.RankedItem{},
		ActionItems: []models.ActionItem{
			{Number: 1, Title: "간 조절", Problem: `"음식이 짜요" 언급 2회`, Suggestion: "간을 약간 줄이거나, 주문 시 간 조절 옵션을 안내해보세요"},
		},
		Reviews: []models.ReviewWithReply{},
	}
}

// ==========================
// Redis store (miniredis)
// ==========================

func TestRedisStore_RoundTripWithTTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := New(context.Background(), client, Options{}, logger.NewTestLogger(t))
	require.True(t, store.Available())

	ctx := context.Background()
	_, ok := store.Get(ctx, "1243837618")
	assert.False(t, ok)

	store.Set(ctx, "1243837618", sampleResult())

	assert.True(t, mr.Exists("sonnimal:analysis:1243837618"))
	assert.Equal(t, 24*time.Hour, mr.TTL("sonnimal:analysis:1243837618"))

	got, ok := store.Get(ctx, "1243837618")
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)

	mr.FastForward(25 * time.Hour)
	_, ok = store.Get(ctx, "1243837618")
	assert.False(t, ok, "entry expires after the TTL")
}

func TestRedisStore_LastWriterWins(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), Options{Prefix: "t:", TTL: time.Hour}, logger.NewNoOpLogger())
	ctx := context.Background()

	first := sampleResult()
	second := sampleResult()
	second.Stats.TotalReviews = 99

	store.Set(ctx, "1", first)
	store.Set(ctx, "1", second)

	got, ok := store.Get(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, 99, got.Stats.TotalReviews)
	assert.Equal(t, time.Hour, mr.TTL("t:1"))
}

func TestRedisStore_CorruptEntryIsMiss(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	require.NoError(t, mr.Set("sonnimal:analysis:1", "{not json"))
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), Options{}, logger.NewNoOpLogger())

	_, ok := store.Get(context.Background(), "1")
	assert.False(t, ok)
}

// ==========================
// Failure paths (redismock)
// ==========================

func TestRedisStore_ErrorsAreSwallowed(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, Options{}, logger.NewNoOpLogger())
	ctx := context.Background()

	mock.ExpectGet("sonnimal:analysis:1").SetErr(errors.New("connection reset"))
	_, ok := store.Get(ctx, "1")
	assert.False(t, ok)

	mock.Regexp().ExpectSet("sonnimal:analysis:1", `.*`, DefaultTTL).SetErr(errors.New("READONLY"))
	assert.NotPanics(t, func() { store.Set(ctx, "1", sampleResult()) })

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_FallsBackToNoopWhenPingFails(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("dial tcp: connection refused"))

	store := New(context.Background(), db, Options{}, logger.NewNoOpLogger())

	assert.False(t, store.Available())
	assert.IsType(t, Noop{}, store)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_NilClient(t *testing.T) {
	store := New(context.Background(), nil, Options{}, logger.NewNoOpLogger())
	_, ok := store.Get(context.Background(), "1")
	assert.False(t, ok)
	store.Set(context.Background(), "1", sampleResult())
}
