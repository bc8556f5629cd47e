package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonnimal/internal/cache"
	"sonnimal/internal/common/config"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/history"
)

func testConfig() *config.Config {
	return &config.Config{
		Observability: config.ObservabilityConfig{ServiceName: "sonnimal-test"},
		Analysis:      config.AnalysisConfig{CachePrefix: "t:", CacheTTL: "1h"},
	}
}

func TestNew_WithoutBackends(t *testing.T) {
	a, err := New(context.Background(), testConfig(), logger.NewNoOpLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, cache.Noop{}, a.Cache)
	assert.IsType(t, history.Noop{}, a.History)
	assert.NotNil(t, a.Analyzer)
	assert.NoError(t, a.Ready(context.Background()))
}

func TestNew_WithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := testConfig()
	cfg.Database.Redis.Address = mr.Addr()

	a, err := New(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.Cache.Available())
	assert.NoError(t, a.Ready(context.Background()))

	mr.Close()
	assert.Error(t, a.Ready(context.Background()))
}

func TestNew_UnreachableRedisFallsBack(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.Database.Redis.Address = addr

	a, err := New(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Cache.Available())
	assert.NoError(t, a.Ready(context.Background()))
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, logger.NewNoOpLogger())
	assert.Error(t, err)
}
