package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/web"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

func TestServeConfig_UsesSettings(t *testing.T) {
	setupTestServices(t)
	appSettings.Server = domain.ServerSettings{Addr: "127.0.0.1:9090", RateLimit: 5, RateBurst: 7}
	resetFlags()

	cfg := serveConfig()

	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 7, cfg.RateBurst)
	assert.NotNil(t, cfg.Search)
	assert.NotNil(t, cfg.Topics)
	assert.NotNil(t, cfg.Corpus)
	assert.NotNil(t, cfg.Gatherer)
}

func TestServeConfig_FlagsOverride(t *testing.T) {
	setupTestServices(t)
	defer resetFlags()
	serveAddr = ":7000"
	serveRateLimit = 0
	serveRateBurst = 3

	cfg := serveConfig()

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, 0.0, cfg.RateLimit, "zero disables rate limiting")
	assert.Equal(t, 3, cfg.RateBurst)
}

func TestServeCmd_RequiresServices(t *testing.T) {
	clearServices(t)

	_, err := execute(t, "serve")

	require.Error(t, err)
	assert.ErrorIs(t, err, web.ErrNoSearchService)
	assert.Contains(t, err.Error(), "configuring web server")
}

func TestServeCmd_StopsWithContext(t *testing.T) {
	setupTestServices(t, routingTopics()...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := executeContext(t, ctx, "serve", "--addr", "127.0.0.1:0")

	require.NoError(t, err)
	assert.Contains(t, out, "KawnHub API listening on 127.0.0.1:0")
}

func TestServeCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "serve", "extra")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
