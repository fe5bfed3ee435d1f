package di

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashPull/internal/repository"
	"DashPull/internal/services/synth"
	"DashPull/internal/usecase"
	"DashPull/pkg/cache"
	"DashPull/pkg/config"
	applogger "DashPull/pkg/logger"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func TestProvideSynthConfigMatchesReference(t *testing.T) {
	sc, err := ProvideSynthConfig(defaultConfig(t))
	require.NoError(t, err)
	assert.Equal(t, synth.DefaultConfig(), sc)
}

func TestProvideCache(t *testing.T) {
	cfg := defaultConfig(t)
	c, err := ProvideCache(cfg)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, c)
	require.NoError(t, c.Close())

	mr := miniredis.RunT(t)
	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Host = mr.Host()
	cfg.Cache.Redis.Port, err = strconv.Atoi(mr.Port())
	require.NoError(t, err)
	c, err = ProvideCache(cfg)
	require.NoError(t, err)
	assert.IsType(t, &cache.LayeredCache{}, c)
	require.NoError(t, c.Close())
}

func TestProvideEventPublisherWithoutKafka(t *testing.T) {
	p, err := ProvideKafkaProducer(defaultConfig(t), ProvideRegistry())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.IsType(t, repository.NopPublisher{}, ProvideEventPublisher(p))
}

func TestProvideChatUseCase(t *testing.T) {
	omnirag := usecase.NewOmniragUseCase(repository.NewAnalyticsSource(""), nil, nil, nil)
	l := applogger.Nop()

	cfg := defaultConfig(t)
	cfg.Chat.APIKey = ""
	assert.False(t, ProvideChatUseCase(cfg, omnirag, nil, l).Enabled())

	cfg.Chat.APIKey = "key"
	assert.Equal(t, "gemini", ProvideChatUseCase(cfg, omnirag, nil, l).Backend())

	cfg.Chat.Provider = "openai"
	assert.Equal(t, "openai", ProvideChatUseCase(cfg, omnirag, nil, l).Backend())

	cfg.Chat.Provider = "upstream"
	cfg.Chat.UpstreamURL = "http://localhost:9000/"
	assert.Equal(t, "upstream", ProvideChatUseCase(cfg, omnirag, nil, l).Backend())

	cfg.Chat.Provider = "none"
	assert.Equal(t, "none", ProvideChatUseCase(cfg, omnirag, nil, l).Backend())
}

func TestInitializeApp(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Log.Level = "error"
	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)

	routes := map[string]bool{}
	for _, r := range app.HTTPServer().Echo().Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/dashboards/:name",
		"GET /api/dashboards/:name/echarts",
		"GET /dashboards/:name",
		"GET /api/preferences",
		"PUT /api/preferences",
		"GET /ws/preferences",
		"POST /chat",
		"GET /api/chat/strings",
		"GET /healthz",
		"GET /metrics",
	} {
		assert.True(t, routes[want], want)
	}
}
