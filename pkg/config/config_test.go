package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, []string{"*"}, c.Server.CORSOrigins)
	assert.Equal(t, 45*time.Second, c.Chat.Timeout)
	assert.Equal(t, "gemini", c.Chat.Provider)
	assert.Equal(t, 0.3, c.Chat.Temperature)
	assert.Equal(t, 1024, c.Chat.MaxTokens)
	assert.Equal(t, uint32(42), c.Churn.Seed)
	assert.Equal(t, 0.75, c.Churn.UpperQuantile)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 10*time.Minute, c.Cache.TTL)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  read_timeout: 5s
sources:
  fmcg_url: https://data.example/fmcg.json
chat:
  provider: openai
  model: gpt-4o-mini
churn:
  customers: 500
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 5*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, c.Server.WriteTimeout)
	assert.Equal(t, "https://data.example/fmcg.json", c.Sources.FMCGURL)
	assert.Equal(t, "openai", c.Chat.Provider)
	assert.Equal(t, 500, c.Churn.Customers)
	assert.Equal(t, 1.5, c.Churn.ScoreScale)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "chat:\n  provider: carrier-pigeon\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "chat:\n  provider: upstream\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "kafka:\n  enabled: true\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	env := map[string]string{
		"GEMINI_API_KEY":     "g-key",
		"OPENAI_API_KEY":     "o-key",
		"KAFKA_BROKERS":      "k1:9092,k2:9092",
		"REDIS_HOST":         "cache",
		"ANALYTICS_DATA_URL": "https://data.example/analytics.json",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	require.NoError(t, c.ApplyEnv(lookup))
	assert.Equal(t, "g-key", c.Chat.APIKey)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.True(t, c.Kafka.Enabled)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "cache", c.Cache.Redis.Host)
	assert.Equal(t, "https://data.example/analytics.json", c.Sources.AnalyticsURL)

	env["REDIS_PORT"] = "not-a-port"
	assert.Error(t, c.ApplyEnv(lookup))
}
