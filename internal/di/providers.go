package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/repository"
	"DashPull/internal/handler/api"
	internalrepo "DashPull/internal/repository"
	"DashPull/internal/services/llm"
	"DashPull/internal/services/prefs"
	"DashPull/internal/services/ratelimit"
	"DashPull/internal/services/relay"
	"DashPull/internal/services/synth"
	"DashPull/internal/usecase"
	"DashPull/pkg/cache"
	"DashPull/pkg/config"
	xhttp "DashPull/pkg/http"
	pkgkafka "DashPull/pkg/kafka"
	applogger "DashPull/pkg/logger"
	"DashPull/pkg/metrics"
	"DashPull/pkg/server"
)

// Version is reported by /healthz.
var Version = "dev"

const limiterIdle = 10 * time.Minute

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates the Prometheus registry shared by every collector.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher publishes through Kafka when a producer exists.
func ProvideEventPublisher(producer *pkgkafka.Producer) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NopPublisher{}
	}
	return internalrepo.NewKafkaPublisher(producer)
}

// ProvideCache creates the dataset cache: memory, or memory in front of Redis.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			cache.WithMemoryDefaultTTL(cfg.Cache.TTL),
		), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredMemoryTTL(time.Minute),
	), nil
}

// ProvideHTTPClient creates the outbound client used to fetch documents.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Sources.Timeout))
}

func loaderOptions(cfg *config.Config, c cache.Service, client *xhttp.Client, m repository.Metrics, l *applogger.Logger) []internalrepo.LoaderOption {
	return []internalrepo.LoaderOption{
		internalrepo.WithHTTPClient(client),
		internalrepo.WithCache(c, cfg.Cache.TTL),
		internalrepo.WithMetrics(m),
		internalrepo.WithLogger(l),
	}
}

// ProvideFMCGSource creates the FMCG document source.
func ProvideFMCGSource(cfg *config.Config, c cache.Service, client *xhttp.Client, m repository.Metrics, l *applogger.Logger) repository.FMCGSource {
	return internalrepo.NewFMCGSource(cfg.Sources.FMCGURL, loaderOptions(cfg, c, client, m, l)...)
}

// ProvideAnalyticsSource creates the analytics source with its embedded fallback.
func ProvideAnalyticsSource(cfg *config.Config, c cache.Service, client *xhttp.Client, m repository.Metrics, l *applogger.Logger) repository.AnalyticsSource {
	return internalrepo.NewAnalyticsSource(cfg.Sources.AnalyticsURL, loaderOptions(cfg, c, client, m, l)...)
}

// ProvideSynthConfig maps the churn settings onto the generator.
func ProvideSynthConfig(cfg *config.Config) (synth.Config, error) {
	c := synth.Config{
		Seed:          cfg.Churn.Seed,
		Customers:     cfg.Churn.Customers,
		CLVMu:         cfg.Churn.CLVMu,
		CLVSigma:      cfg.Churn.CLVSigma,
		Alpha:         cfg.Churn.Alpha,
		Beta:          cfg.Churn.Beta,
		ScoreScale:    cfg.Churn.ScoreScale,
		ScoreShift:    cfg.Churn.ScoreShift,
		ScoreCap:      cfg.Churn.ScoreCap,
		LowerQuantile: cfg.Churn.LowerQuantile,
		UpperQuantile: cfg.Churn.UpperQuantile,
	}
	if err := c.Validate(); err != nil {
		return synth.Config{}, fmt.Errorf("churn config: %w", err)
	}
	return c, nil
}

// ProvidePopulationSource creates the lazily synthesized churn population.
func ProvidePopulationSource(sc synth.Config, m repository.Metrics, l *applogger.Logger) repository.PopulationSource {
	return internalrepo.NewPopulationSource(sc, models.DefaultSegmentRules(), m, l)
}

// ProvidePreferencesStore creates the process-wide preference store.
func ProvidePreferencesStore() *prefs.Store {
	return prefs.NewStore()
}

// ProvidePreferencesUseCase publishes preference changes to the configured topic.
func ProvidePreferencesUseCase(store *prefs.Store, pub repository.EventPublisher, cfg *config.Config, l *applogger.Logger) *usecase.PreferencesUseCase {
	return usecase.NewPreferencesUseCase(store, pub, cfg.Kafka.Topics.Preferences, l)
}

// ProvideChatUseCase selects the chat backend. A provider without an API key
// leaves chat disabled rather than failing startup.
func ProvideChatUseCase(cfg *config.Config, omnirag *usecase.OmniragUseCase, m repository.Metrics, l *applogger.Logger) *usecase.ChatUseCase {
	opts := []usecase.ChatOption{
		usecase.WithDataContext(omnirag),
		usecase.WithChatTimeout(cfg.Chat.Timeout),
	}
	switch cfg.Chat.Provider {
	case "none":
	case "upstream":
		opts = append(opts, usecase.WithUpstream(relay.NewClient(cfg.Chat.UpstreamURL, relay.WithTimeout(cfg.Chat.Timeout))))
	default:
		client := xhttp.NewClient(xhttp.WithTimeout(cfg.Chat.Timeout + time.Second))
		p, err := llm.New(llm.Config{
			Provider:    cfg.Chat.Provider,
			Model:       cfg.Chat.Model,
			APIKey:      cfg.Chat.APIKey,
			BaseURL:     cfg.Chat.BaseURL,
			Temperature: cfg.Chat.Temperature,
			MaxTokens:   cfg.Chat.MaxTokens,
		}, client)
		if err != nil {
			l.Warn("chat disabled", applogger.Error(err))
			break
		}
		opts = append(opts, usecase.WithProvider(p))
	}
	return usecase.NewChatUseCase(m, l, opts...)
}

// ProvideLimiter creates the per-client chat rate limiter.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Chat.RateLimit.Capacity, cfg.Chat.RateLimit.RefillPerSec)
}

// ProvideHealthHandler reports the active chat backend.
func ProvideHealthHandler(chat *usecase.ChatUseCase) *api.HealthHandler {
	return api.NewHealthHandler(Version, chat.Backend)
}

// ProvideHandlers collects every route group.
func ProvideHandlers(
	dash *api.DashboardHandler,
	pref *api.PreferencesHandler,
	chat *api.ChatHandler,
	health *api.HealthHandler,
) []xhttp.Handler {
	return []xhttp.Handler{dash, pref, chat, health}
}

// ProvideHTTPServer creates the echo server.
func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, l *applogger.Logger, reg *prometheus.Registry) *xhttp.Server {
	return xhttp.NewServer(handlers,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(len(cfg.Server.CORSOrigins) > 0, cfg.Server.CORSOrigins...),
		xhttp.WithLogger(l),
		xhttp.WithRegistry(reg),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
	)
}

// ProvideApp creates the application server and registers what it owns.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	pub repository.EventPublisher,
	c cache.Service,
	limiter *ratelimit.Limiter,
	prefsUC *usecase.PreferencesUseCase,
	population repository.PopulationSource,
) *server.App {
	app := server.New(l, srv)

	app.AddResource("event publisher", pub.Close)
	app.AddResource("cache", c.Close)
	app.AddResource("preferences", func() error { prefsUC.Close(); return nil })

	// Registered last so it flushes before the publisher closes.
	if cfg.Kafka.Enabled && cfg.Kafka.LogCollector.Enabled {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Kafka.LogCollector.Interval,
			CountThreshold: cfg.Kafka.LogCollector.Threshold,
			Topic:          cfg.Kafka.Topics.Logs,
			Publisher:      pub,
		})
		app.AddResource("log collector", func() error { l.RemoveCollector(); return nil })
	}

	app.AddTask("churn warmup", func(ctx context.Context) {
		if _, err := population.Population(ctx); err != nil {
			l.Error("churn population", applogger.Error(err))
		}
	})
	app.AddTask("limiter sweep", func(ctx context.Context) {
		t := time.NewTicker(limiterIdle)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := limiter.Sweep(limiterIdle); n > 0 {
					l.Debug("limiter sweep", applogger.Int("evicted", n))
				}
			}
		}
	})
	return app
}
