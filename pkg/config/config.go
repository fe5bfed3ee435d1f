package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	applogger "DashPull/pkg/logger"
)

// Config is the service configuration. Zero values are filled from the
// default tags after the YAML is read, so a field cannot be set to its zero
// value from the file.
type Config struct {
	Environment string           `yaml:"environment" default:"development" validate:"oneof=development staging production"`
	Server      Server           `yaml:"server"`
	Log         applogger.Config `yaml:"log"`
	Cache       Cache            `yaml:"cache"`
	Kafka       Kafka            `yaml:"kafka"`
	Sources     Sources          `yaml:"sources"`
	Churn       Churn            `yaml:"churn"`
	Chat        Chat             `yaml:"chat"`
}

type Server struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
	CORSOrigins     []string      `yaml:"cors_origins" default:"[\"*\"]"`
}

type Cache struct {
	TTL           time.Duration `yaml:"ttl" default:"10m" validate:"gte=0"`
	MemoryMaxSize int           `yaml:"memory_max_size" default:"64" validate:"gt=0"`
	Redis         Redis         `yaml:"redis"`
}

type Redis struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix" default:"dashpull"`
}

type Kafka struct {
	Enabled      bool     `yaml:"enabled"`
	Brokers      []string `yaml:"brokers" validate:"required_if=Enabled true"`
	RequiredAcks int      `yaml:"required_acks" default:"-1"`
	Compression  string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
	Topics       struct {
		Preferences string `yaml:"preferences" default:"dashpull.preferences"`
		Logs        string `yaml:"logs" default:"dashpull.logs"`
	} `yaml:"topics"`
	Producer struct {
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		Linger       time.Duration `yaml:"linger" default:"100ms"`
		BatchSize    int           `yaml:"batch_size" default:"100"`
		BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		Async        bool          `yaml:"async"`
	} `yaml:"producer"`
	LogCollector struct {
		Enabled   bool          `yaml:"enabled"`
		Interval  time.Duration `yaml:"interval" default:"30s"`
		Threshold int           `yaml:"threshold" default:"100"`
	} `yaml:"log_collector"`
}

// Sources locate the fetched documents. Each is an http(s) URL or a local
// file path.
type Sources struct {
	FMCGURL      string        `yaml:"fmcg_url"`
	AnalyticsURL string        `yaml:"analytics_url"`
	Timeout      time.Duration `yaml:"timeout" default:"15s"`
}

type Churn struct {
	Seed          uint32  `yaml:"seed" default:"42"`
	Customers     int     `yaml:"customers" default:"1000" validate:"gt=0,lte=1000000"`
	CLVMu         float64 `yaml:"clv_mu" default:"4.5"`
	CLVSigma      float64 `yaml:"clv_sigma" default:"0.8" validate:"gte=0"`
	Alpha         int     `yaml:"alpha" default:"2" validate:"gt=0"`
	Beta          int     `yaml:"beta" default:"5" validate:"gt=0"`
	ScoreScale    float64 `yaml:"score_scale" default:"1.5"`
	ScoreShift    float64 `yaml:"score_shift" default:"0.1"`
	ScoreCap      float64 `yaml:"score_cap" default:"0.99" validate:"gt=0,lte=1"`
	LowerQuantile float64 `yaml:"lower_quantile" default:"0.40" validate:"gte=0,lt=1"`
	UpperQuantile float64 `yaml:"upper_quantile" default:"0.75" validate:"gte=0,lt=1,gtefield=LowerQuantile"`
}

type Chat struct {
	// Provider is gemini, openai, upstream (forward to UpstreamURL) or none.
	Provider    string        `yaml:"provider" default:"gemini" validate:"oneof=gemini openai upstream none"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url" validate:"omitempty,url"`
	Temperature float64       `yaml:"temperature" default:"0.3" validate:"gte=0,lte=2"`
	MaxTokens   int           `yaml:"max_tokens" default:"1024" validate:"gt=0"`
	UpstreamURL string        `yaml:"upstream_url" validate:"required_if=Provider upstream,omitempty,url"`
	Timeout     time.Duration `yaml:"timeout" default:"45s"`
	RateLimit   struct {
		Capacity     float64 `yaml:"capacity" default:"5" validate:"gt=0"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"0.2" validate:"gt=0"`
	} `yaml:"rate_limit"`
}

var validate = validator.New()

// Default returns a configuration built only from the default tags.
func Default() (*Config, error) {
	var c Config
	if err := c.finish(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.finish(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv overrides fields from the environment and re-validates.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get("CHAT_PROVIDER"); ok {
		c.Chat.Provider = v
	}
	if v, ok := get("GEMINI_API_KEY"); ok && c.Chat.Provider == "gemini" {
		c.Chat.APIKey = v
	}
	if v, ok := get("OPENAI_API_KEY"); ok && c.Chat.Provider == "openai" {
		c.Chat.APIKey = v
	}
	if v, ok := get("CHAT_UPSTREAM_URL"); ok {
		c.Chat.UpstreamURL = v
	}
	if v, ok := get("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v, ok := get("REDIS_HOST"); ok {
		c.Cache.Redis.Host = v
		c.Cache.Redis.Enabled = true
	}
	if v, ok := get("REDIS_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_PORT: %w", err)
		}
		c.Cache.Redis.Port = port
	}
	if v, ok := get("FMCG_DATA_URL"); ok {
		c.Sources.FMCGURL = v
	}
	if v, ok := get("ANALYTICS_DATA_URL"); ok {
		c.Sources.AnalyticsURL = v
	}
	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}

	return c.Validate()
}

func (c *Config) finish() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	return c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
