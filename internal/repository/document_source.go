package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/repository"
	"DashPull/pkg/cache"
	xhttp "DashPull/pkg/http"
	applogger "DashPull/pkg/logger"
)

// Dataset load outcomes reported to metrics.
const (
	OutcomeOK          = "ok"
	OutcomeCached      = "cached"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
	OutcomeFallback    = "fallback"
)

// DocumentLoader reads a JSON document from an http(s) URL or a local file,
// decodes it into T and checks its shape. Raw bytes of accepted documents are
// cached by location.
type DocumentLoader[T any] struct {
	name     string
	location string
	client   *xhttp.Client
	cache    cache.Service
	ttl      time.Duration
	check    func(*T) error
	maxSize  int64
	metrics  repository.Metrics
	logger   *applogger.Logger
}

// LoaderOption configures DocumentLoader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	client  *xhttp.Client
	cache   cache.Service
	ttl     time.Duration
	maxSize int64
	metrics repository.Metrics
	logger  *applogger.Logger
}

// WithHTTPClient sets the client used for http(s) locations.
func WithHTTPClient(c *xhttp.Client) LoaderOption {
	return func(o *loaderOptions) { o.client = c }
}

// WithCache caches accepted documents for ttl.
func WithCache(c cache.Service, ttl time.Duration) LoaderOption {
	return func(o *loaderOptions) {
		o.cache = c
		o.ttl = ttl
	}
}

// WithMaxSize rejects documents larger than n bytes.
func WithMaxSize(n int64) LoaderOption {
	return func(o *loaderOptions) { o.maxSize = n }
}

// WithMetrics reports load outcomes.
func WithMetrics(m repository.Metrics) LoaderOption {
	return func(o *loaderOptions) { o.metrics = m }
}

// WithLogger logs failed loads.
func WithLogger(l *applogger.Logger) LoaderOption {
	return func(o *loaderOptions) { o.logger = l }
}

// NewDocumentLoader creates a loader for location. check may be nil.
func NewDocumentLoader[T any](name, location string, check func(*T) error, opts ...LoaderOption) *DocumentLoader[T] {
	o := &loaderOptions{maxSize: xhttp.DefaultMaxBodySize}
	for _, opt := range opts {
		opt(o)
	}
	if o.client == nil {
		o.client = xhttp.NewClient(xhttp.WithMaxBodySize(o.maxSize))
	}
	if o.logger == nil {
		o.logger = applogger.Nop()
	}
	return &DocumentLoader[T]{
		name:     name,
		location: location,
		client:   o.client,
		cache:    o.cache,
		ttl:      o.ttl,
		check:    check,
		maxSize:  o.maxSize,
		metrics:  o.metrics,
		logger:   o.logger,
	}
}

func (l *DocumentLoader[T]) Name() string { return l.name }

// Load returns the decoded document. Failures are *models.LoadError: fetch
// and JSON syntax problems are ErrDataUnavailable, shape problems are
// ErrMalformedData.
func (l *DocumentLoader[T]) Load(ctx context.Context) (*T, error) {
	if l.location == "" {
		l.record(OutcomeUnavailable)
		return nil, models.Unavailable(l.name, errors.New("no location configured"))
	}

	if raw, ok := l.cached(ctx); ok {
		if doc, err := Decode(l.name, raw, l.check); err == nil {
			l.record(OutcomeCached)
			return doc, nil
		}
	}

	raw, err := l.fetch(ctx)
	if err != nil {
		l.record(OutcomeUnavailable)
		l.logger.Warn("dataset fetch failed", applogger.String("source", l.name), applogger.Error(err))
		return nil, models.Unavailable(l.name, err)
	}

	doc, err := Decode(l.name, raw, l.check)
	if err != nil {
		if errors.Is(err, models.ErrMalformedData) {
			l.record(OutcomeMalformed)
		} else {
			l.record(OutcomeUnavailable)
		}
		l.logger.Warn("dataset rejected", applogger.String("source", l.name), applogger.Error(err))
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, l.cacheKey(), raw, l.ttl); err != nil {
			l.logger.Debug("dataset cache write failed", applogger.String("source", l.name), applogger.Error(err))
		}
	}
	l.record(OutcomeOK)
	return doc, nil
}

// Decode parses raw into T and applies check.
func Decode[T any](name string, raw []byte, check func(*T) error) (*T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, models.Malformed(name, err)
		}
		return nil, models.Unavailable(name, fmt.Errorf("parse json: %w", err))
	}
	if check != nil {
		if err := check(&doc); err != nil {
			return nil, models.Malformed(name, err)
		}
	}
	return &doc, nil
}

func (l *DocumentLoader[T]) cacheKey() string {
	return cache.GenerateKey("dataset", l.location)
}

func (l *DocumentLoader[T]) cached(ctx context.Context) ([]byte, bool) {
	if l.cache == nil {
		return nil, false
	}
	raw, err := l.cache.Get(ctx, l.cacheKey())
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Debug("dataset cache read failed", applogger.String("source", l.name), applogger.Error(err))
		}
		return nil, false
	}
	return raw, true
}

func (l *DocumentLoader[T]) fetch(ctx context.Context) ([]byte, error) {
	if !isRemote(l.location) {
		f, err := os.Open(strings.TrimPrefix(l.location, "file://"))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, l.maxSize+1))
		if err != nil {
			return nil, err
		}
		return l.limit(raw)
	}

	var raw []byte
	err := l.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     l.location,
		Headers: map[string]string{"Accept": "application/json"},
	}, &raw)
	if err != nil {
		return nil, err
	}
	return l.limit(raw)
}

// limit also covers shared clients configured with a larger body cap.
func (l *DocumentLoader[T]) limit(raw []byte) ([]byte, error) {
	if int64(len(raw)) > l.maxSize {
		return nil, fmt.Errorf("%w: over %d bytes", xhttp.ErrBodyTooLarge, l.maxSize)
	}
	return raw, nil
}

func (l *DocumentLoader[T]) record(outcome string) {
	if l.metrics != nil {
		l.metrics.RecordDatasetLoad(l.name, outcome)
	}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
