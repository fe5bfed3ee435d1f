package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"DashPull/internal/domain/models"
	domrepo "DashPull/internal/domain/repository"
	"DashPull/internal/domain/service"
	"DashPull/internal/services/markdown"
	"DashPull/internal/services/relay"
	applogger "DashPull/pkg/logger"
)

// ErrChatDisabled is returned when no backend is configured.
var ErrChatDisabled = errors.New("chat backend not configured")

// DataContext supplies the serialized dashboard data a reply is grounded on.
type DataContext interface {
	DataContext(ctx context.Context, lang string) string
}

// ChatUseCase answers widget utterances, either by calling a text-generation
// provider directly or by forwarding to an upstream relay.
type ChatUseCase struct {
	provider service.ChatProvider
	upstream relay.Sender
	data     DataContext
	timeout  time.Duration
	renderer *markdown.Renderer
	metrics  domrepo.Metrics
	logger   *applogger.Logger
}

type ChatOption func(*ChatUseCase)

// WithProvider answers through a text-generation provider.
func WithProvider(p service.ChatProvider) ChatOption {
	return func(uc *ChatUseCase) { uc.provider = p }
}

// WithUpstream forwards requests to another relay. A provider takes precedence.
func WithUpstream(s relay.Sender) ChatOption {
	return func(uc *ChatUseCase) { uc.upstream = s }
}

func WithDataContext(d DataContext) ChatOption {
	return func(uc *ChatUseCase) { uc.data = d }
}

func WithChatTimeout(d time.Duration) ChatOption {
	return func(uc *ChatUseCase) {
		if d > 0 {
			uc.timeout = d
		}
	}
}

func NewChatUseCase(metrics domrepo.Metrics, l *applogger.Logger, opts ...ChatOption) *ChatUseCase {
	uc := &ChatUseCase{
		timeout:  relay.DefaultTimeout,
		renderer: markdown.New(),
		metrics:  metrics,
		logger:   loggerOrNop(l),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Enabled reports whether a backend is configured.
func (uc *ChatUseCase) Enabled() bool { return uc.provider != nil || uc.upstream != nil }

// Backend names the active backend.
func (uc *ChatUseCase) Backend() string {
	switch {
	case uc.provider != nil:
		return uc.provider.Name()
	case uc.upstream != nil:
		return "upstream"
	}
	return "none"
}

type ChatResult struct {
	Reply   string
	HTML    string
	Elapsed time.Duration
}

// Reply produces the answer for one utterance. Failures are *models.RelayError
// or ErrChatDisabled.
func (uc *ChatUseCase) Reply(ctx context.Context, req models.ChatRequest) (*ChatResult, error) {
	if !uc.Enabled() {
		return nil, ErrChatDisabled
	}
	lang := models.NormalizeLang(req.Lang)
	history := trimHistory(req.History)

	start := time.Now()
	var (
		reply string
		err   error
	)
	if uc.provider != nil {
		reply, err = uc.generate(ctx, req, lang, history)
	} else {
		reply, err = uc.upstream.Send(ctx, relay.Request{
			Message:     req.Message,
			History:     history,
			Lang:        lang,
			PageContext: req.PageContext,
		})
	}
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = relayOutcome(err)
	}
	if uc.metrics != nil {
		uc.metrics.RecordRelay(outcome, elapsed.Seconds())
	}
	if err != nil {
		uc.logger.Warn("chat reply failed",
			applogger.String("backend", uc.Backend()),
			applogger.String("outcome", outcome),
			applogger.Duration("elapsed_ms", elapsed),
			applogger.Error(err),
		)
		if uc.metrics != nil {
			uc.metrics.RecordError("relay_" + outcome)
		}
		return nil, err
	}

	html, rerr := uc.renderer.Render(reply)
	if rerr != nil {
		return nil, &models.RelayError{Reason: models.ReasonMalformed, Err: rerr}
	}
	return &ChatResult{Reply: reply, HTML: html, Elapsed: elapsed}, nil
}

func (uc *ChatUseCase) generate(ctx context.Context, req models.ChatRequest, lang string, history []models.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var data string
	if uc.data != nil {
		data = uc.data.DataContext(ctx, lang)
	}
	reply, err := uc.provider.Generate(ctx, service.Prompt{
		System:  SystemPrompt(lang, req.PageContext),
		Context: data,
		History: withoutCurrentTurn(history, req.Message),
		Message: req.Message,
	})
	if err != nil {
		return "", providerError(ctx, err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", &models.RelayError{Reason: models.ReasonMalformed, Err: fmt.Errorf("%s: empty reply", uc.provider.Name())}
	}
	return reply, nil
}

// SystemPrompt is the instruction sent ahead of every exchange.
func SystemPrompt(lang, pageContext string) string {
	var b strings.Builder
	b.WriteString("You are NOVA, the analytics assistant of this dashboard portfolio. ")
	b.WriteString("You give sharp, data-driven answers based on the data provided. ")
	b.WriteString("Always cite specific numbers. Use markdown formatting with bold text and bullet points when helpful. ")
	b.WriteString("Keep responses concise (max 300 words). ")
	b.WriteString("If asked for recommendations, be specific and actionable.\n")
	if lang == models.LangEN {
		b.WriteString("Answer in English.")
	} else {
		b.WriteString("Réponds en français.")
	}
	if pageContext != "" {
		b.WriteString("\nThe user is currently viewing: ")
		b.WriteString(pageContext)
	}
	return b.String()
}

func trimHistory(h []models.Turn) []models.Turn {
	if len(h) > relay.MaxHistory {
		h = h[len(h)-relay.MaxHistory:]
	}
	return h
}

// withoutCurrentTurn drops the trailing user turn when it repeats message.
// Widget clients append the utterance to history before sending it, and
// providers add Message as their own final user turn.
func withoutCurrentTurn(h []models.Turn, message string) []models.Turn {
	if n := len(h); n > 0 && h[n-1].Role == models.RoleUser &&
		strings.TrimSpace(h[n-1].Content) == strings.TrimSpace(message) {
		return h[:n-1]
	}
	return h
}

func providerError(ctx context.Context, err error) error {
	var re *models.RelayError
	if errors.As(err, &re) {
		return err
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &ne) && ne.Timeout()) {
		return &models.RelayError{Reason: models.ReasonTimeout, Err: err}
	}
	return &models.RelayError{Reason: models.ReasonTransport, Err: err}
}

func relayOutcome(err error) string {
	if errors.Is(err, models.ErrRelayTimeout) {
		return "timeout"
	}
	return "error"
}
