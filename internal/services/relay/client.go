// Package relay talks to the chat relay endpoint and keeps the widget
// conversation state.
package relay

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"DashPull/internal/domain/models"
	xhttp "DashPull/pkg/http"
)

const (
	// DefaultTimeout bounds a single relay call.
	DefaultTimeout = 45 * time.Second
	// MaxHistory is the number of trailing turns sent with each message.
	MaxHistory = 6
)

// Request is what the widget sends for one utterance.
type Request struct {
	Message     string
	History     []models.Turn
	Lang        string
	PageContext string
}

// Client posts utterances to {apiURL}/chat.
type Client struct {
	apiURL  string
	timeout time.Duration
	http    *xhttp.Client
}

// Option configures Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a relay client. A trailing "/" on apiURL is dropped.
func NewClient(apiURL string, opts ...Option) *Client {
	c := &Client{
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	// The transport timeout sits just past the context deadline so the
	// context is what fires first.
	c.http = xhttp.NewClient(xhttp.WithTimeout(c.timeout + time.Second))
	return c
}

// URL returns the chat endpoint.
func (c *Client) URL() string { return c.apiURL + "/chat" }

// Send posts one request and returns the reply text. Failures are always a
// *models.RelayError.
func (c *Client) Send(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	history := req.History
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	if history == nil {
		history = []models.Turn{}
	}

	body := models.ChatRequest{
		Message:     req.Message,
		History:     history,
		Lang:        models.NormalizeLang(req.Lang),
		PageContext: req.PageContext,
	}

	var resp struct {
		Reply *string `json:"reply"`
	}
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.URL(),
		Headers: map[string]string{"X-Request-ID": uuid.NewString()},
		Body:    body,
	}, &resp)
	if err != nil {
		return "", classify(ctx, err)
	}
	if resp.Reply == nil {
		return "", &models.RelayError{Reason: models.ReasonMalformed, Err: errors.New("missing reply")}
	}
	return *resp.Reply, nil
}

func classify(ctx context.Context, err error) error {
	var statusErr *xhttp.StatusError
	var decodeErr *xhttp.DecodeError
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return &models.RelayError{Reason: models.ReasonTimeout, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &models.RelayError{Reason: models.ReasonTimeout, Err: err}
	case errors.As(err, &statusErr):
		return &models.RelayError{Reason: models.ReasonStatus, Status: statusErr.Code, Err: err}
	case errors.As(err, &decodeErr):
		return &models.RelayError{Reason: models.ReasonMalformed, Err: err}
	default:
		return &models.RelayError{Reason: models.ReasonTransport, Err: err}
	}
}
