package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/markdown"
)

// Sender is the part of Client a Session needs.
type Sender interface {
	Send(ctx context.Context, req Request) (string, error)
}

// Outcome is the result of one exchange.
type Outcome struct {
	Reply   string
	HTML    string
	Elapsed time.Duration
	// Message is the localized error text; empty on success.
	Message string
	Err     error
}

// OK reports whether the exchange produced a reply.
func (o Outcome) OK() bool { return o.Err == nil }

// Meta formats the "responded in" line shown under a reply.
func (o Outcome) Meta(lang string) string {
	return fmt.Sprintf("⚡ %s %.1fs", Strings(lang).Responded, o.Elapsed.Seconds())
}

// Session is one widget conversation.
type Session struct {
	sender      Sender
	renderer    *markdown.Renderer
	lang        string
	pageContext string

	mu      sync.Mutex
	history []models.Turn
	busy    bool
	now     func() time.Time
}

// NewSession starts an empty conversation.
func NewSession(sender Sender, lang, pageContext string) *Session {
	return &Session{
		sender:      sender,
		renderer:    markdown.New(),
		lang:        models.NormalizeLang(lang),
		pageContext: pageContext,
		now:         time.Now,
	}
}

// Lang returns the normalized session language.
func (s *Session) Lang() string { return s.lang }

// Busy reports whether a message is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// History returns a copy of the conversation so far.
func (s *Session) History() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Turn(nil), s.history...)
}

// Send records the user turn, relays it with the trailing history window and
// records the reply on success. Only one message may be in flight.
func (s *Session) Send(ctx context.Context, message string) Outcome {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		err := &models.RelayError{Reason: models.ReasonTransport, Err: fmt.Errorf("a message is already in flight")}
		return Outcome{Err: err, Message: ErrorMessage(s.lang, err)}
	}
	s.busy = true
	s.history = append(s.history, models.Turn{Role: models.RoleUser, Content: message})
	window := s.history
	if len(window) > MaxHistory {
		window = window[len(window)-MaxHistory:]
	}
	window = append([]models.Turn(nil), window...)
	s.mu.Unlock()

	start := s.now()
	reply, err := s.sender.Send(ctx, Request{
		Message:     message,
		History:     window,
		Lang:        s.lang,
		PageContext: s.pageContext,
	})
	out := Outcome{Elapsed: s.now().Sub(start)}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		out.Err = err
		out.Message = ErrorMessage(s.lang, err)
		return out
	}
	s.history = append(s.history, models.Turn{Role: models.RoleAssistant, Content: reply})
	out.Reply = reply
	out.HTML, _ = s.renderer.Render(reply)
	return out
}
