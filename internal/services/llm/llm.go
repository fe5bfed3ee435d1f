// Package llm holds the text-generation backends the chat relay can call.
package llm

import (
	"errors"
	"fmt"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/service"
	xhttp "DashPull/pkg/http"
)

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrEmptyReply is returned when a backend answers without any text.
var ErrEmptyReply = errors.New("empty reply")

// Config selects and tunes a provider.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// New builds the provider named in cfg.
func New(cfg Config, client *xhttp.Client) (service.ChatProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is not set", cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGemini(cfg, client), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Provider)
	}
}

// userContent joins the data context and the question into the final user
// turn, the way the dashboard assistant has always framed it.
func userContent(p service.Prompt) string {
	if p.Context == "" {
		return p.Message
	}
	return "--- DATA ---\n" + p.Context + "\n--- END DATA ---\n\nQuestion: " + p.Message
}

func isAssistant(t models.Turn) bool { return t.Role == models.RoleAssistant }
