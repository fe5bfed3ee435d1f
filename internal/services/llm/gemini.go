package llm

import (
	"context"
	"fmt"
	"strings"

	"DashPull/internal/domain/service"
	xhttp "DashPull/pkg/http"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini calls the generateContent endpoint over the shared HTTP client.
type Gemini struct {
	cfg    Config
	client *xhttp.Client
}

// NewGemini creates a Gemini provider. An empty BaseURL targets the public API.
func NewGemini(cfg Config, client *xhttp.Client) *Gemini {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if client == nil {
		client = xhttp.NewClient()
	}
	return &Gemini{cfg: cfg, client: client}
}

func (g *Gemini) Name() string { return ProviderGemini }

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (g *Gemini) Generate(ctx context.Context, p service.Prompt) (string, error) {
	contents := make([]geminiContent, 0, len(p.History)+1)
	for _, t := range p.History {
		role := "user"
		if isAssistant(t) {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: t.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: userContent(p)}}})

	req := geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     g.cfg.Temperature,
			MaxOutputTokens: g.cfg.MaxTokens,
		},
	}
	if p.System != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: p.System}}}
	}

	var resp geminiResponse
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodPost,
		URL:         fmt.Sprintf("%s/%s:generateContent", strings.TrimSuffix(g.cfg.BaseURL, "/"), g.cfg.Model),
		QueryParams: map[string][]string{"key": {g.cfg.APIKey}},
		Body:        req,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("gemini API error (%s): %s", resp.Error.Status, resp.Error.Message)
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrEmptyReply
	}
	return text.String(), nil
}
