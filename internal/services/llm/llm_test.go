package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/service"
	xhttp "DashPull/pkg/http"
)

func TestNew(t *testing.T) {
	p, err := New(Config{Provider: ProviderGemini, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p.Name())

	p, err = New(Config{Provider: ProviderOpenAI, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p.Name())

	_, err = New(Config{Provider: "bogus", APIKey: "k"}, nil)
	assert.Error(t, err)

	_, err = New(Config{Provider: ProviderGemini}, nil)
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello "},{"text":"there"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini(Config{APIKey: "secret", BaseURL: srv.URL, Temperature: 0.3, MaxTokens: 1024}, nil)
	reply, err := g.Generate(context.Background(), service.Prompt{
		System:  "be brief",
		Context: "revenue: 10",
		History: []models.Turn{
			{Role: models.RoleUser, Content: "hi"},
			{Role: models.RoleAssistant, Content: "hello"},
		},
		Message: "total?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply)

	require.Len(t, got.Contents, 3)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Contains(t, got.Contents[2].Parts[0].Text, "revenue: 10")
	assert.Contains(t, got.Contents[2].Parts[0].Text, "Question: total?")
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be brief", got.SystemInstruction.Parts[0].Text)
	assert.Equal(t, 1024, got.GenerationConfig.MaxOutputTokens)
	assert.InDelta(t, 0.3, got.GenerationConfig.Temperature, 1e-9)
}

func TestGeminiErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"status", http.StatusInternalServerError, `boom`, func(t *testing.T, err error) {
			var se *xhttp.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, http.StatusInternalServerError, se.Code)
		}},
		{"api error", http.StatusOK, `{"error":{"code":400,"message":"bad key","status":"INVALID_ARGUMENT"}}`, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "bad key")
		}},
		{"empty", http.StatusOK, `{"candidates":[]}`, func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrEmptyReply))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewGemini(Config{APIKey: "k", BaseURL: srv.URL}, nil).Generate(context.Background(), service.Prompt{Message: "q"})
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"42"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	o := NewOpenAI(Config{APIKey: "k", BaseURL: srv.URL, Model: "gpt-test"})
	reply, err := o.Generate(context.Background(), service.Prompt{
		System:  "sys",
		History: []models.Turn{{Role: models.RoleAssistant, Content: "prev"}},
		Message: "q",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", reply)
	assert.Equal(t, "gpt-test", body.Model)
	require.Len(t, body.Messages, 3)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "assistant", body.Messages[1].Role)
	assert.Equal(t, "q", body.Messages[2].Content)
}
