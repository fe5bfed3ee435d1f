package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChurnJSON(t *testing.T) {
	out, err := run(t, "churn", "--json", "--top", "3")
	require.NoError(t, err)

	var res struct {
		Count    int               `json:"count"`
		TotalROI float64           `json:"total_roi"`
		Records  []json.RawMessage `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 359, res.Count)
	assert.InDelta(t, 7988.832478784067, res.TotalROI, 1e-6)
	assert.Len(t, res.Records, 3)
}

func TestChurnTable(t *testing.T) {
	out, err := run(t, "churn", "--lang", "en", "--segment", "High", "--top", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Targeted clients")
	assert.Contains(t, out, "Segment")
	assert.Contains(t, out, "High")
}

func TestChurnRejectsBadFlags(t *testing.T) {
	_, err := run(t, "churn", "--segment", "Gold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment")
}

func TestFMCGFromFile(t *testing.T) {
	out, err := run(t, "fmcg", "--source", "../repository/testdata/fmcg.json", "--commodity", "Cocoa", "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "EUR / USD")
	assert.Contains(t, out, "(YoY)")
}

func TestFMCGMissingSource(t *testing.T) {
	_, err := run(t, "fmcg", "--source", "testdata/missing.json", "--lang", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Data is temporarily unavailable.")
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"**hi** there"}`))
	}))
	defer srv.Close()

	out, err := run(t, "chat", "--url", srv.URL+"/", "--lang", "en", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>hi</strong>")
	assert.Contains(t, out, "responded in")
}

func TestChatNeedsURL(t *testing.T) {
	_, err := run(t, "chat", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no relay url")
}
