package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polyjournal/internal/adapters/gemini"
)

func newServer(t *testing.T, status int, modelText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.0-flash:generateContent"), r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "application/json")
		assert.Contains(t, string(body), "Thesis: test")

		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
			return
		}
		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": modelText}},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := gemini.NewClient(context.Background(), gemini.Config{})
	assert.ErrorIs(t, err, gemini.ErrMissingAPIKey)
}

func TestGenerateFeedback_Success(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"feedback":"Tighten the exit criteria."}`)
	defer srv.Close()

	c, err := gemini.NewClient(context.Background(), gemini.Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, gemini.DefaultModel, c.Model())

	fb, err := c.GenerateFeedback(context.Background(), "Thesis: test")
	require.NoError(t, err)
	assert.Equal(t, "Tighten the exit criteria.", fb)
}

func TestGenerateFeedback_NotJSON(t *testing.T) {
	srv := newServer(t, http.StatusOK, `plain text`)
	defer srv.Close()

	c, err := gemini.NewClient(context.Background(), gemini.Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.GenerateFeedback(context.Background(), "Thesis: test")
	assert.Error(t, err)
}

func TestGenerateFeedback_ServerError(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	c, err := gemini.NewClient(context.Background(), gemini.Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.GenerateFeedback(context.Background(), "Thesis: test")
	assert.Error(t, err)
}
