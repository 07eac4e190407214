package tutor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(endpoint, key string) *Client {
	return &Client{
		endpoint: endpoint,
		model:    "test-model",
		apiKey:   key,
		http:     http.DefaultClient,
	}
}

func TestAskWithoutKey(t *testing.T) {
	c := testClient("http://unused", "")
	assert.False(t, c.Configured())

	_, err := c.Ask(context.Background(), "digest", nil, "question")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestAskSendsContextAndHistory(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Diversify!"}},
			},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL, "secret")
	history := []Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	answer, err := c.Ask(context.Background(), "LEVEL DIGEST", history, "What now?")
	require.NoError(t, err)
	assert.Equal(t, "Diversify!", answer)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "LEVEL DIGEST")
	assert.Equal(t, "earlier question", got.Messages[1].Content)
	assert.Equal(t, "earlier answer", got.Messages[2].Content)
	assert.Equal(t, Message{Role: "user", Content: "What now?"}, got.Messages[3])
	assert.Equal(t, "test-model", got.Model)
}

func TestAskSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL, "secret")
	_, err := c.Ask(context.Background(), "digest", nil, "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestAskEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := testClient(srv.URL, "secret")
	_, err := c.Ask(context.Background(), "digest", nil, "question")
	assert.Error(t, err)
}
