package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel    = "gpt-4o-mini"
)

// ErrNoAPIKey means the tutor is not configured; the game runs fine
// without it.
var ErrNoAPIKey = errors.New("tutor: no API key configured")

const systemPrompt = `You are a helpful, educational AI tutor for a stock market simulator game aimed at middle-school students. Answer the user's questions directly and clearly, then add brief educational context. Be encouraging, be specific to the current level, and explain WHY, not just WHAT. Keep answers to a few sentences.`

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint. It is a
// collaborator outside the engine: its failures never touch simulation
// state, and nothing in the engine waits on it.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

// NewClient builds a Client from the environment. TUTOR_API_KEY holds the
// key; TUTOR_ENDPOINT and TUTOR_MODEL override the defaults.
func NewClient() *Client {
	c := &Client{
		endpoint: defaultEndpoint,
		model:    defaultModel,
		apiKey:   os.Getenv("TUTOR_API_KEY"),
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	if v := os.Getenv("TUTOR_ENDPOINT"); v != "" {
		c.endpoint = v
	}
	if v := os.Getenv("TUTOR_MODEL"); v != "" {
		c.model = v
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask sends the conversation plus the context digest and returns the
// tutor's reply.
func (c *Client) Ask(ctx context.Context, digest string, history []Message, question string) (string, error) {
	if !c.Configured() {
		return "", ErrNoAPIKey
	}

	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{
		Role:    "system",
		Content: systemPrompt + "\n\nCurrent Level Context:\n" + digest,
	})
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: "user", Content: question})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: 0.7,
		MaxTokens:   400,
	})
	if err != nil {
		return "", fmt.Errorf("tutor: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("tutor: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("tutor: request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("tutor: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("tutor: API error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("tutor: API error: status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("tutor: empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}
