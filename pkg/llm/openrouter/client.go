package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/newsdash/pkg/upstream"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "qwen/qwen2.5-32b-instruct"
)

// ErrNoAPIKey is returned by Ask when the client was built without a key.
var ErrNoAPIKey = errors.New("openrouter api key is empty")

// Client is a minimal OpenRouter (OpenAI-compatible) chat completions client.
type Client struct {
	APIKey    string
	BaseURL   string
	Model     string
	AppTitle  string
	Referer   string
	MaxTokens int
	httpDo    *http.Client
}

func New(apiKey, baseURL, model, appTitle, referer string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		APIKey:    apiKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Model:     model,
		AppTitle:  appTitle,
		Referer:   referer,
		MaxTokens: 400,
		httpDo: &http.Client{
			Timeout: timeout,
		},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Ask sends a system instruction and a user prompt and returns the trimmed
// model reply. Non-2xx responses come back as *upstream.Error.
func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	reqBody := chatCompletionsRequest{
		Model: model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
		MaxTokens:   c.MaxTokens,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.AppTitle != "" {
		httpReq.Header.Set("X-Title", c.AppTitle)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", upstream.FromResponse("openrouter", resp)
	}
	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode openrouter response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices returned by model")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
