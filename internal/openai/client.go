// Package openai is a minimal HTTP client for OpenAI's chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/trm-labs/notionsync/internal/config"
	"github.com/trm-labs/notionsync/internal/faults"
)

const defaultBaseURL = "https://api.openai.com"

// Client sends chat completion requests with fixed generation parameters.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	httpClient  *http.Client
}

// NewClient constructs a Client for the given key and synthesis settings.
// baseURL is optional and defaults to the public API.
func NewClient(baseURL, apiKey string, settings config.Synthesis) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       settings.Model,
		temperature: settings.Temperature,
		maxTokens:   settings.MaxTokens,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Generate sends the system + user prompts and returns the first completion's
// text. Any invocation failure is a faults.TransportError; there is no retry.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal openai payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build openai request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &faults.TransportError{Service: "openai", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &faults.TransportError{Service: "openai", Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &faults.TransportError{
			Service: "openai",
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(respBody)),
		}
		var parsed struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBody, &parsed) == nil {
			terr.Code = parsed.Error.Code
			if strings.TrimSpace(parsed.Error.Message) != "" {
				terr.Message = parsed.Error.Message
			}
		}
		return "", terr
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", &faults.TransportError{Service: "openai", Status: resp.StatusCode, Message: "response contained no choices"}
	}

	return parsed.Choices[0].Message.Content, nil
}
