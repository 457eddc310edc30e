package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	DefaultClaudeURL   = "https://api.anthropic.com/v1/messages"
	DefaultOpenAIURL   = "https://api.openai.com/v1/chat/completions"
	DefaultClaudeModel = "claude-3-5-sonnet-20241022"
	DefaultOpenAIModel = "gpt-4o-mini"

	maxTokens = 200
)

// Provider completes one chat turn.
type Provider interface {
	Name() string
	Complete(ctx context.Context, apiKey, system, message string) (string, error)
}

// TransportError is returned when the provider could not be reached or answered with an error.
type TransportError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ClaudeProvider calls the Anthropic messages API.
type ClaudeProvider struct {
	URL        string
	Model      string
	HTTPClient *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []providerInput `json:"messages"`
}

type providerInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *ClaudeProvider) Name() string { return "Claude" }

func (p *ClaudeProvider) Complete(ctx context.Context, apiKey, system, message string) (string, error) {
	body, err := json.Marshal(claudeRequest{
		Model:     p.Model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []providerInput{{Role: "user", Content: message}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": "2023-06-01",
	}
	var resp claudeResponse
	if err := post(ctx, p.HTTPClient, p.Name(), p.URL, headers, body, &resp); err != nil {
		return "", err
	}
	for _, c := range resp.Content {
		if c.Type == "" || c.Type == "text" {
			return c.Text, nil
		}
	}
	return "", &TransportError{Provider: p.Name(), Err: fmt.Errorf("no response content returned")}
}

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	URL        string
	Model      string
	HTTPClient *http.Client
}

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []providerInput `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Name() string { return "OpenAI" }

func (p *OpenAIProvider) Complete(ctx context.Context, apiKey, system, message string) (string, error) {
	body, err := json.Marshal(openAIRequest{
		Model:     p.Model,
		MaxTokens: maxTokens,
		Messages: []providerInput{
			{Role: "system", Content: system},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{"Authorization": "Bearer " + apiKey}
	var resp openAIResponse
	if err := post(ctx, p.HTTPClient, p.Name(), p.URL, headers, body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &TransportError{Provider: p.Name(), Err: fmt.Errorf("no choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}

func post(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body []byte, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Provider: provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &TransportError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Provider: provider, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return &TransportError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Provider: provider, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}
