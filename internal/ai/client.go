package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tamagotchi/internal/pet"
)

// NoProviderReply is returned without any network call when chat is not configured.
const NoProviderReply = "Please configure an AI provider in settings first!"

var (
	ErrMissingAPIKey = errors.New("AI provider API key not configured")
	ErrEmptyMessage  = errors.New("message is empty")
)

// Reply is the pet's answer. Informational replies come from the client itself, not a provider.
type Reply struct {
	Text          string      `json:"text"`
	Suggestion    *Suggestion `json:"suggestion,omitempty"`
	Informational bool        `json:"informational,omitempty"`
}

// Options configures a Client.
type Options struct {
	Timeout        time.Duration
	ClaudeURL      string
	ClaudeModel    string
	OpenAIURL      string
	OpenAIModel    string
	RequestsPerMin float64
}

// Client routes chat requests to the configured provider, one request at a time per rate limit.
type Client struct {
	limiter   *rate.Limiter
	providers map[pet.AIProvider]Provider
}

// NewClient builds a client with the Claude and OpenAI providers.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.ClaudeURL == "" {
		opts.ClaudeURL = DefaultClaudeURL
	}
	if opts.ClaudeModel == "" {
		opts.ClaudeModel = DefaultClaudeModel
	}
	if opts.OpenAIURL == "" {
		opts.OpenAIURL = DefaultOpenAIURL
	}
	if opts.OpenAIModel == "" {
		opts.OpenAIModel = DefaultOpenAIModel
	}
	httpClient := &http.Client{Timeout: opts.Timeout}

	return NewClientWith(opts.RequestsPerMin, map[pet.AIProvider]Provider{
		pet.ProviderClaude: &ClaudeProvider{URL: opts.ClaudeURL, Model: opts.ClaudeModel, HTTPClient: httpClient},
		pet.ProviderOpenAI: &OpenAIProvider{URL: opts.OpenAIURL, Model: opts.OpenAIModel, HTTPClient: httpClient},
	})
}

// NewClientWith uses the given providers. A non-positive rate means unlimited.
func NewClientWith(requestsPerMin float64, providers map[pet.AIProvider]Provider) *Client {
	limit := rate.Inf
	if requestsPerMin > 0 {
		limit = rate.Limit(requestsPerMin / 60)
	}
	return &Client{
		limiter:   rate.NewLimiter(limit, 1),
		providers: providers,
	}
}

// Chat sends one message. Transport failures come back as *TransportError, never as a reply.
func (c *Client) Chat(ctx context.Context, req Request) (Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Reply{}, ErrEmptyMessage
	}
	if req.Provider == "" || req.Provider == pet.ProviderNone {
		return Reply{Text: NoProviderReply, Informational: true}, nil
	}
	p, ok := c.providers[req.Provider]
	if !ok {
		return Reply{}, fmt.Errorf("unknown AI provider %q", req.Provider)
	}
	if req.APIKey == "" {
		return Reply{}, fmt.Errorf("%s: %w", p.Name(), ErrMissingAPIKey)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Reply{}, fmt.Errorf("waiting for rate limit: %w", err)
	}

	text, err := p.Complete(ctx, req.APIKey, BuildSystemPrompt(req), req.Message)
	if err != nil {
		log.Printf("%s chat failed: %v", p.Name(), err)
		return Reply{}, err
	}
	clean, sug := ParseSuggestion(text)
	return Reply{Text: clean, Suggestion: sug}, nil
}

// Talk chats with the companion's pet and records the exchange on success.
func (c *Client) Talk(ctx context.Context, comp *pet.Companion, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	req := NewRequest(comp.Snapshot(), comp.AIConfig(), message)
	reply, err := c.Chat(ctx, req)
	if err != nil || reply.Informational {
		return reply, err
	}
	comp.RecordConversation(message, reply.Text)
	return reply, nil
}
