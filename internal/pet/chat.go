package pet

import (
	"fmt"
	"strings"
	"time"
)

// AIProvider selects the language model backend used for chat.
type AIProvider string

const (
	ProviderNone   AIProvider = "none"
	ProviderClaude AIProvider = "claude"
	ProviderOpenAI AIProvider = "openai"
)

// ParseAIProvider accepts the provider names used on the command line and in the environment.
func ParseAIProvider(name string) (AIProvider, error) {
	switch p := AIProvider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return ProviderNone, nil
	case ProviderNone, ProviderClaude, ProviderOpenAI:
		return p, nil
	default:
		return "", fmt.Errorf("unknown AI provider %q", name)
	}
}

// AIConfig is persisted next to the pet. Keys are kept per provider so switching back and forth
// doesn't lose one.
type AIConfig struct {
	Provider     AIProvider `json:"provider"`
	ClaudeAPIKey string     `json:"claudeApiKey,omitempty"`
	OpenAIAPIKey string     `json:"openaiApiKey,omitempty"`
}

// APIKey returns the key for the selected provider.
func (c AIConfig) APIKey() string {
	switch c.Provider {
	case ProviderClaude:
		return c.ClaudeAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	}
	return ""
}

// SetAIProvider selects a provider; a non-empty key replaces the stored one for that provider.
func SetAIProvider(c AIConfig, p AIProvider, apiKey string) AIConfig {
	if p == "" {
		p = ProviderNone
	}
	c.Provider = p
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return c
	}
	switch p {
	case ProviderClaude:
		c.ClaudeAPIKey = apiKey
	case ProviderOpenAI:
		c.OpenAIAPIKey = apiKey
	}
	return c
}

// RecordConversation stores a finished exchange. Talking to the pet makes it a little friendlier.
// Chatting is not a care action, so it leaves the activity log and interaction count alone.
func RecordConversation(s State, userMessage, reply string, now time.Time) (State, bool) {
	if !s.IsAlive {
		return s, false
	}
	c := Conversation{
		ID:             NewID(),
		Timestamp:      now,
		UserMessage:    userMessage,
		AIResponse:     reply,
		EvolutionStage: s.Stage,
		Mood:           s.Mood,
	}
	next := s
	next.Conversations = prepend(c, s.Conversations)
	next.Personality = s.Personality.AddFriendliness(ConversationFriendlinessGain)
	return next, true
}

// RecentConversations returns up to n conversations, newest first.
func (s State) RecentConversations(n int) []Conversation {
	return s.Conversations[:min(n, len(s.Conversations))]
}

// RecentKnowledge returns up to n knowledge items, newest first.
func (s State) RecentKnowledge(n int) []KnowledgeItem {
	return s.Knowledge[:min(n, len(s.Knowledge))]
}
