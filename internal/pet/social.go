package pet

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// KnowledgeGift is a knowledge item carried by a visitor, without its id and timestamp.
type KnowledgeGift struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Source   KnowledgeSource `json:"source"`
	Category string          `json:"category,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
}

// VisitorCard is the portable snapshot one pet sends to another.
type VisitorCard struct {
	Name            string            `json:"name"`
	EvolutionStage  Stage             `json:"evolutionStage"`
	EvolutionBranch Branch            `json:"evolutionBranch"`
	Personality     PersonalityTraits `json:"personality"`
	Message         string            `json:"message"`
	KnowledgeGifts  []KnowledgeGift   `json:"knowledgeGifts,omitempty"`
	ExportDate      time.Time         `json:"exportDate"`
}

// Visitor is an imported card as recorded in the guestbook.
type Visitor struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	EvolutionStage  Stage             `json:"evolutionStage"`
	EvolutionBranch Branch            `json:"evolutionBranch"`
	Personality     PersonalityTraits `json:"personality"`
	Message         string            `json:"message"`
	Gifts           []KnowledgeItem   `json:"gifts,omitempty"`
	VisitTimestamp  time.Time         `json:"visitTimestamp"`
}

// ErrInvalidCard is returned for any visitor card that cannot be accepted.
var ErrInvalidCard = errors.New("invalid visitor card format")

type cardError struct{ cause error }

func (e *cardError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidCard, e.cause)
}

func (e *cardError) Unwrap() []error {
	return []error{ErrInvalidCard, e.cause}
}

func invalidCard(format string, args ...any) error {
	return &cardError{cause: fmt.Errorf(format, args...)}
}

// ExportVisitorCard builds a card for s. With includeKnowledge the three newest items travel as gifts.
func ExportVisitorCard(s State, message string, includeKnowledge bool, now time.Time) VisitorCard {
	card := VisitorCard{
		Name:            s.Name,
		EvolutionStage:  s.Stage,
		EvolutionBranch: s.Branch,
		Personality:     s.Personality,
		Message:         strings.TrimSpace(message),
		ExportDate:      now,
	}
	if includeKnowledge {
		for _, k := range s.Knowledge[:min(MaxVisitorGifts, len(s.Knowledge))] {
			card.KnowledgeGifts = append(card.KnowledgeGifts, KnowledgeGift{
				Title:    k.Title,
				Content:  k.Content,
				Source:   k.Source,
				Category: k.Category,
				Tags:     k.Tags,
			})
		}
	}
	return card
}

// ParseVisitorCard decodes and validates a card. Every failure matches ErrInvalidCard.
func ParseVisitorCard(data []byte) (VisitorCard, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return VisitorCard{}, &cardError{cause: err}
	}
	for _, field := range []string{"name", "evolutionStage", "evolutionBranch", "personality"} {
		if _, ok := raw[field]; !ok {
			return VisitorCard{}, invalidCard("missing %q", field)
		}
	}

	var card VisitorCard
	if err := json.Unmarshal(data, &card); err != nil {
		return VisitorCard{}, &cardError{cause: err}
	}

	card.Name = strings.TrimSpace(card.Name)
	if card.Name == "" {
		return VisitorCard{}, invalidCard("empty name")
	}
	if !card.EvolutionStage.Valid() {
		return VisitorCard{}, invalidCard("unknown evolution stage %q", card.EvolutionStage)
	}
	if !card.EvolutionBranch.Valid() {
		return VisitorCard{}, invalidCard("unknown evolution branch %q", card.EvolutionBranch)
	}
	card.Personality = card.Personality.Clamped()
	for i, g := range card.KnowledgeGifts {
		if strings.TrimSpace(g.Title) == "" || strings.TrimSpace(g.Content) == "" {
			return VisitorCard{}, invalidCard("knowledge gift %d is empty", i)
		}
		if g.Source == "" {
			card.KnowledgeGifts[i].Source = SourceManual
		}
		card.KnowledgeGifts[i].Content = truncateRunes(g.Content, ManualContentLimit)
	}
	return card, nil
}

// ImportVisitor records a visit. The guestbook keeps the ten most recent visitors and any gifts
// are added to the knowledge base with fresh ids.
func ImportVisitor(s State, card VisitorCard, now time.Time) (State, bool) {
	if !s.IsAlive {
		return s, false
	}

	v := Visitor{
		ID:              NewID(),
		Name:            card.Name,
		EvolutionStage:  card.EvolutionStage,
		EvolutionBranch: card.EvolutionBranch,
		Personality:     card.Personality,
		Message:         card.Message,
		VisitTimestamp:  now,
	}
	for _, g := range card.KnowledgeGifts {
		v.Gifts = append(v.Gifts, KnowledgeItem{
			ID:        NewID(),
			Title:     g.Title,
			Content:   g.Content,
			Source:    g.Source,
			Timestamp: now,
			Category:  g.Category,
			Tags:      g.Tags,
		})
	}

	next := s
	visitors := prepend(v, s.Visitors)
	next.Visitors = visitors[:min(MaxVisitors, len(visitors))]
	if len(v.Gifts) > 0 {
		next.Knowledge = append(append([]KnowledgeItem(nil), v.Gifts...), s.Knowledge...)
	}
	next.Stats = s.Stats.AddHappiness(VisitHappinessIncrease)
	next.Personality = s.Personality.AddFriendliness(VisitFriendlinessGain)
	log.Printf("%s was visited by %s (%d gifts)", s.Name, v.Name, len(v.Gifts))
	return commitAction(s, next, ActionVisit, now), true
}

// ConversationExport is the payload written by the conversation export.
type ConversationExport struct {
	PetName            string                 `json:"petName"`
	ExportDate         time.Time              `json:"exportDate"`
	TotalConversations int                    `json:"totalConversations"`
	Conversations      []ExportedConversation `json:"conversations"`
}

// ExportedConversation is one exported exchange.
type ExportedConversation struct {
	Timestamp      time.Time `json:"timestamp"`
	EvolutionStage Stage     `json:"evolutionStage"`
	Mood           Mood      `json:"mood"`
	UserMessage    string    `json:"userMessage"`
	AIResponse     string    `json:"aiResponse"`
}

// ExportConversations builds the conversation history payload, oldest first.
func ExportConversations(s State, now time.Time) ConversationExport {
	out := ConversationExport{
		PetName:            s.Name,
		ExportDate:         now,
		TotalConversations: len(s.Conversations),
		Conversations:      make([]ExportedConversation, 0, len(s.Conversations)),
	}
	for i := len(s.Conversations) - 1; i >= 0; i-- {
		c := s.Conversations[i]
		out.Conversations = append(out.Conversations, ExportedConversation{
			Timestamp:      c.Timestamp,
			EvolutionStage: c.EvolutionStage,
			Mood:           c.Mood,
			UserMessage:    c.UserMessage,
			AIResponse:     c.AIResponse,
		})
	}
	return out
}

// KnowledgeExport is the payload written by the knowledge export.
type KnowledgeExport struct {
	PetName        string              `json:"petName"`
	ExportDate     time.Time           `json:"exportDate"`
	TotalKnowledge int                 `json:"totalKnowledge"`
	KnowledgeLevel float64             `json:"knowledgeLevel"`
	Knowledge      []ExportedKnowledge `json:"knowledge"`
}

// ExportedKnowledge is one exported knowledge item.
type ExportedKnowledge struct {
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Source    KnowledgeSource `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Category  string          `json:"category,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
}

// ExportKnowledge builds the knowledge base payload.
func ExportKnowledge(s State, now time.Time) KnowledgeExport {
	out := KnowledgeExport{
		PetName:        s.Name,
		ExportDate:     now,
		TotalKnowledge: len(s.Knowledge),
		KnowledgeLevel: s.Environment.KnowledgeLevel,
		Knowledge:      make([]ExportedKnowledge, 0, len(s.Knowledge)),
	}
	for _, k := range s.Knowledge {
		out.Knowledge = append(out.Knowledge, ExportedKnowledge{
			Title:     k.Title,
			Content:   k.Content,
			Source:    k.Source,
			Timestamp: k.Timestamp,
			Category:  k.Category,
			Tags:      k.Tags,
		})
	}
	return out
}
