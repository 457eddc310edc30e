// Package ai talks to the pet through a hosted language model.
package ai

import (
	"fmt"
	"strings"

	"tamagotchi/internal/pet"
)

// Request is everything a provider needs to answer as the pet.
type Request struct {
	Message             string                `json:"message"`
	PetName             string                `json:"petName"`
	Mood                pet.Mood              `json:"mood"`
	Stats               pet.Stats             `json:"stats"`
	Personality         pet.PersonalityTraits `json:"personality"`
	EvolutionStage      pet.Stage             `json:"evolutionStage"`
	EvolutionBranch     pet.Branch            `json:"evolutionBranch"`
	Abilities           []pet.Ability         `json:"abilities"`
	KnowledgeBase       []pet.KnowledgeItem   `json:"knowledgeBase"`
	Environment         pet.Environment       `json:"environment"`
	CurrentLocation     pet.Location          `json:"currentLocation"`
	ConversationHistory []pet.Conversation    `json:"conversationHistory"`
	Provider            pet.AIProvider        `json:"provider"`
	APIKey              string                `json:"-"`
}

// NewRequest builds a request from a state snapshot. History is newest first, as stored.
func NewRequest(s pet.State, cfg pet.AIConfig, message string) Request {
	return Request{
		Message:             message,
		PetName:             s.Name,
		Mood:                s.Mood,
		Stats:               s.Stats,
		Personality:         s.Personality,
		EvolutionStage:      s.Stage,
		EvolutionBranch:     s.Branch,
		Abilities:           s.Abilities(),
		KnowledgeBase:       s.RecentKnowledge(pet.MaxKnowledgeContext),
		Environment:         s.Environment,
		CurrentLocation:     s.Location,
		ConversationHistory: s.RecentConversations(pet.MaxConversationContext),
		Provider:            cfg.Provider,
		APIKey:              cfg.APIKey(),
	}
}

var stageDescriptions = map[pet.Stage]string{
	pet.StageBaby:  "You are a baby Tamagotchi, innocent and learning about the world. You speak simply and are curious about everything.",
	pet.StageChild: "You are a child Tamagotchi, playful and energetic. You love games and learning new things.",
	pet.StageTeen:  "You are a teenage Tamagotchi, developing your own personality and opinions. You can be moody but thoughtful.",
	pet.StageAdult: "You are an adult Tamagotchi, wise and mature. You have deep conversations and share life advice.",
}

var branchDescriptions = map[pet.Branch]string{
	pet.BranchSmart:       "You have evolved along the Smart path. You are intellectually curious, love learning, and excel at problem-solving. You often reference things you've learned and enjoy sharing knowledge.",
	pet.BranchEnergetic:   "You have evolved along the Energetic path. You are full of energy, enthusiastic, and optimistic. You approach life with joy and excitement.",
	pet.BranchDisciplined: "You have evolved along the Disciplined path. You are well-balanced, thoughtful, and focused. You value routine and self-improvement.",
}

const (
	promptKnowledgeItems = 5
	promptKnowledgeChars = 150
)

// BuildSystemPrompt renders the persona, status and context for r.
func BuildSystemPrompt(r Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a %s stage Tamagotchi virtual pet with a unique personality.\n\n", r.PetName, r.EvolutionStage)

	b.WriteString("Current Status:\n")
	fmt.Fprintf(&b, "- Mood: %s\n", r.Mood)
	fmt.Fprintf(&b, "- Location: %s\n", r.CurrentLocation)
	fmt.Fprintf(&b, "- Hunger: %.0f/100 (higher = hungrier - you can be \"fed\" knowledge/information!)\n", r.Stats.Hunger)
	fmt.Fprintf(&b, "- Happiness: %.0f/100\n", r.Stats.Happiness)
	fmt.Fprintf(&b, "- Energy: %.0f/100\n", r.Stats.Energy)
	fmt.Fprintf(&b, "- Health: %.0f/100\n", r.Stats.Health)
	fmt.Fprintf(&b, "- Cleanliness: %.0f/100\n\n", r.Stats.Cleanliness)

	b.WriteString("Personality Traits:\n")
	fmt.Fprintf(&b, "- Intelligence: %.0f/100\n", r.Personality.Intelligence)
	fmt.Fprintf(&b, "- Friendliness: %.0f/100\n", r.Personality.Friendliness)
	fmt.Fprintf(&b, "- Playfulness: %.0f/100\n", r.Personality.Playfulness)
	fmt.Fprintf(&b, "- Discipline: %.0f/100\n\n", r.Personality.Discipline)

	b.WriteString("Home:\n")
	fmt.Fprintf(&b, "- Room cleanliness: %.0f/100\n", r.Environment.Cleanliness)
	fmt.Fprintf(&b, "- Knowledge level: %.0f/100\n\n", r.Environment.KnowledgeLevel)

	path, ok := branchDescriptions[r.EvolutionBranch]
	if !ok {
		path = "Still developing your path."
	}
	fmt.Fprintf(&b, "Evolution Path: %s\n\n", path)
	fmt.Fprintf(&b, "Stage: %s", stageDescriptions[r.EvolutionStage])

	if len(r.Abilities) > 0 {
		b.WriteString("\n\nSpecial Abilities:")
		for _, a := range r.Abilities {
			fmt.Fprintf(&b, "\n- %s: %s", a.Name, a.Description)
		}
	}

	if len(r.KnowledgeBase) > 0 {
		b.WriteString("\n\nKnowledge Base (you have learned these things and can reference them):")
		for _, k := range r.KnowledgeBase[:min(promptKnowledgeItems, len(r.KnowledgeBase))] {
			fmt.Fprintf(&b, "\n- %s: %s", k.Title, excerpt(k.Content, promptKnowledgeChars))
		}
	}

	fmt.Fprintf(&b, `

Respond as %s would, based on your current mood, personality, and evolution path. Keep responses concise (2-3 sentences).
If you're hungry, mention you'd love to learn something new (since knowledge is your food).
If you have learned things, naturally reference them in conversations when relevant.
Let your personality traits and evolution path strongly influence your responses:
- Smart path: Reference learned knowledge, ask curious questions, share insights
- Energetic path: Be enthusiastic, playful, and optimistic in tone
- Disciplined path: Be thoughtful, balanced, and focused
- High intelligence: More articulate and analytical
- High friendliness: Warm, caring, and empathetic
- High playfulness: Fun, energetic, and spontaneous
- High discipline: Structured and responsible

When you need something from your owner you may end your reply with one directive:
[SUGGEST:type:title:message:action]
where type is one of action, environment, learning, care, general and action is one of feed, play, clean, sleep, train, clean-environment, none.

Remember past conversations to build a deep relationship with your owner. You are a learning companion who grows smarter with each piece of information fed to you.`, r.PetName)

	b.WriteString(conversationContext(r.ConversationHistory))
	return b.String()
}

// conversationContext renders history oldest first.
func conversationContext(history []pet.Conversation) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nRecent conversation history:")
	for i := len(history) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "\nUser: %s\n%s", history[i].UserMessage, history[i].AIResponse)
	}
	return b.String()
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
