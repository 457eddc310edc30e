package ai

import (
	"regexp"
	"strings"
)

// SuggestionType classifies a suggestion from the pet.
type SuggestionType string

const (
	SuggestAction      SuggestionType = "action"
	SuggestEnvironment SuggestionType = "environment"
	SuggestLearning    SuggestionType = "learning"
	SuggestCare        SuggestionType = "care"
	SuggestGeneral     SuggestionType = "general"
)

// Suggestion is something the pet asked its owner for.
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Action  string         `json:"action"`
}

var suggestRe = regexp.MustCompile(`\[SUGGEST:([^:\]]*):([^:\]]*):([^:\]]*):([^:\]]*)\]`)

var suggestionTypes = map[SuggestionType]bool{
	SuggestAction: true, SuggestEnvironment: true, SuggestLearning: true, SuggestCare: true, SuggestGeneral: true,
}

var suggestionActions = map[string]bool{
	"feed": true, "play": true, "clean": true, "sleep": true, "train": true, "clean-environment": true, "none": true,
}

// ParseSuggestion pulls the first well-formed directive out of a reply. It returns the reply text
// with every directive removed, and nil when no valid directive was present.
func ParseSuggestion(text string) (string, *Suggestion) {
	var found *Suggestion
	for _, m := range suggestRe.FindAllStringSubmatch(text, -1) {
		s := Suggestion{
			Type:    SuggestionType(strings.TrimSpace(m[1])),
			Title:   strings.TrimSpace(m[2]),
			Message: strings.TrimSpace(m[3]),
			Action:  strings.TrimSpace(m[4]),
		}
		if found == nil && suggestionTypes[s.Type] && suggestionActions[s.Action] {
			found = &s
		}
	}
	clean := strings.TrimSpace(suggestRe.ReplaceAllString(text, ""))
	return clean, found
}

// HasAction reports whether following the suggestion means running an owner action.
func (s Suggestion) HasAction() bool {
	return s.Action != "" && s.Action != "none"
}
