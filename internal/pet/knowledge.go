package pet

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// KnowledgeSource tells where a knowledge item came from.
type KnowledgeSource string

const (
	SourceManual       KnowledgeSource = "manual"
	SourceFile         KnowledgeSource = "file"
	SourceURL          KnowledgeSource = "url"
	SourceConversation KnowledgeSource = "conversation"
)

// KnowledgeItem is one piece of content the pet has been fed.
type KnowledgeItem struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Source    KnowledgeSource `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Category  string          `json:"category,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
}

// KnowledgeInput is a knowledge item before it is given an id and timestamp.
type KnowledgeInput struct {
	Title    string
	Content  string
	Source   KnowledgeSource
	Category string
	Tags     []string
}

var (
	ErrEmptyKnowledge   = errors.New("knowledge needs a title and content")
	ErrKnowledgeTooLong = fmt.Errorf("knowledge content exceeds %d characters", ManualContentLimit)
)

// FileError is returned when a knowledge file cannot be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("reading knowledge file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// NewManualKnowledge validates a hand-typed entry.
func NewManualKnowledge(title, content, category string, tags []string) (KnowledgeInput, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return KnowledgeInput{}, ErrEmptyKnowledge
	}
	if utf8.RuneCountInString(content) > ManualContentLimit {
		return KnowledgeInput{}, ErrKnowledgeTooLong
	}
	return KnowledgeInput{
		Title:    title,
		Content:  content,
		Source:   SourceManual,
		Category: strings.TrimSpace(category),
		Tags:     cleanTags(tags),
	}, nil
}

// KnowledgeFromFile reads a text file; the file name becomes the title and the content is cut at
// the manual entry limit.
func KnowledgeFromFile(path string) (KnowledgeInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KnowledgeInput{}, &FileError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return KnowledgeInput{}, &FileError{Path: path, Err: errors.New("not a UTF-8 text file")}
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return KnowledgeInput{}, &FileError{Path: path, Err: ErrEmptyKnowledge}
	}
	return KnowledgeInput{
		Title:   filepath.Base(path),
		Content: truncateRunes(content, ManualContentLimit),
		Source:  SourceFile,
	}, nil
}

// FeedKnowledge stores an item and lets the pet digest it.
func FeedKnowledge(s State, in KnowledgeInput, now time.Time) (State, bool) {
	return learn(s, in, now, knowledgeGain{
		hunger:       KnowledgeHungerDecrease,
		intelligence: KnowledgeIntelligenceGain,
		level:        KnowledgeLevelGain,
	})
}

// Page is the readable part of a fetched web page.
type Page struct {
	URL         string
	Title       string
	Description string
	Text        string
}

// LearnFromPage stores a fetched page. Reading a whole page is worth more than a typed note.
func LearnFromPage(s State, p Page, now time.Time) (State, bool) {
	content := truncateRunes(strings.TrimSpace(p.Text), PageContentLimit)
	if desc := strings.TrimSpace(p.Description); desc != "" {
		content = desc + "\n\n" + content
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Web Page"
	}
	in := KnowledgeInput{
		Title:   title,
		Content: content,
		Source:  SourceURL,
		Tags:    []string{"web", "browsed"},
	}
	return learn(s, in, now, knowledgeGain{
		hunger:       PageHungerDecrease,
		intelligence: PageIntelligenceGain,
		level:        PageKnowledgeLevelGain,
	})
}

type knowledgeGain struct {
	hunger, intelligence, level float64
}

func learn(s State, in KnowledgeInput, now time.Time, g knowledgeGain) (State, bool) {
	if !s.IsAlive || strings.TrimSpace(in.Content) == "" {
		return s, false
	}
	item := KnowledgeItem{
		ID:        NewID(),
		Title:     in.Title,
		Content:   in.Content,
		Source:    in.Source,
		Timestamp: now,
		Category:  in.Category,
		Tags:      in.Tags,
	}

	next := s
	next.Knowledge = prepend(item, s.Knowledge)
	next.Stats = s.Stats.AddHunger(-g.hunger)
	next.Personality = s.Personality.AddIntelligence(g.intelligence)
	next.Environment = s.Environment.AddKnowledge(g.level)
	log.Printf("%s learned %q from %s (knowledge level %.0f)", s.Name, item.Title, item.Source, next.Environment.KnowledgeLevel)
	return commitAction(s, next, ActionLearn, now), true
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
