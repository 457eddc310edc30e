package pet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewManualKnowledge(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		wantErr error
	}{
		{"Valid entry", "  Go  ", " Goroutines are cheap ", nil},
		{"Missing title", "  ", "content", ErrEmptyKnowledge},
		{"Missing content", "title", "\n\t", ErrEmptyKnowledge},
		{"Too long", "title", strings.Repeat("é", ManualContentLimit+1), ErrKnowledgeTooLong},
		{"At the limit", "title", strings.Repeat("é", ManualContentLimit), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewManualKnowledge(tt.title, tt.content, "", []string{" a ", ""})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			if in.Source != SourceManual {
				t.Errorf("Expected manual source, got %s", in.Source)
			}
			if in.Title != strings.TrimSpace(tt.title) {
				t.Errorf("Title should be trimmed, got %q", in.Title)
			}
			if len(in.Tags) != 1 || in.Tags[0] != "a" {
				t.Errorf("Expected cleaned tags [a], got %v", in.Tags)
			}
		})
	}
}

func TestKnowledgeFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Reads and truncates", func(t *testing.T) {
		path := filepath.Join(dir, "notes.md")
		if err := os.WriteFile(path, []byte(strings.Repeat("x", ManualContentLimit+100)), 0644); err != nil {
			t.Fatal(err)
		}
		in, err := KnowledgeFromFile(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if in.Title != "notes.md" || in.Source != SourceFile {
			t.Errorf("Unexpected item %q from %s", in.Title, in.Source)
		}
		if n := utf8.RuneCountInString(in.Content); n != ManualContentLimit {
			t.Errorf("Expected %d characters, got %d", ManualContentLimit, n)
		}
	})

	t.Run("Missing file keeps the cause", func(t *testing.T) {
		_, err := KnowledgeFromFile(filepath.Join(dir, "missing.txt"))
		var fe *FileError
		if !errors.As(err, &fe) {
			t.Fatalf("Expected *FileError, got %v", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Expected the not-exist cause to be preserved, got %v", err)
		}
	})

	t.Run("Binary file is rejected", func(t *testing.T) {
		path := filepath.Join(dir, "blob.bin")
		if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644); err != nil {
			t.Fatal(err)
		}
		var fe *FileError
		if _, err := KnowledgeFromFile(path); !errors.As(err, &fe) {
			t.Errorf("Expected *FileError, got %v", err)
		}
	})
}

func TestFeedKnowledge(t *testing.T) {
	now := mockTimeNow(t)
	mockNewID(t)

	s := NewState(now)
	s.Environment.KnowledgeLevel = 97
	in, err := NewManualKnowledge("Go", "Channels", "programming", nil)
	if err != nil {
		t.Fatal(err)
	}

	next, ok := FeedKnowledge(s, in, now)
	if !ok {
		t.Fatal("Feeding knowledge should succeed")
	}
	assertStat(t, "hunger", next.Stats.Hunger, 35)
	assertStat(t, "intelligence", next.Personality.Intelligence, 50.5)
	assertStat(t, "knowledge level", next.Environment.KnowledgeLevel, 100)

	if len(next.Knowledge) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(next.Knowledge))
	}
	item := next.Knowledge[0]
	if item.ID != "id-1" || !item.Timestamp.Equal(now) || item.Category != "programming" {
		t.Errorf("Unexpected item %+v", item)
	}
	if next.ActivityLogs[0].Action != ActionLearn || next.Care.InteractionCount != 1 {
		t.Error("Learning should be logged as an owner interaction")
	}

	again, _ := FeedKnowledge(next, KnowledgeInput{Title: "Second", Content: "More", Source: SourceManual}, now)
	if again.Knowledge[0].Title != "Second" || len(again.Knowledge) != 2 {
		t.Error("New knowledge should be prepended")
	}
}

func TestLearnFromPage(t *testing.T) {
	now := mockTimeNow(t)

	s := NewState(now)
	page := Page{
		URL:         "https://example.com/articles/gophers",
		Title:       "Gophers",
		Description: "All about gophers",
		Text:        strings.Repeat("g", PageContentLimit+50),
	}
	next, ok := LearnFromPage(s, page, now)
	if !ok {
		t.Fatal("Learning from a page should succeed")
	}
	assertStat(t, "hunger", next.Stats.Hunger, 30)
	assertStat(t, "intelligence", next.Personality.Intelligence, 51)
	assertStat(t, "knowledge level", next.Environment.KnowledgeLevel, 10)

	item := next.Knowledge[0]
	if item.Source != SourceURL || item.Title != "Gophers" {
		t.Errorf("Unexpected item %q from %s", item.Title, item.Source)
	}
	if !strings.HasPrefix(item.Content, "All about gophers\n\n") {
		t.Errorf("Description should lead the content, got %q", item.Content[:30])
	}
	if n := utf8.RuneCountInString(item.Content); n != PageContentLimit+len("All about gophers\n\n") {
		t.Errorf("Body should be cut at %d characters, got %d total", PageContentLimit, n)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "web" || item.Tags[1] != "browsed" {
		t.Errorf("Expected web/browsed tags, got %v", item.Tags)
	}

	t.Run("Untitled page", func(t *testing.T) {
		next, _ := LearnFromPage(s, Page{Text: "body"}, now)
		if next.Knowledge[0].Title != "Web Page" {
			t.Errorf("Expected fallback title, got %q", next.Knowledge[0].Title)
		}
	})

	t.Run("Empty page is ignored", func(t *testing.T) {
		if _, ok := LearnFromPage(s, Page{Title: "Empty"}, now); ok {
			t.Error("A page without content should not be learned")
		}
	})
}
