package pet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Document is everything persisted under StorageKey.
type Document struct {
	State   State     `json:"state"`
	AI      AIConfig  `json:"aiConfig"`
	SavedAt time.Time `json:"savedAt"`
}

// ErrNoSavedPet is returned by a Store that has nothing saved yet.
var ErrNoSavedPet = errors.New("no saved pet")

// Store loads and saves the single pet document.
type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// EncodeDocument renders doc the way every store keeps it.
func EncodeDocument(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeDocument parses a stored document and fills in anything an older save left out.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decoding pet document: %w", err)
	}
	if doc.State.Name == "" {
		doc.State.Name = DefaultPetName
	}
	if !doc.State.Stage.Valid() {
		doc.State.Stage = StageBaby
	}
	if !doc.State.Branch.Valid() {
		doc.State.Branch = BranchNone
	}
	if doc.State.Mood == "" {
		doc.State.Mood = MoodFor(doc.State.IsAlive, doc.State.Stats)
	}
	if doc.AI.Provider == "" {
		doc.AI.Provider = ProviderNone
	}
	doc.State.Stats = doc.State.Stats.Clamped()
	doc.State.Personality = doc.State.Personality.Clamped()
	doc.State.Environment = doc.State.Environment.Clamped()
	return doc, nil
}

// DefaultDataDir returns ~/.config/vpet.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vpet"), nil
}

// FileStore keeps the document as a JSON file in a directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

// Path returns the state file location.
func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, StorageKey+".json")
}

// Load reads the saved document. A missing file is ErrNoSavedPet.
func (s *FileStore) Load(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, ErrNoSavedPet
	}
	if err != nil {
		return Document{}, fmt.Errorf("reading state file: %w", err)
	}
	return DecodeDocument(data)
}

// UpdatedAt reports the state file's modification time.
func (s *FileStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, ErrNoSavedPet
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading state file: %w", err)
	}
	return info.ModTime(), nil
}

// Save writes to a temporary file and renames it over the old one.
func (s *FileStore) Save(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	path := s.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming state file: %w", err)
	}
	return nil
}

// LoadOrAdopt loads the saved pet and catches it up to now, or adopts a new one when nothing is saved.
func LoadOrAdopt(ctx context.Context, store Store, rng RandSource) (Document, error) {
	now := TimeNow()
	doc, err := store.Load(ctx)
	if errors.Is(err, ErrNoSavedPet) {
		log.Printf("No saved pet, adopting %s", DefaultPetName)
		return Document{State: Adopt(DefaultPetName, rng, now), AI: AIConfig{Provider: ProviderNone}}, nil
	}
	if err != nil {
		return Document{}, err
	}

	log.Printf("last saved: %s", doc.SavedAt.UTC())
	log.Printf("elapsed %f", now.Sub(doc.State.LastUpdated).Seconds())
	doc.State = CatchUp(doc.State, now)
	return doc, nil
}
