// Package catalog manages the shared collection of card definitions,
// persisted as a flat JSON file and kept in display order on every
// write.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gearbox-games/garage/internal/card"
)

// Store is the file-backed card catalog. A missing file is an empty
// catalog; every write re-sorts the card list so the file always
// renders in the same order regardless of insertion history.
type Store struct {
	mu   sync.RWMutex
	path string
	log  zerolog.Logger

	cards []card.Card
}

// Open loads the catalog at path, creating parent directories so the
// first save succeeds.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	s := &Store{path: path, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the catalog file, replacing the in-memory snapshot.
// Used at open and whenever the watcher reports an external edit.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cards = []card.Card{}
			return nil
		}
		return fmt.Errorf("read catalog file: %w", err)
	}

	var cards []card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}
	card.SortCards(cards)
	s.cards = cards
	return nil
}

// Cards returns the catalog in display order. The returned slice is a
// copy.
func (s *Store) Cards() []card.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]card.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// CardByID returns a catalog card by id.
func (s *Store) CardByID(id string) (card.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return card.Card{}, false
}

// Add inserts a card, assigning an id if the caller left it empty, and
// persists the catalog. Returns the stored card.
func (s *Store) Add(c card.Card) (card.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	for _, existing := range s.cards {
		if existing.ID == c.ID {
			return card.Card{}, fmt.Errorf("catalog card %s already exists", c.ID)
		}
	}
	s.cards = append(s.cards, c)
	if err := s.saveLocked(); err != nil {
		s.cards = s.cards[:len(s.cards)-1]
		return card.Card{}, err
	}
	s.log.Info().Str("card", c.Name).Str("id", c.ID).Msg("catalog card added")
	return c, nil
}

// Delete removes a catalog card by id and persists the catalog. The
// caller is responsible for cascading the deletion into open decks via
// the deck store's RemoveAllOfOrigin.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.cards {
		if c.ID != id {
			continue
		}
		s.cards = append(s.cards[:i], s.cards[i+1:]...)
		if err := s.saveLocked(); err != nil {
			return err
		}
		s.log.Info().Str("card", c.Name).Str("id", id).Msg("catalog card deleted")
		return nil
	}
	return fmt.Errorf("catalog card %s not found", id)
}

// Save persists the current catalog.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// saveLocked writes the sorted catalog to a temp file and renames it
// into place, so readers never observe a partial write.
func (s *Store) saveLocked() error {
	card.SortCards(s.cards)

	data, err := json.MarshalIndent(s.cards, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}
	return nil
}

// Path returns the catalog file path.
func (s *Store) Path() string {
	return s.path
}
