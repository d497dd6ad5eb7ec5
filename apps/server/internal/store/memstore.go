package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"superego/game"
)

// MemStore is an in-process, map-backed PersonStore+DeckStore: the default
// used locally and in tests, with no external dependency at all.
type MemStore struct {
	mu      sync.RWMutex
	people  map[string]game.LobbyMember
	decks   map[string][]game.Card
}

// NewMemStore builds an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		people: make(map[string]game.LobbyMember),
		decks:  make(map[string][]game.Card),
	}
}

func (m *MemStore) InsertPerson(name string) (game.LobbyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member := game.LobbyMember{ID: uuid.New(), Name: name}
	m.people[name] = member
	return member, nil
}

func (m *MemStore) ListPeople() ([]game.LobbyMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]game.LobbyMember, 0, len(m.people))
	for _, p := range m.people {
		out = append(out, p)
	}
	return out, nil
}

func (m *MemStore) RetrieveGUID(name string) (uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.people[name]
	if !ok {
		return uuid.UUID{}, fmt.Errorf("person %q not found", name)
	}
	return p.ID, nil
}

func (m *MemStore) InsertCard(deckID string, card game.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	m.decks[deckID] = append(m.decks[deckID], card)
	return nil
}

func (m *MemStore) GetDeck(deckID string) (*game.Deck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cards, ok := m.decks[deckID]
	if !ok {
		return nil, fmt.Errorf("deck %q not found", deckID)
	}
	return game.NewDeck(deckID, deckID, cards)
}
