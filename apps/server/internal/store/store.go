package store

import (
	"github.com/google/uuid"

	"superego/game"
)

// PersonStore is the key-value lookup spec.md describes for the people who
// can be invited into a lobby: store one, list all, resolve one by name.
// This mirrors original_source's PersonStorage interface.
type PersonStore interface {
	InsertPerson(name string) (game.LobbyMember, error)
	ListPeople() ([]game.LobbyMember, error)
	RetrieveGUID(name string) (uuid.UUID, error)
}

// DeckStore is the key-value lookup for card decks, mirroring
// original_source's DeckStorage/CardStorage interfaces.
type DeckStore interface {
	InsertCard(deckID string, card game.Card) error
	GetDeck(deckID string) (*game.Deck, error)
}
