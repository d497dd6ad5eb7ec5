package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"superego/game"
)

// SQLiteStore is a PersonStore+DeckStore backed by modernc.org/sqlite, the
// same pure-Go driver the teacher's auth and ledger packages use for their
// SQLite-backed mode.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite database at path and
// runs its schema migration.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS people (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS cards (
	id       TEXT PRIMARY KEY,
	deck_id  TEXT NOT NULL,
	question TEXT NOT NULL,
	answer_a TEXT NOT NULL,
	answer_b TEXT NOT NULL,
	answer_c TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cards_deck_id ON cards(deck_id);
`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertPerson(name string) (game.LobbyMember, error) {
	member := game.LobbyMember{ID: uuid.New(), Name: name}
	_, err := s.db.Exec(`INSERT INTO people (id, name) VALUES (?, ?)`, member.ID.String(), name)
	if err != nil {
		return game.LobbyMember{}, fmt.Errorf("insert person: %w", err)
	}
	return member, nil
}

func (s *SQLiteStore) ListPeople() ([]game.LobbyMember, error) {
	rows, err := s.db.Query(`SELECT id, name FROM people`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var out []game.LobbyMember
	for rows.Next() {
		var idText, name string
		if err := rows.Scan(&idText, &name); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idText)
		if err != nil {
			return nil, err
		}
		out = append(out, game.LobbyMember{ID: id, Name: name})
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RetrieveGUID(name string) (uuid.UUID, error) {
	var idText string
	err := s.db.QueryRow(`SELECT id FROM people WHERE name = ?`, name).Scan(&idText)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("retrieve guid for %q: %w", name, err)
	}
	return uuid.Parse(idText)
}

func (s *SQLiteStore) InsertCard(deckID string, card game.Card) error {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO cards (id, deck_id, question, answer_a, answer_b, answer_c)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		card.ID, deckID, card.Question, card.AnswerA, card.AnswerB, card.AnswerC,
	)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetDeck(deckID string) (*game.Deck, error) {
	rows, err := s.db.Query(
		`SELECT id, question, answer_a, answer_b, answer_c FROM cards WHERE deck_id = ?`,
		deckID,
	)
	if err != nil {
		return nil, fmt.Errorf("get deck %q: %w", deckID, err)
	}
	defer rows.Close()

	var cards []game.Card
	for rows.Next() {
		var c game.Card
		if err := rows.Scan(&c.ID, &c.Question, &c.AnswerA, &c.AnswerB, &c.AnswerC); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("deck %q not found", deckID)
	}
	return game.NewDeck(deckID, deckID, cards)
}
