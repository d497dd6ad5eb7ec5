package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func testLobby(names ...string) *Lobby {
	if len(names) == 0 {
		panic("testLobby requires at least one name")
	}
	host := LobbyMember{ID: uuid.New(), Name: names[0]}
	cards := []Card{
		{ID: "c1", Question: "2+2?", AnswerA: "3", AnswerB: "4", AnswerC: "5"},
		{ID: "c2", Question: "Capital of France?", AnswerA: "Paris", AnswerB: "Rome", AnswerC: "Berlin"},
		{ID: "c3", Question: "Red + Blue?", AnswerA: "Green", AnswerB: "Orange", AnswerC: "Purple"},
	}
	deck, err := NewDeck("d1", "test deck", cards)
	if err != nil {
		panic(err)
	}
	lobby := NewLobby(uuid.New(), host, GameSettings{Deck: deck, MaxRoundsFactor: 3})
	for _, n := range names[1:] {
		lobby.AddMember(LobbyMember{ID: uuid.New(), Name: n})
	}
	return lobby
}

func newTestGame(names ...string) (*Game, *[]GameState) {
	var states []GameState
	observer := func(st GameState) { states = append(states, st) }
	rng := rand.New(rand.NewSource(1))
	g := NewGame(testLobby(names...), fixedClock{t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}, observer, rng)
	return g, &states
}
