package game

import (
	"math/rand"
	"sync"
	"time"
)

// Game is the mutex-guarded façade every use case drives, mirroring
// holdem.Game's single-struct-with-a-lock shape: every exported method
// takes the lock, mutates the current phase, and notifies the observer
// before releasing it, so a caller never observes a half-applied event.
type Game struct {
	mu       sync.Mutex
	clock    Clock
	observer GameObserver

	table   *GameTable
	current Phase
}

// NewGame builds a game from a lobby snapshot: it freezes the round ceiling
// at construction (lobby.MaxRounds() is read once, here, not recomputed
// later), builds the player pool and table, starts in AnswerPhase, then
// shuffles the deck -- in that order, matching the original Game
// constructor which builds the initial phase before its first shuffle --
// and finally notifies the observer of the starting state.
func NewGame(lobby *Lobby, clock Clock, observer GameObserver, rng *rand.Rand) *Game {
	members := lobby.Members()
	players := make([]*Player, 0, len(members))
	for _, m := range members {
		players = append(players, NewPlayer(m))
	}

	pool := NewPlayersPool(players)
	table := NewGameTable(pool, lobby.Settings.Deck, rng)
	ctx := GameContext{RoundNumber: 1, MaxRounds: lobby.MaxRounds()}

	g := &Game{
		clock:    clock,
		observer: observer,
		table:    table,
		current:  newAnswerPhase(ctx, table),
	}
	table.ShuffleDeck()

	if g.observer != nil {
		g.observer(g.current.State(g.clock))
	}
	return g
}

// NewGameWithSystemClock is a convenience constructor for production
// callers that don't need to inject a fake clock or rng.
func NewGameWithSystemClock(lobby *Lobby, observer GameObserver) *Game {
	return NewGame(lobby, SystemClock{}, observer, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func (g *Game) apply(next Phase, err error) error {
	g.current = next
	if g.observer != nil {
		g.observer(g.current.State(g.clock))
	}
	return err
}

// Answer submits the current answerer's choice for the card in play.
func (g *Game) Answer(p *Player, answer Answer) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	next, err := g.current.Answer(p, answer)
	return g.apply(next, err)
}

// Guess submits a guessing player's answer and wager.
func (g *Game) Guess(p *Player, guess Guess) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	next, err := g.current.Guess(p, guess)
	return g.apply(next, err)
}

// ChangeCard asks for the current card to be swapped, then reshuffles the
// deck once the swap succeeds -- matching the original Game.change_card,
// which reshuffles only after the phase accepts the swap; a rejected swap
// (wrong player, wrong phase, already changed this round) never reshuffles.
func (g *Game) ChangeCard(p *Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	next, err := g.current.ChangeCard(p)
	if err != nil {
		return g.apply(next, err)
	}
	g.table.ShuffleDeck()
	return g.apply(next, err)
}

// MarkReady marks a player ready to proceed past ResultPhase.
func (g *Game) MarkReady(p *Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	next, err := g.current.MarkReady(p)
	return g.apply(next, err)
}

// State returns the current snapshot.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current.State(g.clock)
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current.GameOver()
}

// Players returns every remaining player.
func (g *Game) Players() []*Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.table.Players()
}

// CurrentPlayer returns whoever is answering this round.
func (g *Game) CurrentPlayer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.table.CurrentPlayer()
}

// GuessingPlayers returns everyone eligible to guess this round.
func (g *Game) GuessingPlayers() []*Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.table.GuessingPlayers()
}

// CurrentCard returns the card in play.
func (g *Game) CurrentCard() Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.table.CurrentCard()
}
