package game

import "math/rand"

// GameTable composes the players pool, the per-round ledgers, the card
// deck and the shared points bank into the one surface the phase state
// machine drives. It owns no phase logic of its own -- every method here is
// a small, direct delegation, matching the original GameTable's role as
// plumbing rather than policy.
type GameTable struct {
	rng *rand.Rand

	players     *PlayersPool
	answers     *AnswersPool
	bets        *BetPool
	deck        *Deck
	bank        *PointsBank
}

// NewGameTable builds a table over the given players and deck. The points
// bank is seeded from the initial player count right here.
func NewGameTable(players *PlayersPool, deck *Deck, rng *rand.Rand) *GameTable {
	return &GameTable{
		rng:     rng,
		players: players,
		answers: NewAnswersPool(players.Len()),
		bets:    NewBetPool(),
		deck:    deck,
		bank:    NewPointsBank(players.Len()),
	}
}

// ShuffleDeck reshuffles the deck in place.
func (t *GameTable) ShuffleDeck() {
	t.deck.Shuffle(t.rng)
}

// ChangeCard advances the deck one card forward without reshuffling.
func (t *GameTable) ChangeCard() {
	t.deck.AdvanceCard()
}

// CurrentCard returns the card currently in play.
func (t *GameTable) CurrentCard() Card {
	return t.deck.CurrentCard()
}

// PlaceBet records a guessing player's wager.
func (t *GameTable) PlaceBet(p *Player, amount int) error {
	return t.bets.AddBet(p, amount)
}

// AddAnswer records the answering player's choice.
func (t *GameTable) AddAnswer(p *Player, answer Answer) error {
	return t.answers.AddAnswer(p, answer)
}

// Flush clears the per-round answer and bet ledgers. The deck is untouched;
// only ChangeCard advances it.
func (t *GameTable) Flush() {
	t.answers.Flush()
	t.bets.Flush()
	t.answers.SetPlayerCount(t.players.Len())
}

// GetPlayerBet returns a player's recorded bet for the round.
func (t *GameTable) GetPlayerBet(p *Player) int {
	return t.bets.GetPlayerBet(p)
}

// GetPlayerAnswer returns a player's recorded answer for the round.
func (t *GameTable) GetPlayerAnswer(p *Player) Answer {
	return t.answers.GetPlayerAnswer(p)
}

// PlayerAnswered reports whether a player has already answered this round.
func (t *GameTable) PlayerAnswered(p *Player) bool {
	return t.GetPlayerAnswer(p) != NoAnswer
}

// PlayerBet reports whether a player has already placed a bet this round.
func (t *GameTable) PlayerBet(p *Player) bool {
	return t.bets.PlayerHasBet(p)
}

// PlayerCanBet reports whether a player may still place the given bet.
func (t *GameTable) PlayerCanBet(p *Player, amount int) bool {
	return !t.PlayerBet(p) && p.CanBet(amount)
}

// ExecuteWin pays a winning guesser their bet out of the bank.
func (t *GameTable) ExecuteWin(p *Player) {
	t.bank.GivePoints(p, t.GetPlayerBet(p))
}

// ExecuteLoss takes a losing guesser's bet into the bank, eliminating the
// player from the rotation if they're left with nothing. Per spec.md
// §4.5, a losing bet driving the player negative can only happen if the
// guess-time can_bet check was bypassed -- a programming error, not a
// reachable game state -- so it panics rather than returning an error.
func (t *GameTable) ExecuteLoss(p *Player) {
	if err := t.bank.TakePoints(p, t.GetPlayerBet(p)); err != nil {
		panic(InvalidStateError("settlement drove player below zero: " + err.Error()))
	}
	if !p.HasPoints() {
		t.players.KickPlayer(p)
	}
}

// AdvancePlayer rotates the current-player slot forward.
func (t *GameTable) AdvancePlayer() *Player {
	return t.players.AdvancePlayer()
}

// CurrentPlayer returns whoever is answering this round.
func (t *GameTable) CurrentPlayer() *Player {
	return t.players.CurrentPlayer()
}

// Players returns every remaining player, current one first.
func (t *GameTable) Players() []*Player {
	return t.players.AllPlayers()
}

// GuessingPlayers returns every remaining player except the current
// answerer, i.e. everyone who may submit a Guess this round.
func (t *GameTable) GuessingPlayers() []*Player {
	all := t.Players()
	if len(all) == 0 {
		return all
	}
	return all[1:]
}

// InGamePlayersCount returns how many players remain in the rotation.
func (t *GameTable) InGamePlayersCount() int {
	return t.players.Len()
}

// AllPlayersAnswered reports whether the answerer and every guesser has
// recorded an answer.
func (t *GameTable) AllPlayersAnswered() bool {
	return t.answers.AllPlayersAnswered()
}

// PointsInBank returns the bank's current balance.
func (t *GameTable) PointsInBank() int {
	return t.bank.PointsLeftInBank()
}
