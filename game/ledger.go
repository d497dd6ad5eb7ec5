package game

import "github.com/google/uuid"

// AnswersPool tracks each player's recorded answer for the current round.
// Like the original's defaultdict(NO_ANSWER), an unset entry reads as
// NoAnswer without any separate "has answered" bookkeeping.
type AnswersPool struct {
	answers map[uuid.UUID]Answer
	total   int
}

// NewAnswersPool builds an empty answers ledger for a pool of the given size.
func NewAnswersPool(playerCount int) *AnswersPool {
	return &AnswersPool{answers: make(map[uuid.UUID]Answer), total: playerCount}
}

// AddAnswer records a player's answer, rejecting a second answer from the
// same player in the same round.
func (a *AnswersPool) AddAnswer(p *Player, answer Answer) error {
	if a.answers[p.ID] != NoAnswer {
		return ErrPlayerAlreadyAnswered
	}
	a.answers[p.ID] = answer
	return nil
}

// GetPlayerAnswer returns the recorded answer for a player, or NoAnswer.
func (a *AnswersPool) GetPlayerAnswer(p *Player) Answer {
	return a.answers[p.ID]
}

// AllPlayersAnswered reports whether every player in the round has recorded
// a non-empty answer.
func (a *AnswersPool) AllPlayersAnswered() bool {
	count := 0
	for _, ans := range a.answers {
		if ans != NoAnswer {
			count++
		}
	}
	return count == a.total
}

// Flush clears all recorded answers for the next round.
func (a *AnswersPool) Flush() {
	a.answers = make(map[uuid.UUID]Answer)
}

// SetPlayerCount updates the denominator AllPlayersAnswered compares
// against, used after a player is eliminated mid-game.
func (a *AnswersPool) SetPlayerCount(n int) {
	a.total = n
}

// MinBet and MaxBet bound the points a guessing player may wager.
const (
	MinBet = 1
	MaxBet = 2
)

// BetPool tracks each guessing player's wager for the current round.
type BetPool struct {
	bets map[uuid.UUID]int
}

// NewBetPool builds an empty bet ledger.
func NewBetPool() *BetPool {
	return &BetPool{bets: make(map[uuid.UUID]int)}
}

// AddBet records a player's bet after validating it hasn't already bet and
// that the amount is within [MinBet, MaxBet].
func (b *BetPool) AddBet(p *Player, amount int) error {
	if b.bets[p.ID] != 0 {
		return ErrPlayerAlreadyBet
	}
	if amount < MinBet || amount > MaxBet {
		return ErrInvalidBetValue
	}
	b.bets[p.ID] = amount
	return nil
}

// GetPlayerBet returns the recorded bet for a player, or 0.
func (b *BetPool) GetPlayerBet(p *Player) int {
	return b.bets[p.ID]
}

// PlayerHasBet reports whether a player has already placed a bet.
func (b *BetPool) PlayerHasBet(p *Player) bool {
	return b.bets[p.ID] != 0
}

// AllPlayersBet reports whether every tracked bettor has placed a wager.
func (b *BetPool) AllPlayersBet(expected int) bool {
	return len(b.bets) == expected
}

// Flush clears all recorded bets for the next round.
func (b *BetPool) Flush() {
	b.bets = make(map[uuid.UUID]int)
}
