package game

// guessPhase waits for every player except the current answerer to submit
// a Guess (an answer plus a wager). Once everyone has answered, the phase
// advances to ResultPhase where bets settle.
type guessPhase struct {
	ctx   GameContext
	table *GameTable
}

func newGuessPhase(ctx GameContext, table *GameTable) *guessPhase {
	return &guessPhase{ctx: ctx, table: table}
}

// ensureCorrectPlayer rejects the current answerer from guessing. The
// mislabeling below (ANSWER action / ANSWER phase instead of GUESS/GUESS)
// matches the original implementation's own labeling and is left as-is.
func (g *guessPhase) ensureCorrectPlayer(p *Player) error {
	cur := g.table.CurrentPlayer()
	if cur != nil && p.Equal(*cur) {
		return newIllegalAction(*p, ActionAnswer, PhaseNameAnswer)
	}
	return nil
}

func (g *guessPhase) ensureBetPossible(p *Player, bet int) error {
	if g.table.PlayerBet(p) {
		return ErrPlayerAlreadyBet
	}
	if !g.table.PlayerCanBet(p, bet) {
		return ErrPlayerCannotAffordBet
	}
	return nil
}

func (g *guessPhase) Answer(p *Player, answer Answer) (Phase, error) {
	return g, newIllegalAction(*p, ActionAnswer, PhaseNameGuess)
}

func (g *guessPhase) Guess(p *Player, guess Guess) (Phase, error) {
	if err := g.ensureCorrectPlayer(p); err != nil {
		return g, err
	}
	if err := g.ensureBetPossible(p, guess.Bet); err != nil {
		return g, err
	}
	if err := g.table.AddAnswer(p, guess.Answer); err != nil {
		return g, err
	}
	if err := g.table.PlaceBet(p, guess.Bet); err != nil {
		return g, err
	}
	if g.table.AllPlayersAnswered() {
		return newResultPhase(g.ctx, g.table), nil
	}
	return g, nil
}

func (g *guessPhase) ChangeCard(p *Player) (Phase, error) {
	return g, newIllegalAction(*p, ActionChangeCard, PhaseNameGuess)
}

func (g *guessPhase) MarkReady(p *Player) (Phase, error) {
	return g, newIllegalAction(*p, ActionMarkReady, PhaseNameGuess)
}

func (g *guessPhase) GameOver() bool {
	return false
}

func (g *guessPhase) State(clock Clock) GameState {
	cur := g.table.CurrentPlayer()
	players := snapshotPlayers(g.table, func(p *Player) PlayerState {
		ps := basePlayerState(p)
		ps.AwaitedToGuess = !p.Equal(*cur) && !g.table.PlayerAnswered(p)
		return ps
	})
	return GameState{
		Time:            formatWireTime(clock.Now()),
		Phase:           PhaseNameGuess,
		RoundNumber:     g.ctx.RoundNumber,
		MaxRounds:       g.ctx.MaxRounds,
		CurrentCard:     g.table.CurrentCard(),
		CurrentPlayerID: cur.ID.String(),
		PointsInBank:    g.table.PointsInBank(),
		PlayerStates:    players,
	}
}
