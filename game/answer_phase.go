package game

// answerPhase waits for the current player to submit an answer for the
// card in play. The current player may also change the card exactly once
// before answering.
type answerPhase struct {
	ctx         GameContext
	table       *GameTable
	cardChanged bool
}

func newAnswerPhase(ctx GameContext, table *GameTable) *answerPhase {
	return &answerPhase{ctx: ctx, table: table}
}

func (a *answerPhase) ensureCurrentPlayer(p *Player, action ActionName) error {
	cur := a.table.CurrentPlayer()
	if cur == nil || !p.Equal(*cur) {
		return newIllegalAction(*p, action, PhaseNameAnswer)
	}
	return nil
}

func (a *answerPhase) Answer(p *Player, answer Answer) (Phase, error) {
	if err := a.ensureCurrentPlayer(p, ActionAnswer); err != nil {
		return a, err
	}
	if err := a.table.AddAnswer(p, answer); err != nil {
		return a, err
	}
	return newGuessPhase(a.ctx, a.table), nil
}

func (a *answerPhase) Guess(p *Player, guess Guess) (Phase, error) {
	return a, newIllegalAction(*p, ActionGuess, PhaseNameAnswer)
}

func (a *answerPhase) ChangeCard(p *Player) (Phase, error) {
	if err := a.ensureCurrentPlayer(p, ActionChangeCard); err != nil {
		return a, err
	}
	if a.cardChanged {
		return a, ErrCardAlreadyChanged
	}
	a.table.ChangeCard()
	a.cardChanged = true
	return a, nil
}

func (a *answerPhase) MarkReady(p *Player) (Phase, error) {
	return a, newIllegalAction(*p, ActionMarkReady, PhaseNameAnswer)
}

func (a *answerPhase) GameOver() bool {
	return false
}

func (a *answerPhase) State(clock Clock) GameState {
	cur := a.table.CurrentPlayer()
	players := snapshotPlayers(a.table, func(p *Player) PlayerState {
		ps := basePlayerState(p)
		ps.AwaitedToAnswer = p.Equal(*cur) && !a.table.PlayerAnswered(p)
		return ps
	})
	return GameState{
		Time:            formatWireTime(clock.Now()),
		Phase:           PhaseNameAnswer,
		RoundNumber:     a.ctx.RoundNumber,
		MaxRounds:       a.ctx.MaxRounds,
		CurrentCard:     a.table.CurrentCard(),
		CardChanged:     a.cardChanged,
		CurrentPlayerID: cur.ID.String(),
		PointsInBank:    a.table.PointsInBank(),
		PlayerStates:    players,
	}
}
