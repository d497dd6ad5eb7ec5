package game

// gameOverPhase is terminal: every action is rejected and the snapshot
// reports no live awaiting/ready state for anyone.
type gameOverPhase struct {
	ctx   GameContext
	table *GameTable
}

func newGameOverPhase(ctx GameContext, table *GameTable) *gameOverPhase {
	return &gameOverPhase{ctx: ctx, table: table}
}

func (g *gameOverPhase) Answer(p *Player, answer Answer) (Phase, error) {
	return g, newIllegalAction(*p, ActionAnswer, PhaseNameOver)
}

func (g *gameOverPhase) Guess(p *Player, guess Guess) (Phase, error) {
	return g, newIllegalAction(*p, ActionGuess, PhaseNameOver)
}

func (g *gameOverPhase) ChangeCard(p *Player) (Phase, error) {
	return g, newIllegalAction(*p, ActionChangeCard, PhaseNameOver)
}

func (g *gameOverPhase) MarkReady(p *Player) (Phase, error) {
	return g, newIllegalAction(*p, ActionMarkReady, PhaseNameOver)
}

func (g *gameOverPhase) GameOver() bool {
	return true
}

func (g *gameOverPhase) State(clock Clock) GameState {
	players := snapshotPlayers(g.table, func(p *Player) PlayerState {
		ps := basePlayerState(p)
		ps.PointsChange = 0
		return ps
	})
	var currentID string
	if cur := g.table.CurrentPlayer(); cur != nil {
		currentID = cur.ID.String()
	}
	return GameState{
		Time:            formatWireTime(clock.Now()),
		Phase:           PhaseNameOver,
		RoundNumber:     g.ctx.RoundNumber,
		MaxRounds:       g.ctx.MaxRounds,
		CurrentCard:     g.table.CurrentCard(),
		CurrentPlayerID: currentID,
		PointsInBank:    g.table.PointsInBank(),
		GameOver:        true,
		PlayerStates:    players,
	}
}
