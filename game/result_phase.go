package game

import "github.com/google/uuid"

// resultPhase settles every guess against the answerer's recorded answer as
// soon as it's constructed -- settlement happens at construction time, not
// lazily on the next event, matching the original ResultPhase.__init__
// calling self._settle() immediately. Players then mark themselves ready;
// once everyone has, the phase advances to the next round or to GameOver.
type resultPhase struct {
	ctx   GameContext
	table *GameTable

	pointChanges map[uuid.UUID]int
	ready        map[uuid.UUID]bool
}

func newResultPhase(ctx GameContext, table *GameTable) *resultPhase {
	r := &resultPhase{
		ctx:          ctx,
		table:        table,
		pointChanges: make(map[uuid.UUID]int),
		ready:        make(map[uuid.UUID]bool),
	}
	r.settle()
	return r
}

func (r *resultPhase) settle() {
	current := r.table.CurrentPlayer()
	correctAnswer := r.table.GetPlayerAnswer(current)

	for _, p := range r.table.GuessingPlayers() {
		bet := r.table.GetPlayerBet(p)
		if r.table.GetPlayerAnswer(p) == correctAnswer {
			r.table.ExecuteWin(p)
			r.pointChanges[p.ID] = bet
		} else {
			r.table.ExecuteLoss(p)
			r.pointChanges[p.ID] = -bet
		}
	}
}

func (r *resultPhase) Answer(p *Player, answer Answer) (Phase, error) {
	return r, newIllegalAction(*p, ActionAnswer, PhaseNameResult)
}

func (r *resultPhase) Guess(p *Player, guess Guess) (Phase, error) {
	return r, newIllegalAction(*p, ActionGuess, PhaseNameResult)
}

func (r *resultPhase) ChangeCard(p *Player) (Phase, error) {
	return r, newIllegalAction(*p, ActionChangeCard, PhaseNameResult)
}

func (r *resultPhase) MarkReady(p *Player) (Phase, error) {
	if r.ready[p.ID] {
		return r, ErrPlayerAlreadyMarkedAsReady
	}
	r.ready[p.ID] = true
	if !r.allPlayersReady() {
		return r, nil
	}
	return r.advance(), nil
}

func (r *resultPhase) allPlayersReady() bool {
	count := 0
	for _, ready := range r.ready {
		if ready {
			count++
		}
	}
	return count == r.table.InGamePlayersCount()
}

func (r *resultPhase) isGameToEnd() bool {
	return r.isLastRound() || !r.atLeastTwoPlayersLeft() || r.noPointsLeft()
}

func (r *resultPhase) isLastRound() bool {
	return r.ctx.RoundNumber >= r.ctx.MaxRounds
}

func (r *resultPhase) atLeastTwoPlayersLeft() bool {
	return r.table.InGamePlayersCount() >= 2
}

func (r *resultPhase) noPointsLeft() bool {
	return r.table.PointsInBank() <= 0
}

func (r *resultPhase) advance() Phase {
	if r.isGameToEnd() {
		return newGameOverPhase(r.ctx, r.table)
	}
	r.table.Flush()
	r.table.ChangeCard()
	r.table.AdvancePlayer()
	nextCtx := GameContext{RoundNumber: r.ctx.RoundNumber + 1, MaxRounds: r.ctx.MaxRounds}
	return newAnswerPhase(nextCtx, r.table)
}

func (r *resultPhase) GameOver() bool {
	return false
}

func (r *resultPhase) State(clock Clock) GameState {
	cur := r.table.CurrentPlayer()
	players := snapshotPlayers(r.table, func(p *Player) PlayerState {
		ps := basePlayerState(p)
		ps.PointsChange = r.pointChanges[p.ID]
		ps.Ready = r.ready[p.ID]
		return ps
	})
	return GameState{
		Time:            formatWireTime(clock.Now()),
		Phase:           PhaseNameResult,
		RoundNumber:     r.ctx.RoundNumber,
		MaxRounds:       r.ctx.MaxRounds,
		CurrentCard:     r.table.CurrentCard(),
		CurrentPlayerID: cur.ID.String(),
		PointsInBank:    r.table.PointsInBank(),
		PlayerStates:    players,
	}
}
