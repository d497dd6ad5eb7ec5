package game

// Phase is the closed set of game phases realized as a Go interface rather
// than a single struct with a byte tag: each phase carries materially
// different bookkeeping (ResultPhase's per-player point-change and ready
// maps have no equivalent in AnswerPhase or GuessPhase), so one small type
// per phase reads more honestly than one shared struct with fields that are
// only meaningful in some phases.
//
// Every method returns the phase to transition to next. A phase that
// rejects an action returns itself unchanged alongside the error.
type Phase interface {
	Answer(p *Player, answer Answer) (Phase, error)
	Guess(p *Player, guess Guess) (Phase, error)
	ChangeCard(p *Player) (Phase, error)
	MarkReady(p *Player) (Phase, error)

	State(clock Clock) GameState
	GameOver() bool
}

func snapshotPlayers(table *GameTable, build func(*Player) PlayerState) []PlayerState {
	all := table.Players()
	out := make([]PlayerState, 0, len(all))
	for _, p := range all {
		out = append(out, build(p))
	}
	return out
}

func basePlayerState(p *Player) PlayerState {
	return PlayerState{
		PlayerID: p.ID.String(),
		Name:     p.Name,
		Points:   p.Points(),
	}
}
