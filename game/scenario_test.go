package game

import "testing"

// S1: a guesser who matches the answerer's recorded answer wins their bet.
func TestScenarioGuesserWinsBet(t *testing.T) {
	g, _ := newTestGame("alice", "bob", "carol")

	answerer := g.CurrentPlayer()
	if err := g.Answer(answerer, AnswerA); err != nil {
		t.Fatalf("answer: %v", err)
	}

	guessers := g.GuessingPlayers()
	if len(guessers) != 2 {
		t.Fatalf("expected 2 guessers, got %d", len(guessers))
	}
	before := guessers[0].Points()

	if err := g.Guess(guessers[0], Guess{Answer: AnswerA, Bet: 2}); err != nil {
		t.Fatalf("guess 1: %v", err)
	}
	if g.Over() {
		t.Fatalf("game ended prematurely")
	}
	if err := g.Guess(guessers[1], Guess{Answer: AnswerB, Bet: 1}); err != nil {
		t.Fatalf("guess 2: %v", err)
	}

	if got := guessers[0].Points(); got != before+2 {
		t.Fatalf("winner points = %d, want %d", got, before+2)
	}
}

// S2: a guesser who disagrees with the answerer loses their bet, and is
// eliminated from the rotation once their points hit zero.
func TestScenarioGuesserLosesAndIsEliminated(t *testing.T) {
	g, _ := newTestGame("alice", "bob")

	loser := g.GuessingPlayers()[0]
	loser.TakePoints(loser.Points() - MaxBet) // leave them exactly MaxBet points

	playersBefore := len(g.Players())

	if err := g.Answer(g.CurrentPlayer(), AnswerA); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := g.Guess(loser, Guess{Answer: AnswerB, Bet: MaxBet}); err != nil {
		t.Fatalf("guess: %v", err)
	}

	if loser.Points() != 0 {
		t.Fatalf("loser points = %d, want 0", loser.Points())
	}
	if len(g.Players()) != playersBefore-1 {
		t.Fatalf("expected elimination to shrink player count from %d to %d, got %d", playersBefore, playersBefore-1, len(g.Players()))
	}
}

// S3: an illegal action is rejected and produces no side effects.
func TestScenarioIllegalActionHasNoSideEffects(t *testing.T) {
	g, _ := newTestGame("alice", "bob", "carol")
	before := g.State()

	notTurn := g.GuessingPlayers()[0]
	err := g.Answer(notTurn, AnswerA)
	if err == nil {
		t.Fatalf("expected error answering out of turn")
	}

	after := g.State()
	if after.Phase != before.Phase {
		t.Fatalf("phase changed after rejected action: %v -> %v", before.Phase, after.Phase)
	}
	if after.CurrentPlayerID != before.CurrentPlayerID {
		t.Fatalf("current player changed after rejected action")
	}
}

// S4: the card may be changed exactly once per AnswerPhase.
func TestScenarioCardChangeOncePerPhase(t *testing.T) {
	g, _ := newTestGame("alice", "bob")
	cur := g.CurrentPlayer()

	if err := g.ChangeCard(cur); err != nil {
		t.Fatalf("first change: %v", err)
	}
	if err := g.ChangeCard(cur); err == nil {
		t.Fatalf("expected second change to fail")
	}
}

// S5: the game ends once the configured round ceiling is reached.
func TestScenarioGameEndsOnLastRound(t *testing.T) {
	g, _ := newTestGame("alice", "bob")
	// MaxRoundsFactor=3 over 2 players => 6 rounds.
	for round := 0; round < 20 && !g.Over(); round++ {
		cur := g.CurrentPlayer()
		if err := g.Answer(cur, AnswerA); err != nil {
			t.Fatalf("answer round %d: %v", round, err)
		}
		for _, guesser := range g.GuessingPlayers() {
			bet := MinBet
			if !guesser.CanBet(bet) {
				continue
			}
			_ = g.Guess(guesser, Guess{Answer: AnswerB, Bet: bet})
		}
		if g.Over() {
			break
		}
		for _, p := range g.Players() {
			_ = g.MarkReady(p)
		}
	}

	if !g.Over() {
		t.Fatalf("expected game to have ended")
	}
}

// S6: every observer notification happens synchronously within the call
// that triggered it, so an observer sees states in strict event order.
func TestScenarioBroadcastOrdering(t *testing.T) {
	g, states := newTestGame("alice", "bob", "carol")
	initialCount := len(*states)

	if err := g.Answer(g.CurrentPlayer(), AnswerA); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if len(*states) != initialCount+1 {
		t.Fatalf("expected exactly one new notification after Answer, got %d", len(*states)-initialCount)
	}
	if (*states)[len(*states)-1].Phase != PhaseNameGuess {
		t.Fatalf("expected notification to reflect the new phase")
	}
}
