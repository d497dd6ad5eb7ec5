package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"superego/game"
)

// newTestLobby builds a real *game.Lobby over a small, fixed deck, mirroring
// the game package's own testLobby helper (game/testhelpers_test.go) one
// layer up: the session tests drive a real game.Game through the actor,
// never a fake.
func newTestLobby(t *testing.T, names ...string) *game.Lobby {
	t.Helper()
	if len(names) == 0 {
		t.Fatalf("newTestLobby requires at least one name")
	}
	cards := []game.Card{
		{ID: "c1", Question: "2+2?", AnswerA: "3", AnswerB: "4", AnswerC: "5"},
		{ID: "c2", Question: "Capital of France?", AnswerA: "Paris", AnswerB: "Rome", AnswerC: "Berlin"},
		{ID: "c3", Question: "Red + Blue?", AnswerA: "Green", AnswerB: "Orange", AnswerC: "Purple"},
	}
	deck, err := game.NewDeck("d1", "test deck", cards)
	if err != nil {
		t.Fatalf("NewDeck: %v", err)
	}
	host := game.LobbyMember{ID: uuid.New(), Name: names[0]}
	lobby := game.NewLobby(uuid.New(), host, game.GameSettings{Deck: deck, MaxRoundsFactor: 3})
	for _, n := range names[1:] {
		lobby.AddMember(game.LobbyMember{ID: uuid.New(), Name: n})
	}
	return lobby
}

// newTestSession starts a Session over a fresh lobby and returns it along
// with every state it has broadcast so far, guarded by a mutex since
// onBroadcast runs on the actor goroutine while the test reads the slice
// from its own goroutine.
func newTestSession(t *testing.T, names ...string) (*Session, func() []game.GameState) {
	t.Helper()
	var mu sync.Mutex
	var states []game.GameState
	s := New(uuid.New().String(), newTestLobby(t, names...), func(st game.GameState) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, st)
	})
	t.Cleanup(s.Stop)
	snapshot := func() []game.GameState {
		mu.Lock()
		defer mu.Unlock()
		out := make([]game.GameState, len(states))
		copy(out, states)
		return out
	}
	return s, snapshot
}

// TestSessionSubmitAnswerAdvancesPhase drives one ANSWER event through the
// actor's event loop end to end and checks the returned snapshot reflects
// the new phase, exercising the same Submit/run path the gateway uses.
func TestSessionSubmitAnswerAdvancesPhase(t *testing.T) {
	s, _ := newTestSession(t, "alice", "bob", "carol")

	cur := s.State().CurrentPlayerID

	st, err := s.Submit(&Event{Action: ActionAnswer, Issuer: uuid.MustParse(cur), Params: []string{"ANSWER_A"}})
	if err != nil {
		t.Fatalf("Submit(ANSWER): %v", err)
	}
	if st.Phase != game.PhaseNameGuess {
		t.Fatalf("phase after answer = %s, want %s", st.Phase, game.PhaseNameGuess)
	}
}

// TestSessionSubmitRejectsWrongIssuer checks that an ANSWER submitted by
// someone other than the current player is rejected with no phase change,
// and that the actor keeps serving later events on the same connection.
func TestSessionSubmitRejectsWrongIssuer(t *testing.T) {
	s, _ := newTestSession(t, "alice", "bob", "carol")

	before := s.State()
	var notTurn uuid.UUID
	for _, p := range s.g.GuessingPlayers() {
		if p.ID.String() != before.CurrentPlayerID {
			notTurn = p.ID
			break
		}
	}

	_, err := s.Submit(&Event{Action: ActionAnswer, Issuer: notTurn, Params: []string{"ANSWER_A"}})
	if err == nil {
		t.Fatalf("expected error answering out of turn")
	}

	after := s.State()
	if after.Phase != before.Phase {
		t.Fatalf("phase changed after rejected event: %v -> %v", before.Phase, after.Phase)
	}

	// the actor must still be alive and serving requests after a rejection.
	if _, err := s.Submit(&Event{Action: ActionGetState}); err != nil {
		t.Fatalf("Submit(READ) after rejection: %v", err)
	}
}

// TestSessionSubmitMissingParam exercises the actor's own parameter
// validation (as opposed to the game package's), which runs before any
// use case touches the façade.
func TestSessionSubmitMissingParam(t *testing.T) {
	s, _ := newTestSession(t, "alice", "bob")

	_, err := s.Submit(&Event{Action: ActionAnswer, Issuer: uuid.New()})
	if err == nil {
		t.Fatalf("expected error submitting ANSWER with no params")
	}
}

// TestSessionBroadcastOrdering is the session-layer counterpart to the
// game package's TestScenarioBroadcastOrdering (S6): every mutating event
// driven through the actor must append exactly one new snapshot, in the
// order the events were submitted, before Submit returns control to the
// caller -- onBroadcast runs synchronously inside the same actor turn that
// produces the response, so there is no ordering window for a subscriber to
// observe a later event's state before an earlier one's.
func TestSessionBroadcastOrdering(t *testing.T) {
	s, states := newTestSession(t, "alice", "bob", "carol")
	initial := len(states())

	cur := s.State().CurrentPlayerID
	if _, err := s.Submit(&Event{Action: ActionAnswer, Issuer: uuid.MustParse(cur), Params: []string{"ANSWER_A"}}); err != nil {
		t.Fatalf("answer: %v", err)
	}
	afterAnswer := states()
	if len(afterAnswer) != initial+1 {
		t.Fatalf("expected exactly one broadcast after ANSWER, got %d", len(afterAnswer)-initial)
	}
	if afterAnswer[len(afterAnswer)-1].Phase != game.PhaseNameGuess {
		t.Fatalf("broadcast after ANSWER should reflect GUESS_PHASE, got %s", afterAnswer[len(afterAnswer)-1].Phase)
	}

	guessers := s.g.GuessingPlayers()
	if _, err := s.Submit(&Event{Action: ActionGuess, Issuer: guessers[0].ID, Params: []string{"ANSWER_A", "1"}}); err != nil {
		t.Fatalf("guess 1: %v", err)
	}
	afterGuess1 := states()
	if len(afterGuess1) != initial+2 {
		t.Fatalf("expected exactly one broadcast after first GUESS, got %d", len(afterGuess1)-initial)
	}
	if afterGuess1[len(afterGuess1)-1].Phase != game.PhaseNameGuess {
		t.Fatalf("expected still GUESS_PHASE after one of two guesses, got %s", afterGuess1[len(afterGuess1)-1].Phase)
	}

	if _, err := s.Submit(&Event{Action: ActionGuess, Issuer: guessers[1].ID, Params: []string{"ANSWER_B", "1"}}); err != nil {
		t.Fatalf("guess 2: %v", err)
	}
	afterGuess2 := states()
	if len(afterGuess2) != initial+3 {
		t.Fatalf("expected exactly one broadcast after second GUESS, got %d", len(afterGuess2)-initial)
	}
	if afterGuess2[len(afterGuess2)-1].Phase != game.PhaseNameResult {
		t.Fatalf("expected RESULT_PHASE once every guesser has answered, got %s", afterGuess2[len(afterGuess2)-1].Phase)
	}
}

// panicFacade is a facade whose Answer always panics, used to exercise
// Session.handleRecovered without contriving an unreachable game-layer
// invariant violation: the actor boundary must survive a panic from
// anywhere in the dispatch chain, not just the one the game package itself
// can raise (game.InvalidStateError from GameTable.ExecuteLoss).
type panicFacade struct {
	current *game.Player
}

func (f panicFacade) Answer(p *game.Player, answer game.Answer) error {
	panic("boom")
}

func (f panicFacade) Guess(p *game.Player, guess game.Guess) error { return nil }
func (f panicFacade) ChangeCard(p *game.Player) error              { return nil }
func (f panicFacade) MarkReady(p *game.Player) error               { return nil }
func (f panicFacade) State() game.GameState                        { return game.GameState{} }
func (f panicFacade) CurrentPlayer() *game.Player                  { return f.current }
func (f panicFacade) GuessingPlayers() []*game.Player              { return nil }
func (f panicFacade) Players() []*game.Player                      { return []*game.Player{f.current} }

// TestSessionRecoversFromPanic matches review comment #1 / spec.md §7: a
// panic anywhere in the dispatch chain must not tear down the session actor
// or affect any other event. The Session here is built directly (same
// "construct the struct and drive it" style as the teacher's
// newStandUpTestTable) rather than through New, so a panicking fake facade
// can stand in for the real game.Game.
func TestSessionRecoversFromPanic(t *testing.T) {
	member := &game.Player{ID: uuid.New()}
	fake := panicFacade{current: member}

	s := &Session{
		id:       "panic-test",
		events:   make(chan *Event, 1),
		done:     make(chan struct{}),
		answer:   answerUseCase{g: fake},
		getState: getGameStateUseCase{g: fake},
	}
	go s.run()
	t.Cleanup(s.Stop)

	_, err := s.Submit(&Event{Action: ActionAnswer, Issuer: member.ID, Params: []string{"ANSWER_A"}})
	if err != ErrInternal {
		t.Fatalf("expected ErrInternal after recovered panic, got %v", err)
	}

	// the actor goroutine must still be alive after the panic.
	if _, err := s.Submit(&Event{Action: ActionGetState}); err != nil {
		t.Fatalf("Submit after recovered panic: %v", err)
	}
}

// TestSessionStopIsIdempotent matches review comment #7 / spec.md §4.9:
// a second Stop must not panic on a double close of the done channel.
func TestSessionStopIsIdempotent(t *testing.T) {
	s, _ := newTestSession(t, "alice", "bob")
	s.Stop()
	s.Stop()
}
