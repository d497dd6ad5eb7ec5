package session

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"superego/game"
)

// Action names the five events the wire protocol accepts, matching
// spec.md's EventAction set (ANSWER/GUESS/CHANGE_CARD/READY plus the
// read-only READ state query -- SUBSCRIBE is handled at the gateway, not
// here, since it never touches game state).
type Action string

const (
	ActionAnswer     Action = "ANSWER"
	ActionGuess      Action = "GUESS"
	ActionChangeCard Action = "CHANGE_CARD"
	ActionReady      Action = "READY"
	ActionGetState   Action = "READ"
)

// Event is one inbound request, already parsed off the wire and validated
// to have an action and an issuer (see gateway.decodeEvent). Params is the
// raw parameter list from the wire message, interpreted per-action.
type Event struct {
	Action Action
	Issuer uuid.UUID
	Params []string

	response chan eventResult
}

type eventResult struct {
	state game.GameState
	err   error
}

// Session is the single-writer actor for one running game: every mutating
// call happens inside run(), the lone goroutine that owns the embedded
// *game.Game, mirroring apps/server/internal/table.Table's events-channel
// actor loop in the teacher. A caller submits an Event and blocks on its
// response channel for a synchronous, ordered reply.
type Session struct {
	id    string
	g     *game.Game
	clock game.Clock

	answer     answerUseCase
	guess      guessUseCase
	changeCard changeCardUseCase
	ready      readyUseCase
	getState   getGameStateUseCase

	events   chan *Event
	done     chan struct{}
	stopOnce sync.Once

	onBroadcast func(game.GameState)
}

// New builds a Session for the given lobby and starts its actor goroutine.
// onBroadcast is called with every new snapshot: the initial one from New's
// own goroutine, every later one from the actor goroutine, so it must not
// block (the gateway's broadcaster is expected to be
// non-blocking, per spec.md's best-effort fan-out requirement).
func New(id string, lobby *game.Lobby, onBroadcast func(game.GameState)) *Session {
	s := &Session{
		id:          id,
		clock:       game.SystemClock{},
		events:      make(chan *Event, 32),
		done:        make(chan struct{}),
		onBroadcast: onBroadcast,
	}

	observer := func(st game.GameState) {
		if s.onBroadcast != nil {
			s.onBroadcast(st)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s.g = game.NewGame(lobby, s.clock, observer, rng)

	s.answer = answerUseCase{g: s.g}
	s.guess = guessUseCase{g: s.g}
	s.changeCard = changeCardUseCase{g: s.g}
	s.ready = readyUseCase{g: s.g}
	s.getState = getGameStateUseCase{g: s.g}

	go s.run()
	return s
}

// ID returns the session's address, used by the admin HTTP surface.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) run() {
	for {
		select {
		case e := <-s.events:
			st, err := s.handleRecovered(e)
			if e.response != nil {
				e.response <- eventResult{state: st, err: err}
			}
		case <-s.done:
			log.Printf("[Session %s] stopped", s.id)
			return
		}
	}
}

// handleRecovered wraps handle with a panic guard, matching the teacher's
// table.dispatchHandEndHooks recover pattern: a panic anywhere in the
// dispatch chain (decoding, use-case validation, phase transitions) is
// logged and turned into a generic error for the one event that triggered
// it instead of crashing the actor goroutine -- and with it, every session
// and connection in the process -- per spec.md §7.
func (s *Session) handleRecovered(e *Event) (st game.GameState, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Session %s] recovered panic handling %s: %v", s.id, e.Action, r)
			st, err = game.GameState{}, ErrInternal
		}
	}()
	return s.handle(e)
}

func (s *Session) handle(e *Event) (game.GameState, error) {
	switch e.Action {
	case ActionAnswer:
		if len(e.Params) < 1 {
			return game.GameState{}, ErrMissingParam("answer")
		}
		err := s.answer.Call(e.Params[0], e.Issuer)
		return s.g.State(), err
	case ActionGuess:
		if len(e.Params) < 2 {
			return game.GameState{}, ErrMissingParam("answer/bet")
		}
		bet, err := parseBet(e.Params[1])
		if err != nil {
			return game.GameState{}, err
		}
		err = s.guess.Call(e.Params[0], bet, e.Issuer)
		return s.g.State(), err
	case ActionChangeCard:
		err := s.changeCard.Call(e.Issuer)
		return s.g.State(), err
	case ActionReady:
		err := s.ready.Call(e.Issuer)
		return s.g.State(), err
	case ActionGetState:
		return s.getState.Call(), nil
	default:
		return game.GameState{}, &UnknownEventAction{Action: string(e.Action)}
	}
}

// Submit enqueues an event and blocks for its result, giving the caller a
// synchronous request/response feel over the underlying async actor --
// the same pattern as table.Table's Event.Response channel.
func (s *Session) Submit(e *Event) (game.GameState, error) {
	e.response = make(chan eventResult, 1)
	select {
	case s.events <- e:
	case <-s.done:
		return game.GameState{}, ErrSessionStopped
	}
	res := <-e.response
	return res.state, res.err
}

// State returns the latest snapshot directly, bypassing the event queue --
// safe because game.Game guards its own state with a mutex.
func (s *Session) State() game.GameState {
	return s.g.State()
}

// Over reports whether the underlying game has ended.
func (s *Session) Over() bool {
	return s.g.Over()
}

// Stop terminates the actor goroutine. Idempotent: a second call is a
// no-op, matching spec.md §4.9's "stop() (idempotent)" requirement.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
