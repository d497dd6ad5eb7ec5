package game

import "fmt"

// Sentinel errors mirroring the small, flat GameError hierarchy of the
// original game package: each illegal state transition gets its own
// comparable error value instead of a single generic failure.
var (
	ErrPlayerAlreadyAnswered      = fmt.Errorf("player already answered")
	ErrPlayerAlreadyBet           = fmt.Errorf("player already bet")
	ErrInvalidBetValue            = fmt.Errorf("invalid bet value")
	ErrPlayerCannotAffordBet      = fmt.Errorf("player cannot afford bet")
	ErrCardAlreadyChanged         = fmt.Errorf("card already changed this phase")
	ErrPlayerAlreadyMarkedAsReady = fmt.Errorf("player already marked as ready")
	ErrInvalidAnswerValue         = fmt.Errorf("invalid answer value")
	ErrUnknownPlayer              = fmt.Errorf("unknown player")
	ErrEmptyDeck                  = fmt.Errorf("deck must contain at least one card")
	ErrInsufficientPoints         = fmt.Errorf("player does not have enough points")
)

// ActionName mirrors ActionName in the original source: used only to label
// IllegalPlayerAction errors, never compared against for control flow.
type ActionName string

const (
	ActionAnswer     ActionName = "ANSWER"
	ActionGuess      ActionName = "GUESS"
	ActionChangeCard ActionName = "CHANGE_CARD"
	ActionMarkReady  ActionName = "READY"
)

// GamePhaseName labels a phase in diagnostics and in IllegalPlayerAction.
type GamePhaseName string

const (
	PhaseNameAnswer GamePhaseName = "ANSWER_PHASE"
	PhaseNameGuess  GamePhaseName = "GUESS_PHASE"
	PhaseNameResult GamePhaseName = "RESULT_PHASE"
	PhaseNameOver   GamePhaseName = "GAME_OVER_PHASE"
)

// IllegalPlayerAction is raised whenever a phase rejects an action from a
// player who isn't entitled to perform it right now (wrong turn, wrong
// phase, or a phase that never allows that action at all).
type IllegalPlayerAction struct {
	Player           Player
	Action           ActionName
	Phase            GamePhaseName
	AdditionalInfo   string
}

func (e *IllegalPlayerAction) Error() string {
	if e.AdditionalInfo != "" {
		return fmt.Sprintf("illegal action %s by %s during %s: %s", e.Action, e.Player.Name, e.Phase, e.AdditionalInfo)
	}
	return fmt.Sprintf("illegal action %s by %s during %s", e.Action, e.Player.Name, e.Phase)
}

func newIllegalAction(p Player, action ActionName, phase GamePhaseName) error {
	return &IllegalPlayerAction{Player: p, Action: action, Phase: phase}
}

// InvalidStateError mirrors holdem/errors.go's InvalidStateError: a
// string-carrying marker for an internal invariant violation that must
// never occur in normal operation (e.g. settlement driving a bet-backed
// player negative, which the guess-time can_bet check is supposed to
// prevent). ResultPhase settlement panics with one of these rather than
// returning it, since there is no legitimate way for a caller to recover
// from it -- the session actor's recover() turns the panic into a logged
// error and a generic ERR for the event that triggered it.
type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid game state: " + string(e) }
