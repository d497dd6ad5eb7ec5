package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"superego/game"
)

// Use-case level errors, mirroring the UseError hierarchy in
// superego/application/usecases.py: these are protocol-facing failures,
// distinct from the game package's own GameError-style errors, raised
// before a use case ever touches the game façade.
var (
	ErrMissingEventAction = errors.New("missing event action")
	ErrMissingEventIssuer = errors.New("missing event issuer")
	ErrUnknownEventAction = errors.New("unknown event action")
)

// UnknownEventAction names the offending action string, matching the
// original UnknownEventAction(action_name) exception.
type UnknownEventAction struct {
	Action string
}

func (e *UnknownEventAction) Error() string {
	return fmt.Sprintf("unknown event action %q", e.Action)
}

func (e *UnknownEventAction) Unwrap() error {
	return ErrUnknownEventAction
}

// ErrIssuerIsNotCurrentPlayer is returned by the Answer and
// ChangeCard use cases when the issuer isn't the current answerer.
var ErrIssuerIsNotCurrentPlayer = errors.New("issuer is not the current player")

// ErrIssuerIsNotGuessingPlayer is returned by the Guess use case when the
// issuer isn't among this round's guessing players.
var ErrIssuerIsNotGuessingPlayer = errors.New("issuer is not a guessing player")

// facade is the subset of *game.Game every use case needs, so tests can
// substitute a fake without standing up a whole Game.
type facade interface {
	Answer(p *game.Player, answer game.Answer) error
	Guess(p *game.Player, guess game.Guess) error
	ChangeCard(p *game.Player) error
	MarkReady(p *game.Player) error
	State() game.GameState
	CurrentPlayer() *game.Player
	GuessingPlayers() []*game.Player
	Players() []*game.Player
}

func findPlayer(players []*game.Player, id uuid.UUID) *game.Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// answerUseCase validates that the issuer is the current player before
// forwarding the answer text to the game façade.
type answerUseCase struct{ g facade }

func (u answerUseCase) Call(answerText string, issuer uuid.UUID) error {
	answer, err := game.ParseAnswer(answerText)
	if err != nil {
		return err
	}
	cur := u.g.CurrentPlayer()
	if cur == nil || cur.ID != issuer {
		return ErrIssuerIsNotCurrentPlayer
	}
	return u.g.Answer(cur, answer)
}

// guessUseCase validates that the issuer is a guessing player before
// forwarding the guess to the game façade.
type guessUseCase struct{ g facade }

func (u guessUseCase) Call(answerText string, bet int, issuer uuid.UUID) error {
	answer, err := game.ParseAnswer(answerText)
	if err != nil {
		return err
	}
	p := findPlayer(u.g.GuessingPlayers(), issuer)
	if p == nil {
		return ErrIssuerIsNotGuessingPlayer
	}
	return u.g.Guess(p, game.Guess{Answer: answer, Bet: bet})
}

// changeCardUseCase validates that the issuer is the current player, like
// the answer use case, and reuses the same error type the original
// implementation does (there is no separate ChangeCard-specific error).
type changeCardUseCase struct{ g facade }

func (u changeCardUseCase) Call(issuer uuid.UUID) error {
	cur := u.g.CurrentPlayer()
	if cur == nil || cur.ID != issuer {
		return ErrIssuerIsNotCurrentPlayer
	}
	return u.g.ChangeCard(cur)
}

// readyUseCase requires the issuer to be among the game's current players
// -- an explicit check the original ReadyUseCase omits, relying instead on
// a lookup that silently returns nil and crashes deeper in the phase. The
// spec requires this check to be explicit, so it's done here, up front.
type readyUseCase struct{ g facade }

func (u readyUseCase) Call(issuer uuid.UUID) error {
	p := findPlayer(u.g.Players(), issuer)
	if p == nil {
		return game.ErrUnknownPlayer
	}
	return u.g.MarkReady(p)
}

// getGameStateUseCase just projects the current snapshot.
type getGameStateUseCase struct{ g facade }

func (u getGameStateUseCase) Call() game.GameState {
	return u.g.State()
}
