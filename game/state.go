package game

import "time"

const wireTimeLayout = "01/02/06 15:04:05"

// PlayerState is the immutable, per-player view embedded in a GameState
// snapshot, matching spec.md §6's player_states entry field-for-field.
// Every flag defaults false and every numeric field defaults zero in
// phases where it doesn't apply, so a client can render any phase from the
// same shape.
type PlayerState struct {
	PlayerID        string `json:"guid"`
	Name            string `json:"name"`
	Points          int    `json:"points"`
	PointsChange    int    `json:"points_change"`
	Ready           bool   `json:"ready"`
	AwaitedToAnswer bool   `json:"awaited_to_answer"`
	AwaitedToGuess  bool   `json:"awaited_to_guess"`
}

// GameState is the complete, read-only snapshot returned after every event
// and broadcast to every connection, matching spec.md §6's STAT payload
// shape verbatim. Time is rendered in the same MM/DD/YY HH:MM:SS layout the
// original wire format used. MaxRounds, CurrentPlayerID and GameOver are
// kept on the Go struct for internal/test use but aren't part of the wire
// contract.
type GameState struct {
	Time            string        `json:"time"`
	Phase           GamePhaseName `json:"phase"`
	PlayerStates    []PlayerState `json:"player_states"`
	PointsInBank    int           `json:"points_in_bank"`
	RoundNumber     int           `json:"round_number"`
	CurrentCard     Card          `json:"current_card"`
	CardChanged     bool          `json:"card_changed"`
	MaxRounds       int           `json:"-"`
	CurrentPlayerID string        `json:"-"`
	GameOver        bool          `json:"-"`
}

func formatWireTime(t time.Time) string {
	return t.Format(wireTimeLayout)
}
