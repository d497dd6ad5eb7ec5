package gateway

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"superego/apps/server/internal/session"
)

// Status labels every outbound feedback message, matching the original
// Status enum (ACKNOWLEDGED='ACK', ERROR='ERR', GAME_STATE='STAT').
type Status string

const (
	StatusAck       Status = "ACK"
	StatusErr       Status = "ERR"
	StatusGameState Status = "STAT"
)

// Feedback is the one outbound envelope shape every response uses.
type Feedback struct {
	Status Status `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// inboundMessage is the wire shape of a client event: {action, issuer,
// params}, matching spec.md §6 exactly.
type inboundMessage struct {
	Action string   `json:"action"`
	Issuer string   `json:"issuer"`
	Params []string `json:"params"`
}

var (
	errMissingAction = errors.New("missing event action")
	errMissingIssuer = errors.New("missing event issuer")
	errBadIssuer     = errors.New("issuer is not a valid identifier")
)

// decodeEvent parses a raw client frame into a session.Event, applying the
// same two checks the original _read_event does before anything else runs:
// an action must be present, and an issuer must be present and parseable.
func decodeEvent(raw []byte) (*session.Event, error) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	if msg.Action == "" {
		return nil, errMissingAction
	}
	if msg.Issuer == "" {
		return nil, errMissingIssuer
	}
	issuer, err := uuid.Parse(msg.Issuer)
	if err != nil {
		return nil, errBadIssuer
	}
	return &session.Event{
		Action: session.Action(msg.Action),
		Issuer: issuer,
		Params: msg.Params,
	}, nil
}
