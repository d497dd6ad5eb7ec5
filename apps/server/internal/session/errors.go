package session

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSessionStopped is returned to a caller submitting an event after the
// session's actor goroutine has already shut down.
var ErrSessionStopped = errors.New("session stopped")

// ErrInternal is the generic feedback sent to the originating socket when
// the actor's panic guard (Session.handleRecovered) catches an unexpected
// panic -- the details are logged server-side, never echoed to the client.
var ErrInternal = errors.New("internal error")

// missingParamError names which wire parameters were missing, matching the
// original EventParametersMissing(['answer']) / (['bet']) distinction.
type missingParamError struct {
	want string
}

func (e *missingParamError) Error() string {
	return fmt.Sprintf("missing event parameters: %s", e.want)
}

// ErrMissingParam builds a missingParamError for the named parameter(s).
func ErrMissingParam(want string) error {
	return &missingParamError{want: want}
}

func parseBet(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, ErrMissingParam("bet")
	}
	return n, nil
}
