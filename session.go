package frigocheck

import (
	goerrors "github.com/goliatone/go-errors"
)

const textCodeInvalidTransition = "INVALID_SESSION_TRANSITION"

// ErrInvalidTransition is returned when a requested status change is
// not allowed by the session lifecycle.
var ErrInvalidTransition = goerrors.New("invalid session state transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// SessionStatus is the client-side authentication status.
type SessionStatus string

const (
	// SessionUnresolved is the initial status at application start.
	SessionUnresolved SessionStatus = "unresolved"
	// SessionResolving means the one-time resolution pass is running.
	SessionResolving SessionStatus = "resolving"
	// SessionAuthenticated means a token is present and the identity
	// was successfully fetched.
	SessionAuthenticated SessionStatus = "authenticated"
	// SessionAnonymous means no token is present, or the identity
	// fetch failed.
	SessionAnonymous SessionStatus = "anonymous"
)

// SessionState is the resolved authentication state published to the
// rest of the application.
type SessionState struct {
	Status   SessionStatus
	UserID   UserID
	Identity *User
}

// IsAuthenticated reports whether the session reached the
// authenticated terminal state.
func (s SessionState) IsAuthenticated() bool {
	return s.Status == SessionAuthenticated
}

// sessionTransitions is the allowed lifecycle graph. Re-entering
// resolving after a terminal state is rejected; the resolution latch
// makes that unreachable anyway. Nothing ever goes back to unresolved.
var sessionTransitions = map[SessionStatus]map[SessionStatus]struct{}{
	SessionUnresolved: {
		SessionResolving:     {},
		SessionAuthenticated: {},
		SessionAnonymous:     {},
	},
	SessionResolving: {
		SessionAuthenticated: {},
		SessionAnonymous:     {},
	},
	SessionAuthenticated: {
		SessionAuthenticated: {},
		SessionAnonymous:     {},
	},
	SessionAnonymous: {
		SessionAuthenticated: {},
		SessionAnonymous:     {},
	},
}

// CanTransition reports whether the session lifecycle allows moving
// from one status to another.
func CanTransition(from, to SessionStatus) bool {
	targets, ok := sessionTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

func checkTransition(from, to SessionStatus) error {
	if !CanTransition(from, to) {
		return goerrors.New(ErrInvalidTransition.Message, ErrInvalidTransition.Category).
			WithTextCode(textCodeInvalidTransition).
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{
				"from": string(from),
				"to":   string(to),
			})
	}
	return nil
}
