package frigocheck

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Credentials is whatever is currently persisted locally. Either value
// may be empty; absence is a valid, non-error outcome.
type Credentials struct {
	Token  string
	UserID string
}

// CredentialStore persists the bearer token and user id. It is the
// single source of truth for both values; nothing else in the SDK
// writes to disk. Implementations must not perform network access.
type CredentialStore interface {
	// Save writes both values. When userID is empty implementations
	// attempt to derive it from the token claims, logging (not failing)
	// if derivation is impossible.
	Save(ctx context.Context, token, userID string) error
	Read(ctx context.Context) (Credentials, error)
	// Clear removes both values. Idempotent.
	Clear(ctx context.Context) error
}

// LoginResult is the backend response to a login request.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterResult is the backend response to a registration request.
// The backend has historically answered with several shapes; the
// canonical success shape is a user record carrying a non-empty id.
type RegisterResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// API is the backend surface the session core depends on. The client
// subpackage provides the HTTP implementation.
type API interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, payload RegisterRequest) (*RegisterResult, error)
	FetchProfile(ctx context.Context, userID string) (*User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, userID string, fields map[string]any) error
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetHTTPTimeout() int
	GetCredentialsDSN() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] FRIGO "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] FRIGO "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] FRIGO "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] FRIGO "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
