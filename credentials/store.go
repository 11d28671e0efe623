// Package credentials provides CredentialStore implementations: a
// sqlite-backed store for real deployments and an in-memory store for
// tests. Stores are pure local persistence; they never touch the
// network.
package credentials

import (
	"context"
	"sync"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

// deriveUserID falls back to the token claims when no explicit user id
// was supplied. Best effort: an underivable id is reported, not an
// error, because the profile fetch is what actually validates the
// session.
func deriveUserID(token string, logger frigocheck.Logger) string {
	claims := frigocheck.DecodeToken(token)
	if claims == nil || claims.ID.IsZero() {
		logger.Warn("Could not derive user id from token claims")
		return ""
	}
	return claims.ID.String()
}

// MemoryStore keeps credentials in process memory. Used by tests and
// as a throwaway store for ephemeral sessions.
type MemoryStore struct {
	logger frigocheck.Logger

	mu     sync.Mutex
	token  string
	userID string
}

var _ frigocheck.CredentialStore = (*MemoryStore)(nil)

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryLogger overrides the store logger.
func WithMemoryLogger(logger frigocheck.Logger) MemoryOption {
	return func(s *MemoryStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{logger: noopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Save writes both values, deriving the user id from the token when it
// was not supplied.
func (s *MemoryStore) Save(_ context.Context, token, userID string) error {
	if userID == "" {
		userID = deriveUserID(token, s.logger)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.userID = userID
	return nil
}

// Read returns whatever is currently held. Absence of either value is
// a valid outcome.
func (s *MemoryStore) Read(context.Context) (frigocheck.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return frigocheck.Credentials{Token: s.token, UserID: s.userID}, nil
}

// Clear removes both values. Idempotent.
func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userID = ""
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
