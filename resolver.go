package frigocheck

import (
	"context"
	"sync"
)

// resolvePhase is the tri-state idempotency latch guarding the
// one-time resolution pass.
type resolvePhase int

const (
	resolveNotStarted resolvePhase = iota
	resolveInProgress
	resolveDone
)

// SessionResolver answers "is there a usable session, and who is the
// user" exactly once per application lifetime. Concurrent callers
// collapse into a single resolution pass: the first caller runs the
// pass, later callers await the same pending result.
type SessionResolver struct {
	store  CredentialStore
	api    API
	logger Logger

	mu       sync.Mutex
	phase    resolvePhase
	pending  chan struct{}
	last     *SessionState
	override *SessionState
}

// ResolverOption customizes a SessionResolver.
type ResolverOption func(*SessionResolver)

// WithResolverLogger overrides the resolver logger.
func WithResolverLogger(logger Logger) ResolverOption {
	return func(r *SessionResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewSessionResolver returns a resolver reading credentials from store
// and fetching the profile through api.
func NewSessionResolver(store CredentialStore, api API, opts ...ResolverOption) *SessionResolver {
	r := &SessionResolver{
		store:  store,
		api:    api,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve runs the one-time resolution pass, or returns the previously
// computed state when one exists. The only error it can return is the
// caller's own context error while awaiting an in-flight pass;
// resolution failures themselves become an anonymous state, never an
// error.
func (r *SessionResolver) Resolve(ctx context.Context) (*SessionState, error) {
	r.mu.Lock()
	switch r.phase {
	case resolveDone:
		state := r.last
		r.mu.Unlock()
		return state, nil

	case resolveInProgress:
		pending := r.pending
		r.mu.Unlock()
		select {
		case <-pending:
			r.mu.Lock()
			state := r.last
			r.mu.Unlock()
			return state, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.phase = resolveInProgress
	r.pending = make(chan struct{})
	r.mu.Unlock()

	state := r.resolve(ctx)

	r.mu.Lock()
	if r.override != nil {
		// A login/register/logout finished while we were resolving;
		// its state wins over the passive pass.
		state = r.override
		r.override = nil
	}
	r.last = state
	r.phase = resolveDone
	close(r.pending)
	r.mu.Unlock()

	return state, nil
}

// Complete records a state produced outside the passive resolution
// pass (login, register, logout) as the resolved state.
func (r *SessionResolver) Complete(state *SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.phase {
	case resolveInProgress:
		r.override = state
	default:
		r.phase = resolveDone
		r.last = state
	}
}

// resolve is the single resolution pass.
func (r *SessionResolver) resolve(ctx context.Context) *SessionState {
	creds, err := r.store.Read(ctx)
	if err != nil {
		r.logger.Error("Resolution failed reading credentials", "error", err)
		return &SessionState{Status: SessionAnonymous}
	}

	// No token means anonymous, with zero network calls. Deliberate
	// short-circuit so a cold load without credentials never hits the
	// profile endpoint.
	if creds.Token == "" {
		return &SessionState{Status: SessionAnonymous}
	}

	userID := creds.UserID
	if userID == "" {
		claims := DecodeToken(creds.Token)
		if claims == nil || claims.ID.IsZero() {
			r.logger.Warn("Stored token has no derivable user id")
			return &SessionState{Status: SessionAnonymous}
		}
		userID = claims.ID.String()

		// Persist the derived id so future resolutions skip the decode.
		if err := r.store.Save(ctx, creds.Token, userID); err != nil {
			r.logger.Warn("Could not persist derived user id", "error", err)
		}
	}

	user, err := r.api.FetchProfile(ctx, userID)
	if err != nil {
		// The stored token is deliberately left untouched: the profile
		// endpoint may be transiently down while the token is still
		// valid. Only explicit login/register/logout clear it, which
		// does mean an invalid token can linger indefinitely.
		r.logger.Info("Profile fetch failed, resolving as anonymous", "error", err)
		return &SessionState{Status: SessionAnonymous}
	}

	if user == nil || user.ID.IsZero() {
		r.logger.Warn("Profile fetch returned no usable identity")
		return &SessionState{Status: SessionAnonymous}
	}

	return &SessionState{
		Status:   SessionAuthenticated,
		UserID:   user.ID,
		Identity: user,
	}
}
