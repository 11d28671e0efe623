package frigocheck

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// SessionManager owns the process-wide session state and exposes the
// auth operations the application consumes. Construct one at startup
// and pass it by reference; it serializes access to the session and to
// the credential store.
type SessionManager struct {
	store    CredentialStore
	api      API
	logger   Logger
	sink     ActivitySink
	resolver *SessionResolver
	now      func() time.Time

	mu      sync.RWMutex
	session SessionState
}

// ManagerOption customizes a SessionManager.
type ManagerOption func(*SessionManager)

// WithLogger overrides the manager logger. The internal resolver picks
// up the same logger.
func WithLogger(logger Logger) ManagerOption {
	return func(m *SessionManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithActivitySink configures an ActivitySink for auth events.
func WithActivitySink(sink ActivitySink) ManagerOption {
	return func(m *SessionManager) {
		m.sink = normalizeActivitySink(sink)
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) ManagerOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewSessionManager returns a manager in the unresolved state.
func NewSessionManager(store CredentialStore, api API, opts ...ManagerOption) *SessionManager {
	m := &SessionManager{
		store:   store,
		api:     api,
		logger:  defLogger{},
		sink:    noopActivitySink{},
		now:     time.Now,
		session: SessionState{Status: SessionUnresolved},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.resolver = NewSessionResolver(store, api, WithResolverLogger(m.logger))
	return m
}

// Current returns a copy of the session state.
func (m *SessionManager) Current() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := m.session
	if state.Identity != nil {
		identity := *state.Identity
		state.Identity = &identity
	}
	return state
}

// IsAuthenticated reports whether the session is authenticated.
func (m *SessionManager) IsAuthenticated() bool {
	return m.Current().IsAuthenticated()
}

// Identity returns the resolved identity, or nil.
func (m *SessionManager) Identity() *User {
	return m.Current().Identity
}

// Resolve runs the one-time session resolution and publishes the
// result. Repeated and concurrent calls collapse into a single pass
// and observe the same state. The only possible error is the caller's
// own context error.
func (m *SessionManager) Resolve(ctx context.Context) (SessionState, error) {
	m.mu.Lock()
	wasUnresolved := m.session.Status == SessionUnresolved
	if wasUnresolved {
		m.session.Status = SessionResolving
	}
	m.mu.Unlock()

	state, err := m.resolver.Resolve(ctx)
	if err != nil {
		return m.Current(), err
	}

	m.setState(*state)

	if wasUnresolved {
		m.emit(ctx, ActivityEventSessionResolved, state.UserID.String(), map[string]any{
			"status": string(state.Status),
		})
	}
	return m.Current(), nil
}

// Login posts credentials and, on success, persists the returned token
// and user id and transitions the session to authenticated. The
// response must carry a user record with a non-empty identifier; a 2xx
// without one is a fatal invalid-authentication-data condition. On any
// failure the session is left unchanged and the error is returned for
// display.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	payload := LoginRequest{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.logger.Error("Login request failed", "error", err)
		m.emit(ctx, ActivityEventLoginFailure, "", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return err
	}

	if result == nil || result.Token == "" || result.User == nil || result.User.ID.IsZero() {
		m.logger.Error("Login response is missing token or user id")
		m.emit(ctx, ActivityEventLoginFailure, "", map[string]any{
			"email": email,
			"error": ErrInvalidAuthData.Message,
		})
		return ErrInvalidAuthData
	}

	if err := m.store.Save(ctx, result.Token, result.User.ID.String()); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not persist credentials")
	}

	state := SessionState{
		Status:   SessionAuthenticated,
		UserID:   result.User.ID,
		Identity: result.User,
	}
	m.setState(state)
	m.resolver.Complete(&state)

	m.emit(ctx, ActivityEventLoginSuccess, result.User.ID.String(), map[string]any{
		"email": email,
	})
	return nil
}

// Register posts registration data. The canonical success shape is a
// 2xx response whose body carries a user with a non-empty id; the
// historical looser shapes (bare success flag, bare 2xx) are rejected
// as malformed. Registration does not authenticate the session, it
// only reports success or failure.
func (m *SessionManager) Register(ctx context.Context, payload RegisterRequest) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	result, err := m.api.Register(ctx, payload)
	if err != nil {
		m.logger.Error("Registration request failed", "error", err)
		m.emit(ctx, ActivityEventRegisterFailure, "", map[string]any{
			"email": payload.Email,
			"error": err.Error(),
		})
		return err
	}

	if result == nil || result.User == nil || result.User.ID.IsZero() {
		m.logger.Error("Registration response is missing a user id")
		m.emit(ctx, ActivityEventRegisterFailure, "", map[string]any{
			"email": payload.Email,
			"error": ErrMalformedResponse.Message,
		})
		return ErrMalformedResponse
	}

	m.emit(ctx, ActivityEventRegisterSuccess, result.User.ID.String(), map[string]any{
		"email": payload.Email,
	})
	return nil
}

// Logout clears the credential store unconditionally and sets the
// session to anonymous. The backend call is best-effort; logout always
// succeeds from the caller's perspective.
func (m *SessionManager) Logout(ctx context.Context) {
	current := m.Current()

	if current.IsAuthenticated() {
		if err := m.api.Logout(ctx); err != nil {
			m.logger.Warn("Backend logout failed, clearing locally", "error", err)
		}
	}

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("Could not clear credential store", "error", err)
	}

	state := SessionState{Status: SessionAnonymous}
	m.setState(state)
	m.resolver.Complete(&state)

	m.emit(ctx, ActivityEventLogout, current.UserID.String(), nil)
}

// UpdateProfile sends a partial update keyed by the current user id
// and, on success, merges the fields into the in-memory identity
// (optimistic local merge, no re-fetch). Requires an authenticated
// session.
func (m *SessionManager) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	current := m.Current()
	if !current.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if err := update.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid profile update")
	}

	fields := update.Fields()
	if len(fields) == 0 {
		return nil
	}

	if err := m.api.UpdateProfile(ctx, current.UserID.String(), fields); err != nil {
		m.logger.Error("Profile update failed", "error", err)
		return err
	}

	m.mu.Lock()
	if m.session.Identity != nil {
		merged := m.session.Identity.Merge(fields)
		m.session.Identity = &merged
	}
	m.mu.Unlock()

	m.emit(ctx, ActivityEventProfileUpdated, current.UserID.String(), map[string]any{
		"fields": fieldNames(fields),
	})
	return nil
}

// UpdatePassword posts the old and new password to the update
// endpoint. It has no effect on the in-memory identity. Requires an
// existing session.
func (m *SessionManager) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	current := m.Current()
	if !current.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if oldPassword == "" || newPassword == "" {
		return goerrors.New("both password values are required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	if err := m.api.UpdatePassword(ctx, current.UserID.String(), oldPassword, newPassword); err != nil {
		m.logger.Error("Password update failed", "error", err)
		return err
	}

	m.emit(ctx, ActivityEventPasswordChanged, current.UserID.String(), nil)
	return nil
}

func (m *SessionManager) setState(state SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := checkTransition(m.session.Status, state.Status); err != nil {
		m.logger.Error("Session transition rejected", "error", err)
		return
	}
	m.session = state
}

func (m *SessionManager) emit(ctx context.Context, eventType ActivityEventType, userID string, meta map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		UserID:     userID,
		Status:     m.Current().Status,
		Metadata:   meta,
		OccurredAt: m.now(),
	}
	if err := m.sink.Record(ctx, event); err != nil {
		m.logger.Warn("Activity sink failed", "event", string(eventType), "error", err)
	}
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
