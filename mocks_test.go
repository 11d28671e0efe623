package frigocheck_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

// MockAPI implements frigocheck.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*frigocheck.LoginResult, error) {
	args := m.Called(ctx, email, password)
	var result *frigocheck.LoginResult
	if v := args.Get(0); v != nil {
		result = v.(*frigocheck.LoginResult)
	}
	return result, args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, payload frigocheck.RegisterRequest) (*frigocheck.RegisterResult, error) {
	args := m.Called(ctx, payload)
	var result *frigocheck.RegisterResult
	if v := args.Get(0); v != nil {
		result = v.(*frigocheck.RegisterResult)
	}
	return result, args.Error(1)
}

func (m *MockAPI) FetchProfile(ctx context.Context, userID string) (*frigocheck.User, error) {
	args := m.Called(ctx, userID)
	var user *frigocheck.User
	if v := args.Get(0); v != nil {
		user = v.(*frigocheck.User)
	}
	return user, args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAPI) UpdateProfile(ctx context.Context, userID string, fields map[string]any) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

func (m *MockAPI) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

// MockCredentialStore implements frigocheck.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Save(ctx context.Context, token, userID string) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *MockCredentialStore) Read(ctx context.Context) (frigocheck.Credentials, error) {
	args := m.Called(ctx)
	return args.Get(0).(frigocheck.Credentials), args.Error(1)
}

func (m *MockCredentialStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memStore is a minimal in-process store for tests that assert on the
// persisted values rather than on call expectations.
type memStore struct {
	mu     sync.Mutex
	token  string
	userID string

	saveErr  error
	readErr  error
	clearErr error
}

func (s *memStore) Save(_ context.Context, token, userID string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.userID = userID
	return nil
}

func (s *memStore) Read(context.Context) (frigocheck.Credentials, error) {
	if s.readErr != nil {
		return frigocheck.Credentials{}, s.readErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return frigocheck.Credentials{Token: s.token, UserID: s.userID}, nil
}

func (s *memStore) Clear(context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userID = ""
	return nil
}

func (s *memStore) credentials() frigocheck.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return frigocheck.Credentials{Token: s.token, UserID: s.userID}
}

// recordingSink captures activity events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []frigocheck.ActivityEvent
}

func (s *recordingSink) Record(_ context.Context, event frigocheck.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) types() []frigocheck.ActivityEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]frigocheck.ActivityEventType, 0, len(s.events))
	for _, event := range s.events {
		types = append(types, event.EventType)
	}
	return types
}
