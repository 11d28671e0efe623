package frigocheck_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

// tokenFor42 decodes to {"id":42,"email":"a@b.com"}.
const tokenFor42 = "x.eyJpZCI6NDIsImVtYWlsIjoiYUBiLmNvbSJ9.y"

func TestResolverEmptyStore(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{}

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Equal(t, frigocheck.SessionAnonymous, state.Status)
	// No network calls happen when there is no token.
	mockAPI.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestResolverStoreReadFailure(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{readErr: errors.New("disk gone")}

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Equal(t, frigocheck.SessionAnonymous, state.Status)
}

func TestResolverAuthenticates(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: "stored-token", userID: "7"}

	user := &frigocheck.User{ID: "7", Firstname: "Ada", Email: "ada@example.com"}
	mockAPI.On("FetchProfile", ctx, "7").Return(user, nil).Once()

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Equal(t, frigocheck.SessionAuthenticated, state.Status)
	assert.Equal(t, "7", state.UserID.String())
	require.NotNil(t, state.Identity)
	assert.Equal(t, "ada@example.com", state.Identity.Email)
	mockAPI.AssertExpectations(t)
}

func TestResolverDerivesUserIDFromToken(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: tokenFor42}

	user := &frigocheck.User{ID: "42", Email: "a@b.com"}
	mockAPI.On("FetchProfile", ctx, "42").Return(user, nil).Once()

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Equal(t, frigocheck.SessionAuthenticated, state.Status)

	// The derived id is persisted so the next cold start skips decoding.
	creds := store.credentials()
	assert.Equal(t, tokenFor42, creds.Token)
	assert.Equal(t, "42", creds.UserID)
	mockAPI.AssertExpectations(t)
}

func TestResolverUndecodableTokenIsAnonymous(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: "garbage"}

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Equal(t, frigocheck.SessionAnonymous, state.Status)
	mockAPI.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestResolverProfileFetchFailurePreservesToken(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: "stored-token", userID: "7"}

	mockAPI.On("FetchProfile", ctx, "7").Return(nil, errors.New("backend down")).Once()

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Equal(t, frigocheck.SessionAnonymous, state.Status)

	// A failed passive resolution never clears credentials; only
	// explicit login/logout write to the store.
	creds := store.credentials()
	assert.Equal(t, "stored-token", creds.Token)
	assert.Equal(t, "7", creds.UserID)
}

func TestResolverProfileWithoutIDIsAnonymous(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: "stored-token", userID: "7"}

	mockAPI.On("FetchProfile", ctx, "7").Return(&frigocheck.User{}, nil).Once()

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Equal(t, frigocheck.SessionAnonymous, state.Status)
}

func TestResolverResolvesOnce(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: "stored-token", userID: "7"}

	user := &frigocheck.User{ID: "7"}
	// Once() makes a second fetch fail the test.
	mockAPI.On("FetchProfile", ctx, "7").Return(user, nil).Once()

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	first, err := resolver.Resolve(ctx)
	require.NoError(t, err)

	second, err := resolver.Resolve(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	mockAPI.AssertExpectations(t)
}

func TestResolverConcurrentCallsCollapse(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: "stored-token", userID: "7"}

	user := &frigocheck.User{ID: "7"}
	mockAPI.On("FetchProfile", ctx, "7").Return(user, nil).Once()

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	const callers = 16
	states := make([]*frigocheck.SessionState, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			state, err := resolver.Resolve(ctx)
			assert.NoError(t, err)
			states[i] = state
		}(i)
	}
	wg.Wait()

	for _, state := range states {
		require.NotNil(t, state)
		assert.Same(t, states[0], state)
	}
	mockAPI.AssertNumberOfCalls(t, "FetchProfile", 1)
}

func TestResolverCompleteBeforeResolve(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockAPI)
	store := &memStore{token: "stored-token", userID: "7"}

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	authenticated := &frigocheck.SessionState{
		Status: frigocheck.SessionAuthenticated,
		UserID: "7",
	}
	resolver.Complete(authenticated)

	// Completion short-circuits the pass entirely; no profile fetch.
	state, err := resolver.Resolve(ctx)

	require.NoError(t, err)
	assert.Same(t, authenticated, state)
	mockAPI.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestResolverContextCancelledWhileWaiting(t *testing.T) {
	mockAPI := new(MockAPI)
	store := &memStore{token: "stored-token", userID: "7"}

	started := make(chan struct{})
	release := make(chan struct{})
	user := &frigocheck.User{ID: "7"}
	mockAPI.On("FetchProfile", mock.Anything, "7").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(user, nil).Once()

	resolver := frigocheck.NewSessionResolver(store, mockAPI)

	go func() {
		_, _ = resolver.Resolve(context.Background())
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
}
