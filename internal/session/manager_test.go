package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ghaggin/tourpal/internal/model"
	"github.com/ghaggin/tourpal/internal/repository"
	"github.com/ghaggin/tourpal/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var admin = &model.User{ID: "1", FullName: "Admin Demo", Email: "admin@demo.com", UserType: model.Admin}

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	s := store.New(repository.NewMemory(), zap.NewNop())
	return NewManager(s, zap.NewNop()), s
}

func TestManager_StartsUninitialized(t *testing.T) {
	m, _ := newTestManager(t)

	snap := m.Snapshot()
	assert.Equal(t, model.Uninitialized, snap.State)
	assert.True(t, snap.Loading())
	assert.False(t, snap.IsAuthenticated())
}

func TestManager_InitAnonymous(t *testing.T) {
	m, _ := newTestManager(t)
	m.Init(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, model.Anonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
}

func TestManager_InitRestoresAndRunsOnce(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	m, s := newTestManager(t)
	require.NoError(s.Save(ctx, admin, "tok"))

	m.Init(ctx)
	require.Equal(model.Authenticated, m.Snapshot().State)
	require.Equal(admin, m.Snapshot().User)

	// a later store change must not be picked up by a second Init
	require.NoError(s.Clear(ctx))
	m.Init(ctx)
	require.Equal("tok", m.Token())
}

func TestManager_LoginLogout(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	m, s := newTestManager(t)
	m.Init(ctx)

	require.NoError(m.Login(ctx, admin, "tok"))
	snap := m.Snapshot()
	require.Equal(model.Authenticated, snap.State)
	require.True(snap.IsAuthenticated())
	require.Equal(model.Admin, snap.User.UserType)

	u, token := s.Load(ctx)
	require.Equal(admin, u)
	require.Equal("tok", token)

	require.NoError(m.Logout(ctx))
	snap = m.Snapshot()
	require.Equal(model.Anonymous, snap.State)
	require.Nil(snap.User)
	require.Empty(snap.Token)

	u, token = s.Load(ctx)
	require.Nil(u)
	require.Empty(token)
}

func TestManager_LoginKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	u := *admin
	require.NoError(t, m.Login(ctx, &u, "tok"))
	u.FullName = "changed"

	assert.Equal(t, "Admin Demo", m.Snapshot().User.FullName)
}

func TestManager_IncompleteLoginLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.Login(ctx, admin, "tok"))

	assert.ErrorIs(t, m.Login(ctx, nil, "other"), ErrIncomplete)
	assert.ErrorIs(t, m.Login(ctx, &model.User{ID: "2", UserType: model.Traveler}, ""), ErrIncomplete)

	snap := m.Snapshot()
	assert.Equal(t, admin, snap.User)
	assert.Equal(t, "tok", snap.Token)
}

type brokenRepo struct {
	repository.Repository
}

func (brokenRepo) Set(context.Context, string, string) error {
	return errors.New("read-only")
}

func TestManager_PersistFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.New(brokenRepo{repository.NewMemory()}, zap.NewNop()), zap.NewNop())
	m.Init(ctx)

	assert.Error(t, m.Login(ctx, admin, "tok"))
	assert.Equal(t, model.Anonymous, m.Snapshot().State)
}

func TestManager_ClearSignsOut(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.Login(ctx, admin, "tok"))

	require.NoError(t, m.Clear(ctx))
	assert.False(t, m.Snapshot().IsAuthenticated())
}

func TestManager_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	m.Init(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := m.Snapshot()
			// token and user always move together
			assert.Equal(t, snap.Token != "", snap.User != nil)
		}()
	}
	require.NoError(t, m.Login(ctx, admin, "tok"))
	wg.Wait()
}

func TestManager_ExpiresAt(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, ok := m.ExpiresAt()
	assert.False(t, ok)

	require.NoError(t, m.Login(ctx, admin, "opaque-token"))
	_, ok = m.ExpiresAt()
	assert.False(t, ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	require.NoError(t, m.Login(ctx, admin, signed))
	got, ok := m.ExpiresAt()
	assert.True(t, ok)
	assert.True(t, exp.Equal(got))
}

// blockingRepo holds every Set until release is closed.
type blockingRepo struct {
	repository.Repository
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRepo) Set(ctx context.Context, key string, value string) error {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
	return b.Repository.Set(ctx, key, value)
}

func TestManager_ReadersDoNotWaitOnPersist(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	repo := &blockingRepo{
		Repository: repository.NewMemory(),
		entered:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	m := NewManager(store.New(repo, zap.NewNop()), zap.NewNop())
	m.Init(ctx)

	done := make(chan error, 1)
	go func() { done <- m.Login(ctx, admin, "tok") }()
	<-repo.entered

	read := make(chan string, 1)
	go func() { read <- m.Token() }()

	select {
	case token := <-read:
		require.Empty(token)
	case <-time.After(time.Second):
		close(repo.release)
		t.Fatal("Token blocked while the session was being persisted")
	}

	close(repo.release)
	require.NoError(<-done)
	require.Equal("tok", m.Token())
}
