package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ghaggin/tourpal/internal/model"
	"github.com/ghaggin/tourpal/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrIncomplete = errors.New("login requires both a user and a token")
)

// Manager owns the process-wide session. It starts uninitialized and
// becomes anonymous or authenticated once Init has read the store.
type Manager struct {
	store *store.Store
	log   *zap.Logger

	once sync.Once
	// write serializes Login and Logout. mu guards the fields below and is
	// never held across store I/O.
	write sync.Mutex
	mu    sync.RWMutex
	state model.State
	user  *model.User
	token string
}

func NewManager(s *store.Store, log *zap.Logger) *Manager {
	return &Manager{
		store: s,
		log:   log,
		state: model.Uninitialized,
	}
}

// RegisterHooks loads the persisted session when the app starts.
func RegisterHooks(lc fx.Lifecycle, m *Manager) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			m.Init(ctx)
			return nil
		},
	})
}

// Init reads the persisted session. Only the first call has any effect.
func (m *Manager) Init(ctx context.Context) {
	m.once.Do(func() {
		user, token := m.store.Load(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()

		if user != nil && token != "" {
			m.user, m.token, m.state = user, token, model.Authenticated
			m.log.Info("restored session", zap.String("user_id", user.ID), zap.String("role", string(user.UserType)))
			return
		}

		m.state = model.Anonymous
	})
}

func (m *Manager) Snapshot() model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return model.Session{
		State: m.state,
		User:  m.user,
		Token: m.token,
	}
}

// Token satisfies api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Login replaces the session wholesale and persists it. On error the
// previous session is left as it was.
func (m *Manager) Login(ctx context.Context, user *model.User, token string) error {
	if user == nil || token == "" {
		return ErrIncomplete
	}
	m.Init(ctx)

	snapshot := *user

	m.write.Lock()
	defer m.write.Unlock()

	if err := m.store.Save(ctx, &snapshot, token); err != nil {
		return err
	}

	m.mu.Lock()
	m.user, m.token, m.state = &snapshot, token, model.Authenticated
	m.mu.Unlock()
	return nil
}

// Logout clears both the in-memory and the persisted session.
func (m *Manager) Logout(ctx context.Context) error {
	m.Init(ctx)

	m.write.Lock()
	defer m.write.Unlock()

	m.mu.Lock()
	m.user, m.token, m.state = nil, "", model.Anonymous
	m.mu.Unlock()

	return m.store.Clear(ctx)
}

// Clear satisfies api.Clearer so a rejected token signs the user out.
func (m *Manager) Clear(ctx context.Context) error {
	return m.Logout(ctx)
}

// ExpiresAt reads the exp claim of a JWT bearer token without verifying
// it. Opaque tokens report false.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
