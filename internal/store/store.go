package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ghaggin/tourpal/internal/model"
	"github.com/ghaggin/tourpal/internal/repository"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	UserKey  = "tourpal_user"
	TokenKey = "tourpal_token"
)

var (
	ErrIncomplete = errors.New("user and token must be saved together")
)

// Store persists the session pair under two fixed keys.
type Store struct {
	repo repository.Repository
	log  *zap.Logger
}

func New(repo repository.Repository, log *zap.Logger) *Store {
	return &Store{
		repo: repo,
		log:  log,
	}
}

func (s *Store) Save(ctx context.Context, user *model.User, token string) error {
	if user == nil || token == "" {
		return ErrIncomplete
	}

	b, err := json.Marshal(user)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal user")
	}

	if err := s.repo.Set(ctx, UserKey, string(b)); err != nil {
		return pkgerrors.Wrap(err, "failed to save user")
	}
	if err := s.repo.Set(ctx, TokenKey, token); err != nil {
		return pkgerrors.Wrap(err, "failed to save token")
	}

	return nil
}

// Load returns the saved pair, or (nil, "") when nothing usable is stored.
// A corrupt or half-written pair is removed.
func (s *Store) Load(ctx context.Context) (*model.User, string) {
	rawUser, userErr := s.repo.Get(ctx, UserKey)
	token, tokenErr := s.repo.Get(ctx, TokenKey)

	if errors.Is(userErr, repository.ErrNotFound) && errors.Is(tokenErr, repository.ErrNotFound) {
		return nil, ""
	}

	for _, err := range []error{userErr, tokenErr} {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("failed reading persisted session", zap.Error(err))
			return nil, ""
		}
	}

	user, err := decodeUser(rawUser)
	if err != nil || userErr != nil || tokenErr != nil || token == "" {
		s.log.Warn("discarding corrupt persisted session", zap.NamedError("cause", err))
		if err := s.Clear(ctx); err != nil {
			s.log.Warn("failed clearing corrupt persisted session", zap.Error(err))
		}
		return nil, ""
	}

	return user, token
}

func (s *Store) Clear(ctx context.Context) error {
	userErr := s.repo.Delete(ctx, UserKey)
	tokenErr := s.repo.Delete(ctx, TokenKey)

	if userErr != nil {
		return pkgerrors.Wrap(userErr, "failed to clear user")
	}
	if tokenErr != nil {
		return pkgerrors.Wrap(tokenErr, "failed to clear token")
	}

	return nil
}

func decodeUser(raw string) (*model.User, error) {
	if raw == "" {
		return nil, errors.New("empty user record")
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}

	role, err := model.ParseRole(string(u.UserType))
	if err != nil {
		return nil, err
	}
	u.UserType = role

	return &u, nil
}
