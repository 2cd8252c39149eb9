package store

import (
	"context"
	"errors"
	"testing"

	"github.com/ghaggin/tourpal/internal/model"
	"github.com/ghaggin/tourpal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore() (*Store, repository.Repository) {
	repo := repository.NewMemory()
	return New(repo, zap.NewNop()), repo
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	users := []*model.User{
		{ID: "1", FullName: "Admin Demo", Email: "admin@demo.com", UserType: model.Admin},
		{ID: "2", FullName: "User Demo", Email: "user@demo.com", UserType: model.Traveler},
		{ID: "b2c1", FullName: "", Email: "p@demo.com", UserType: model.Provider},
	}

	for _, u := range users {
		t.Run(u.Email, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			s, _ := newTestStore()

			require.NoError(s.Save(ctx, u, "token-"+u.ID))

			got, token := s.Load(ctx)
			require.Equal(u, got)
			require.Equal("token-"+u.ID, token)
		})
	}
}

func TestSave_RejectsHalfPair(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	assert.ErrorIs(t, s.Save(ctx, nil, "t"), ErrIncomplete)
	assert.ErrorIs(t, s.Save(ctx, &model.User{ID: "1", UserType: model.Admin}, ""), ErrIncomplete)
}

func TestLoad_Empty(t *testing.T) {
	s, _ := newTestStore()

	u, token := s.Load(context.Background())
	assert.Nil(t, u)
	assert.Empty(t, token)
}

func TestLoad_CorruptClearsStorage(t *testing.T) {
	tests := map[string]map[string]string{
		"malformed json": {UserKey: "{not json", TokenKey: "t"},
		"unknown role":   {UserKey: `{"id":"1","userType":"guide"}`, TokenKey: "t"},
		"missing token":  {UserKey: `{"id":"1","userType":"admin"}`},
		"missing user":   {TokenKey: "t"},
		"empty token":    {UserKey: `{"id":"1","userType":"admin"}`, TokenKey: ""},
	}

	for name, items := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			s, repo := newTestStore()
			for k, v := range items {
				require.NoError(repo.Set(ctx, k, v))
			}

			u, token := s.Load(ctx)
			require.Nil(u)
			require.Empty(token)

			_, err := repo.Get(ctx, UserKey)
			require.ErrorIs(err, repository.ErrNotFound)
			_, err = repo.Get(ctx, TokenKey)
			require.ErrorIs(err, repository.ErrNotFound)
		})
	}
}

type failingRepo struct {
	repository.Repository
}

func (failingRepo) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func TestLoad_ReadFailureIsAbsence(t *testing.T) {
	s := New(failingRepo{repository.NewMemory()}, zap.NewNop())

	u, token := s.Load(context.Background())
	assert.Nil(t, u)
	assert.Empty(t, token)
}

func TestClear(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	s, _ := newTestStore()

	require.NoError(s.Save(ctx, &model.User{ID: "1", UserType: model.Admin}, "t"))
	require.NoError(s.Clear(ctx))

	u, token := s.Load(ctx)
	require.Nil(u)
	require.Empty(token)
}
