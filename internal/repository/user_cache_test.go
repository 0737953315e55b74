package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-auth-service/internal/domain"
	"github.com/spec-kit/token-auth-service/internal/repository"
)

type memoryUsers struct {
	mu      sync.Mutex
	byName  map[string]*domain.User
	lookups int
}

func newMemoryUsers(users ...*domain.User) *memoryUsers {
	m := &memoryUsers{byName: map[string]*domain.User{}}
	for _, u := range users {
		m.byName[u.Username] = u
	}
	return m
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byName[user.Username] = user
	return nil
}

func (m *memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	u, ok := m.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func newCache(t *testing.T, next repository.UserRepository, ttl time.Duration) (repository.UserRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repository.NewCachedUserRepository(next, client, ttl, nil), srv
}

func TestCachedUserRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backing := newMemoryUsers(&domain.User{ID: "1", Username: "alice", PasswordHash: "h", Authorities: []string{"ROLE_USER"}})
	repo, srv := newCache(t, backing, time.Minute)

	first, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	second, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, backing.lookups)
	assert.Equal(t, first.Authorities, second.Authorities)
	assert.Equal(t, "h", second.PasswordHash)
	assert.True(t, srv.Exists("auth:user:alice"))
	assert.Equal(t, time.Minute, srv.TTL("auth:user:alice"))

	srv.FastForward(2 * time.Minute)
	_, err = repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.lookups)
}

func TestCachedUserRepository_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	backing := newMemoryUsers()
	repo, srv := newCache(t, backing, time.Minute)

	_, err := repo.GetByUsername(ctx, "ghost")
	assert.True(t, repository.IsNotFound(err))
	assert.False(t, srv.Exists("auth:user:ghost"))

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "ghost", PasswordHash: "h"}))
	user, err := repo.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", user.Username)
}

func TestCachedUserRepository_FallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	backing := newMemoryUsers(&domain.User{Username: "alice", PasswordHash: "h"})
	repo, srv := newCache(t, backing, time.Minute)
	srv.Close()

	user, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestCachedUserRepository_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	backing := newMemoryUsers(&domain.User{Username: "alice", PasswordHash: "h"})
	repo, srv := newCache(t, backing, time.Minute)
	require.NoError(t, srv.Set("auth:user:alice", "{not json"))

	user, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", user.PasswordHash)
	assert.Equal(t, 1, backing.lookups)
}

func TestNewCachedUserRepository_Disabled(t *testing.T) {
	backing := newMemoryUsers()
	assert.Same(t, repository.UserRepository(backing), repository.NewCachedUserRepository(backing, nil, time.Minute, nil))
}
