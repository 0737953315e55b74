package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/token-auth-service/internal/auth"
	"github.com/spec-kit/token-auth-service/internal/domain"
)

var (
	testSecret = strings.Repeat("k", auth.MinSecretLength)
	testNow    = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	testHasher = auth.NewPasswordHasher(bcrypt.MinCost)
)

type fakeUsers struct {
	mu        sync.Mutex
	byName    map[string]*domain.User
	lookupErr error
	createErr error
	created   []*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: map[string]*domain.User{}}
}

func (f *fakeUsers) add(t *testing.T, username, password string, authorities ...string) {
	t.Helper()
	hash, err := testHasher.Hash(password)
	require.NoError(t, err)
	f.byName[username] = &domain.User{ID: username + "-id", Username: username, PasswordHash: hash, Authorities: authorities}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.byName[user.Username] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

var errDatabaseDown = errors.New("database down")
