package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/token-auth-service/internal/config"
	"github.com/spec-kit/token-auth-service/internal/domain"
	"github.com/spec-kit/token-auth-service/internal/events"
	"github.com/spec-kit/token-auth-service/internal/repository"
)

// SeedService creates the configured default accounts when they are missing.
type SeedService struct {
	users  repository.UserRepository
	hasher CredentialHasher
	cfg    config.SeedConfig
	logger *zap.Logger
	events events.Dispatcher
}

// NewSeedService builds the service.
func NewSeedService(users repository.UserRepository, hasher CredentialHasher, cfg config.SeedConfig, logger *zap.Logger, dispatcher events.Dispatcher) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{users: users, hasher: hasher, cfg: cfg, logger: logger, events: dispatcher}
}

// Run creates each default account that does not exist yet and returns how
// many were created. Accounts with a blank username, password or role are skipped.
func (s *SeedService) Run(ctx context.Context) (int, error) {
	role := strings.TrimSpace(s.cfg.DefaultRole)
	s.logger.Info("checking default users", zap.String("role", role))

	created := 0
	for _, account := range s.cfg.Accounts() {
		ok, err := s.ensure(ctx, account, role)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	s.logger.Info("default user initialization finished", zap.Int("created", created))
	return created, nil
}

func (s *SeedService) ensure(ctx context.Context, account config.DefaultAccount, role string) (bool, error) {
	username := strings.TrimSpace(account.Username)
	if username == "" || account.Password == "" {
		s.logger.Warn("skipping default user with missing username or password")
		return false, nil
	}
	if role == "" {
		s.logger.Warn("skipping default user with missing role", zap.String("username", username))
		return false, nil
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		s.logger.Info("default user already exists", zap.String("username", username))
		return false, nil
	}
	if !repository.IsNotFound(err) {
		return false, fmt.Errorf("lookup default user %s: %w", username, err)
	}

	hash, err := s.hasher.Hash(account.Password)
	if err != nil {
		return false, fmt.Errorf("hash default user %s: %w", username, err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Authorities:  []string{domain.RoleAuthority(role)},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("create default user %s: %w", username, err)
	}

	s.logger.Info("created default user", zap.String("username", username), zap.Strings("authorities", user.Authorities))
	if err := events.Publish(ctx, s.events, events.NewEvent(events.EventDefaultUserCreated, username, nil)); err != nil {
		s.logger.Warn("publish auth event", zap.Error(err))
	}
	return true, nil
}
