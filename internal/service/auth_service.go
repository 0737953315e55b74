package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/token-auth-service/internal/auth"
	"github.com/spec-kit/token-auth-service/internal/events"
	"github.com/spec-kit/token-auth-service/internal/observability"
	"github.com/spec-kit/token-auth-service/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTokenIssuance hides signing failures from callers.
	ErrTokenIssuance = errors.New("cannot issue token")
	// ErrUserStoreUnavailable means no user store is configured.
	ErrUserStoreUnavailable = errors.New("user store unavailable")
)

// decoyPassword is hashed once so unknown usernames pay for a bcrypt
// comparison like known ones.
const decoyPassword = "decoy-password-for-unknown-accounts"

// CredentialHasher hashes and verifies account passwords.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Matches(hashed, plain string) bool
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Username    string
	Token       string
	Authorities []string
	ExpiresAt   time.Time
}

// AuthService coordinates the login flow.
type AuthService struct {
	users   repository.UserRepository
	hasher  CredentialHasher
	decoy   string
	issuer  *auth.TokenIssuer
	now     func() time.Time
	logger  *zap.Logger
	metrics *observability.Metrics
	events  events.Dispatcher
}

// AuthDependencies encapsulates the collaborators of the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Hasher   CredentialHasher
	Issuer   *auth.TokenIssuer
	Clock    func() time.Time
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Events   events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	s := &AuthService{
		users:   deps.UserRepo,
		hasher:  deps.Hasher,
		issuer:  deps.Issuer,
		now:     deps.Clock,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		events:  deps.Events,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if decoy, err := s.hasher.Hash(decoyPassword); err == nil {
		s.decoy = decoy
	} else {
		s.logger.Warn("cannot prepare decoy password hash", zap.Error(err))
	}
	return s
}

// Login verifies the credentials and issues a bearer token carrying the
// account's authorities.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			s.hasher.Matches(s.decoy, password)
			s.loginFailed(ctx, username, "unknown_user")
			return nil, ErrInvalidCredentials
		}
		s.metrics.RecordLogin("error")
		if errors.Is(err, repository.ErrUserStoreUnavailable) {
			return nil, ErrUserStoreUnavailable
		}
		return nil, err
	}
	if !s.hasher.Matches(user.PasswordHash, password) {
		s.loginFailed(ctx, username, "bad_password")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.issuer.Issue(user.Username, user.Authorities, now)
	if err != nil {
		s.logger.Error("token issuance failed", zap.String("username", user.Username), zap.Error(err))
		s.metrics.RecordLogin("error")
		return nil, ErrTokenIssuance
	}

	result := &LoginResult{
		Username:    user.Username,
		Token:       token,
		Authorities: user.Authorities,
		ExpiresAt:   s.issuer.ExpiresAt(now),
	}

	s.metrics.RecordTokenIssued()
	s.metrics.RecordLogin("success")
	s.publish(ctx, events.NewEvent(events.EventLoginSucceeded, user.Username, events.LoginSucceededPayload{
		Authorities: user.Authorities,
		ExpiresAt:   result.ExpiresAt,
	}))
	return result, nil
}

func (s *AuthService) loginFailed(ctx context.Context, username, reason string) {
	s.metrics.RecordLogin("failure")
	s.publish(ctx, events.NewEvent(events.EventLoginFailed, username, events.LoginFailedPayload{Reason: reason}))
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if err := events.Publish(ctx, s.events, event); err != nil {
		s.logger.Warn("publish auth event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
