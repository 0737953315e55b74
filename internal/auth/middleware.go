package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/token-auth-service/internal/events"
	"github.com/spec-kit/token-auth-service/internal/observability"
	apperrors "github.com/spec-kit/token-auth-service/pkg/util/errorutil"
)

// Messages returned to clients when a presented token is refused. They never
// include the validation cause.
const (
	RejectedTokenMessage = "Invalid or expired token."
	InternalErrorMessage = "Internal server error during authentication processing."
)

// Gate validates bearer tokens on every request and projects valid claims
// into the request security context.
type Gate struct {
	validator *TokenValidator
	logger    *zap.Logger
	metrics   *observability.Metrics
	events    events.Dispatcher
}

// GateDependencies bundles the optional collaborators of the gate.
type GateDependencies struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Events  events.Dispatcher
}

// NewGate constructs the middleware.
func NewGate(validator *TokenValidator, deps GateDependencies) *Gate {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		validator: validator,
		logger:    logger,
		metrics:   deps.Metrics,
		events:    deps.Events,
	}
}

// Handle runs on every request. Requests without a bearer token, or with a
// valid token that grants no authorities, continue anonymously. Rejected
// tokens end the request with 403 and unexpected failures with 500.
func (g *Gate) Handle(c *fiber.Ctx) error {
	ClearSecurityContext(c)

	outcome := g.validator.Validate(c.Get(fiber.HeaderAuthorization))
	g.metrics.RecordGateOutcome(outcome.Label())

	switch outcome.Kind {
	case OutcomeValid:
		SetSecurityContext(c, NewSecurityContext(outcome.Claims.Subject, outcome.Claims.Authorities))
		return c.Next()
	case OutcomeNoCredential:
		return c.Next()
	case OutcomeValidNoAuthorities:
		g.logger.Debug("token carries no authorities", zap.String("subject", outcome.Claims.Subject))
		return c.Next()
	case OutcomeRejected:
		g.logger.Debug("bearer token rejected",
			zap.String("reason", outcome.Rejection.String()),
			zap.String("path", c.Path()),
			zap.Error(outcome.Err),
		)
		g.publish(c, events.EventTokenRejected, outcome.Rejection.String())
		return apperrors.NewForbidden(RejectedTokenMessage)
	default:
		g.logger.Error("bearer token validation failed", zap.String("path", c.Path()), zap.Error(outcome.Err))
		g.publish(c, events.EventTokenInternalFailure, outcome.Kind.String())
		return apperrors.NewDomainError("INTERNAL_ERROR", InternalErrorMessage, fiber.StatusInternalServerError, nil)
	}
}

func (g *Gate) publish(c *fiber.Ctx, eventType events.EventType, reason string) {
	event := events.NewEvent(eventType, "", events.TokenRejectedPayload{
		Reason: reason,
		Method: c.Method(),
		Path:   c.Path(),
	})
	if err := events.Publish(c.UserContext(), g.events, event); err != nil {
		g.logger.Warn("publish auth event", zap.Error(err))
	}
}
