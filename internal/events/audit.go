package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLogger writes every authentication event to logger.
func RegisterAuditLogger(d Dispatcher, logger *zap.Logger) {
	if d == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	handler := func(_ context.Context, event Event) error {
		fields := []zap.Field{
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Time("timestamp", event.Timestamp),
		}
		if event.Principal != "" {
			fields = append(fields, zap.String("principal", event.Principal))
		}
		if event.Payload != nil {
			fields = append(fields, zap.Any("payload", event.Payload))
		}
		switch event.Type {
		case EventLoginFailed, EventTokenRejected, EventTokenInternalFailure:
			audit.Warn("auth event", fields...)
		default:
			audit.Info("auth event", fields...)
		}
		return nil
	}
	d.SubscribeAll(handler)
}
