package usecase

import (
	"context"

	"github.com/royaisolutions/agency-api/internal/infra/integration/stripe"
	"github.com/royaisolutions/agency-api/internal/infra/queue"
)

// CheckoutGateway is the narrow capability boundary to the payment
// processor. Only session creation and retrieval cross it, so the
// processor implementation is swappable without touching pipeline logic.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, input stripe.CreateSessionInput) (*stripe.Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*stripe.Session, error)
}

// NotificationPublisher dispatches best-effort notification emails after
// the primary operation commits. Failures are logged by callers, never
// propagated.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}
