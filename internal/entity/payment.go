package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrDuplicateSession means a payment row already exists for the
	// checkout session. Verification treats it as an idempotent replay,
	// not a failure.
	ErrDuplicateSession = errors.New("payment already recorded for session")
)

const (
	PaymentTypeDeposit = "deposit"
	PaymentTypeFull    = "full"
)

// Payment is one processor transaction tied to exactly one proposal.
// Created only after the processor reports the session as paid.
type Payment struct {
	ID                string    `json:"id"`
	ProposalID        string    `json:"proposal_id"`
	CheckoutSessionID string    `json:"stripe_checkout_session_id"`
	PaymentIntentID   string    `json:"stripe_payment_intent_id"`
	Amount            int64     `json:"amount"`
	PaymentType       string    `json:"payment_type"`
	Status            string    `json:"status"`
	ClientEmail       string    `json:"client_email"`
	ClientName        string    `json:"client_name"`
	CreatedAt         time.Time `json:"created_at"`
}

type PaymentRepositoryInterface interface {
	// Create returns ErrDuplicateSession when a row for the same checkout
	// session id already exists.
	Create(ctx context.Context, p *Payment) error
	ExistsBySessionID(ctx context.Context, sessionID string) (bool, error)
}
