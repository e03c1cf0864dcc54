package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/royaisolutions/agency-api/internal/entity"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Create relies on the unique index on stripe_checkout_session_id: two
// concurrent verifications of the same session can both pass the existence
// check, but only one insert lands.
func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (
			id, proposal_id, stripe_checkout_session_id, stripe_payment_intent_id,
			amount, payment_type, status, client_email, client_name, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.ProposalID,
		p.CheckoutSessionID,
		p.PaymentIntentID,
		p.Amount,
		p.PaymentType,
		p.Status,
		p.ClientEmail,
		p.ClientName,
		p.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateSession
		}
		log.Printf("payment insert error: %v", err)
		return err
	}

	return nil
}

func (r *PaymentRepository) ExistsBySessionID(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE stripe_checkout_session_id = $1)`,
		sessionID,
	).Scan(&exists)
	return exists, err
}
