package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/royaisolutions/agency-api/internal/entity"
)

type ProposalRepository struct {
	DB *sql.DB
}

func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{DB: db}
}

func (r *ProposalRepository) Create(ctx context.Context, p *entity.Proposal) error {
	services, err := json.Marshal(p.Services)
	if err != nil {
		return fmt.Errorf("marshal services: %w", err)
	}

	query := `
		INSERT INTO proposals (
			id, proposal_number, first_name, last_name, email, phone,
			company_name, industry, services, budget, timeline, requirements,
			current_challenges, one_time_total, monthly_total, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = r.DB.ExecContext(ctx, query,
		p.ID,
		p.ProposalNumber,
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		p.CompanyName,
		nullString(p.Industry),
		services,
		p.Budget,
		p.Timeline,
		p.Requirements,
		nullString(p.CurrentChallenges),
		p.OneTimeTotal,
		p.MonthlyTotal,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*entity.Proposal, error) {
	query := `
		SELECT id, proposal_number, first_name, last_name, email, phone,
		       company_name, COALESCE(industry, ''), services, budget, timeline,
		       requirements, COALESCE(current_challenges, ''), one_time_total,
		       monthly_total, status, created_at, updated_at
		FROM proposals
		WHERE id = $1
	`

	var p entity.Proposal
	var services []byte

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.ProposalNumber,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.CompanyName,
		&p.Industry,
		&services,
		&p.Budget,
		&p.Timeline,
		&p.Requirements,
		&p.CurrentChallenges,
		&p.OneTimeTotal,
		&p.MonthlyTotal,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrProposalNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(services, &p.Services); err != nil {
		return nil, fmt.Errorf("unmarshal services: %w", err)
	}

	return &p, nil
}

// MarkViewed only fires from 'generated', so rereads never regress or
// re-trigger the transition.
func (r *ProposalRepository) MarkViewed(ctx context.Context, id string) error {
	query := `
		UPDATE proposals
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	_, err := r.DB.ExecContext(ctx, query, entity.ProposalStatusViewed, id, entity.ProposalStatusGenerated)
	return err
}

// MarkPaid is terminal; the guard keeps the transition monotonic even if
// verification replays.
func (r *ProposalRepository) MarkPaid(ctx context.Context, id string) error {
	query := `
		UPDATE proposals
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status <> $1
	`
	_, err := r.DB.ExecContext(ctx, query, entity.ProposalStatusPaid, id)
	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
