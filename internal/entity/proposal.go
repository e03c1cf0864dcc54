package entity

import (
	"context"
	"time"
)

// Proposal lifecycle. Transitions are monotonic: generated -> viewed -> paid,
// never backwards.
const (
	ProposalStatusGenerated = "generated"
	ProposalStatusViewed    = "viewed"
	ProposalStatusPaid      = "paid"
)

// ServiceSelection is one line item of a proposal. Price is in minor
// currency units. Recurring services bill monthly.
type ServiceSelection struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Price     int64  `json:"price"`
	Recurring bool   `json:"recurring"`
}

type Proposal struct {
	ID                string             `json:"id"`
	ProposalNumber    string             `json:"proposal_number"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	CompanyName       string             `json:"company_name"`
	Industry          string             `json:"industry,omitempty"`
	Services          []ServiceSelection `json:"services"`
	Budget            string             `json:"budget"`
	Timeline          string             `json:"timeline"`
	Requirements      string             `json:"requirements"`
	CurrentChallenges string             `json:"current_challenges,omitempty"`
	OneTimeTotal      int64              `json:"one_time_total"`
	MonthlyTotal      int64              `json:"monthly_total"`
	Status            string             `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (p *Proposal) ClientName() string {
	return p.FirstName + " " + p.LastName
}

// ComputeTotals derives both totals from the selected services. Client-sent
// totals are never trusted.
func ComputeTotals(services []ServiceSelection) (oneTime, monthly int64) {
	for _, s := range services {
		if s.Recurring {
			monthly += s.Price
		} else {
			oneTime += s.Price
		}
	}
	return oneTime, monthly
}

// FullAmount is the checkout amount for a "full" payment: both totals summed.
func (p *Proposal) FullAmount() int64 {
	return p.OneTimeTotal + p.MonthlyTotal
}

// DepositAmount is half the full amount, rounded up.
func (p *Proposal) DepositAmount() int64 {
	return (p.FullAmount() + 1) / 2
}

type ProposalRepositoryInterface interface {
	Create(ctx context.Context, p *Proposal) error
	FindByID(ctx context.Context, id string) (*Proposal, error)
	// MarkViewed flips generated -> viewed and is a no-op for any other
	// current status.
	MarkViewed(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) error
}
