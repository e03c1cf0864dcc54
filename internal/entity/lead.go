package entity

import (
	"context"
	"time"
)

// Lead is a validated contact-form submission. Immutable after creation
// except for administrative deletion.
type Lead struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Budget    string    `json:"budget"`
	Needs     string    `json:"needs"`
	CreatedAt time.Time `json:"created_at"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
}
