package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/royaisolutions/agency-api/internal/entity"
)

type SubmitLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewSubmitLeadUseCase(leadRepo entity.LeadRepositoryInterface) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{LeadRepo: leadRepo}
}

// Execute validates and persists one lead. Rate limiting happens before
// this is called; no partial state is left on a validation failure.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	validationErrors := ValidateSubmitLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: validationErrors[0].Error(),
		}
	}

	lead := &entity.Lead{
		ID:        uuid.New().String(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Company:   strings.TrimSpace(input.Company),
		Budget:    strings.TrimSpace(input.Budget),
		Needs:     strings.TrimSpace(input.Needs),
		CreatedAt: time.Now(),
	}

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		log.Printf("lead insert failed: %v", err)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "Failed to submit. Please try again.",
		}
	}

	return &SubmitLeadOutput{
		Success: true,
		Message: "Lead submitted successfully",
	}, nil
}
