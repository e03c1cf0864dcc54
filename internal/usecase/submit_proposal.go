package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/royaisolutions/agency-api/internal/entity"
	"github.com/royaisolutions/agency-api/internal/infra/queue"
)

type SubmitProposalUseCase struct {
	ProposalRepo entity.ProposalRepositoryInterface
	Notifier     NotificationPublisher
}

func NewSubmitProposalUseCase(
	proposalRepo entity.ProposalRepositoryInterface,
	notifier NotificationPublisher,
) *SubmitProposalUseCase {
	return &SubmitProposalUseCase{
		ProposalRepo: proposalRepo,
		Notifier:     notifier,
	}
}

func (uc *SubmitProposalUseCase) Execute(ctx context.Context, input SubmitProposalInput) (*SubmitProposalOutput, error) {
	validationErrors := ValidateSubmitProposalInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: validationErrors[0].Error(),
		}
	}

	// Totals are always recomputed from the selected services; whatever
	// the client sent is ignored.
	oneTime, monthly := entity.ComputeTotals(input.Services)

	now := time.Now()
	proposal := &entity.Proposal{
		ID:                uuid.New().String(),
		ProposalNumber:    fmt.Sprintf("PROP-%d", now.UnixMilli()),
		FirstName:         strings.TrimSpace(input.FirstName),
		LastName:          strings.TrimSpace(input.LastName),
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:             strings.TrimSpace(input.Phone),
		CompanyName:       strings.TrimSpace(input.CompanyName),
		Industry:          strings.TrimSpace(input.Industry),
		Services:          input.Services,
		Budget:            input.Budget,
		Timeline:          input.Timeline,
		Requirements:      strings.TrimSpace(input.Requirements),
		CurrentChallenges: strings.TrimSpace(input.CurrentChallenges),
		OneTimeTotal:      oneTime,
		MonthlyTotal:      monthly,
		Status:            entity.ProposalStatusGenerated,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.ProposalRepo.Create(ctx, proposal); err != nil {
		log.Printf("proposal insert failed: %v", err)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "Failed to create proposal",
		}
	}

	log.Printf("proposal created: %s (%s)", proposal.ID, proposal.ProposalNumber)

	// Best effort: the proposal is created whether or not these go out.
	uc.notify(ctx, proposal)

	return &SubmitProposalOutput{Success: true, Proposal: proposal}, nil
}

func (uc *SubmitProposalUseCase) notify(ctx context.Context, p *entity.Proposal) {
	if uc.Notifier == nil {
		return
	}

	base := queue.NotificationPayload{
		ProposalNumber: p.ProposalNumber,
		ClientName:     p.ClientName(),
		ClientEmail:    p.Email,
		CompanyName:    p.CompanyName,
		Services:       p.Services,
		OneTimeTotal:   p.OneTimeTotal,
		MonthlyTotal:   p.MonthlyTotal,
		Timeline:       p.Timeline,
		Budget:         p.Budget,
		Requirements:   p.Requirements,
	}

	for _, t := range []string{queue.NotificationProposalClient, queue.NotificationProposalAdmin} {
		payload := base
		payload.Type = t
		if err := uc.Notifier.PublishNotification(ctx, payload); err != nil {
			log.Printf("proposal notification (%s) failed: %v", t, err)
		}
	}
}
