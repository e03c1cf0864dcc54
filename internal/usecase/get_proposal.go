package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/royaisolutions/agency-api/internal/entity"
)

type GetProposalUseCase struct {
	ProposalRepo entity.ProposalRepositoryInterface
}

func NewGetProposalUseCase(proposalRepo entity.ProposalRepositoryInterface) *GetProposalUseCase {
	return &GetProposalUseCase{ProposalRepo: proposalRepo}
}

// Execute fetches a proposal and fires the generated -> viewed transition
// on first read. Rereads never re-fire it, and a viewed/paid proposal is
// returned as-is.
func (uc *GetProposalUseCase) Execute(ctx context.Context, proposalID string) (*entity.Proposal, error) {
	if proposalID == "" {
		return nil, &DomainError{
			Code:    "MISSING_PROPOSAL_ID",
			Message: "Proposal ID is required",
		}
	}

	proposal, err := uc.ProposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, entity.ErrProposalNotFound) {
			return nil, &DomainError{
				Code:    "PROPOSAL_NOT_FOUND",
				Message: "Proposal not found",
			}
		}
		log.Printf("proposal lookup failed: %v", err)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "Failed to fetch proposal",
		}
	}

	if proposal.Status == entity.ProposalStatusGenerated {
		if err := uc.ProposalRepo.MarkViewed(ctx, proposalID); err != nil {
			// The read still succeeds; the transition retries on the next
			// fetch since status stayed 'generated'.
			log.Printf("mark viewed failed for %s: %v", proposalID, err)
		} else {
			proposal.Status = entity.ProposalStatusViewed
		}
	}

	return proposal, nil
}
