package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/royaisolutions/agency-api/internal/entity"
	"github.com/royaisolutions/agency-api/internal/infra/integration/stripe"
)

type CreateCheckoutUseCase struct {
	ProposalRepo entity.ProposalRepositoryInterface
	Gateway      CheckoutGateway
}

func NewCreateCheckoutUseCase(
	proposalRepo entity.ProposalRepositoryInterface,
	gateway CheckoutGateway,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		ProposalRepo: proposalRepo,
		Gateway:      gateway,
	}
}

// Execute creates a hosted checkout session for a proposal. Stage A of the
// payment pipeline: no database mutation happens here, so a gateway failure
// leaves no partial state behind.
func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, input CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	if input.ProposalID == "" {
		return nil, &DomainError{Code: "MISSING_PROPOSAL_ID", Message: "Proposal ID is required"}
	}
	if !ValidPaymentType(input.PaymentType) {
		return nil, &DomainError{Code: "INVALID_PAYMENT_TYPE", Message: "Payment type must be deposit or full"}
	}

	proposal, err := uc.ProposalRepo.FindByID(ctx, input.ProposalID)
	if err != nil {
		if errors.Is(err, entity.ErrProposalNotFound) {
			return nil, &DomainError{Code: "PROPOSAL_NOT_FOUND", Message: "Proposal not found"}
		}
		log.Printf("proposal lookup failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to load proposal"}
	}

	// Paying twice against the same proposal is an error, not a feature.
	if proposal.Status == entity.ProposalStatusPaid {
		return nil, &DomainError{Code: "ALREADY_PAID", Message: "Proposal has already been paid"}
	}

	// The charge amount comes from the stored proposal, not the request.
	amount := proposal.FullAmount()
	if input.PaymentType == entity.PaymentTypeDeposit {
		amount = proposal.DepositAmount()
	}
	if amount <= 0 {
		return nil, &DomainError{Code: "INVALID_AMOUNT", Message: "Proposal has no billable amount"}
	}
	if input.Amount != 0 && input.Amount != amount {
		log.Printf("client-sent amount %d differs from computed %d for %s; using computed",
			input.Amount, amount, proposal.ProposalNumber)
	}

	labels := make([]string, 0, len(proposal.Services))
	for _, s := range proposal.Services {
		labels = append(labels, s.Label)
	}
	serviceNames := strings.Join(labels, ", ")

	description := "Full Payment for: " + serviceNames
	productName := "RoyAISolutions - Full Payment"
	if input.PaymentType == entity.PaymentTypeDeposit {
		description = "50% Deposit for: " + serviceNames
		productName = "RoyAISolutions - 50% Deposit"
	}

	session, err := uc.Gateway.CreateSession(ctx, stripe.CreateSessionInput{
		Amount:        amount,
		Currency:      "usd",
		ProductName:   productName,
		Description:   description,
		CustomerEmail: proposal.Email,
		SuccessURL:    fmt.Sprintf("%s/payment-success?session_id={CHECKOUT_SESSION_ID}&proposal_id=%s", input.ReturnURL, proposal.ID),
		CancelURL:     fmt.Sprintf("%s/proposal/%s", input.ReturnURL, proposal.ID),
		// The only channel carrying business context through the
		// processor; verification reads it back verbatim.
		Metadata: map[string]string{
			"proposal_id":     proposal.ID,
			"proposal_number": proposal.ProposalNumber,
			"payment_type":    input.PaymentType,
			"client_name":     proposal.ClientName(),
		},
	})
	if err != nil {
		log.Printf("checkout session creation failed: %v", err)
		return nil, &TechnicalError{Code: "GATEWAY_ERROR", Message: "Failed to create checkout session"}
	}

	log.Printf("checkout session created: %s for %s (%s)", session.ID, proposal.ProposalNumber, input.PaymentType)

	return &CreateCheckoutOutput{SessionID: session.ID, URL: session.URL}, nil
}
