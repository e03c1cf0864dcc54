package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/royaisolutions/agency-api/internal/entity"
	"github.com/royaisolutions/agency-api/internal/infra/integration/stripe"
	"github.com/royaisolutions/agency-api/internal/usecase"
)

func checkoutProposal() *entity.Proposal {
	return &entity.Proposal{
		ID:             "22222222-2222-2222-2222-222222222222",
		ProposalNumber: "PROP-1756700000001",
		FirstName:      "Grace",
		LastName:       "Hopper",
		Email:          "grace@example.com",
		Status:         entity.ProposalStatusViewed,
		Services: []entity.ServiceSelection{
			{ID: "web", Label: "Web Development", Price: 2500, Recurring: false},
			{ID: "automation", Label: "AI Automation", Price: 997, Recurring: true},
		},
		OneTimeTotal: 2500,
		MonthlyTotal: 997,
	}
}

func TestCreateCheckoutFullPayment(t *testing.T) {
	ctx := context.Background()
	proposal := checkoutProposal()

	mockRepo := new(MockProposalRepository)
	mockRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)

	mockGateway := new(MockCheckoutGateway)
	mockGateway.On("CreateSession", ctx, mock.Anything).
		Return(&stripe.Session{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}, nil)

	uc := usecase.NewCreateCheckoutUseCase(mockRepo, mockGateway)

	out, err := uc.Execute(ctx, usecase.CreateCheckoutInput{
		ProposalID:  proposal.ID,
		PaymentType: entity.PaymentTypeFull,
		ReturnURL:   "https://royaisolutions.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "cs_test_123", out.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", out.URL)

	input := mockGateway.Calls[0].Arguments.Get(1).(stripe.CreateSessionInput)
	assert.Equal(t, int64(3497), input.Amount)
	assert.Equal(t, "usd", input.Currency)
	assert.Equal(t, "Full Payment for: Web Development, AI Automation", input.Description)
	assert.Equal(t, "grace@example.com", input.CustomerEmail)
	assert.Equal(t, proposal.ID, input.Metadata["proposal_id"])
	assert.Equal(t, proposal.ProposalNumber, input.Metadata["proposal_number"])
	assert.Equal(t, entity.PaymentTypeFull, input.Metadata["payment_type"])
	assert.Equal(t, "Grace Hopper", input.Metadata["client_name"])
	assert.Equal(t,
		"https://royaisolutions.com/payment-success?session_id={CHECKOUT_SESSION_ID}&proposal_id="+proposal.ID,
		input.SuccessURL)
}

func TestCreateCheckoutDepositRoundsUp(t *testing.T) {
	ctx := context.Background()
	proposal := checkoutProposal()

	mockRepo := new(MockProposalRepository)
	mockRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)

	mockGateway := new(MockCheckoutGateway)
	mockGateway.On("CreateSession", ctx, mock.Anything).
		Return(&stripe.Session{ID: "cs_test_456", URL: "https://checkout.stripe.com/pay/cs_test_456"}, nil)

	uc := usecase.NewCreateCheckoutUseCase(mockRepo, mockGateway)

	_, err := uc.Execute(ctx, usecase.CreateCheckoutInput{
		ProposalID:  proposal.ID,
		PaymentType: entity.PaymentTypeDeposit,
		ReturnURL:   "https://royaisolutions.com",
	})
	assert.NoError(t, err)

	input := mockGateway.Calls[0].Arguments.Get(1).(stripe.CreateSessionInput)
	// ceil(3497 / 2)
	assert.Equal(t, int64(1749), input.Amount)
	assert.Equal(t, "50% Deposit for: Web Development, AI Automation", input.Description)
}

func TestCreateCheckoutAlreadyPaid(t *testing.T) {
	ctx := context.Background()
	proposal := checkoutProposal()
	proposal.Status = entity.ProposalStatusPaid

	mockRepo := new(MockProposalRepository)
	mockRepo.On("FindByID", ctx, proposal.ID).Return(proposal, nil)

	mockGateway := new(MockCheckoutGateway)

	uc := usecase.NewCreateCheckoutUseCase(mockRepo, mockGateway)

	_, err := uc.Execute(ctx, usecase.CreateCheckoutInput{
		ProposalID:  proposal.ID,
		PaymentType: entity.PaymentTypeFull,
		ReturnURL:   "https://royaisolutions.com",
	})
	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	assert.Contains(t, err.Error(), "already been paid")
	mockGateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCreateCheckoutInvalidPaymentType(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProposalRepository)
	mockGateway := new(MockCheckoutGateway)

	uc := usecase.NewCreateCheckoutUseCase(mockRepo, mockGateway)

	_, err := uc.Execute(ctx, usecase.CreateCheckoutInput{
		ProposalID:  "22222222-2222-2222-2222-222222222222",
		PaymentType: "installments",
	})
	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateCheckoutProposalNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProposalRepository)
	mockRepo.On("FindByID", ctx, "missing").Return(nil, entity.ErrProposalNotFound)

	uc := usecase.NewCreateCheckoutUseCase(mockRepo, new(MockCheckoutGateway))

	_, err := uc.Execute(ctx, usecase.CreateCheckoutInput{
		ProposalID:  "missing",
		PaymentType: entity.PaymentTypeFull,
	})
	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
}
