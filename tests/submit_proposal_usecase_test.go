package tests

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/royaisolutions/agency-api/internal/entity"
	"github.com/royaisolutions/agency-api/internal/infra/queue"
	"github.com/royaisolutions/agency-api/internal/usecase"
)

func validProposalInput() usecase.SubmitProposalInput {
	return usecase.SubmitProposalInput{
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       "grace@example.com",
		Phone:       "+1 555 0199",
		CompanyName: "Compilers Inc",
		Services: []entity.ServiceSelection{
			{ID: "web", Label: "Web Development", Price: 2500, Recurring: false},
			{ID: "automation", Label: "AI Automation", Price: 997, Recurring: true},
		},
		Budget:       "$2,500 - $5,000",
		Timeline:     "Soon (2-4 weeks)",
		Requirements: "A full rebuild of our marketing site.",
	}
}

func TestSubmitProposalComputesTotals(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProposalRepository)
	mockNotifier := new(MockNotificationPublisher)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockNotifier.On("PublishNotification", ctx, mock.Anything).Return(nil)

	uc := usecase.NewSubmitProposalUseCase(mockRepo, mockNotifier)

	out, err := uc.Execute(ctx, validProposalInput())
	assert.NoError(t, err)
	assert.True(t, out.Success)

	p := out.Proposal
	assert.Equal(t, int64(2500), p.OneTimeTotal)
	assert.Equal(t, int64(997), p.MonthlyTotal)
	assert.Equal(t, entity.ProposalStatusGenerated, p.Status)
	assert.True(t, strings.HasPrefix(p.ProposalNumber, "PROP-"))
	assert.NotEmpty(t, p.ID)

	// Client and admin notifications both go out, best-effort.
	mockNotifier.AssertNumberOfCalls(t, "PublishNotification", 2)
	types := map[string]bool{}
	for _, call := range mockNotifier.Calls {
		payload := call.Arguments.Get(1).(queue.NotificationPayload)
		types[payload.Type] = true
		assert.Equal(t, p.ProposalNumber, payload.ProposalNumber)
	}
	assert.True(t, types[queue.NotificationProposalClient])
	assert.True(t, types[queue.NotificationProposalAdmin])
}

func TestSubmitProposalIgnoresClientTotals(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProposalRepository)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewSubmitProposalUseCase(mockRepo, nil)

	input := validProposalInput()
	input.Services = []entity.ServiceSelection{
		{ID: "leads", Label: "Lead Generation", Price: 750, Recurring: true},
	}

	out, err := uc.Execute(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Proposal.OneTimeTotal)
	assert.Equal(t, int64(750), out.Proposal.MonthlyTotal)
}

func TestSubmitProposalValidation(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProposalRepository)
	uc := usecase.NewSubmitProposalUseCase(mockRepo, nil)

	t.Run("Requirements Nine Chars Rejected", func(t *testing.T) {
		input := validProposalInput()
		input.Requirements = "123456789"
		_, err := uc.Execute(ctx, input)
		assert.Error(t, err)
		assert.True(t, usecase.IsDomainError(err))
		assert.Contains(t, err.Error(), "requirements")
	})

	t.Run("Requirements Ten Chars Accepted", func(t *testing.T) {
		mockRepo := new(MockProposalRepository)
		mockRepo.On("Create", ctx, mock.Anything).Return(nil)
		uc := usecase.NewSubmitProposalUseCase(mockRepo, nil)

		input := validProposalInput()
		input.Requirements = "1234567890"
		_, err := uc.Execute(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("Unknown Service Rejected", func(t *testing.T) {
		input := validProposalInput()
		input.Services = []entity.ServiceSelection{{ID: "consulting", Label: "Consulting", Price: 100}}
		_, err := uc.Execute(ctx, input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid service")
	})

	t.Run("No Services Rejected", func(t *testing.T) {
		input := validProposalInput()
		input.Services = nil
		_, err := uc.Execute(ctx, input)
		assert.Error(t, err)
	})

	t.Run("Freeform Budget Rejected", func(t *testing.T) {
		input := validProposalInput()
		input.Budget = "about five grand"
		_, err := uc.Execute(ctx, input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "budget")
	})

	t.Run("Unknown Timeline Rejected", func(t *testing.T) {
		input := validProposalInput()
		input.Timeline = "Yesterday"
		_, err := uc.Execute(ctx, input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "timeline")
	})

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
