package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/royaisolutions/agency-api/internal/entity"
	"github.com/royaisolutions/agency-api/internal/infra/http/middleware"
	"github.com/royaisolutions/agency-api/internal/infra/queue"
)

type VerifyPaymentUseCase struct {
	PaymentRepo  entity.PaymentRepositoryInterface
	ProposalRepo entity.ProposalRepositoryInterface
	Gateway      CheckoutGateway
	Notifier     NotificationPublisher
}

func NewVerifyPaymentUseCase(
	paymentRepo entity.PaymentRepositoryInterface,
	proposalRepo entity.ProposalRepositoryInterface,
	gateway CheckoutGateway,
	notifier NotificationPublisher,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		PaymentRepo:  paymentRepo,
		ProposalRepo: proposalRepo,
		Gateway:      gateway,
		Notifier:     notifier,
	}
}

// Execute is Stage B of the payment pipeline: confirm the session with the
// processor, then durably record the payment and flip the proposal to paid
// exactly once. Reloading the success URL replays this call with the same
// session id, so recording must be idempotent on that id.
func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, input VerifyPaymentInput) (*VerifyPaymentOutput, error) {
	if input.SessionID == "" || input.ProposalID == "" {
		return nil, &DomainError{Code: "MISSING_FIELDS", Message: "Session ID and proposal ID are required"}
	}

	session, err := uc.Gateway.RetrieveSession(ctx, input.SessionID)
	if err != nil {
		log.Printf("session retrieval failed: %v", err)
		return nil, &TechnicalError{Code: "GATEWAY_ERROR", Message: "Failed to verify payment"}
	}

	// An unpaid session mutates nothing. This guards against replays of
	// the return URL before payment completion.
	if !session.Paid() {
		return &VerifyPaymentOutput{Success: false, Message: "Payment not completed"}, nil
	}

	paymentType := session.Metadata["payment_type"]
	if paymentType == "" {
		paymentType = entity.PaymentTypeFull
	}
	proposalNumber := session.Metadata["proposal_number"]

	recorded, err := uc.recordPayment(ctx, input, session.PaymentIntentID, session.AmountTotal, paymentType,
		sessionClientEmail(session.CustomerEmail, session.Metadata), session.Metadata["client_name"])
	if err != nil {
		return nil, err
	}

	if err := uc.ProposalRepo.MarkPaid(ctx, input.ProposalID); err != nil {
		log.Printf("mark paid failed for %s: %v", input.ProposalID, err)
	}

	// Confirmation emails only on the first successful recording; a
	// replayed verification must not spam the client and admin again.
	if recorded {
		middleware.RecordPayment(paymentType, "completed")
		uc.notify(ctx, input.ProposalID, paymentType, session.AmountTotal)
	}

	return &VerifyPaymentOutput{
		Success:        true,
		PaymentType:    paymentType,
		Amount:         session.AmountTotal,
		ProposalNumber: proposalNumber,
	}, nil
}

// recordPayment inserts at most one payment row per checkout session. The
// pre-insert existence check handles the common browser-reload replay; the
// unique index on the session id closes the race between two concurrent
// verifications on separate processes.
func (uc *VerifyPaymentUseCase) recordPayment(ctx context.Context, input VerifyPaymentInput, intentID string, amount int64, paymentType, clientEmail, clientName string) (bool, error) {
	exists, err := uc.PaymentRepo.ExistsBySessionID(ctx, input.SessionID)
	if err != nil {
		log.Printf("payment existence check failed: %v", err)
		return false, &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to record payment"}
	}
	if exists {
		log.Printf("payment for session %s already recorded, skipping insert", input.SessionID)
		return false, nil
	}

	payment := &entity.Payment{
		ID:                uuid.New().String(),
		ProposalID:        input.ProposalID,
		CheckoutSessionID: input.SessionID,
		PaymentIntentID:   intentID,
		Amount:            amount,
		PaymentType:       paymentType,
		Status:            "completed",
		ClientEmail:       clientEmail,
		ClientName:        clientName,
		CreatedAt:         time.Now(),
	}

	if err := uc.PaymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, entity.ErrDuplicateSession) {
			// Lost the race to a concurrent verification. Same outcome.
			log.Printf("concurrent verification already recorded session %s", input.SessionID)
			return false, nil
		}
		log.Printf("payment insert failed: %v", err)
		return false, &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to record payment"}
	}

	return true, nil
}

func (uc *VerifyPaymentUseCase) notify(ctx context.Context, proposalID, paymentType string, amount int64) {
	if uc.Notifier == nil {
		return
	}

	proposal, err := uc.ProposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		log.Printf("proposal fetch for payment emails failed: %v", err)
		return
	}

	base := queue.NotificationPayload{
		ProposalNumber: proposal.ProposalNumber,
		ClientName:     proposal.ClientName(),
		ClientEmail:    proposal.Email,
		CompanyName:    proposal.CompanyName,
		Services:       proposal.Services,
		OneTimeTotal:   proposal.OneTimeTotal,
		MonthlyTotal:   proposal.MonthlyTotal,
		PaymentType:    paymentType,
		PaymentAmount:  amount,
	}

	for _, t := range []string{queue.NotificationPaymentClient, queue.NotificationPaymentAdmin} {
		payload := base
		payload.Type = t
		if err := uc.Notifier.PublishNotification(ctx, payload); err != nil {
			log.Printf("payment notification (%s) failed: %v", t, err)
		}
	}
}

func sessionClientEmail(customerEmail string, metadata map[string]string) string {
	if customerEmail != "" {
		return customerEmail
	}
	return metadata["client_email"]
}
