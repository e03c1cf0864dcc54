package usecase

import "github.com/royaisolutions/agency-api/internal/entity"

type SubmitLeadInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Budget    string `json:"budget"`
	Needs     string `json:"needs"`
}

type SubmitLeadOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SubmitProposalInput struct {
	FirstName         string                    `json:"firstName"`
	LastName          string                    `json:"lastName"`
	Email             string                    `json:"email"`
	Phone             string                    `json:"phone"`
	CompanyName       string                    `json:"companyName"`
	Industry          string                    `json:"industry,omitempty"`
	Services          []entity.ServiceSelection `json:"services"`
	Budget            string                    `json:"budget"`
	Timeline          string                    `json:"timeline"`
	Requirements      string                    `json:"requirements"`
	CurrentChallenges string                    `json:"currentChallenges,omitempty"`
}

type SubmitProposalOutput struct {
	Success  bool             `json:"success"`
	Proposal *entity.Proposal `json:"proposal"`
}

type CreateCheckoutInput struct {
	ProposalID     string                    `json:"proposalId"`
	ProposalNumber string                    `json:"proposalNumber"`
	PaymentType    string                    `json:"paymentType"`
	Amount         int64                     `json:"amount"`
	ClientEmail    string                    `json:"clientEmail"`
	ClientName     string                    `json:"clientName"`
	Services       []entity.ServiceSelection `json:"services"`
	ReturnURL      string                    `json:"returnUrl"`
}

type CreateCheckoutOutput struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type VerifyPaymentInput struct {
	SessionID  string `json:"sessionId"`
	ProposalID string `json:"proposalId"`
}

type VerifyPaymentOutput struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	PaymentType    string `json:"paymentType,omitempty"`
	Amount         int64  `json:"amount,omitempty"`
	ProposalNumber string `json:"proposalNumber,omitempty"`
}
