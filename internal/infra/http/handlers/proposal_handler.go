package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/royaisolutions/agency-api/internal/infra/http/middleware"
	"github.com/royaisolutions/agency-api/internal/usecase"
)

type ProposalHandler struct {
	SubmitProposalUC *usecase.SubmitProposalUseCase
	GetProposalUC    *usecase.GetProposalUseCase
}

func NewProposalHandler(submitUC *usecase.SubmitProposalUseCase, getUC *usecase.GetProposalUseCase) *ProposalHandler {
	return &ProposalHandler{
		SubmitProposalUC: submitUC,
		GetProposalUC:    getUC,
	}
}

func (h *ProposalHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitProposalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.SubmitProposalUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create proposal")
		return
	}

	middleware.RecordProposalCreated()
	writeJSON(w, http.StatusOK, output)
}

// HandleGet takes {proposalId} in the body. Fetching also drives the
// generated -> viewed transition.
func (h *ProposalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProposalID string `json:"proposalId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	proposal, err := h.GetProposalUC.Execute(r.Context(), input.ProposalID)
	if err != nil {
		var domainErr *usecase.DomainError
		switch {
		case !usecase.IsDomainError(err):
			writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch proposal")
		default:
			domainErr = err.(*usecase.DomainError)
			status := http.StatusBadRequest
			if domainErr.Code == "PROPOSAL_NOT_FOUND" {
				status = http.StatusNotFound
			}
			writeErrorResponse(w, status, domainErr.Code, domainErr.Message)
		}
		return
	}

	writeJSON(w, http.StatusOK, proposal)
}
