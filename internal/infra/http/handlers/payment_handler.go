package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/royaisolutions/agency-api/internal/usecase"
)

type PaymentHandler struct {
	VerifyPaymentUC *usecase.VerifyPaymentUseCase
}

func NewPaymentHandler(uc *usecase.VerifyPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{VerifyPaymentUC: uc}
}

// HandleVerify is invoked when the browser returns from the hosted checkout
// success URL. Safe to call repeatedly for the same session.
func (h *PaymentHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var input usecase.VerifyPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.VerifyPaymentUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeErrorResponse(w, http.StatusBadRequest, "VERIFICATION_REJECTED", err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to verify payment")
		return
	}

	status := http.StatusOK
	if !output.Success {
		// Payment not completed yet; nothing was recorded.
		status = http.StatusBadRequest
	}
	writeJSON(w, status, output)
}
