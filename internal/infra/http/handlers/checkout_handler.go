package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/royaisolutions/agency-api/internal/usecase"
)

type CheckoutHandler struct {
	CreateCheckoutUC *usecase.CreateCheckoutUseCase
}

func NewCheckoutHandler(uc *usecase.CreateCheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{CreateCheckoutUC: uc}
}

func (h *CheckoutHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.CreateCheckoutUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeErrorResponse(w, http.StatusBadRequest, "CHECKOUT_REJECTED", err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create checkout session")
		return
	}

	writeJSON(w, http.StatusOK, output)
}
