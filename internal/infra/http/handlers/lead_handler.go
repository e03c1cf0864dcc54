package handlers

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/royaisolutions/agency-api/internal/infra/http/middleware"
	"github.com/royaisolutions/agency-api/internal/infra/ratelimit"
	"github.com/royaisolutions/agency-api/internal/usecase"
)

type LeadHandler struct {
	SubmitLeadUC *usecase.SubmitLeadUseCase
	Limiter      *ratelimit.Limiter
}

func NewLeadHandler(uc *usecase.SubmitLeadUseCase, limiter *ratelimit.Limiter) *LeadHandler {
	return &LeadHandler{
		SubmitLeadUC: uc,
		Limiter:      limiter,
	}
}

// HandleSubmit gates the public lead form: rate limit first, then
// validation, then persistence.
func (h *LeadHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)

	res := h.Limiter.Allow(clientIP)
	if !res.Allowed {
		log.Printf("rate limit exceeded for %s", clientIP)
		middleware.RecordRateLimitRejection()
		w.Header().Set("X-RateLimit-Remaining", "0")
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many submissions. Please try again later.")
		return
	}

	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.SubmitLeadUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit. Please try again.")
		return
	}

	middleware.RecordLeadCaptured()

	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	writeJSON(w, http.StatusOK, output)
}

// getClientIP trusts X-Forwarded-For (first entry) and X-Real-IP before the
// socket address. Behind an untrusted proxy these headers are spoofable, so
// the limiter keyed on them is best-effort.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.SplitN(xff, ",", 2)
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || ip == "" {
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
	return ip
}
