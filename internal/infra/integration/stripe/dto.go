package stripe

// CreateSessionInput is the only data the pipeline hands to the processor.
// Metadata carries business context through Stripe and must round-trip
// unchanged into RetrieveSession.
type CreateSessionInput struct {
	Amount        int64 // minor units
	Currency      string
	ProductName   string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Session is the processor-side view the pipeline needs: payment state,
// amount charged and the metadata it planted at creation time.
type Session struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
	AmountTotal     int64
	CustomerEmail   string
	Metadata        map[string]string
}

// Paid reports whether Stripe considers the session settled.
func (s *Session) Paid() bool {
	return s.PaymentStatus == "paid"
}

type sessionResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
