package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com/v1"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateSession creates a hosted checkout session and returns its id and
// redirect URL. Nothing is persisted on our side at this stage.
func (c *Client) CreateSession(ctx context.Context, input CreateSessionInput) (*Session, error) {
	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}

	// Stripe takes form-encoded bodies with bracketed nesting.
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(input.Amount, 10))
	form.Set("line_items[0][price_data][product_data][name]", input.ProductName)
	form.Set("line_items[0][price_data][product_data][description]", input.Description)
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	if input.CustomerEmail != "" {
		form.Set("customer_email", input.CustomerEmail)
	}
	for k, v := range input.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/checkout/sessions", form, &resp); err != nil {
		return nil, err
	}

	return sessionFromResponse(&resp), nil
}

// RetrieveSession fetches the current processor-side state of a session.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	path := "/checkout/sessions/" + url.PathEscape(sessionID)

	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return sessionFromResponse(&resp), nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe error (status %d)", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func sessionFromResponse(r *sessionResponse) *Session {
	return &Session{
		ID:              r.ID,
		URL:             r.URL,
		PaymentStatus:   r.PaymentStatus,
		PaymentIntentID: r.PaymentIntent,
		AmountTotal:     r.AmountTotal,
		CustomerEmail:   r.CustomerEmail,
		Metadata:        r.Metadata,
	}
}
