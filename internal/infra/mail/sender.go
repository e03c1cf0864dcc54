package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/royaisolutions/agency-api/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, fromAddress, adminEmail string) *EmailSender {
	return &EmailSender{
		Host:        host,
		Port:        port,
		User:        user,
		Password:    password,
		FromAddress: fromAddress,
		AdminEmail:  adminEmail,
		TemplateDir: "templates",
	}
}

// Dispatch renders and sends the email matching the payload type. Called
// from the queue worker only; the primary operation never waits on it.
func (s *EmailSender) Dispatch(payload queue.NotificationPayload) error {
	var to, subject, tmplFile string

	switch payload.Type {
	case queue.NotificationProposalClient:
		to = payload.ClientEmail
		subject = fmt.Sprintf("Your RoyAISolutions Proposal is Ready - %s", payload.ProposalNumber)
		tmplFile = "proposal_client.html"
	case queue.NotificationProposalAdmin:
		to = s.AdminEmail
		subject = fmt.Sprintf("New Proposal: %s - %s", payload.ProposalNumber, payload.CompanyName)
		tmplFile = "proposal_admin.html"
	case queue.NotificationPaymentClient:
		to = payload.ClientEmail
		subject = fmt.Sprintf("Payment Confirmed - %s", payload.ProposalNumber)
		tmplFile = "payment_client.html"
	case queue.NotificationPaymentAdmin:
		to = s.AdminEmail
		subject = fmt.Sprintf("Payment Received: %s - %s", formatMoney(payload.PaymentAmount), payload.ProposalNumber)
		tmplFile = "payment_admin.html"
	default:
		return fmt.Errorf("unknown notification type: %q", payload.Type)
	}

	if to == "" {
		return fmt.Errorf("no recipient for notification type %q", payload.Type)
	}

	body, err := s.render(tmplFile, payload)
	if err != nil {
		return err
	}

	return s.send(to, subject, body)
}

func (s *EmailSender) render(tmplFile string, payload queue.NotificationPayload) (string, error) {
	t, err := template.ParseFiles(filepath.Join(s.TemplateDir, tmplFile))
	if err != nil {
		return "", fmt.Errorf("parse email template: %w", err)
	}

	paymentLabel := ""
	switch payload.PaymentType {
	case "deposit":
		paymentLabel = "50% Deposit"
	case "full":
		paymentLabel = "Full Payment"
	}

	data := templateData{
		ProposalNumber: payload.ProposalNumber,
		ClientName:     payload.ClientName,
		ClientEmail:    payload.ClientEmail,
		CompanyName:    payload.CompanyName,
		Services:       serviceLines(payload.Services),
		OneTimeTotal:   formatMoney(payload.OneTimeTotal),
		MonthlyTotal:   formatMoney(payload.MonthlyTotal),
		GrandTotal:     formatMoney(payload.OneTimeTotal + payload.MonthlyTotal),
		Timeline:       payload.Timeline,
		Budget:         payload.Budget,
		Requirements:   payload.Requirements,
		PaymentType:    paymentLabel,
		PaymentAmount:  formatMoney(payload.PaymentAmount),
		HasOneTime:     payload.OneTimeTotal > 0,
		HasMonthly:     payload.MonthlyTotal > 0,
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}

	return body.String(), nil
}

func (s *EmailSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

// formatMoney renders minor units as dollars, with a thousands separator
// and cents only when they exist.
func formatMoney(minorUnits int64) string {
	dollars := minorUnits / 100
	cents := minorUnits % 100
	if cents < 0 {
		cents = -cents
	}

	whole := strconv.FormatInt(dollars, 10)
	negative := false
	if len(whole) > 0 && whole[0] == '-' {
		negative = true
		whole = whole[1:]
	}

	var out []byte
	for i, c := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	result := "$" + string(out)
	if negative {
		result = "-" + result
	}
	if cents != 0 {
		result = fmt.Sprintf("%s.%02d", result, cents)
	}
	return result
}
