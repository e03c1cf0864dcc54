package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/royaisolutions/agency-api/internal/entity"
)

// Notification templates. One payload type drives all four emails.
const (
	NotificationProposalClient = "proposal_client"
	NotificationProposalAdmin  = "proposal_admin"
	NotificationPaymentClient  = "payment_client"
	NotificationPaymentAdmin   = "payment_admin"
)

type NotificationPayload struct {
	Type           string                    `json:"type"`
	ProposalNumber string                    `json:"proposal_number"`
	ClientName     string                    `json:"client_name"`
	ClientEmail    string                    `json:"client_email"`
	CompanyName    string                    `json:"company_name"`
	Services       []entity.ServiceSelection `json:"services"`
	OneTimeTotal   int64                     `json:"one_time_total"`
	MonthlyTotal   int64                     `json:"monthly_total"`
	Timeline       string                    `json:"timeline,omitempty"`
	Budget         string                    `json:"budget,omitempty"`
	Requirements   string                    `json:"requirements,omitempty"`
	PaymentType    string                    `json:"payment_type,omitempty"`
	PaymentAmount  int64                     `json:"payment_amount,omitempty"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, payload NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	return nil
}
