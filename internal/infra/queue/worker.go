package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/royaisolutions/agency-api/internal/infra/http/middleware"
)

// EmailDispatcher routes a notification payload to the matching email
// template and sends it.
type EmailDispatcher interface {
	Dispatch(payload NotificationPayload) error
}

type Worker struct {
	Channel    *amqp.Channel
	Dispatcher EmailDispatcher
}

func NewWorker(ch *amqp.Channel, dispatcher EmailDispatcher) *Worker {
	return &Worker{
		Channel:    ch,
		Dispatcher: dispatcher,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register rabbitmq consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid notification JSON: %s", err)
				// Malformed message. Reject without requeue so the queue
				// does not jam.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] sending %s email for proposal %s", payload.Type, payload.ProposalNumber)

			if err := w.Dispatcher.Dispatch(payload); err != nil {
				// Notifications are best-effort: log, count, dead-letter.
				// Never affects the payment/proposal already recorded.
				log.Printf("[WORKER] email send failed (%s): %s", payload.Type, err)
				middleware.RecordNotificationError(payload.Type)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[WORKER] waiting for notifications on queue '%s'", queueName)
	<-forever
}
