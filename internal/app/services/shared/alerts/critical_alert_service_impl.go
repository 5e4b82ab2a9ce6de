package alerts

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

// criticalAlertService publishes critical-result notifications to the
// queue consumed by the external notification service. Publishing is
// throttled so bulk result imports cannot flood the queue.
type criticalAlertService struct {
	Channel *amqp091.Channel
	Queue   string
	Limiter *rate.Limiter
}

// AlertPayload is the message body the notification collaborator
// consumes.
type AlertPayload struct {
	OrderID        string    `json:"orderId"`
	Barcode        string    `json:"barcode"`
	PatientRef     string    `json:"patientRef"`
	RecipientRef   string    `json:"recipientRef"`
	TestType       string    `json:"testType"`
	OverallResult  string    `json:"overallResult"`
	Interpretation string    `json:"interpretation,omitempty"`
	ReportDate     time.Time `json:"reportDate"`
}

func NewCriticalAlertService(rabbitMQConnection *amqp091.Connection, queue string, alertsPerSecond int) (contracts.AlertDispatcher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &criticalAlertService{
		Channel: channel,
		Queue:   queue,
		Limiter: rate.NewLimiter(rate.Limit(alertsPerSecond), alertsPerSecond),
	}, nil
}

func (s *criticalAlertService) Dispatch(ctx context.Context, order *models.LabOrder, recipientRef string) error {
	err := s.Limiter.Wait(ctx)
	if err != nil {
		return err
	}

	payload := AlertPayload{
		OrderID:        order.ID,
		Barcode:        order.Barcode,
		PatientRef:     order.PatientRef,
		RecipientRef:   recipientRef,
		TestType:       order.TestType,
		OverallResult:  order.OverallResult,
		Interpretation: order.Interpretation,
	}
	if order.ReportDate != nil {
		payload.ReportDate = *order.ReportDate
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	return nil
}
