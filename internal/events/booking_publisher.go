package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/rentloop/service-booking/internal/domain/booking"
	"github.com/rentloop/service-booking/internal/platform/kafka"
)

// EventProducer writes a CloudEvent to a topic.
type EventProducer interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// KafkaBookingPublisher implements booking.EventPublisher on top of Kafka.
// Failures are logged and swallowed; the booking is already committed.
type KafkaBookingPublisher struct {
	producer EventProducer
	logger   *zap.Logger
}

// NewKafkaBookingPublisher creates a new KafkaBookingPublisher.
func NewKafkaBookingPublisher(producer EventProducer, logger *zap.Logger) *KafkaBookingPublisher {
	return &KafkaBookingPublisher{producer: producer, logger: logger}
}

// BookingCreated publishes rental.booking.created.
func (p *KafkaBookingPublisher) BookingCreated(ctx context.Context, bk *bookingDomain.Booking) {
	evt := BookingCreatedEvent{
		BookingID:        bk.ID(),
		ProductID:        bk.ProductID(),
		OwnerID:          bk.OwnerID(),
		RenterID:         bk.RenterID(),
		StartDate:        bk.StartDate(),
		EndDate:          bk.EndDate(),
		TotalDays:        bk.TotalDays(),
		TotalAmountCents: bk.TotalAmountCents(),
		Currency:         bk.Currency(),
		Status:           string(bk.Status()),
		OccurredAt:       time.Now().UTC(),
	}
	p.publish(ctx, BookingCreated, bk.ID().String(), evt)
}

// BookingStatusChanged publishes rental.booking.status_changed.
func (p *KafkaBookingPublisher) BookingStatusChanged(ctx context.Context, bk *bookingDomain.Booking, previous bookingDomain.BookingStatus) {
	evt := BookingStatusChangedEvent{
		BookingID:      bk.ID(),
		ProductID:      bk.ProductID(),
		OwnerID:        bk.OwnerID(),
		RenterID:       bk.RenterID(),
		PreviousStatus: string(previous),
		Status:         string(bk.Status()),
		Version:        bk.Version(),
		OccurredAt:     time.Now().UTC(),
	}
	p.publish(ctx, BookingStatusChanged, bk.ID().String(), evt)
}

func (p *KafkaBookingPublisher) publish(ctx context.Context, eventType, subject string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(Source, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = subject

	if err := p.producer.PublishEvent(ctx, TopicBookingEvents, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.String("booking_id", subject),
			zap.Error(err),
		)
	}
}
