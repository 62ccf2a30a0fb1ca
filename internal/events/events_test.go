package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/rentloop/service-booking/internal/domain/booking"
	"github.com/rentloop/service-booking/internal/platform/kafka"
)

type recordingProducer struct {
	topics []string
	events []kafka.CloudEvent
	err    error
}

func (p *recordingProducer) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return p.err
}

type recordingCache struct {
	evicted []uuid.UUID
	err     error
}

func (c *recordingCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.evicted = append(c.evicted, id)
	return c.err
}

func testBooking(status bookingDomain.BookingStatus) *bookingDomain.Booking {
	now := time.Now().UTC()
	return bookingDomain.ReconstructBooking(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		bookingDomain.DateRange{Start: now, End: now.Add(48 * time.Hour)},
		2, 20000, "USD", status, bookingDomain.PaymentPending, 2, now, now,
	)
}

func TestKafkaBookingPublisher(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaBookingPublisher(producer, zap.NewNop())
	bk := testBooking(bookingDomain.StatusApproved)

	pub.BookingCreated(context.Background(), bk)
	pub.BookingStatusChanged(context.Background(), bk, bookingDomain.StatusPending)

	require.Len(t, producer.events, 2)
	assert.Equal(t, []string{TopicBookingEvents, TopicBookingEvents}, producer.topics)

	created := producer.events[0]
	assert.Equal(t, BookingCreated, created.Type)
	assert.Equal(t, bk.ID().String(), created.Subject)
	assert.Equal(t, Source, created.Source)

	changed := producer.events[1]
	assert.Equal(t, BookingStatusChanged, changed.Type)
	var evt BookingStatusChangedEvent
	require.NoError(t, changed.ParseData(&evt))
	assert.Equal(t, "pending", evt.PreviousStatus)
	assert.Equal(t, "approved", evt.Status)
	assert.Equal(t, int64(2), evt.Version)
}

func TestKafkaBookingPublisher_SwallowsFailures(t *testing.T) {
	producer := &recordingProducer{err: errors.New("broker down")}
	pub := NewKafkaBookingPublisher(producer, zap.NewNop())

	assert.NotPanics(t, func() {
		pub.BookingCreated(context.Background(), testBooking(bookingDomain.StatusPending))
	})
	assert.Len(t, producer.events, 1)
}

func productMessage(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-catalog", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: TopicProductEvents, Value: raw}
}

func TestProductEventConsumer_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("updated and deleted evict", func(t *testing.T) {
		cache := &recordingCache{}
		c := &ProductEventConsumer{cache: cache, logger: zap.NewNop()}
		id := uuid.New()

		require.NoError(t, c.handleMessage(ctx, productMessage(t, ProductUpdated, ProductChangedEvent{ProductID: id})))
		require.NoError(t, c.handleMessage(ctx, productMessage(t, ProductDeleted, ProductChangedEvent{ProductID: id})))
		assert.Equal(t, []uuid.UUID{id, id}, cache.evicted)
	})

	t.Run("other types are ignored", func(t *testing.T) {
		cache := &recordingCache{}
		c := &ProductEventConsumer{cache: cache, logger: zap.NewNop()}

		require.NoError(t, c.handleMessage(ctx, productMessage(t, "catalog.product.created", ProductChangedEvent{ProductID: uuid.New()})))
		assert.Empty(t, cache.evicted)
	})

	t.Run("malformed messages are skipped", func(t *testing.T) {
		cache := &recordingCache{}
		c := &ProductEventConsumer{cache: cache, logger: zap.NewNop()}

		assert.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: []byte("not json")}))
		assert.NoError(t, c.handleMessage(ctx, productMessage(t, ProductUpdated, map[string]string{"product_id": "nope"})))
		assert.Empty(t, cache.evicted)
	})

	t.Run("eviction failure is returned so the message is retried", func(t *testing.T) {
		cache := &recordingCache{err: errors.New("redis down")}
		c := &ProductEventConsumer{cache: cache, logger: zap.NewNop()}

		err := c.handleMessage(ctx, productMessage(t, ProductUpdated, ProductChangedEvent{ProductID: uuid.New()}))
		assert.Error(t, err)
	})
}
