package events

import (
	"context"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/rentloop/service-booking/internal/platform/kafka"
)

// ProductCacheInvalidator evicts a cached product.
type ProductCacheInvalidator interface {
	Invalidate(ctx context.Context, productID uuid.UUID) error
}

// ProductEventConsumer listens to catalog product events and evicts changed
// products from the cache, so new bookings price against current data.
type ProductEventConsumer struct {
	consumer *kafka.Consumer
	cache    ProductCacheInvalidator
	logger   *zap.Logger
}

// NewProductEventConsumer creates a new ProductEventConsumer.
func NewProductEventConsumer(
	brokers []string,
	groupID string,
	cache ProductCacheInvalidator,
	logger *zap.Logger,
) *ProductEventConsumer {
	return &ProductEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, TopicProductEvents, logger),
		cache:    cache,
		logger:   logger,
	}
}

// Start begins consuming product events. This blocks until the context is cancelled.
func (c *ProductEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ProductEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ProductEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from product topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case ProductUpdated, ProductDeleted:
		return c.handleProductChanged(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled product event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ProductEventConsumer) handleProductChanged(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt ProductChangedEvent
	if err := cloudEvent.ParseData(&evt); err != nil || evt.ProductID == uuid.Nil {
		c.logger.Error("failed to parse product event data",
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	if err := c.cache.Invalidate(ctx, evt.ProductID); err != nil {
		c.logger.Error("failed to evict product from cache",
			zap.String("product_id", evt.ProductID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("product evicted from cache",
		zap.String("product_id", evt.ProductID.String()),
		zap.String("type", cloudEvent.Type),
	)
	return nil
}
