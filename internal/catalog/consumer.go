package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/junavolabs/junavo-backend/pkg/enums"
	"github.com/junavolabs/junavo-backend/pkg/logger"
	"github.com/junavolabs/junavo-backend/pkg/outbox"
)

// Consumer applies catalog change-feed events to the in-memory read models.
// Events apply in arrival order per subscription; there is no cross-channel
// ordering or reconciliation.
type Consumer struct {
	subscription *gcppubsub.Subscriber
	products     *ProductCache
	categories   *CategoryCache
	logg         *logger.Logger
}

// NewConsumer builds a catalog consumer bound to the catalog subscription.
func NewConsumer(subscription *gcppubsub.Subscriber, products *ProductCache, categories *CategoryCache, logg *logger.Logger) (*Consumer, error) {
	if subscription == nil {
		return nil, errors.New("catalog subscription is required")
	}
	if products == nil {
		return nil, errors.New("product cache is required")
	}
	if categories == nil {
		return nil, errors.New("category cache is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{
		subscription: subscription,
		products:     products,
		categories:   categories,
		logg:         logg,
	}, nil
}

// Run consumes catalog messages until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		c.handle(innerCtx, msg)
		// Malformed messages are acked: redelivery cannot repair them and
		// the caches reseed on restart.
		msg.Ack()
	})
}

func (c *Consumer) handle(ctx context.Context, msg *gcppubsub.Message) {
	fields := map[string]any{"message_id": msg.ID}
	logCtx := c.logg.WithFields(ctx, fields)

	eventType, err := enums.ParseOutboxEventType(strings.TrimSpace(msg.Attributes["event_type"]))
	if err != nil {
		fields["error"] = err.Error()
		c.logg.Warn(c.logg.WithFields(ctx, fields), "unrecognized catalog event")
		return
	}
	fields["event_type"] = eventType
	logCtx = c.logg.WithFields(ctx, fields)

	if err := c.apply(eventType, msg.Data); err != nil {
		fields["error"] = err.Error()
		c.logg.Warn(c.logg.WithFields(ctx, fields), "failed to apply catalog event")
		return
	}

	c.logg.Info(logCtx, "catalog event applied")
}

func (c *Consumer) apply(eventType enums.OutboxEventType, data []byte) error {
	changeType, ok := changeTypeFor(eventType)
	if !ok {
		return fmt.Errorf("event %s does not map to a catalog change", eventType)
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decode payload envelope: %w", err)
	}

	switch eventType {
	case enums.OutboxEventProductCreated, enums.OutboxEventProductUpdated, enums.OutboxEventProductDeleted:
		var payload ProductEventPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return fmt.Errorf("decode product payload: %w", err)
		}
		c.products.Apply(ProductChange{Type: changeType, Product: payload.Product})
	case enums.OutboxEventCategoryCreated, enums.OutboxEventCategoryUpdated, enums.OutboxEventCategoryDeleted:
		var payload CategoryEventPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return fmt.Errorf("decode category payload: %w", err)
		}
		c.categories.Apply(CategoryChange{Type: changeType, Category: payload.Category})
	default:
		return fmt.Errorf("event %s not handled", eventType)
	}
	return nil
}
