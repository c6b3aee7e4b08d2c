package enums

import "fmt"

// OutboxEventType names the domain events emitted through the transactional outbox.
type OutboxEventType string

const (
	OutboxEventProductCreated  OutboxEventType = "product.created"
	OutboxEventProductUpdated  OutboxEventType = "product.updated"
	OutboxEventProductDeleted  OutboxEventType = "product.deleted"
	OutboxEventCategoryCreated OutboxEventType = "category.created"
	OutboxEventCategoryUpdated OutboxEventType = "category.updated"
	OutboxEventCategoryDeleted OutboxEventType = "category.deleted"
	OutboxEventOrderCreated    OutboxEventType = "order.created"
)

var validOutboxEventTypes = []OutboxEventType{
	OutboxEventProductCreated,
	OutboxEventProductUpdated,
	OutboxEventProductDeleted,
	OutboxEventCategoryCreated,
	OutboxEventCategoryUpdated,
	OutboxEventCategoryDeleted,
	OutboxEventOrderCreated,
}

// String implements fmt.Stringer.
func (t OutboxEventType) String() string {
	return string(t)
}

// IsValid reports whether the event type is one the system emits.
func (t OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts a raw string into an OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	candidate := OutboxEventType(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid outbox event type %q", value)
	}
	return candidate, nil
}

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateProduct  OutboxAggregateType = "product"
	OutboxAggregateCategory OutboxAggregateType = "category"
	OutboxAggregateOrder    OutboxAggregateType = "order"
)

var validOutboxAggregateTypes = []OutboxAggregateType{
	OutboxAggregateProduct,
	OutboxAggregateCategory,
	OutboxAggregateOrder,
}

// String implements fmt.Stringer.
func (t OutboxAggregateType) String() string {
	return string(t)
}

// IsValid reports whether the aggregate type is known.
func (t OutboxAggregateType) IsValid() bool {
	for _, candidate := range validOutboxAggregateTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts a raw string into an OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	candidate := OutboxAggregateType(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid outbox aggregate type %q", value)
	}
	return candidate, nil
}
