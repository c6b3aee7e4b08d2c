package catalog

import (
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// ChangeType tags a change-feed event.
type ChangeType string

const (
	ChangeInserted ChangeType = "inserted"
	ChangeUpdated  ChangeType = "updated"
	ChangeDeleted  ChangeType = "deleted"
)

// ProductChange is a single product event decoded from the change feed.
type ProductChange struct {
	Type    ChangeType
	Product models.Product
}

// CategoryChange is a single category event decoded from the change feed.
type CategoryChange struct {
	Type     ChangeType
	Category models.Category
}

// ProductEventPayload is the outbox data body for product events.
type ProductEventPayload struct {
	Product models.Product `json:"product"`
}

// CategoryEventPayload is the outbox data body for category events.
type CategoryEventPayload struct {
	Category models.Category `json:"category"`
}

func changeTypeFor(eventType enums.OutboxEventType) (ChangeType, bool) {
	switch eventType {
	case enums.OutboxEventProductCreated, enums.OutboxEventCategoryCreated:
		return ChangeInserted, true
	case enums.OutboxEventProductUpdated, enums.OutboxEventCategoryUpdated:
		return ChangeUpdated, true
	case enums.OutboxEventProductDeleted, enums.OutboxEventCategoryDeleted:
		return ChangeDeleted, true
	default:
		return "", false
	}
}
