package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

// EventType определяет тип события сущности.
type EventType string

const (
	EventTypeCustomerCreated EventType = "customer.created"
	EventTypeCustomerUpdated EventType = "customer.updated"
	EventTypeCustomerDeleted EventType = "customer.deleted"

	EventTypeProductCreated EventType = "product.created"
	EventTypeProductUpdated EventType = "product.updated"
	EventTypeProductDeleted EventType = "product.deleted"

	EventTypeOrderCreated EventType = "order.created"
	EventTypeOrderDeleted EventType = "order.deleted"

	EventTypeOrderProductAdded   EventType = "order.product_added"
	EventTypeOrderProductRemoved EventType = "order.product_removed"
)

// Topics для Kafka
const (
	TopicEntityEvents = "catalog.entity.events"
)

// EntityEvent — событие изменения сущности каталога, публикуемое во внешнюю шину.
type EntityEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	Kind      string    `json:"kind"`
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntityEvent создаёт событие с уникальным идентификатором.
func NewEntityEvent(eventType EventType, kind domain.Kind, entityID int64) *EntityEvent {
	return &EntityEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Kind:      string(kind),
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
