package kafka

import "time"

// AssetMovementEvent is the audit record published for every committed
// ledger mutation
type AssetMovementEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	RecordID        uint      `json:"record_id"`
	EquipmentTypeID uint      `json:"equipment_type_id"`
	Quantity        int       `json:"quantity"`
	BaseID          uint      `json:"base_id,omitempty"`
	FromBaseID      uint      `json:"from_base_id,omitempty"`
	ToBaseID        uint      `json:"to_base_id,omitempty"`
	ActorID         uint      `json:"actor_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypePurchase    = "asset.purchased"
	EventTypeTransfer    = "asset.transferred"
	EventTypeAssignment  = "asset.assigned"
	EventTypeExpenditure = "asset.expended"
)

// Kafka topics
const (
	TopicAssetMovements = "asset-movements"
)
