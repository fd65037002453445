package events

import (
	"encoding/json"
	"time"
)

const (
	EventInboundManifest  = "InboundManifestReceived"
	EventStockReplenished = "StockReplenished"
	EventStockRejected    = "StockRejected"
	EventOutboundShipped  = "OutboundShipped"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // one of the consts above
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g. "fulfillment-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// ---- Per-event payloads ----

type ManifestLine struct {
	Gtin     string `json:"gtin"`
	Quantity int    `json:"quantity"`
}

// InboundManifestPayload is what a warehouse scanner gateway publishes when a
// delivery arrives at the dock.
type InboundManifestPayload struct {
	ManifestID  string         `json:"manifest_id"`
	WarehouseID int            `json:"warehouse_id"`
	Gcp         string         `json:"gcp"` // declared shipper
	Lines       []ManifestLine `json:"lines"`
}

type StockReplenishedPayload struct {
	ManifestID  string         `json:"manifest_id"`
	WarehouseID int            `json:"warehouse_id"`
	Lines       []ManifestLine `json:"lines"`
}

type StockRejectedPayload struct {
	ManifestID  string   `json:"manifest_id"`
	WarehouseID int      `json:"warehouse_id"`
	Reason      string   `json:"reason"` // e.g. VALIDATION_FAILED
	Errors      []string `json:"errors,omitempty"`
}

type OutboundShippedPayload struct {
	WarehouseID int            `json:"warehouse_id"`
	Lines       []ManifestLine `json:"lines"`
	TruckCount  int            `json:"truck_count"`
}
