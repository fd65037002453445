// Package replenish consumes inbound manifest events and applies them to the
// stock ledger.
package replenish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"warehouse-fulfillment/internal/events"
	"warehouse-fulfillment/internal/fulfillment"
	kafkax "warehouse-fulfillment/internal/kafka"
	"warehouse-fulfillment/internal/redisx"
)

type Service struct {
	Fulfillment    *fulfillment.Service
	Redis          *redis.Client
	ProducerOK     *kafkax.Producer // publishes stock.replenished
	ProducerReject *kafkax.Producer // publishes stock.rejected
	ServiceName    string
}

// HandleManifest is the consumer handler for inbound manifest events.
// Returning an error leaves the offset uncommitted, so transient store
// failures are redelivered; validation failures are terminal and answered
// with a rejected event instead.
func (s *Service) HandleManifest(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != events.EventInboundManifest {
		return nil
	}

	// dedup by event_id across redeliveries
	dkey := fmt.Sprintf(redisx.KeyDedup, "replenisher", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}

	p, err := kafkax.UnwrapPayload[events.InboundManifestPayload](env.Payload)
	if err != nil {
		return err
	}

	lines := make([]fulfillment.OrderLine, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, fulfillment.OrderLine{Gtin: l.Gtin, Quantity: l.Quantity})
	}

	err = s.Fulfillment.Replenish(ctx, fulfillment.Manifest{
		WarehouseID: p.WarehouseID,
		Gcp:         p.Gcp,
		Lines:       lines,
	})
	switch {
	case err == nil:
		s.publishReplenished(p, env.TraceID)
	case fulfillment.IsUserError(err):
		// Bad manifest content; redelivery cannot fix it.
		s.publishRejected(p, err, env.TraceID)
	default:
		return err
	}

	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return nil
}

func (s *Service) publishReplenished(p events.InboundManifestPayload, trace string) {
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventStockReplenished,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: p.ManifestID,
		Payload: kafkax.MustMarshal(events.StockReplenishedPayload{
			ManifestID:  p.ManifestID,
			WarehouseID: p.WarehouseID,
			Lines:       p.Lines,
		}),
	}
	s.ProducerOK.Publish(events.PartitionKey(p.ManifestID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventStockReplenished)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *Service) publishRejected(p events.InboundManifestPayload, cause error, trace string) {
	payload := events.StockRejectedPayload{
		ManifestID:  p.ManifestID,
		WarehouseID: p.WarehouseID,
		Reason:      "VALIDATION_FAILED",
	}
	var fe *fulfillment.Error
	if errors.As(cause, &fe) {
		payload.Errors = fe.Details
	} else {
		payload.Errors = []string{cause.Error()}
	}
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventStockRejected,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: p.ManifestID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.ProducerReject.Publish(events.PartitionKey(p.ManifestID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventStockRejected)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
