package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"warehouse-fulfillment/internal/events"
	"warehouse-fulfillment/internal/fulfillment"
	kafkax "warehouse-fulfillment/internal/kafka"
)

type OutboundOrderReq struct {
	WarehouseID int                     `json:"warehouse_id"`
	OrderLines  []fulfillment.OrderLine `json:"order_lines"`
}

type OutboundHandler struct {
	Fulfillment *fulfillment.Service
	Producer    *kafkax.Producer
	Service     string
}

func (h *OutboundHandler) Register(r *chi.Mux) {
	r.Post("/orders/outbound", h.create)
}

func (h *OutboundHandler) create(w http.ResponseWriter, r *http.Request) {
	var req OutboundOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.WarehouseID < 0 || len(req.OrderLines) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	manifest, err := h.Fulfillment.Fulfill(ctx, req.WarehouseID, req.OrderLines)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	h.publishShipped(req, manifest, r.Header.Get("X-Request-Id"))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(manifest))
}

func (h *OutboundHandler) publishShipped(req OutboundOrderReq, manifest, trace string) {
	lines := make([]events.ManifestLine, 0, len(req.OrderLines))
	for _, l := range req.OrderLines {
		lines = append(lines, events.ManifestLine{Gtin: l.Gtin, Quantity: l.Quantity})
	}
	correlation := uuid.NewString()
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventOutboundShipped,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: correlation,
		Payload: kafkax.MustMarshal(events.OutboundShippedPayload{
			WarehouseID: req.WarehouseID,
			Lines:       lines,
			TruckCount:  truckCount(manifest),
		}),
	}
	h.Producer.Publish(events.PartitionKey(correlation), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventOutboundShipped)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

// truckCount reads the fleet size back off the manifest header.
func truckCount(manifest string) int {
	var n int
	header, _, _ := strings.Cut(manifest, "\n")
	if _, err := fmt.Sscanf(header, "This order requires %d trucks.", &n); err != nil {
		return 0
	}
	return n
}

func statusFor(err error) int {
	switch {
	case fulfillment.IsUserError(err):
		return http.StatusBadRequest
	case fulfillment.KindOf(err) == fulfillment.KindInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
