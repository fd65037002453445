package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"warehouse-fulfillment/internal/fulfillment"
)

type InboundHandler struct {
	Fulfillment *fulfillment.Service
}

func (h *InboundHandler) Register(r *chi.Mux) {
	r.Post("/orders/inbound", h.acceptManifest)
	r.Get("/orders/inbound/{warehouseID}", h.reorderReport)
}

func (h *InboundHandler) acceptManifest(w http.ResponseWriter, r *http.Request) {
	var m fulfillment.Manifest
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if m.Gcp == "" || len(m.Lines) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Fulfillment.Replenish(ctx, m); err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InboundHandler) reorderReport(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := strconv.Atoi(chi.URLParam(r, "warehouseID"))
	if err != nil || warehouseID < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid warehouse id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	segments, err := h.Fulfillment.ReorderSuggestions(ctx, warehouseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"warehouse_id":   warehouseID,
		"order_segments": segments,
	})
}
