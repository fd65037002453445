package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warehouse-fulfillment/internal/catalog"
	"warehouse-fulfillment/internal/fulfillment"
	"warehouse-fulfillment/internal/httpx"
	"warehouse-fulfillment/internal/stock"
	"warehouse-fulfillment/internal/truck"
)

func newTestServer(t *testing.T) (*httptest.Server, *stock.Memory) {
	t.Helper()
	cat := catalog.NewMemory()
	cat.AddCompany(catalog.Company{Gcp: "0000346", Name: "Robinson's Brewery"})
	cat.AddProduct(catalog.Product{
		ID: 1, Gtin: "5000169111112", Gcp: "0000346", Name: "Widget",
		WeightKg: 5, LowerThreshold: 10, MinOrderQty: 4,
	})
	ledger := stock.NewMemory()
	svc := fulfillment.New(cat, ledger, truck.NewLoader(2000))

	r := httpx.NewRouter()
	ih := &httpx.InboundHandler{Fulfillment: svc}
	ih.Register(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, ledger
}

func TestAcceptManifest(t *testing.T) {
	ts, ledger := newTestServer(t)

	body := `{"warehouse_id":1,"gcp":"0000346","lines":[{"gtin":"5000169111112","quantity":25}]}`
	resp, err := http.Post(ts.URL+"/orders/inbound", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	held, _ := ledger.ReadHeld(context.Background(), 1, []int{1})
	if held[1] != 25 {
		t.Errorf("held = %d, want 25", held[1])
	}
}

func TestAcceptManifestValidationFailure(t *testing.T) {
	ts, ledger := newTestServer(t)

	body := `{"warehouse_id":1,"gcp":"1234567","lines":[{"gtin":"5000169111112","quantity":25}]}`
	resp, err := http.Post(ts.URL+"/orders/inbound", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	held, _ := ledger.ReadHeld(context.Background(), 1, []int{1})
	if held[1] != 0 {
		t.Errorf("held = %d, rejected manifest must not mutate stock", held[1])
	}
}

func TestReorderReport(t *testing.T) {
	ts, ledger := newTestServer(t)
	// Below threshold 10: suggest 3*10-2 = 28.
	_ = ledger.ApplyDelta(context.Background(), 1, []stock.Alteration{{ProductID: 1, Delta: 2}})

	resp, err := http.Get(ts.URL + "/orders/inbound/1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var report struct {
		WarehouseID   int                          `json:"warehouse_id"`
		OrderSegments []fulfillment.ReorderSegment `json:"order_segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.OrderSegments) != 1 {
		t.Fatalf("segments = %+v, want 1", report.OrderSegments)
	}
	lines := report.OrderSegments[0].Lines
	if len(lines) != 1 || lines[0].Quantity != 28 {
		t.Errorf("lines = %+v, want one line of 28", lines)
	}
}
