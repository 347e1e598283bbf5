package dispatchapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, strict bool) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL + "/", APIKey: "secret", StrictShapes: strict})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{BaseURL: "  "}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}

func TestHTTPClientFetchOrders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "60" {
			t.Errorf("expected limit=60, got %q", got)
		}
		if got := r.URL.Query().Get("status"); got != "Pending" {
			t.Errorf("expected status=Pending, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected auth header, got %q", got)
		}
		if r.Header.Get(requestIDHeader) == "" {
			t.Errorf("expected request id header")
		}
		_, _ = w.Write([]byte(`{"columns":["order_id","total","note"],"rows":[{"order_id":"A1","total":12.5,"note":null}]}`))
	}, true)

	resp, err := client.FetchOrders(context.Background(), dashboard.OrdersQuery{Limit: 60, Status: "Pending"})
	if err != nil {
		t.Fatalf("fetch orders: %v", err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(resp.Rows))
	}
	row := resp.Rows[0]
	if id, _ := row["order_id"].Str(); id != "A1" {
		t.Fatalf("unexpected order id %v", row["order_id"])
	}
	if total, ok := row["total"].Num(); !ok || total != 12.5 {
		t.Fatalf("unexpected total %v", row["total"])
	}
	if !row["note"].IsNull() {
		t.Fatalf("expected null note")
	}
}

func TestHTTPClientOmitsEmptyStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("status") {
			t.Errorf("status parameter should be omitted, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"columns":[],"rows":[]}`))
	}, false)
	if _, err := client.FetchOrders(context.Background(), dashboard.OrdersQuery{Limit: 5}); err != nil {
		t.Fatalf("fetch orders: %v", err)
	}
}

func TestHTTPClientRejectsInvalidLimitWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, false)

	if _, err := client.FetchOrders(context.Background(), dashboard.OrdersQuery{Limit: 0}); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := client.FetchShipments(context.Background(), -1); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no requests, got %d", hits.Load())
	}
}

func TestHTTPClientFetchShipmentsDefaultLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("expected default limit 50, got %q", got)
		}
		_, _ = w.Write([]byte(`{"rows":[{"shipment_id":"S1","order_id":"A1","status":"In Transit","carrier":"X","origin":"a","destination":"b","departed_at":"","estimated_delivery":"","tracking_events":2,"is_expedited":true}]}`))
	}, true)
	resp, err := client.FetchShipments(context.Background(), 0)
	if err != nil {
		t.Fatalf("fetch shipments: %v", err)
	}
	if len(resp.Rows) != 1 || !resp.Rows[0].IsExpedited || resp.Rows[0].TrackingEvents != 2 {
		t.Fatalf("unexpected shipments %+v", resp.Rows)
	}
}

func TestHTTPClientStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}, false)

	_, err := client.FetchWarehouses(context.Background())
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.Kind != KindStatus || gwErr.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected error %+v", gwErr)
	}
	if gwErr.Body != "backend exploded" {
		t.Fatalf("expected body snippet, got %q", gwErr.Body)
	}
	if gwErr.Path != "/warehouses" {
		t.Fatalf("unexpected path %q", gwErr.Path)
	}
}

func TestHTTPClientDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"labels":`))
	}, false)
	_, err := client.FetchForecastOverview(context.Background())
	if kind, ok := KindOf(err); !ok || kind != KindDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestHTTPClientStrictShapesRejectsMalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows":[{"warehouse_id":"W1","region":"East","capacity":"lots","current_units":5}]}`))
	}, true)
	_, err := client.FetchWarehouses(context.Background())
	if kind, ok := KindOf(err); !ok || kind != KindDecode {
		t.Fatalf("expected decode error from shape validation, got %v", err)
	}
}

func TestHTTPClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: base})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.FetchDashboardSummary(context.Background())
	if kind, ok := KindOf(err); !ok || kind != KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestHTTPClientFetchForecastSettings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast/settings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"horizon_months":6,"model":"arima","confidence_interval":0.8,"seasonality":{"weekly":true},"demand_drivers":["price"],"scenarios":[{"name":"Base","growth":0.02}]}`))
	}, true)
	settings, err := client.FetchForecastSettings(context.Background())
	if err != nil {
		t.Fatalf("fetch settings: %v", err)
	}
	if settings.ConfidenceInterval != 0.8 || len(settings.Scenarios) != 1 || !settings.Seasonality["weekly"] {
		t.Fatalf("unexpected settings %+v", settings)
	}
}
