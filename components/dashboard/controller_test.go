package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func newTestController(gateway Gateway, renderer Renderer) (*Controller, *Service) {
	svc := NewService(Options{Gateway: gateway})
	return NewController(ControllerOptions{
		Service:  svc,
		Renderer: renderer,
		Charts:   NewChartRenderer(WithChartCache(nil)),
		BasePath: "/dispatch",
	}), svc
}

func TestControllerShowRendersViewTemplate(t *testing.T) {
	renderer := &stubRenderer{}
	controller, _ := newTestController(newStubGateway(), renderer)

	var buf bytes.Buffer
	if err := controller.Show(context.Background(), ViewOrders, &buf); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	if renderer.lastTemplate != "orders.html" {
		t.Fatalf("expected orders template, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output to be written")
	}
	payload := renderer.lastPayload
	if payload["state"] != string(StateLoaded) || payload["total"] != 3 || payload["visible"] != 3 {
		t.Fatalf("unexpected orders payload %+v", payload)
	}
	headers := payload["header_cells"].([]map[string]any)
	if headers[0]["title"] != "Order Id" || headers[0]["next"] != string(SortAsc) {
		t.Fatalf("unexpected header cells %+v", headers)
	}
}

func TestControllerPageChrome(t *testing.T) {
	controller, svc := newTestController(newStubGateway(), &stubRenderer{})
	_, err := svc.ToggleTheme(context.Background())
	mustNoError(t, err)

	payload, err := controller.Page(context.Background(), ViewShipments)
	mustNoError(t, err)
	if payload["title"] != AppTitle || payload["theme"] != "dark" || payload["dark_mode"] != true {
		t.Fatalf("unexpected chrome %+v", payload)
	}
	if payload["body_class"] != "dark-theme" || !strings.Contains(payload["theme_css"].(string), "--surface") {
		t.Fatalf("unexpected theme payload %+v", payload)
	}
	nav := payload["nav"].([]map[string]any)
	if len(nav) != len(NavItems) {
		t.Fatalf("expected %d nav entries, got %d", len(NavItems), len(nav))
	}
	for _, item := range nav {
		active := item["path"] == "/dispatch/shipments"
		if item["active"] != active {
			t.Fatalf("unexpected active flag on %+v", item)
		}
	}
	if payload["state"] != string(StateIdle) {
		t.Fatalf("expected idle shipments before refresh, got %v", payload["state"])
	}
}

func TestControllerDashboardPage(t *testing.T) {
	controller, svc := newTestController(newStubGateway(), &stubRenderer{})
	mustNoError(t, svc.Refresh(context.Background(), ViewDashboard))

	payload, err := controller.Page(context.Background(), ViewDashboard)
	mustNoError(t, err)
	cards := payload["cards"].([]map[string]any)
	if len(cards) != 6 || cards[3]["value"] != "42.50" || cards[5]["value"] != "50%" {
		t.Fatalf("unexpected cards %+v", cards)
	}
	entries := payload["pipeline"].([]PipelineEntry)
	if len(entries) != 2 || entries[0].Status != "Pending" || entries[1].Status != "Shipped" {
		t.Fatalf("unexpected pipeline %+v", entries)
	}
	if html, _ := payload["pipeline_chart"].(string); !strings.Contains(html, "echarts") {
		t.Fatalf("expected pipeline chart markup")
	}
	if _, ok := payload["forecast_chart"]; !ok {
		t.Fatalf("expected forecast chart")
	}
}

func TestControllerWarehousesPage(t *testing.T) {
	controller, svc := newTestController(newStubGateway(), &stubRenderer{})
	mustNoError(t, svc.Refresh(context.Background(), ViewWarehouses))

	payload, err := controller.Page(context.Background(), ViewWarehouses)
	mustNoError(t, err)
	regions := payload["regions"].([]map[string]any)
	if len(regions) != 1 || regions[0]["utilization"] != "50%" || regions[0]["sites"] != 2 {
		t.Fatalf("unexpected regions %+v", regions)
	}
	totals := payload["totals"].(map[string]any)
	if totals["capacity"] != "100" || totals["current"] != "50" {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if _, ok := payload["utilization_chart"]; !ok {
		t.Fatalf("expected utilization gauge")
	}
}

func TestControllerForecastPage(t *testing.T) {
	controller, svc := newTestController(newStubGateway(), &stubRenderer{})
	mustNoError(t, svc.Refresh(context.Background(), ViewForecastSettings))
	svc.ForecastSettings().SelectScenario("Peak")

	payload, err := controller.Page(context.Background(), ViewForecastSettings)
	mustNoError(t, err)
	if payload["confidence_label"] != "80%" || payload["selected_scenario"] != "Peak" {
		t.Fatalf("unexpected forecast payload %+v", payload)
	}
	scenarios := payload["scenarios"].([]map[string]any)
	if scenarios[1]["growth"] != "10.0%" || scenarios[1]["selected"] != true || scenarios[0]["selected"] != false {
		t.Fatalf("unexpected scenarios %+v", scenarios)
	}
}

func TestControllerErroredViewKeepsRows(t *testing.T) {
	gateway := newStubGateway()
	controller, svc := newTestController(gateway, &stubRenderer{})
	mustNoError(t, svc.Refresh(context.Background(), ViewShipments))
	gateway.fail("shipments", errors.New("timeout"))

	payload, err := controller.Page(context.Background(), ViewShipments)
	mustNoError(t, err)
	if payload["state"] != string(StateLoaded) {
		t.Fatalf("expected loaded before failing refresh")
	}

	data, err := controller.Fetch(context.Background(), ViewShipments)
	mustNoError(t, err)
	snap := data.(Snapshot[[]Shipment])
	if snap.State != StateErrored || snap.Loading || len(snap.Data) != 1 || snap.Error != "timeout" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestControllerDataWarehouses(t *testing.T) {
	controller, svc := newTestController(newStubGateway(), &stubRenderer{})
	mustNoError(t, svc.Refresh(context.Background(), ViewWarehouses))
	data, err := controller.Data(ViewWarehouses)
	mustNoError(t, err)
	regions := data.(map[string]any)["regions"].([]RegionSummary)
	if len(regions) != 1 || regions[0].Capacity != 100 {
		t.Fatalf("unexpected regions %+v", regions)
	}
}

func TestControllerUnknownView(t *testing.T) {
	controller, _ := newTestController(newStubGateway(), &stubRenderer{})
	if _, err := controller.Page(context.Background(), ViewName("nope")); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView from Page, got %v", err)
	}
	if _, err := controller.Fetch(context.Background(), ViewName("nope")); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView from Fetch, got %v", err)
	}
	if _, err := controller.Data(ViewName("nope")); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView from Data, got %v", err)
	}
}

func TestControllerRenderErrors(t *testing.T) {
	controller, _ := newTestController(newStubGateway(), nil)
	if err := controller.RenderTemplate(context.Background(), ViewOrders, io.Discard); !errors.Is(err, errMissingRenderer) {
		t.Fatalf("expected missing renderer error, got %v", err)
	}

	boom := errors.New("template broke")
	controller, _ = newTestController(newStubGateway(), &stubRenderer{err: boom})
	if err := controller.RenderTemplate(context.Background(), ViewOrders, io.Discard); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}

	empty := NewController(ControllerOptions{Renderer: &stubRenderer{}})
	if _, err := empty.Page(context.Background(), ViewOrders); !errors.Is(err, ErrMissingGateway) {
		t.Fatalf("expected ErrMissingGateway without service, got %v", err)
	}
}
