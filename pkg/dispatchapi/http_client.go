package dispatchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

const (
	// DefaultBaseURL is the backend root used when none is configured.
	DefaultBaseURL = "http://localhost:8000/api"
	// DefaultShipmentsLimit applies when FetchShipments is called with 0.
	DefaultShipmentsLimit = 50

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 512
)

// HTTPConfig configures the HTTP gateway.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil. Zero means no timeout.
	Timeout time.Duration
	// StrictShapes validates every payload against the embedded schemas.
	StrictShapes bool
	Logger       *slog.Logger
}

// HTTPClient reads the dispatch backend over REST. It never retries, caches
// or deduplicates requests.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	validator *ShapeValidator
	logger    *slog.Logger
}

// NewHTTPClient builds a client for the live backend.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("dispatchapi: base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("dispatchapi: parse base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	client := &HTTPClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  httpClient,
		logger:  logger,
	}
	if cfg.StrictShapes {
		validator, err := NewShapeValidator()
		if err != nil {
			return nil, err
		}
		client.validator = validator
	}
	return client, nil
}

// FetchDashboardSummary calls GET /dashboard.
func (c *HTTPClient) FetchDashboardSummary(ctx context.Context) (dashboard.DashboardSummary, error) {
	var resp dashboard.DashboardSummary
	if err := c.get(ctx, "/dashboard", nil, ShapeDashboard, &resp); err != nil {
		return dashboard.DashboardSummary{}, err
	}
	return resp, nil
}

// FetchOrders calls GET /orders. An empty status omits the parameter.
func (c *HTTPClient) FetchOrders(ctx context.Context, query dashboard.OrdersQuery) (dashboard.OrderResponse, error) {
	if query.Limit <= 0 {
		return dashboard.OrderResponse{}, fmt.Errorf("%w: got %d", ErrInvalidLimit, query.Limit)
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.Status != "" {
		params.Set("status", query.Status)
	}
	var resp dashboard.OrderResponse
	if err := c.get(ctx, "/orders", params, ShapeOrders, &resp); err != nil {
		return dashboard.OrderResponse{}, err
	}
	return resp, nil
}

// FetchShipments calls GET /shipments. A zero limit uses DefaultShipmentsLimit.
func (c *HTTPClient) FetchShipments(ctx context.Context, limit int) (dashboard.TableResponse[dashboard.Shipment], error) {
	if limit == 0 {
		limit = DefaultShipmentsLimit
	}
	if limit < 0 {
		return dashboard.TableResponse[dashboard.Shipment]{}, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	var resp dashboard.TableResponse[dashboard.Shipment]
	if err := c.get(ctx, "/shipments", params, ShapeShipments, &resp); err != nil {
		return dashboard.TableResponse[dashboard.Shipment]{}, err
	}
	return resp, nil
}

// FetchWarehouses calls GET /warehouses.
func (c *HTTPClient) FetchWarehouses(ctx context.Context) (dashboard.TableResponse[dashboard.Warehouse], error) {
	var resp dashboard.TableResponse[dashboard.Warehouse]
	if err := c.get(ctx, "/warehouses", nil, ShapeWarehouses, &resp); err != nil {
		return dashboard.TableResponse[dashboard.Warehouse]{}, err
	}
	return resp, nil
}

// FetchForecastSettings calls GET /forecast/settings.
func (c *HTTPClient) FetchForecastSettings(ctx context.Context) (dashboard.ForecastSettings, error) {
	var resp dashboard.ForecastSettings
	if err := c.get(ctx, "/forecast/settings", nil, ShapeForecastSettings, &resp); err != nil {
		return dashboard.ForecastSettings{}, err
	}
	return resp, nil
}

// FetchForecastOverview calls GET /forecast/overview.
func (c *HTTPClient) FetchForecastOverview(ctx context.Context) (dashboard.ForecastOverview, error) {
	var resp dashboard.ForecastOverview
	if err := c.get(ctx, "/forecast/overview", nil, ShapeForecastOverview, &resp); err != nil {
		return dashboard.ForecastOverview{}, err
	}
	return resp, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, shape Shape, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &GatewayError{Kind: KindTransport, Path: path, Err: fmt.Errorf("build request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "backend request failed",
			"path", path, "request_id", requestID, "duration", time.Since(started), "error", err)
		return &GatewayError{Kind: KindTransport, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.logger.DebugContext(ctx, "backend request",
		"path", path, "request_id", requestID, "status", resp.StatusCode, "duration", time.Since(started))
	if err != nil {
		return &GatewayError{Kind: KindTransport, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return &GatewayError{Kind: KindStatus, Path: path, Status: resp.StatusCode, Body: errorSnippet(body)}
	}
	if c.validator != nil {
		if err := c.validator.Validate(shape, body); err != nil {
			return &GatewayError{Kind: KindDecode, Path: path, Status: resp.StatusCode, Err: err}
		}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &GatewayError{Kind: KindDecode, Path: path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func errorSnippet(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}
