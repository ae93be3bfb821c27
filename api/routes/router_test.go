package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/view"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type testServer struct {
	handler http.Handler
	store   *cart.Store
	logs    *bytes.Buffer
}

func newTestServer(t *testing.T, dbP stubPinger) *testServer {
	t.Helper()
	cfg := &config.Config{
		App:         config.AppConfig{Env: "test", CORSOrigins: []string{"http://shop.test"}},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
	}
	logs := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "storefront-test", Output: logs})

	reg := prometheus.NewRegistry()
	cat := catalog.New([]catalog.Product{
		{ID: "1", Name: "Sneakers", Price: decimal.NewFromInt(1500), Image: "/sneakers.png"},
	})
	store := cart.NewStore(cart.Options{Recorder: metrics.NewCartMetrics(reg)})
	presenter := view.NewPresenter(cat, store, logg)
	t.Cleanup(presenter.Close)

	return &testServer{
		handler: NewRouter(cfg, logg, dbP, nil, reg, cat, store, presenter),
		store:   store,
		logs:    logs,
	}
}

func (s *testServer) do(method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	s.handler.ServeHTTP(resp, req)
	return resp
}

func TestRouterCartFlow(t *testing.T) {
	srv := newTestServer(t, stubPinger{})

	resp := srv.do(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"1"}`), nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = srv.do(http.MethodGet, "/api/v1/cart", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data view.CartPanel `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Count != 1 || envelope.Data.Lines[0].Total != "₦1,500" {
		t.Fatalf("unexpected panel %+v", envelope.Data)
	}
}

func TestRouterRepeatedRequestsWithoutRedisEachApply(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	headers := map[string]string{"Idempotency-Key": "same"}
	for i := 0; i < 2; i++ {
		resp := srv.do(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"1"}`), headers)
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201 got %d", resp.Code)
		}
	}
	if srv.store.CartCount() != 2 {
		t.Fatalf("expected both adds to apply without redis, got %d", srv.store.CartCount())
	}
}

func TestRouterHealth(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	if resp := srv.do(http.MethodGet, "/health/live", nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("live: expected 200 got %d", resp.Code)
	}
	if resp := srv.do(http.MethodGet, "/health/ready", nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("ready: expected 200 got %d", resp.Code)
	}

	failing := newTestServer(t, stubPinger{err: errors.New("db down")})
	if resp := failing.do(http.MethodGet, "/health/ready", nil, nil); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready with failing db: expected 503 got %d", resp.Code)
	}
}

func TestRouterMetricsExposeCartOperations(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	srv.do(http.MethodPost, "/api/v1/cart/toggle", nil, nil)

	resp := srv.do(http.MethodGet, "/metrics", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `cart_operations_total{op="toggle_open",result="changed"} 1`) {
		t.Fatalf("metrics missing toggle counter:\n%s", body)
	}
}

func TestRouterRequestIDPropagates(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	resp := srv.do(http.MethodGet, "/api/v1/products", nil, map[string]string{"X-Request-Id": "req-123"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-Id") != "req-123" {
		t.Fatalf("expected request id echoed, got %q", resp.Header().Get("X-Request-Id"))
	}
	if !strings.Contains(srv.logs.String(), `"request_id":"req-123"`) {
		t.Fatalf("expected request id in logs:\n%s", srv.logs.String())
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	resp := srv.do(http.MethodOptions, "/api/v1/cart/toggle", nil, map[string]string{
		"Origin":                        "http://shop.test",
		"Access-Control-Request-Method": http.MethodPost,
	})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://shop.test" {
		t.Fatalf("expected allowed origin, got %q", got)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	srv := newTestServer(t, stubPinger{})
	if resp := srv.do(http.MethodGet, "/api/v1/orders", nil, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
