package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	analyticsdomain "github.com/smallbiznis/compass/internal/analytics/domain"
	"github.com/smallbiznis/compass/internal/config"
)

type fakeAnalyticsService struct {
	snapshot *analyticsdomain.Snapshot
	err      error
	calls    int
}

func (f *fakeAnalyticsService) GetDashboardAnalytics(ctx context.Context) (*analyticsdomain.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func newTestServer(t *testing.T, svc analyticsdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:       engine,
		cfg:          config.Config{},
		analyticsSvc: svc,
	}
	srv.registerAPIRoutes()
	return srv
}

func TestGetDashboardAnalyticsOK(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeAnalyticsService{
		snapshot: &analyticsdomain.Snapshot{
			ActiveUsers:   4,
			TotalProducts: 2,
			TotalRevenue:  300,
			MonthlySales: []analyticsdomain.MonthlyBucket{
				{Year: 2024, Month: 1, Revenue: 100, Orders: 1},
				{Year: 2024, Month: 2, Revenue: 200, Orders: 1},
			},
			KPIs: analyticsdomain.KPIs{
				AverageOrderValue: 150,
				ConversionRate:    "50.00",
			},
			ComputedAt: now,
		},
	}
	srv := newTestServer(t, fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/analytics", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got := body["active_users"]; got != float64(4) {
		t.Fatalf("active_users = %v", got)
	}
	if got := body["total_revenue"]; got != float64(300) {
		t.Fatalf("total_revenue = %v", got)
	}
	if _, present := body["inventory"]; present {
		t.Fatalf("inventory must be omitted when nil")
	}
	kpis, ok := body["kpis"].(map[string]any)
	if !ok {
		t.Fatalf("kpis missing: %v", body)
	}
	if kpis["conversion_rate"] != "50.00" {
		t.Fatalf("conversion_rate = %v", kpis["conversion_rate"])
	}
}

func TestGetDashboardAnalyticsStoreUnavailable(t *testing.T) {
	fake := &fakeAnalyticsService{
		err: fmt.Errorf("%w: count users: connection refused", analyticsdomain.ErrStoreUnavailable),
	}
	srv := newTestServer(t, fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/analytics", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}

	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Type != "store_unavailable" {
		t.Fatalf("error type = %q", body.Error.Type)
	}
}

func TestGetDashboardAnalyticsComputationFailed(t *testing.T) {
	fake := &fakeAnalyticsService{
		err: fmt.Errorf("%w: bad row", analyticsdomain.ErrComputationFailed),
	}
	srv := newTestServer(t, fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/analytics", nil)
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}
