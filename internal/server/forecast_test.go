package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/config"
	"github.com/joshuahuffman02/Keepr-sub014/internal/forecast"
)

func newForecastRouter(cfg config.PricingConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{pricingCfg: config.StaticPricingConfigHolder(cfg)}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/forecasting/generate", srv.GenerateForecast)
	return router
}

func TestGenerateForecastHandler(t *testing.T) {
	router := newForecastRouter(config.DefaultPricingConfig())

	body := `{
		"horizon_days": 3,
		"total_sites": 10,
		"history": [
			{"date": "2026-07-08T00:00:00Z", "revenue_cents": 10000, "occupied_sites": 5},
			{"date": "2026-07-09T00:00:00Z", "revenue_cents": 10000, "occupied_sites": 5}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/forecasting/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var parsed struct {
		Data forecast.Result `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(parsed.Data.Days) != 3 {
		t.Fatalf("expected 3 forecast days, got %d", len(parsed.Data.Days))
	}
	if parsed.Data.TotalProjectedCents != 30000 {
		t.Fatalf("expected 30000 projected, got %d", parsed.Data.TotalProjectedCents)
	}
}

func TestGenerateForecastNoHistory(t *testing.T) {
	router := newForecastRouter(config.DefaultPricingConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/forecasting/generate", bytes.NewBufferString(`{"horizon_days": 3}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
