package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/config"
	"github.com/joshuahuffman02/Keepr-sub014/internal/deposit"
)

func newDepositRouter(cfg config.PricingConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{pricingCfg: config.StaticPricingConfigHolder(cfg)}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/deposits/calculate", srv.CalculateDeposit)
	return router
}

func postDeposit(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/deposits/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeDeposit(t *testing.T, resp *httptest.ResponseRecorder) deposit.CalculateResult {
	t.Helper()
	var parsed struct {
		Data deposit.CalculateResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return parsed.Data
}

func TestCalculateDepositUsesConfiguredPolicy(t *testing.T) {
	router := newDepositRouter(config.PricingConfig{
		DepositPolicyType:  "percent",
		DepositPolicyValue: 0.25,
	})

	resp := postDeposit(t, router, `{"total_cents":40000}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	result := decodeDeposit(t, resp)
	if result.DepositCents != 10000 {
		t.Fatalf("expected deposit 10000, got %d", result.DepositCents)
	}
	if result.PolicyType != deposit.Percent {
		t.Fatalf("expected percent policy, got %q", result.PolicyType)
	}
}

func TestCalculateDepositRequestOverridesPolicy(t *testing.T) {
	router := newDepositRouter(config.DefaultPricingConfig())

	resp := postDeposit(t, router, `{"total_cents":40000,"policy_type":"flat","policy_value":5000}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	result := decodeDeposit(t, resp)
	if result.DepositCents != 5000 {
		t.Fatalf("expected deposit 5000, got %d", result.DepositCents)
	}
}

func TestCalculateDepositInvalidPolicy(t *testing.T) {
	router := newDepositRouter(config.DefaultPricingConfig())

	resp := postDeposit(t, router, `{"total_cents":40000,"policy_type":"half_up_front"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
