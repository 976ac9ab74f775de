package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/availability"
)

func newAvailabilityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/availability/check", srv.CheckAvailability)
	return router
}

func TestCheckAvailabilityHandler(t *testing.T) {
	router := newAvailabilityRouter()

	body := `{
		"arrival_date": "2026-07-11T00:00:00Z",
		"departure_date": "2026-07-14T00:00:00Z",
		"sites": [{"id": "s1"}, {"id": "s2"}],
		"reservations": [
			{"site_id": "s1", "arrival_date": "2026-07-10T00:00:00Z", "departure_date": "2026-07-13T00:00:00Z", "status": "confirmed"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/availability/check", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var parsed struct {
		Data availability.Result `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(parsed.Data.AvailableSites) != 1 || parsed.Data.AvailableSites[0].ID != "s2" {
		t.Fatalf("expected only s2 available, got %+v", parsed.Data.AvailableSites)
	}
	if parsed.Data.Blocked["s1"] != "reserved" {
		t.Fatalf("expected s1 blocked as reserved, got %+v", parsed.Data.Blocked)
	}
}

func TestCheckAvailabilityRejectsInvertedRange(t *testing.T) {
	router := newAvailabilityRouter()

	body := `{"arrival_date": "2026-07-14T00:00:00Z", "departure_date": "2026-07-11T00:00:00Z", "sites": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/availability/check", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
