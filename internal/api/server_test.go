package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/ArthurEly/finn-old/internal/logger"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	NewServer(logger.JSON(&strings.Builder{}, slog.LevelError)).Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDeriveOK(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	body := `{
		"num_channels": 64,
		"pe": 8,
		"num_steps": 3,
		"input_type": "INT8",
		"weight_type": "INT8",
		"output_type": "UINT4",
		"mem_mode": "decoupled"
	}`
	rec := doJSON(t, e, http.MethodPost, "/v1/derive", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp DeriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.ID, "drv_") {
		t.Errorf("id = %q", resp.ID)
	}
	if resp.Derived.Tmem != 8 {
		t.Errorf("tmem = %d, want 8", resp.Derived.Tmem)
	}
	if resp.Derived.WeightStreamWidth != 192 {
		t.Errorf("weight stream width = %d, want 192", resp.Derived.WeightStreamWidth)
	}
	if resp.Derived.Resources.BRAM != 0 || resp.Derived.Resources.LUT != 0 {
		t.Errorf("resource stubs should be zero: %+v", resp.Derived.Resources)
	}
}

func TestDeriveAppliesDefaults(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	body := `{"num_channels": 4, "pe": 2, "input_type": "INT8", "weight_type": "INT8", "output_type": "UINT4"}`
	rec := doJSON(t, e, http.MethodPost, "/v1/derive", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp DeriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if got := resp.Derived.FoldedInputShape; len(got) != 3 || got[0] != 1 {
		t.Errorf("folded shape = %v, want defaults applied", got)
	}
	if resp.Derived.WeightStreamWidth != 0 {
		t.Errorf("default mem_mode should be const (no weight stream), got %d", resp.Derived.WeightStreamWidth)
	}
}

func TestDeriveRejectsInconsistentConfig(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	body := `{"num_channels": 10, "pe": 3, "input_type": "INT8", "weight_type": "INT8", "output_type": "UINT4"}`
	rec := doJSON(t, e, http.MethodPost, "/v1/derive", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "config_error") {
		t.Errorf("body = %s, want config_error", rec.Body.String())
	}
}

func TestDeriveRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/derive", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
