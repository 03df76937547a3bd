package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func record(t *testing.T, fn func(echo.Context) error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return rec, body
}

func TestSuccess(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Success(c, Envelope{"data": []int{1, 2}})
	})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "success" {
		t.Errorf("expected status success, got %v", body["status"])
	}
	if body["data"] == nil {
		t.Error("expected data field")
	}
}

func TestError(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Error(c, http.StatusNotFound, "child not found")
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if body["status"] != "error" {
		t.Errorf("expected status error, got %v", body["status"])
	}
	if body["message"] != "child not found" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestValidationFailed(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return ValidationFailed(c, map[string]string{"berat_badan": "must be at least 0"})
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected errors map, got %T", body["errors"])
	}
	if errs["berat_badan"] == nil {
		t.Error("expected berat_badan error entry")
	}
}
