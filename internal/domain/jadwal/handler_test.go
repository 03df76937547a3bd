package jadwal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/posyandu/posyandu/internal/domain/anak"
	"github.com/posyandu/posyandu/pkg/dates"
)

func newTestHandler(svc *Service) (*Handler, *echo.Echo) {
	return NewHandler(svc, zerolog.Nop()), echo.New()
}

func TestHandler_UpcomingForChild(t *testing.T) {
	children := map[int64]*anak.Anak{
		1: {ID: 1, Nama: "Budi", TanggalLahir: dates.New(2024, time.January, 1)},
	}
	imunisasi := &mockScheduleRepo{items: []*Jadwal{
		event(10, "Imunisasi HB-0", JenisImunisasi, dates.New(2024, time.January, 6), testCreated),
	}}
	svc := newTestService(children, &mockScheduleRepo{}, imunisasi, &mockScheduleRepo{}, dates.New(2024, time.January, 5))
	h, e := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.UpcomingForChild(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status    string          `json:"status"`
		Data      []*Jadwal       `json:"data"`
		ChildInfo ChildInfo       `json:"child_info"`
		Filter    json.RawMessage `json:"filter_info"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Status != "success" {
		t.Errorf("status = %q, want success", body.Status)
	}
	if len(body.Data) != 1 || body.Data[0].Judul != "Imunisasi HB-0" {
		t.Errorf("data = %+v", body.Data)
	}
	if body.ChildInfo.Nama != "Budi" || body.ChildInfo.AgeDays != 4 {
		t.Errorf("child_info = %+v", body.ChildInfo)
	}
	if body.Filter == nil {
		t.Error("filter_info missing")
	}
}

func TestHandler_UpcomingForChild_NotFound(t *testing.T) {
	svc := newTestService(nil, &mockScheduleRepo{}, &mockScheduleRepo{}, &mockScheduleRepo{}, dates.New(2024, time.January, 5))
	h, e := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.UpcomingForChild(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "error" {
		t.Errorf("status = %v, want error", body["status"])
	}
}

func TestHandler_UpcomingForChild_BadID(t *testing.T) {
	svc := newTestService(nil, &mockScheduleRepo{}, &mockScheduleRepo{}, &mockScheduleRepo{}, dates.New(2024, time.January, 5))
	h, e := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.UpcomingForChild(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandler_Upcoming_EmptyIsArray(t *testing.T) {
	svc := newTestService(nil, &mockScheduleRepo{}, &mockScheduleRepo{}, &mockScheduleRepo{}, dates.New(2024, time.January, 5))
	h, e := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Upcoming(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]json.RawMessage
	json.Unmarshal(rec.Body.Bytes(), &body)
	if string(body["data"]) != "[]" {
		t.Errorf("data = %s, want []", body["data"])
	}
}

func TestHandler_AgeRanges(t *testing.T) {
	h, e := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ImunisasiAgeRanges(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body struct {
		Status string              `json:"status"`
		Data   []ImunisasiAgeRange `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Data) != 10 {
		t.Errorf("got %d ranges, want 10", len(body.Data))
	}
}
