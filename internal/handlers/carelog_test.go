package handlers

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"herptrack/internal/service"
)

func TestCareLogHandlers_RecordEvent(t *testing.T) {
	log := &mockCareLog{}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		CareLog:       log,
	}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"type":"feed","subtype":"insects","value":12,"unit":"g","occurred_at":"2026-08-29T08:00:00Z"}`)
	w := doRequest(r, http.MethodPost, "/api/v1/pets/p1/events", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("record status=%d, body=%s", w.Code, w.Body.String())
	}
	if log.lastEvent.PetID != "p1" || log.lastEvent.Type != "feed" {
		t.Fatalf("unexpected recorded event: %+v", log.lastEvent)
	}
	want := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	if !log.lastEvent.OccurredAt.Equal(want) {
		t.Fatalf("occurred_at: got %v, want %v", log.lastEvent.OccurredAt, want)
	}

	// Non-RFC3339 timestamp → 400.
	body = bytes.NewBufferString(`{"type":"feed","occurred_at":"2026-08-29 08:00"}`)
	w = doRequest(r, http.MethodPost, "/api/v1/pets/p1/events", body, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad occurred_at status=%d, want 400", w.Code)
	}
}

func TestCareLogHandlers_ListWindow(t *testing.T) {
	log := &mockCareLog{}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		CareLog:       log,
	}
	r := newTestRouter(s)

	// Date-only 'to' extends to the end of that day.
	w := doRequest(r, http.MethodGet,
		"/api/v1/pets/p1/events?from=2026-08-22&to=2026-08-28&types=feed,calcium", nil, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	wantFrom := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	if !log.lastFrom.Equal(wantFrom) {
		t.Fatalf("from: got %v, want %v", log.lastFrom, wantFrom)
	}
	endOfDay := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	if !log.lastTo.Equal(endOfDay) {
		t.Fatalf("to: got %v, want %v", log.lastTo, endOfDay)
	}
	if len(log.lastTypes) != 2 || log.lastTypes[0] != "feed" || log.lastTypes[1] != "calcium" {
		t.Fatalf("types filter: got %v", log.lastTypes)
	}

	// Inverted window → 400.
	w = doRequest(r, http.MethodGet,
		"/api/v1/pets/p1/events?from=2026-08-28&to=2026-08-22", nil, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("inverted window status=%d, want 400", w.Code)
	}
}

func TestCareLogHandlers_RecordReading(t *testing.T) {
	log := &mockCareLog{}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		CareLog:       log,
	}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"zone":" Basking ","temp_c":39.5}`)
	w := doRequest(r, http.MethodPost, "/api/v1/pets/p1/readings", body, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("reading status=%d, body=%s", w.Code, w.Body.String())
	}
	if log.lastReading.Zone != "basking" {
		t.Fatalf("zone not normalized: %q", log.lastReading.Zone)
	}
	if log.lastReading.TempC != 39.5 {
		t.Fatalf("temp: got %v", log.lastReading.TempC)
	}
}
