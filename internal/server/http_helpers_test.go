package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"couchclub/internal/errs"
)

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	var dest struct {
		Name string `json:"name"`
	}
	err := readJSON(strings.NewReader(`{"name":"ada","extra":true}`), &dest)
	if err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestWriteServiceErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: pool 9", errs.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: not the host", errs.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: prompt 3", errs.ErrAlreadyResolved), http.StatusConflict},
		{fmt.Errorf("%w: deadline passed", errs.ErrClosed), http.StatusConflict},
		{fmt.Errorf("%w: name is required", errs.ErrValidation), http.StatusBadRequest},
	}
	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		writeServiceError(recorder, tc.err)
		if recorder.Code != tc.status {
			t.Fatalf("writeServiceError(%v) status %d, want %d", tc.err, recorder.Code, tc.status)
		}
		var body map[string]string
		if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
			t.Fatalf("response not JSON: %v", err)
		}
		if body["error"] == "" {
			t.Fatalf("expected an error message for %v", tc.err)
		}
	}
}

func TestWriteServiceErrorHidesInternalMessages(t *testing.T) {
	recorder := httptest.NewRecorder()
	writeServiceError(recorder, fmt.Errorf("pq: connection refused"))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "connection refused") {
		t.Fatalf("internal error details leaked: %s", recorder.Body.String())
	}
}

func TestPathID(t *testing.T) {
	mux := http.NewServeMux()
	var got uint
	var ok bool
	mux.HandleFunc("GET /api/pools/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, ok = pathID(r, "id")
	})
	request := httptest.NewRequest(http.MethodGet, "/api/pools/42", nil)
	mux.ServeHTTP(httptest.NewRecorder(), request)
	if !ok || got != 42 {
		t.Fatalf("expected id 42, got %d ok=%t", got, ok)
	}

	request = httptest.NewRequest(http.MethodGet, "/api/pools/zero", nil)
	mux.ServeHTTP(httptest.NewRecorder(), request)
	if ok {
		t.Fatalf("non-numeric id must not parse")
	}
}
