package responseformat

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type point struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

func TestWriteResponseJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)

	if err := NewFormatter().WriteResponse(rec, req, http.StatusOK, point{Time: 1, Value: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}

	var got point
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got != (point{Time: 1, Value: 2}) {
		t.Errorf("unexpected body %+v", got)
	}
}

func TestWriteResponseMsgPackUsesJSONTags(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/view?format=msgpack", nil)

	if err := NewFormatter().WriteResponse(rec, req, http.StatusOK, point{Time: 3, Value: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("unexpected content type %q", ct)
	}

	var got map[string]float64
	if err := msgpack.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid msgpack: %v", err)
	}
	if got["time"] != 3 || got["value"] != 4 {
		t.Errorf("expected json field names in msgpack output, got %v", got)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)

	NewFormatter().WriteError(rec, req, http.StatusServiceUnavailable, "all datasets failed to load")

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("all datasets failed to load")) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, "xml", point{}); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestWriteResponseEncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)

	err := NewFormatter().WriteResponse(rec, req, http.StatusOK, point{Time: 1, Value: math.Inf(1)})
	if err == nil {
		t.Fatal("expected an encoding error for +Inf")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected a JSON error body, got %q: %v", rec.Body.String(), err)
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}
