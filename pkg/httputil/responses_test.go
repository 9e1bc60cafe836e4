package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteJSON(w, map[string]string{"status": "ok"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Errorf("Unexpected payload: %v", decoded)
	}
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "bad input", http.StatusBadRequest)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	var decoded map[string]string
	json.Unmarshal(w.Body.Bytes(), &decoded)
	if decoded["error"] != "bad input" {
		t.Errorf("Unexpected error payload: %v", decoded)
	}
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"alice"}`))
	var body struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(r, &body); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if body.Name != "alice" {
		t.Errorf("Expected alice, got %s", body.Name)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
	if err := DecodeJSON(r, &body); err == nil {
		t.Error("Invalid JSON should fail to decode")
	}
}

func TestStatusHelpers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(http.ResponseWriter)
		code int
	}{
		{"MethodNotAllowed", func(w http.ResponseWriter) { MethodNotAllowed(w) }, http.StatusMethodNotAllowed},
		{"Unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "") }, http.StatusUnauthorized},
		{"Forbidden", func(w http.ResponseWriter) { Forbidden(w, "") }, http.StatusForbidden},
		{"BadRequest", func(w http.ResponseWriter) { BadRequest(w, "nope") }, http.StatusBadRequest},
		{"NotFound", func(w http.ResponseWriter) { NotFound(w, "") }, http.StatusNotFound},
		{"Conflict", func(w http.ResponseWriter) { Conflict(w, "dup") }, http.StatusConflict},
		{"InternalServerError", func(w http.ResponseWriter) { InternalServerError(w, "", nil) }, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		tc.fn(w)
		if w.Code != tc.code {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.code, w.Code)
		}
	}
}

func TestUnauthorizedDefaultMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Unauthorized(w, "")
	if !strings.Contains(w.Body.String(), "User not authenticated") {
		t.Errorf("Expected default message, got %q", w.Body.String())
	}
}
