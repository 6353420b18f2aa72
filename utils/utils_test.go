package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"Asha Mehta":  "Asha_Mehta",
		"../etc/pass": "___etc_pass",
		"  ":          "file",
		"Kutch":       "Kutch",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Pax int `json:"pax"`
	}
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"pax": 6}`))
	if err := DecodeJSON(httptest.NewRecorder(), req, &body); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if body.Pax != 6 {
		t.Errorf("pax = %d", body.Pax)
	}

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"paxx": 6}`))
	if err := DecodeJSON(httptest.NewRecorder(), req, &body); err == nil {
		t.Error("expected error for unknown field")
	}
	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(``))
	if err := DecodeJSON(httptest.NewRecorder(), req, &body); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?pax=4&bad=x", nil)
	if n, err := QueryInt(req, "pax", 2); err != nil || n != 4 {
		t.Errorf("pax = %d, %v", n, err)
	}
	if n, err := QueryInt(req, "missing", 2); err != nil || n != 2 {
		t.Errorf("missing = %d, %v", n, err)
	}
	if _, err := QueryInt(req, "bad", 2); err == nil {
		t.Error("expected error for non-integer")
	}
}
