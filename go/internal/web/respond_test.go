package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"n":1}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		SkinID string `json:"skinId"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"skinId":"3"}`))
	if err := DecodeJSON(httptest.NewRecorder(), req, &dst); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dst.SkinID != "3" {
		t.Fatalf("expected skin 3, got %q", dst.SkinID)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := DecodeJSON(httptest.NewRecorder(), req, &dst); err == nil {
		t.Fatalf("expected error on empty body")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	if err := DecodeJSON(httptest.NewRecorder(), req, &dst); err == nil {
		t.Fatalf("expected error on malformed body")
	}
}
