package server

import (
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	request := httptest.NewRequest("GET", "/api/pools", nil)
	if token := bearerToken(request); token != "" {
		t.Fatalf("expected empty token without header, got %q", token)
	}

	request.Header.Set("Authorization", "Bearer abc-123")
	if token := bearerToken(request); token != "abc-123" {
		t.Fatalf("expected abc-123, got %q", token)
	}

	request.Header.Set("Authorization", "Basic abc-123")
	if token := bearerToken(request); token != "" {
		t.Fatalf("non-bearer auth must not yield a token, got %q", token)
	}

	request.Header.Set("Authorization", "Bearer   padded  ")
	if token := bearerToken(request); token != "padded" {
		t.Fatalf("expected trimmed token, got %q", token)
	}
}
