package net_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "adscope/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestID(t *testing.T) {
	base := context.Background()
	if got := pnet.RequestID(pnet.WithRequest(base, "req-123")); got != "req-123" {
		t.Fatalf("RequestID = %q", got)
	}
	if ctx := pnet.WithRequest(base, ""); ctx != base || pnet.RequestID(ctx) != "" {
		t.Fatalf("blank id should leave ctx untouched")
	}
}

func TestRequestID_SeesChiMiddleware(t *testing.T) {
	var got string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = pnet.RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "from-client")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "from-client" {
		t.Fatalf("RequestID = %q", got)
	}
}
