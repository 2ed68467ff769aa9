// Package metric provides Prometheus metrics for dialauth.
package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestRegistry tests collector registration and exposition.
func TestRegistry(t *testing.T) {
	r := NewRegistry()

	r.ObserveRequest("/users", "POST", 201, 15*time.Millisecond)
	r.ObserveRequest("/tokens", "POST", 401, 40*time.Millisecond)
	r.TokensIssued.Inc()
	r.RecordAuthDecision(true)
	r.RecordAuthDecision(false)
	r.UsersCreated.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`dialauth_requests_total{method="POST",route="/users",status="201"} 1`,
		`dialauth_requests_total{method="POST",route="/tokens",status="401"} 1`,
		"dialauth_tokens_issued_total 1",
		`dialauth_auth_decisions_total{allowed="true"} 1`,
		`dialauth_auth_decisions_total{allowed="false"} 1`,
		"dialauth_users_created_total 1",
		"dialauth_request_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

// TestRegistry_DoubleConstruction tests that registries are independent.
func TestRegistry_DoubleConstruction(t *testing.T) {
	// Each registry owns its collectors; constructing two must not panic
	// with duplicate registration.
	a := NewRegistry()
	b := NewRegistry()
	a.TokensIssued.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)

	body, _ := io.ReadAll(rec.Body)
	if strings.Contains(string(body), "dialauth_tokens_issued_total 1") {
		t.Error("registries share collector state")
	}
}
