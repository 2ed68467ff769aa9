// Package httpserver provides the HTTP/HTTPS server for dialauth.
package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/dialauth/internal/core/service"
	"github.com/yndnr/dialauth/internal/server/config"
	"github.com/yndnr/dialauth/internal/storage"
	"github.com/yndnr/dialauth/internal/storage/memory"
	"github.com/yndnr/dialauth/internal/telemetry/metric"
	"github.com/yndnr/dialauth/pkg/token"
)

// newTestRouter wires a full pipeline over the in-memory engine.
func newTestRouter(t *testing.T, cfg *RouterConfig) http.Handler {
	t.Helper()

	store := memory.New()
	t.Cleanup(func() { store.Close() })

	userRepo := storage.NewUserStore(store)
	tokenRepo := storage.NewTokenStore(store)

	hasher, err := service.NewArgon2Hasher("router-test-secret")
	if err != nil {
		t.Fatalf("NewArgon2Hasher failed: %v", err)
	}

	authority := service.NewTokenAuthority(tokenRepo, userRepo, hasher, token.DefaultLength)

	if cfg == nil {
		cfg = &RouterConfig{}
	}
	cfg.UserService = service.NewUserService(userRepo, authority, hasher)
	cfg.TokenAuthority = authority
	cfg.Logger = newTestLogger(t)
	if cfg.Metrics == nil {
		cfg.Metrics = metric.NewRegistry()
	}

	return NewRouter(cfg)
}

// TestRouter tests route dispatch through the full middleware chain.
func TestRouter(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		router := newTestRouter(t, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("no X-Request-ID on response")
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		router := newTestRouter(t, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("metrics exposition", func(t *testing.T) {
		router := newTestRouter(t, nil)

		// A business request first, so there is something to scrape.
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "dialauth_requests_total") {
			t.Error("exposition missing request counter")
		}
	})

	t.Run("global rate limit applies", func(t *testing.T) {
		router := newTestRouter(t, &RouterConfig{GlobalRateLimit: 2})

		var last int
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = "10.0.0.9:1234"
			router.ServeHTTP(rec, req)
			last = rec.Code
		}
		if last != http.StatusTooManyRequests {
			t.Errorf("status after burst = %d, want 429", last)
		}
	})
}

// TestServerNew tests that config timeouts reach the http.Server.
func TestServerNew(t *testing.T) {
	srv := New(config.HTTPConfig{
		Addr:         "127.0.0.1:0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}, http.NewServeMux())

	if srv.httpServer.Addr != "127.0.0.1:0" {
		t.Errorf("addr = %q", srv.httpServer.Addr)
	}
	if srv.httpServer.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v", srv.httpServer.ReadTimeout)
	}
	if srv.httpServer.WriteTimeout != 10*time.Second {
		t.Errorf("write timeout = %v", srv.httpServer.WriteTimeout)
	}
}
