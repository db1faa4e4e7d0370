package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cashroute/cashroute/pkg/auth"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret-key",
		Issuer:     "test",
		Expiration: 1 * time.Hour,
	})
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	return svc
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_SkipPaths(t *testing.T) {
	mw := AuthMiddleware(newTestJWTService(t), []string{"/healthz", "/readyz"})
	handler := mw(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for skipped path, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mw := AuthMiddleware(newTestJWTService(t), nil)
	handler := mw(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/route-plans", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	mw := AuthMiddleware(newTestJWTService(t), nil)
	handler := mw(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/route-plans", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid format, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidTokenReachesHandler(t *testing.T) {
	svc := newTestJWTService(t)
	mw := AuthMiddleware(svc, nil)

	var gotClaims *auth.Claims
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = auth.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	userID := uuid.New()
	token, err := svc.GenerateToken(userID, []string{auth.RolePlanner})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/route-plans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != userID {
		t.Fatalf("expected claims for %s in request context, got %+v", userID, gotClaims)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		if !rl.Allow() {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}

	if rl.Allow() {
		t.Fatal("6th request should have been denied")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(10)

	for i := 0; i < 10; i++ {
		rl.Allow()
	}
	if rl.Allow() {
		t.Fatal("should be denied after draining tokens")
	}

	rl.mu.Lock()
	rl.lastRefill = time.Now().Add(-1 * time.Second)
	rl.mu.Unlock()

	if !rl.Allow() {
		t.Fatal("should be allowed after refill period")
	}
}

func TestRateLimitMiddleware_Returns429WhenExhausted(t *testing.T) {
	mw := RateLimitMiddleware(NewRateLimiter(1))
	handler := mw(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/route-plans", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/v1/route-plans", nil))

	if first.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", second.Code)
	}
}
