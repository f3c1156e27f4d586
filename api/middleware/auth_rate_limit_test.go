package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
)

type fakeWindowStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeWindowStore() *fakeWindowStore {
	return &fakeWindowStore{counts: map[string]int64{}}
}

func (f *fakeWindowStore) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

func loginRequest(body, remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = remote
	return req
}

func limitedHandler(policy LoginRateLimitPolicy, store windowLimiter) http.Handler {
	return LoginRateLimit(policy, store, nil)(okHandler())
}

func TestLoginRateLimitPolicyFromConfig(t *testing.T) {
	policy := NewLoginRateLimitPolicy(config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginEmailLimit: 5, LoginIPLimit: 20})
	want := LoginRateLimitPolicy{Window: time.Minute, IPLimit: 20, IdentityLimit: 5}
	if policy != want {
		t.Fatalf("expected %+v, got %+v", want, policy)
	}
}

func TestLoginRateLimitPassesBodyThrough(t *testing.T) {
	const body = `{"name":"Tester","email":"tester@example.com","role":"guest","store_id":"HRA900","address":"1 Main St"}`
	handler := LoginRateLimit(LoginRateLimitPolicy{Window: time.Minute, IPLimit: 2, IdentityLimit: 2}, newFakeWindowStore(), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, err := io.ReadAll(r.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if string(got) != body {
				t.Fatalf("body not passed through: %s", got)
			}
			w.WriteHeader(http.StatusOK)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest(body, "1.2.3.4:5678"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLoginRateLimitIdentityLimit(t *testing.T) {
	handler := limitedHandler(LoginRateLimitPolicy{Window: time.Minute, IdentityLimit: 2}, newFakeWindowStore())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		// casing and padding do not create a new identity
		body := `{"email":"  Blocked@Example.com","role":"guest"}`
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, loginRequest(body, "1.2.3.4:5678"))
		codes = append(codes, last.Code)
	}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("expected codes %v, got %v", want, codes)
		}
	}
	if got := last.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(last.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
		t.Fatalf("unexpected code %s", payload.Error.Code)
	}
}

func TestLoginRateLimitTestUserIDCountsAsIdentity(t *testing.T) {
	handler := limitedHandler(LoginRateLimitPolicy{Window: time.Minute, IdentityLimit: 1}, newFakeWindowStore())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, loginRequest(`{"test_user_id":"ADMIN001"}`, "9.9.9.9:1"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, loginRequest(`{"test_user_id":"ADMIN001"}`, "9.9.9.8:1"))
	other := httptest.NewRecorder()
	handler.ServeHTTP(other, loginRequest(`{"test_user_id":"HRA301"}`, "9.9.9.8:1"))

	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests || other.Code != http.StatusOK {
		t.Fatalf("unexpected codes first=%d second=%d other=%d", first.Code, second.Code, other.Code)
	}
}

func TestLoginRateLimitIPLimit(t *testing.T) {
	handler := limitedHandler(LoginRateLimitPolicy{Window: time.Minute, IPLimit: 1}, newFakeWindowStore())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, loginRequest(`{"test_user_id":"HRA301"}`, "5.6.7.8:1234"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, loginRequest(`{"test_user_id":"HRA305"}`, "5.6.7.8:4321"))

	if first.Code != http.StatusOK {
		t.Fatalf("expected first login allowed, got %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second login from same ip blocked, got %d", second.Code)
	}
}

func TestLoginRateLimitStoreFailureIsDependencyError(t *testing.T) {
	store := newFakeWindowStore()
	store.err = errors.New("redis down")
	rec := httptest.NewRecorder()
	limitedHandler(LoginRateLimitPolicy{Window: time.Minute, IPLimit: 1}, store).ServeHTTP(rec, loginRequest(`{}`, "1.1.1.1:1"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestLoginRateLimitDisabled(t *testing.T) {
	cases := map[string]http.Handler{
		"no store":  limitedHandler(LoginRateLimitPolicy{Window: time.Minute, IPLimit: 1, IdentityLimit: 1}, nil),
		"no window": limitedHandler(LoginRateLimitPolicy{IPLimit: 1, IdentityLimit: 1}, newFakeWindowStore()),
	}
	for name, handler := range cases {
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, loginRequest(`{"test_user_id":"HRA301"}`, "1.1.1.1:1"))
			if rec.Code != http.StatusOK {
				t.Fatalf("%s: expected 200, got %d", name, rec.Code)
			}
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", " 10.0.0.1, 10.0.0.2")
	req.RemoteAddr = "1.1.1.1:80"
	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected forwarded ip, got %s", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := clientIP(req); got != "1.1.1.1" {
		t.Fatalf("expected remote ip, got %s", got)
	}
}
