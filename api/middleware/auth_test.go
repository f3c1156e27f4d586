package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/auth"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

func newTestSession(t *testing.T, user workspace.User) (*workspace.Registry, *workspace.Session, string) {
	t.Helper()
	registry := workspace.NewRegistry()
	sess := registry.Create(user, workspace.New(workspace.Snapshot{}))
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AccessTokenPayload{
		UserID:    user.ID.String(),
		SessionID: sess.ID,
		Role:      user.Role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return registry, sess, token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, workspace.NewRegistry(), nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, workspace.NewRegistry(), nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	user := workspace.User{ID: "HRA301", Name: "John Smith", Role: enums.UserRoleMember, StoreIDs: []workspace.StoreID{"HRA101"}}
	registry, sess, token := newTestSession(t, user)

	var captured struct {
		user    string
		role    string
		session *workspace.Session
	}
	handler := Auth(testJWT, registry, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		captured.session = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != "HRA301" {
		t.Fatalf("expected user HRA301 got %s", captured.user)
	}
	if captured.role != string(enums.UserRoleMember) {
		t.Fatalf("expected role member got %s", captured.role)
	}
	if captured.session == nil || captured.session.ID != sess.ID {
		t.Fatalf("expected session %s in context", sess.ID)
	}
}

func TestAuthRejectsDroppedSession(t *testing.T) {
	user := workspace.User{ID: "ADMIN001", Role: enums.UserRoleAdmin}
	registry, sess, token := newTestSession(t, user)
	registry.Delete(sess.ID)

	handler := Auth(testJWT, registry, nil)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsRoleMismatch(t *testing.T) {
	registry := workspace.NewRegistry()
	sess := registry.Create(workspace.User{ID: "HRA301", Role: enums.UserRoleMember}, workspace.New(workspace.Snapshot{}))
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AccessTokenPayload{
		UserID:    "HRA301",
		SessionID: sess.ID,
		Role:      enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler := Auth(testJWT, registry, nil)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		role enums.UserRole
		want int
	}{
		{"member allowed", enums.UserRoleMember, http.StatusOK},
		{"guest allowed", enums.UserRoleGuest, http.StatusOK},
		{"vendor forbidden", enums.UserRoleVendor, http.StatusForbidden},
		{"admin forbidden", enums.UserRoleAdmin, http.StatusForbidden},
	}

	handler := RequireRole(nil, enums.UserRoleMember, enums.UserRoleGuest)(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &workspace.Session{ID: "s", User: workspace.User{ID: "u", Role: tt.role}}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(WithSession(req.Context(), sess))
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			if resp.Code != tt.want {
				t.Fatalf("expected %d got %d", tt.want, resp.Code)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "  bearer abc.def  ")
	if got := BearerToken(req); got != "abc.def" {
		t.Fatalf("expected abc.def got %q", got)
	}
	req.Header.Set("Authorization", "raw-token")
	if got := BearerToken(req); got != "raw-token" {
		t.Fatalf("expected raw-token got %q", got)
	}
}
