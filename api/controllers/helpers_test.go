package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/hra-tradeshow-backend/api/middleware"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/catalog"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
)

// seededSession signs a builtin test user into a fresh copy of the seed catalog.
func seededSession(t *testing.T, userID workspace.UserID) *workspace.Session {
	t.Helper()
	for _, u := range catalog.BuiltinTestUsers() {
		if u.ID == userID {
			return &workspace.Session{
				ID:        "session-" + userID.String(),
				User:      u,
				Workspace: workspace.New(catalog.Builtin()),
			}
		}
	}
	t.Fatalf("unknown test user %s", userID)
	return nil
}

type call struct {
	method string
	target string
	body   string
	token  string
	params map[string]string
}

func serve(h http.HandlerFunc, sess *workspace.Session, c call) *httptest.ResponseRecorder {
	req := httptest.NewRequest(c.method, c.target, strings.NewReader(c.body))
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	ctx := middleware.WithSession(req.Context(), sess)
	if len(c.params) > 0 {
		rc := chi.NewRouteContext()
		for k, v := range c.params {
			rc.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rc)
	}
	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	env := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error %q: %v", rec.Body.String(), err)
	}
	return env.Error.Code
}
