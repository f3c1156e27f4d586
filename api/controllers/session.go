package controllers

import (
	"net/http"

	"github.com/angelmondragon/hra-tradeshow-backend/api/middleware"
	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

func parseBearerToken(r *http.Request) (string, error) {
	token := middleware.BearerToken(r)
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}

// requireSession writes an error and returns false when Auth did not resolve a session.
func requireSession(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*workspace.Session, bool) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil || sess.Workspace == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
		return nil, false
	}
	return sess, true
}
