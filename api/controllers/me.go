package controllers

import (
	"net/http"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/groups"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

// Me returns the signed-in user, their stores with group labels and their primary group.
func Me(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, groups.BuildProfile(sess.Workspace, sess.User))
	}
}
