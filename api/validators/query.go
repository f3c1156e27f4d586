package validators

import (
	"fmt"
	"net/http"
	"strconv"

	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
)

// maxQueryValueLen bounds ids, search terms and cursors read from the query string.
const maxQueryValueLen = 128

// QueryString returns the sanitized value of key, cut to maxQueryValueLen.
func QueryString(r *http.Request, key string) string {
	return SanitizeString(r.URL.Query().Get(key), maxQueryValueLen)
}

// ParseQueryInt reads an optional integer in [min, max]. Missing values yield defaultVal.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := QueryString(r, key)
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Invalid("query parameter must be numeric", map[string]string{key: "must be a whole number"})
	}
	if value < min || value > max {
		return 0, pkgerrors.Invalid("query parameter out of range", map[string]string{key: fmt.Sprintf("must be between %d and %d", min, max)})
	}
	return value, nil
}
