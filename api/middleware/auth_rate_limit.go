package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

const maxLoginBodyBytes = 16 << 10

type windowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// LoginRateLimitPolicy bounds login attempts per client IP and per identity
// (the declared email, or the test user id for one-click logins).
type LoginRateLimitPolicy struct {
	Window        time.Duration
	IPLimit       int
	IdentityLimit int
}

func NewLoginRateLimitPolicy(cfg config.AuthRateLimitConfig) LoginRateLimitPolicy {
	return LoginRateLimitPolicy{
		Window:        cfg.LoginWindow,
		IPLimit:       cfg.LoginIPLimit,
		IdentityLimit: cfg.LoginEmailLimit,
	}
}

func (p LoginRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.IdentityLimit > 0)
}

// LoginRateLimit rejects logins over either limit with 429 and Retry-After.
// Without a store the middleware is a passthrough.
func LoginRateLimit(policy LoginRateLimitPolicy, store windowLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		l := &loginLimiter{policy: policy, store: store, logg: logg}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if policy.IPLimit > 0 {
				if ip := clientIP(r); ip != "" && !l.check(ctx, w, "ip", ip, policy.IPLimit) {
					return
				}
			}

			if policy.IdentityLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBodyBytes))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if identity := loginIdentity(body); identity != "" && !l.check(ctx, w, "identity", hashValue(identity), policy.IdentityLimit) {
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

type loginLimiter struct {
	policy LoginRateLimitPolicy
	store  windowLimiter
	logg   *logger.Logger
}

// check counts one attempt for subject and writes the rejection when over limit.
func (l *loginLimiter) check(ctx context.Context, w http.ResponseWriter, scope, subject string, limit int) bool {
	allowed, count, err := l.store.FixedWindowAllow(ctx, "login:"+scope+":"+subject, int64(limit), l.policy.Window)
	if err != nil {
		responses.WriteError(ctx, l.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return false
	}
	if allowed {
		return true
	}

	if l.logg != nil {
		l.logg.Warn(l.logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"subject":        subject,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(l.policy.Window.Seconds()),
		}), "auth.rate_limit.blocked")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(l.policy.Window.Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again shortly"))
	return false
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		first, _, _ := strings.Cut(header, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func loginIdentity(payload []byte) string {
	var body struct {
		Email      string `json:"email"`
		TestUserID string `json:"test_user_id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if id := strings.TrimSpace(body.TestUserID); id != "" {
		return "test:" + strings.ToLower(id)
	}
	if email := strings.ToLower(strings.TrimSpace(body.Email)); email != "" {
		return "email:" + email
	}
	return ""
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:16])
}
