package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"go.uber.org/multierr"
)

type sessionSweeper interface {
	Sweep(now time.Time, idle time.Duration) []string
	Len() int
}

type refreshRevoker interface {
	Revoke(ctx context.Context, accessID string) error
}

type activeSessionGauge interface {
	SetActiveSessions(n int)
}

// SessionExpiryJobParams configures the idle session sweep.
type SessionExpiryJobParams struct {
	Logger   *logger.Logger
	Sessions sessionSweeper
	Refresh  refreshRevoker
	Gauge    activeSessionGauge
	IdleTTL  time.Duration
}

// NewSessionExpiryJob evicts session workspaces nobody has touched for IdleTTL
// and revokes their refresh tokens.
func NewSessionExpiryJob(params SessionExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if params.IdleTTL <= 0 {
		return nil, fmt.Errorf("idle ttl must be positive")
	}
	return &sessionExpiryJob{
		logg:     params.Logger,
		sessions: params.Sessions,
		refresh:  params.Refresh,
		gauge:    params.Gauge,
		idleTTL:  params.IdleTTL,
		now:      time.Now,
	}, nil
}

type sessionExpiryJob struct {
	logg     *logger.Logger
	sessions sessionSweeper
	refresh  refreshRevoker
	gauge    activeSessionGauge
	idleTTL  time.Duration
	now      func() time.Time
}

func (j *sessionExpiryJob) Name() string { return "session-expiry" }

func (j *sessionExpiryJob) Run(ctx context.Context) error {
	evicted := j.sessions.Sweep(j.now(), j.idleTTL)

	var errs error
	if j.refresh != nil {
		for _, id := range evicted {
			if err := j.refresh.Revoke(ctx, id); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("revoke refresh for %s: %w", id, err))
			}
		}
	}

	remaining := j.sessions.Len()
	if j.gauge != nil {
		j.gauge.SetActiveSessions(remaining)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"evicted":   len(evicted),
		"remaining": remaining,
	})
	j.logg.Info(logCtx, "session.sweep")
	return errs
}
