package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCronJobMetricsRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	end := time.Unix(1739180000, 0)

	m.ObserveRun("session-expiry", 250*time.Millisecond, end, nil)
	m.ObserveRun("session-expiry", time.Millisecond, end.Add(time.Minute), errors.New("boom"))
	m.ObserveRun("", time.Millisecond, end, nil)

	if got := testutil.ToFloat64(m.runs.WithLabelValues("session-expiry", outcomeSuccess)); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("session-expiry", outcomeFailure)); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("unknown", outcomeSuccess)); got != 1 {
		t.Fatalf("expected blank job name recorded as unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.lastRun.WithLabelValues("session-expiry")); got != float64(end.Unix()) {
		t.Fatalf("unexpected last run %v", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 2 {
		t.Fatalf("expected 2 duration series, got %d", got)
	}
}

func TestCronJobMetricsWithoutRegistererIsNoop(t *testing.T) {
	var nilMetrics *CronJobMetrics
	NewCronJobMetrics(nil).ObserveRun("job", time.Second, time.Now(), nil)
	nilMetrics.ObserveRun("job", time.Second, time.Now(), nil)
}
