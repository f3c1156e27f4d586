package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "hra"

// PortalMetrics counts portal activity: logins, opt-ins and live sessions.
type PortalMetrics struct {
	logins         *prometheus.CounterVec
	optIns         *prometheus.CounterVec
	optInCases     *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// NewPortalMetrics registers the portal collectors. A nil registerer yields a no-op recorder.
func NewPortalMetrics(reg prometheus.Registerer) *PortalMetrics {
	if reg == nil {
		return &PortalMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Successful logins by role.",
	}, []string{"role"})
	optIns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "optins_created_total",
		Help:      "Opt-in records created by role of the acting user.",
	}, []string{"role"})
	optInCases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "optin_cases_total",
		Help:      "Cases committed through opt-ins by vendor.",
	}, []string{"vendor"})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Sessions currently held in memory.",
	})
	reg.MustRegister(logins, optIns, optInCases, active)
	return &PortalMetrics{
		logins:         logins,
		optIns:         optIns,
		optInCases:     optInCases,
		activeSessions: active,
	}
}

func (p *PortalMetrics) IncLogin(role string) {
	if p == nil || p.logins == nil {
		return
	}
	p.logins.WithLabelValues(normalizeLabel(role)).Inc()
}

// AddOptIns records count new opt-ins committing cases in total for vendor.
func (p *PortalMetrics) AddOptIns(role, vendor string, count, cases int) {
	if p == nil || p.optIns == nil || count <= 0 {
		return
	}
	p.optIns.WithLabelValues(normalizeLabel(role)).Add(float64(count))
	p.optInCases.WithLabelValues(normalizeLabel(vendor)).Add(float64(cases))
}

func (p *PortalMetrics) SetActiveSessions(n int) {
	if p == nil || p.activeSessions == nil {
		return
	}
	p.activeSessions.Set(float64(n))
}
