package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics métricas de transiciones de stock: conteo por tipo y resultado, y latencia.
type LedgerMetrics struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewLedgerMetrics registra las métricas en reg. Con reg nil devuelve un valor que no registra nada.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stock_ledger",
		Name:      "transitions_total",
		Help:      "Transiciones de stock por tipo y resultado (created, updated o código de error).",
	}, []string{"kind", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stock_ledger",
		Name:      "transition_duration_seconds",
		Help:      "Duración de applyTransition, incluida la espera del lock del SKU.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
	reg.MustRegister(transitions, duration)
	return &LedgerMetrics{transitions: transitions, duration: duration}
}

// ObserveTransition implementa inventory.TransitionObserver.
func (m *LedgerMetrics) ObserveTransition(kind, result string, elapsed time.Duration) {
	if m == nil || m.transitions == nil {
		return
	}
	kind = normalizeLabel(kind)
	m.transitions.WithLabelValues(kind, normalizeLabel(result)).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
