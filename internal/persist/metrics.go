package persist

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts profile writes. One instance is shared by every gateway in
// the process.
type Metrics struct {
	saves *prometheus.CounterVec
	loads *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathforest",
			Name:      "profile_saves_total",
			Help:      "Profile save attempts by flush mode and result.",
		}, []string{"mode", "result"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathforest",
			Name:      "profile_loads_total",
			Help:      "Profile loads by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.saves, m.loads)
	}
	return m
}

func (m *Metrics) save(mode, result string) {
	if m != nil {
		m.saves.WithLabelValues(mode, result).Inc()
	}
}

func (m *Metrics) load(result string) {
	if m != nil {
		m.loads.WithLabelValues(result).Inc()
	}
}
