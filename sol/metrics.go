package sol

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "inspector"

type Metrics struct {
	RPCRequests   *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
	Fallbacks     *prometheus.CounterVec
	WatchedPrices *prometheus.GaugeVec
}

// NewMetrics registers the collectors with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPC requests by method and result",
		}, []string{"method", "result"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by cache name and outcome",
		}, []string{"cache", "outcome"}),
		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "resolver",
			Name:      "fallbacks_total",
			Help:      "Resolutions that fell back to a placeholder",
		}, []string{"kind"}),
		WatchedPrices: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "watch",
			Name:      "price_ratio",
			Help:      "Last observed price ratio of a watched pool",
		}, []string{"pool", "direction"}),
	}
}

func (m *Metrics) observeRPC(method string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.RPCRequests.WithLabelValues(method, result).Inc()
}

func (m *Metrics) observeCache(name string, hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.CacheLookups.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) observeFallback(kind string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(kind).Inc()
}
