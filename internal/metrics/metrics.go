package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	ballotsCastTotal  *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decision_engine",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the decision API.",
		}, []string{"method", "path", "status"})
		ballotsCastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decision_engine",
			Name:      "ballots_cast_total",
			Help:      "Total ballots accepted, by voting method.",
		}, []string{"voting_method"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncBallot increments the ballots_cast_total counter for a voting method.
func IncBallot(votingMethod string) {
	if ballotsCastTotal == nil {
		return
	}
	ballotsCastTotal.WithLabelValues(votingMethod).Inc()
}
