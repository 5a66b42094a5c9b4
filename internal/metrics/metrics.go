package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "volunteer_service"

var (
	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Event graph cache lookups by result",
		},
		[]string{"kind", "result"}, // result: hit, miss
	)

	messagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total number of messages consumed from RabbitMQ",
		},
		[]string{"routing_key", "outcome"},
	)

	eventViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_views_total",
			Help:      "Event detail views served, by caller type",
		},
		[]string{"caller"}, // anonymous, signed_in
	)
)

// Recorder adapts the package counters to the service and consumer
// observer interfaces.
type Recorder struct{}

func (Recorder) CacheHit(kind string)  { cacheLookupsTotal.WithLabelValues(kind, "hit").Inc() }
func (Recorder) CacheMiss(kind string) { cacheLookupsTotal.WithLabelValues(kind, "miss").Inc() }

func (Recorder) MessageConsumed(routingKey, outcome string) {
	messagesConsumedTotal.WithLabelValues(routingKey, outcome).Inc()
}

// RecordEventView counts a served event detail view.
func RecordEventView(signedIn bool) {
	caller := "anonymous"
	if signedIn {
		caller = "signed_in"
	}
	eventViewsTotal.WithLabelValues(caller).Inc()
}

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}
