package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for ProviderRequests.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	// ProviderRequests counts outbound provider calls. "empty" means the
	// provider answered but had nothing; "error" covers transport failures,
	// non-2xx statuses, and unparseable bodies.
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lovecinema_provider_requests_total",
		Help: "Outbound provider calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	// RecommendDuration measures the end-to-end pipeline, discovery plus
	// enrichment fan-out.
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lovecinema_recommend_duration_seconds",
		Help:    "End-to-end latency of the recommendation pipeline.",
		Buckets: prometheus.DefBuckets,
	})
)

// Register attaches all collectors to the given registerer. Called once from
// main; tests use the package-level collectors directly.
func Register(r prometheus.Registerer) {
	r.MustRegister(ProviderRequests, RecommendDuration)
}
