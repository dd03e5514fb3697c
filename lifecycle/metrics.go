package lifecycle

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zeebo/xxh3"
)

// Metric definitions with appropriate labels.
var (
	// transitionsTotal tracks applied transitions by lifecycle and edge.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_transitions_total",
		Help: "Total number of applied transitions by lifecycle, from_tag, to_tag, and action",
	}, []string{"lifecycle", "from_tag", "to_tag", "action", "entity_id_hash"})

	// rejectionsTotal tracks inapplicable actions by lifecycle, tag, and action.
	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_rejections_total",
		Help: "Total number of rejected actions by lifecycle, tag, and action",
	}, []string{"lifecycle", "tag", "action", "entity_id_hash"})

	// acknowledgmentsTotal tracks redundant-but-harmless actions.
	acknowledgmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_acknowledgments_total",
		Help: "Total number of acknowledged no-op actions by lifecycle, tag, and action",
	}, []string{"lifecycle", "tag", "action", "entity_id_hash"})

	// decisionDuration tracks time spent resolving one action.
	decisionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lifecycle_decision_duration_seconds",
		Help:    "Duration of action resolution by lifecycle, action, and outcome",
		Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
	}, []string{"lifecycle", "action", "outcome"})
)

// hashEntityID hashes an entity ID into a short label value so raw
// identifiers never reach the metrics backend.
func hashEntityID(id string) string {
	if id == "" {
		return "none"
	}

	return fmt.Sprintf("%016x", xxh3.HashString(id))[:8]
}

func sanitizeLifecycle(name string) string {
	if name == "" {
		return "unknown"
	}

	return name
}
