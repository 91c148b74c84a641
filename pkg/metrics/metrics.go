package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LikeToggles counts toggle outcomes by result kind
var LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sociable",
	Name:      "like_toggles_total",
	Help:      "Like toggle operations by outcome.",
}, []string{"outcome"})

// LikePartialFailures counts toggles that left the liked-set and the
// target counter inconsistent. Anything non-zero here needs a
// reconciliation pass.
var LikePartialFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sociable",
	Name:      "like_partial_failures_total",
	Help:      "Like toggles whose counter write failed after the liked-set write succeeded.",
})

// MediaUploads counts media store uploads by result
var MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sociable",
	Name:      "media_uploads_total",
	Help:      "Media uploads by result.",
}, []string{"result"})
