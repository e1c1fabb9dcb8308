// Package metrics defines and registers all custom Prometheus metrics for
// the restaurants API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurants"

// RestaurantsCreatedTotal counts newly created restaurant listings.
var RestaurantsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of restaurant listings created.",
	},
)

// ReviewsTotal counts review mutations.
// Label:
//   - action: "added", "updated" or "deleted"
var ReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_total",
		Help:      "Total number of review mutations, by action.",
	},
	[]string{"action"},
)

// ImagesUploadedTotal counts images successfully stored with the media
// delegate and attached to a restaurant.
var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of images uploaded to the media delegate.",
	},
)

// MediaCleanupTotal counts outcomes of the background asset cleanup.
// Label:
//   - result: "ok" (destroyed), "retry" (re-enqueued) or "dropped" (gave up)
var MediaCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_cleanup_total",
		Help:      "Total number of media cleanup attempts, by result.",
	},
	[]string{"result"},
)
