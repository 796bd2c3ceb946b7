// Package metrics defines and registers all custom Prometheus metrics for the
// RentGuard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rentguard"

// ── Rating ledger metrics ─────────────────────────────────────────────────────

// RatingsCreatedTotal counts successfully recorded ratings.
// Label:
//   - score: the recorded score ("1" … "5")
var RatingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_created_total",
		Help:      "Total number of ratings recorded, by score.",
	},
	[]string{"score"},
)

// RatingConflictsTotal counts attempts to rate an already-rated tenant,
// whether caught by the pre-check or by the store's unique index.
var RatingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_conflicts_total",
		Help:      "Total number of duplicate (tenant, landlord) rating attempts.",
	},
)

// TenantsCreatedTotal counts newly registered tenant identities.
var TenantsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tenants_created_total",
		Help:      "Total number of tenant records created.",
	},
)

// ── Media ingestion metrics ───────────────────────────────────────────────────

// UploadsTotal counts upload batches by outcome.
// Label:
//   - result: "ok", "rejected" (validation), or "failed" (storage error)
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image upload batches, by result.",
	},
	[]string{"result"},
)

// UploadBytesTotal accumulates the bytes of successfully stored objects.
var UploadBytesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_bytes_total",
		Help:      "Total bytes uploaded to object storage.",
	},
)

// UploadDuration measures the storage round trip for a single object.
var UploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_duration_seconds",
		Help:      "Duration of a single object upload to storage.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Listing catalog metrics ───────────────────────────────────────────────────

// ListingsCreatedTotal counts newly published listings.
var ListingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of property listings created.",
	},
)
