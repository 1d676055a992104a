// Package metrics defines all custom Prometheus metrics for the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Identity metrics ──────────────────────────────────────────────────────────

// SignupsTotal counts registration attempts.
// Labels:
//   - role: "user" or "entrepreneur"
//   - result: "created", "duplicate", or "invalid"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRejectionsTotal counts session tokens rejected by the auth
// middleware.
// Label:
//   - reason: "missing", "expired", or "invalid"
var SessionRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rejections_total",
		Help:      "Total number of rejected session tokens, by reason.",
	},
	[]string{"reason"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ProductsCreatedTotal counts newly created product listings.
// Label:
//   - status: initial listing status ("active", "draft", "soldout")
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of product listings created, by initial status.",
	},
	[]string{"status"},
)

// DashboardCacheTotal counts dashboard cache lookups.
// Label:
//   - result: "hit" or "miss"
var DashboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_cache_total",
		Help:      "Total number of dashboard cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// UploadSignaturesTotal counts issued upload signatures.
var UploadSignaturesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_signatures_total",
		Help:      "Total number of upload signatures issued.",
	},
)
