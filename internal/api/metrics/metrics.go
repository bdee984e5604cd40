// Package metrics defines and registers the custom Prometheus metrics for the
// DevCollab API. It is the single source of truth for metric names, labels,
// and help strings. HTTP request metrics come from the echoprometheus
// middleware; only domain-specific metrics live here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devcollab"

// WSConnections tracks the number of currently connected websocket clients.
var WSConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "Current number of authenticated websocket connections.",
	},
)

// PresenceEventsTotal counts presence broadcasts.
// Label:
//   - event: "user_joined" or "user_left"
var PresenceEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "presence_events_total",
		Help:      "Total number of presence broadcasts, by event type.",
	},
	[]string{"event"},
)

// AdminDeletesTotal counts hard deletes issued from the admin console.
// Label:
//   - resource: "user", "project", or "message"
var AdminDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_deletes_total",
		Help:      "Total number of admin hard deletes, by resource.",
	},
	[]string{"resource"},
)
