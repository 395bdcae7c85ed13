// Package metrics defines and registers all custom Prometheus metrics for the
// confectionery assistant API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "confeitaria"

// ── Intent metrics ────────────────────────────────────────────────────────────

// IntentsTotal counts dispatched intents.
// Labels:
//   - intent: the requested intent name ("unknown" for unrecognised intents)
//   - result: "success" or "error"
var IntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intents_total",
		Help:      "Total number of dispatched intents, by intent and result.",
	},
	[]string{"intent", "result"},
)

// IntentDuration measures end-to-end dispatch latency per intent.
var IntentDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "intent_duration_seconds",
		Help:      "Duration of intent dispatch from receipt to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"intent"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheOpsTotal counts cache lookups by outcome.
// Label:
//   - result: "hit" or "miss"
var CacheOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_ops_total",
		Help:      "Total number of cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// CacheFallbacksTotal counts remote-cache failures absorbed by the in-process
// fallback store.
// Label:
//   - op: "get", "set", "delete", or "clear"
var CacheFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_fallbacks_total",
		Help:      "Total number of remote cache failures handled by the memory fallback.",
	},
	[]string{"op"},
)

// ── Metrics pipeline ──────────────────────────────────────────────────────────

// EventsFlushedTotal counts events persisted by batched flushes.
// Label:
//   - buffer: "user_actions" or "performance"
var EventsFlushedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_flushed_total",
		Help:      "Total number of buffered metric events flushed to the store.",
	},
	[]string{"buffer"},
)

// FlushFailuresTotal counts failed batch writes; the affected events are
// requeued, not dropped.
var FlushFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flush_failures_total",
		Help:      "Total number of failed metric batch writes, by buffer.",
	},
	[]string{"buffer"},
)

// ── Plan limits ───────────────────────────────────────────────────────────────

// PlanDenialsTotal counts create attempts rejected by the plan limiter.
// Labels:
//   - plan: the user's tier
//   - action: the gated action (e.g. "create_expense")
var PlanDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plan_denials_total",
		Help:      "Total number of creates rejected because a plan ceiling was reached.",
	},
	[]string{"plan", "action"},
)
