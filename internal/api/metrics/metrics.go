// Package metrics defines all custom Prometheus metrics for the job
// board API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
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

// RegistrationsTotal counts new accounts by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// ── Profile editing metrics ──────────────────────────────────────────────────

// DraftsSavedTotal counts persisted draft writes.
// Label:
//   - trigger: "auto" (debounce fire) or "manual" (explicit save)
var DraftsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drafts_saved_total",
		Help:      "Total number of profile drafts persisted, by trigger.",
	},
	[]string{"trigger"},
)

// ProfilesPublishedTotal counts successful draft promotions.
var ProfilesPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_published_total",
		Help:      "Total number of profiles published.",
	},
)

// DraftsDiscardedTotal counts discarded drafts.
var DraftsDiscardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drafts_discarded_total",
		Help:      "Total number of profile drafts discarded.",
	},
)

// EditSessionsActive tracks currently open profile edit sessions.
var EditSessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "edit_sessions_active",
		Help:      "Number of profile edit sessions currently open.",
	},
)

// ── Job board metrics ────────────────────────────────────────────────────────

// JobsCreatedTotal counts job postings by type.
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs posted, by job type.",
	},
	[]string{"type"},
)

// ApplicationsCreatedTotal counts submitted job applications.
var ApplicationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of job applications submitted.",
	},
)
