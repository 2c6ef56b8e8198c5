// Package metrics provides Prometheus metrics for Memoir: counters for
// recorded sessions and badge unlocks, gauges for the derived streak,
// and a histogram for derivation latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Sessions ───────────────────────────────────────────────────────────────

// SessionsRecorded tracks saved sessions by productivity label.
var SessionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "memoir",
	Name:      "sessions_recorded_total",
	Help:      "Total study sessions saved.",
}, []string{"productivity"})

// StudySeconds tracks total recorded study time.
var StudySeconds = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "memoir",
	Name:      "study_seconds_total",
	Help:      "Total recorded study time in seconds.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// CurrentStreak tracks the current focus-day streak.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "memoir",
	Name:      "streak_current_days",
	Help:      "Current consecutive focus-day streak.",
})

// LongestStreak tracks the longest recorded streak.
var LongestStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "memoir",
	Name:      "streak_longest_days",
	Help:      "Longest consecutive focus-day streak on record.",
})

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgesUnlocked tracks badge unlocks by rarity.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "memoir",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
}, []string{"rarity"})

// ─── Derivation ─────────────────────────────────────────────────────────────

// DeriveLatency tracks how long a full derivation pass takes (streak,
// badges, goals, insights over the whole session history).
var DeriveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "memoir",
	Name:      "derive_latency_seconds",
	Help:      "Duration of a full metric derivation pass.",
	Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
})
