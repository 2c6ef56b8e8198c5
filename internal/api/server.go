// Package api provides the HTTP server for Memoir. The web dashboard
// consumes these endpoints; everything returns JSON.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/memoir-app/memoir/internal/app/study"
)

// Server is the Memoir HTTP API server.
type Server struct {
	sessions       *study.SessionService
	badges         *study.BadgeService
	goals          *study.GoalService
	subjects       *study.SubjectService
	notifications  *study.NotificationService
	summary        *study.SummaryService
	metricsEnabled bool
}

// NewServer creates a new API server over the study services.
func NewServer(
	sessions *study.SessionService,
	badges *study.BadgeService,
	goals *study.GoalService,
	subjects *study.SubjectService,
	notifications *study.NotificationService,
	summary *study.SummaryService,
) *Server {
	return &Server{
		sessions:      sessions,
		badges:        badges,
		goals:         goals,
		subjects:      subjects,
		notifications: notifications,
		summary:       summary,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/streak", s.handleStreak)
		r.Get("/insights", s.handleInsights)

		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleCreateSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)

		r.Get("/badges", s.handleBadges)
		r.Get("/badges/earned", s.handleEarnedBadges)

		r.Get("/goals", s.handleGetGoals)
		r.Put("/goals", s.handleSetGoals)
		r.Get("/goals/progress", s.handleGoalProgress)

		r.Get("/subjects", s.handleSubjects)
		r.Put("/subjects/{name}", s.handleSetSubjectGoal)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the local web dashboard.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
