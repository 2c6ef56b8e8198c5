package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/memoir-app/memoir/internal/domain"
)

// ─── Summary / Streak / Insights ────────────────────────────────────────────

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary.Build()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.summary.Streak()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.summary.Insights()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if insights == nil {
		insights = []domain.Suggestion{}
	}
	writeJSON(w, http.StatusOK, insights)
}

// ─── Sessions ───────────────────────────────────────────────────────────────

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		sessions, err := s.sessions.Recent(limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sessions == nil {
			sessions = []domain.Session{}
		}
		writeJSON(w, http.StatusOK, sessions)
		return
	}

	sessions, err := s.sessions.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var sess domain.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		writeError(w, http.StatusBadRequest, "invalid session body: "+err.Error())
		return
	}
	if sess.DurationSeconds <= 0 {
		writeError(w, http.StatusBadRequest, "durationSeconds must be positive")
		return
	}

	saved, err := s.sessions.Record(sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// A new session may complete a day, a streak, or a badge.
	unlocked, err := s.badges.Sync()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session":       saved,
		"newlyUnlocked": unlocked,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Badges ─────────────────────────────────────────────────────────────────

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	progress, err := s.badges.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleEarnedBadges(w http.ResponseWriter, r *http.Request) {
	earned, err := s.badges.Earned()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if earned == nil {
		earned = []domain.BadgeProgress{}
	}
	writeJSON(w, http.StatusOK, earned)
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.Get()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleSetGoals(w http.ResponseWriter, r *http.Request) {
	var goals domain.GoalSet
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal body: "+err.Error())
		return
	}
	if err := s.goals.Set(goals); err != nil {
		if errors.Is(err, domain.ErrInvalidGoals) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.goals.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// ─── Subjects ───────────────────────────────────────────────────────────────

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	progress, err := s.subjects.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if progress == nil {
		progress = []domain.SubjectProgress{}
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleSetSubjectGoal(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body struct {
		GoalHours float64 `json:"goalHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid subject body: "+err.Error())
		return
	}
	if body.GoalHours < 0 {
		writeError(w, http.StatusBadRequest, "goalHours must not be negative")
		return
	}
	if err := s.subjects.SetGoal(name, body.GoalHours); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	pending, err := s.notifications.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if pending == nil {
		pending = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notifications.MarkShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
