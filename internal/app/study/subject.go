package study

import (
	"time"

	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

// SubjectService maintains the subject list and derives per-subject
// progress. Subjects are auto-created from session labels during Sync,
// so the list always covers everything that has been studied.
type SubjectService struct {
	db     *sqlite.DB
	userID string
	now    func() time.Time
}

// NewSubjectService creates a subject service for one user.
func NewSubjectService(db *sqlite.DB, userID string) *SubjectService {
	return &SubjectService{db: db, userID: userID, now: time.Now}
}

// Sync creates a subject row for every session label not yet present,
// with the default hour goal. Existing subjects are never touched.
func (s *SubjectService) Sync() error {
	sessions, err := s.db.ListSessions(s.userID)
	if err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, sess := range sessions {
		if sess.Subject == "" || seen[sess.Subject] {
			continue
		}
		seen[sess.Subject] = true
		_, err := s.db.EnsureSubject(s.userID, domain.Subject{
			Name:      sess.Subject,
			GoalHours: domain.DefaultSubjectGoalHours,
			CreatedAt: s.now(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SetGoal creates or updates a subject with the given hour goal.
func (s *SubjectService) SetGoal(name string, goalHours float64) error {
	return s.db.UpsertSubject(s.userID, domain.Subject{
		Name:      name,
		GoalHours: goalHours,
		CreatedAt: s.now(),
	})
}

// Progress derives studied time, session count, average focus, and
// goal percentage for every subject, in subject-list order.
func (s *SubjectService) Progress() ([]domain.SubjectProgress, error) {
	if err := s.Sync(); err != nil {
		return nil, err
	}
	subjects, err := s.db.ListSubjects(s.userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.db.ListSessions(s.userID)
	if err != nil {
		return nil, err
	}

	type tally struct {
		seconds, count, focusSum int
	}
	totals := make(map[string]*tally)
	for _, sess := range sessions {
		t, ok := totals[sess.Subject]
		if !ok {
			t = &tally{}
			totals[sess.Subject] = t
		}
		t.seconds += sess.DurationSeconds
		t.count++
		t.focusSum += sess.FocusScore
	}

	var out []domain.SubjectProgress
	for _, subj := range subjects {
		p := domain.SubjectProgress{Subject: subj}
		if t, ok := totals[subj.Name]; ok {
			p.StudiedSeconds = t.seconds
			p.SessionCount = t.count
			p.AvgFocus = float64(t.focusSum) / float64(t.count)
		}
		if target := subj.GoalHours * 3600; target > 0 {
			p.Percentage = float64(p.StudiedSeconds) / target * 100
			if p.Percentage > 100 {
				p.Percentage = 100
			}
		}
		out = append(out, p)
	}
	return out, nil
}
