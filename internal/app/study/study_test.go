package study

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/notify"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

const testUser = "local"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixedClock pins "now" so streak and goal windows are deterministic.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func qualifyingSession(date string, subject string) domain.Session {
	ts, _ := time.ParseInLocation(domain.DateLayout, date, time.Local)
	return domain.Session{
		Date:            date,
		Timestamp:       ts.Add(10 * time.Hour).UnixMilli(),
		DurationSeconds: 1860,
		Subject:         subject,
		FocusScore:      85,
		Productivity:    domain.ProdFocused,
		CreatedAt:       ts.Add(10 * time.Hour).UnixMilli(),
	}
}

// seedDays inserts one qualifying session per date.
func seedDays(t *testing.T, svc *SessionService, dates ...string) {
	t.Helper()
	for _, d := range dates {
		if _, err := svc.Record(qualifyingSession(d, "Math")); err != nil {
			t.Fatalf("Record(%s) error: %v", d, err)
		}
	}
}

// ─── Sessions ───────────────────────────────────────────────────────────────

func TestSessionRecordAssignsIDAndDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testUser)
	now := time.Date(2024, 1, 10, 14, 0, 0, 0, time.Local)
	svc.now = fixedClock(now)

	got, err := svc.Record(domain.Session{DurationSeconds: 1800, FocusScore: 80, Productivity: domain.ProdFocused})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if got.ID == "" {
		t.Error("Record() should assign an ID")
	}
	if got.Date != "2024-01-10" {
		t.Errorf("Date = %q, want 2024-01-10", got.Date)
	}
	if got.Timestamp != now.UnixMilli() {
		t.Errorf("Timestamp = %d, want %d", got.Timestamp, now.UnixMilli())
	}
	if got.Subject != domain.NoSubject {
		t.Errorf("Subject = %q, want %q", got.Subject, domain.NoSubject)
	}

	stored, err := svc.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != got.ID {
		t.Fatalf("List() = %+v, want the recorded session", stored)
	}
}

func TestSessionCompleteDraft(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testUser)
	now := time.Date(2024, 1, 10, 14, 0, 0, 0, time.Local)
	svc.now = fixedClock(now)

	draft := domain.SessionDraft{Subject: "Math", StartedAt: now.Add(-30 * time.Minute)}
	draft.Pause()
	draft.Distraction()

	got, err := svc.Complete(draft, 1800)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got.FocusScore != 75 {
		t.Errorf("FocusScore = %d, want 75 (one pause, one distraction)", got.FocusScore)
	}
	if got.Productivity != domain.ProdFocused {
		t.Errorf("Productivity = %q, want Focused", got.Productivity)
	}
}

func TestSessionDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testUser)
	got, err := svc.Record(qualifyingSession("2024-01-10", "Math"))
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := svc.Delete(got.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := svc.Delete(got.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("second Delete() = %v, want ErrSessionNotFound", err)
	}
}

// ─── Badges ─────────────────────────────────────────────────────────────────

func TestBadgeSyncUnlocksAndNotifies(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db, testUser)
	rec := &notify.Recorder{}
	notifs := NewNotificationService(db, testUser, rec)
	notifs.now = fixedClock(time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local))
	badges := NewBadgeService(db, testUser, notifs)
	badges.now = fixedClock(time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local))

	seedDays(t, sessions, "2024-01-01", "2024-01-02", "2024-01-03")

	unlocked, err := badges.Sync()
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	ids := make(map[string]bool)
	for _, b := range unlocked {
		ids[b.ID] = true
	}
	if !ids["streak_3"] || !ids["focus_80"] {
		t.Errorf("unlocked = %v, want streak_3 and focus_80", ids)
	}
	if len(rec.Notified) == 0 {
		t.Error("expected unlock notifications")
	}

	// Second sync is a no-op.
	again, err := badges.Sync()
	if err != nil {
		t.Fatalf("Sync() #2 error: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second Sync() unlocked %d, want 0", len(again))
	}
}

func TestBadgeRareUnlockCelebrates(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db, testUser)
	rec := &notify.Recorder{}
	noon := time.Date(2024, 1, 7, 12, 0, 0, 0, time.Local)
	notifs := NewNotificationService(db, testUser, rec)
	notifs.now = fixedClock(noon)
	badges := NewBadgeService(db, testUser, notifs)
	badges.now = fixedClock(noon)

	seedDays(t, sessions,
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07")

	if _, err := badges.Sync(); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	found := false
	for _, msg := range rec.Celebrated {
		if strings.Contains(msg, "Streak Master") {
			found = true
		}
	}
	if !found {
		t.Errorf("celebrations = %v, want one for Streak Master", rec.Celebrated)
	}
}

func TestBadgeProgressCoversCatalog(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db, testUser)
	badges := NewBadgeService(db, testUser, nil)
	badges.now = fixedClock(time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local))

	seedDays(t, sessions, "2024-01-01", "2024-01-02")

	progress, err := badges.Progress()
	if err != nil {
		t.Fatalf("Progress() error: %v", err)
	}
	if len(progress) != 13 {
		t.Fatalf("Progress() covers %d badges, want 13", len(progress))
	}
	for _, p := range progress {
		if p.Percent < 0 || p.Percent > 100 {
			t.Errorf("badge %q percent %v out of range", p.Badge.ID, p.Percent)
		}
		if p.Earned && p.EarnedAt == nil {
			t.Errorf("badge %q earned without timestamp", p.Badge.ID)
		}
	}
}

func TestBadgeUnlockUnknownID(t *testing.T) {
	db := newTestDB(t)
	badges := NewBadgeService(db, testUser, nil)
	if _, err := badges.Unlock("not_a_badge"); !errors.Is(err, domain.ErrUnknownBadge) {
		t.Fatalf("Unlock(unknown) = %v, want ErrUnknownBadge", err)
	}

	isNew, err := badges.Unlock("streak_3")
	if err != nil || !isNew {
		t.Fatalf("Unlock(streak_3) = %v, %v; want newly earned", isNew, err)
	}
	isNew, err = badges.Unlock("streak_3")
	if err != nil || isNew {
		t.Fatalf("Unlock(streak_3) #2 = %v, %v; want no-op", isNew, err)
	}
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func TestGoalDefaultsAndSet(t *testing.T) {
	db := newTestDB(t)
	goals := NewGoalService(db, testUser)

	got, err := goals.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != domain.DefaultGoals() {
		t.Errorf("Get() = %+v, want defaults", got)
	}

	want := domain.GoalSet{DailyHours: 2, WeeklyHours: 10, MonthlyHours: 40, TotalHours: 100}
	if err := goals.Set(want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err = goals.Get()
	if err != nil {
		t.Fatalf("Get() #2 error: %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGoalSetRejectsInconsistent(t *testing.T) {
	db := newTestDB(t)
	goals := NewGoalService(db, testUser)

	bad := domain.GoalSet{DailyHours: 30, WeeklyHours: 10, MonthlyHours: 40, TotalHours: 100}
	if err := goals.Set(bad); !errors.Is(err, domain.ErrInvalidGoals) {
		t.Fatalf("Set(daily>weekly) = %v, want ErrInvalidGoals", err)
	}
	// The stored configuration is untouched.
	got, err := goals.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != domain.DefaultGoals() {
		t.Errorf("Get() after rejected Set = %+v, want defaults", got)
	}
}

func TestGoalProgressAllPeriods(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db, testUser)
	goals := NewGoalService(db, testUser)
	goals.now = fixedClock(time.Date(2024, 1, 10, 18, 0, 0, 0, time.Local))

	seedDays(t, sessions, "2024-01-10") // 1860s today

	progress, err := goals.Progress()
	if err != nil {
		t.Fatalf("Progress() error: %v", err)
	}
	if len(progress) != 4 {
		t.Fatalf("Progress() covers %d periods, want 4", len(progress))
	}
	daily := progress[0]
	if daily.Period != domain.PeriodDaily || daily.ActualSeconds != 1860 {
		t.Errorf("daily = %+v, want 1860s actual", daily)
	}
	if daily.TargetSeconds != 4*3600 {
		t.Errorf("daily target = %d, want default 4h", daily.TargetSeconds)
	}
}

// ─── Subjects ───────────────────────────────────────────────────────────────

func TestSubjectAutoCreationAndProgress(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db, testUser)
	subjects := NewSubjectService(db, testUser)

	if _, err := sessions.Record(qualifyingSession("2024-01-10", "Math")); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if _, err := sessions.Record(qualifyingSession("2024-01-11", "History")); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	progress, err := subjects.Progress()
	if err != nil {
		t.Fatalf("Progress() error: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("Progress() covers %d subjects, want 2", len(progress))
	}
	for _, p := range progress {
		if p.Subject.GoalHours != domain.DefaultSubjectGoalHours {
			t.Errorf("subject %q goal = %v, want default %d", p.Subject.Name, p.Subject.GoalHours, domain.DefaultSubjectGoalHours)
		}
		if p.StudiedSeconds != 1860 || p.SessionCount != 1 {
			t.Errorf("subject %q progress = %+v", p.Subject.Name, p)
		}
		if p.AvgFocus != 85 {
			t.Errorf("subject %q avg focus = %v, want 85", p.Subject.Name, p.AvgFocus)
		}
	}
}

func TestSubjectSetGoal(t *testing.T) {
	db := newTestDB(t)
	subjects := NewSubjectService(db, testUser)
	if err := subjects.SetGoal("Math", 60); err != nil {
		t.Fatalf("SetGoal() error: %v", err)
	}
	progress, err := subjects.Progress()
	if err != nil {
		t.Fatalf("Progress() error: %v", err)
	}
	if len(progress) != 1 || progress[0].Subject.GoalHours != 60 {
		t.Errorf("Progress() = %+v, want Math at 60h", progress)
	}
}

// ─── Notifications ──────────────────────────────────────────────────────────

func TestNotificationQuietHoursSuppressDesktop(t *testing.T) {
	db := newTestDB(t)
	rec := &notify.Recorder{}
	svc := NewNotificationService(db, testUser, rec)
	svc.now = fixedClock(time.Date(2024, 1, 10, 23, 30, 0, 0, time.Local)) // inside 22:00-08:00

	id, err := svc.Create(domain.Notification{Type: domain.NotifyBadge, Title: "T", Body: "B"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id == 0 {
		t.Fatal("notification should still be logged during quiet hours")
	}
	if len(rec.Notified) != 0 {
		t.Errorf("desktop delivery during quiet hours: %v", rec.Notified)
	}

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("Pending() error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want the suppressed notification", len(pending))
	}
}

func TestNotificationDeliveredMarkedShown(t *testing.T) {
	db := newTestDB(t)
	rec := &notify.Recorder{}
	svc := NewNotificationService(db, testUser, rec)
	svc.now = fixedClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local))

	if _, err := svc.Create(domain.Notification{Type: domain.NotifyBadge, Title: "T", Body: "B"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(rec.Notified) != 1 {
		t.Fatalf("delivered = %d, want 1", len(rec.Notified))
	}
	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("Pending() error: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after delivery = %d, want 0", len(pending))
	}
}

// ─── Summary ────────────────────────────────────────────────────────────────

func TestSummaryBuild(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2024, 1, 3, 18, 0, 0, 0, time.Local)
	sessions := NewSessionService(db, testUser)
	goals := NewGoalService(db, testUser)
	goals.now = fixedClock(now)
	badges := NewBadgeService(db, testUser, nil)
	badges.now = fixedClock(now)
	summary := NewSummaryService(db, testUser, goals, badges)
	summary.now = fixedClock(now)

	seedDays(t, sessions, "2024-01-01", "2024-01-02", "2024-01-03")
	if _, err := badges.Sync(); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	got, err := summary.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got.Streak.Current != 3 || got.Streak.Longest != 3 {
		t.Errorf("Streak = %+v, want 3/3", got.Streak)
	}
	if got.TotalSessions != 3 || got.StudyDays != 3 {
		t.Errorf("counts = %d sessions / %d days, want 3/3", got.TotalSessions, got.StudyDays)
	}
	if got.TotalSeconds != 3*1860 {
		t.Errorf("TotalSeconds = %d, want %d", got.TotalSeconds, 3*1860)
	}
	if got.AvgFocus != 85 {
		t.Errorf("AvgFocus = %v, want 85", got.AvgFocus)
	}
	if got.AvgSessionMin != 31 {
		t.Errorf("AvgSessionMin = %v, want 31", got.AvgSessionMin)
	}
	if len(got.Goals) != 4 {
		t.Errorf("Goals covers %d periods, want 4", len(got.Goals))
	}
	if len(got.RecentBadges) == 0 || len(got.RecentBadges) > 3 {
		t.Errorf("RecentBadges = %d, want 1-3", len(got.RecentBadges))
	}
	if len(got.Insights) == 0 {
		t.Error("expected at least one insight")
	}
}
