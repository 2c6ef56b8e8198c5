package study

import (
	"strconv"
	"time"

	"github.com/memoir-app/memoir/internal/app/engine"
	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

// GoalService stores the user's study-time targets and derives progress
// against them.
type GoalService struct {
	db     *sqlite.DB
	userID string
	now    func() time.Time
}

// NewGoalService creates a goal service for one user.
func NewGoalService(db *sqlite.DB, userID string) *GoalService {
	return &GoalService{db: db, userID: userID, now: time.Now}
}

func goalPrefKey(period domain.GoalPeriod) string {
	return "goal_" + string(period)
}

// Get returns the configured goals, falling back to the defaults for
// any period never set.
func (g *GoalService) Get() (domain.GoalSet, error) {
	goals := domain.DefaultGoals()
	set := map[domain.GoalPeriod]*float64{
		domain.PeriodDaily:   &goals.DailyHours,
		domain.PeriodWeekly:  &goals.WeeklyHours,
		domain.PeriodMonthly: &goals.MonthlyHours,
		domain.PeriodTotal:   &goals.TotalHours,
	}
	for period, dest := range set {
		raw, err := g.db.GetPref(g.userID, goalPrefKey(period))
		if err != nil {
			return domain.GoalSet{}, err
		}
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			*dest = v
		}
	}
	return goals, nil
}

// Set validates and persists a full goal configuration.
func (g *GoalService) Set(goals domain.GoalSet) error {
	if err := goals.Validate(); err != nil {
		return err
	}
	for _, period := range domain.Periods() {
		hours := float64(goals.TargetSeconds(period)) / 3600
		if err := g.db.SetPref(g.userID, goalPrefKey(period), strconv.FormatFloat(hours, 'f', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}

// Progress derives actual-vs-target for every period.
func (g *GoalService) Progress() ([]domain.GoalProgress, error) {
	goals, err := g.Get()
	if err != nil {
		return nil, err
	}
	sessions, err := g.db.ListSessions(g.userID)
	if err != nil {
		return nil, err
	}

	now := g.now()
	sn := engine.NewSnapshot(sessions, now)
	var out []domain.GoalProgress
	for _, period := range domain.Periods() {
		out = append(out, sn.GoalProgress(period, goals.TargetSeconds(period)))
	}
	return out, nil
}

// ProgressFor derives actual-vs-target for a single period.
func (g *GoalService) ProgressFor(period domain.GoalPeriod) (domain.GoalProgress, error) {
	goals, err := g.Get()
	if err != nil {
		return domain.GoalProgress{}, err
	}
	sessions, err := g.db.ListSessions(g.userID)
	if err != nil {
		return domain.GoalProgress{}, err
	}
	return engine.GoalProgress(sessions, period, goals.TargetSeconds(period), g.now()), nil
}
