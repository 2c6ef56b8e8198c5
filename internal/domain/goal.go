package domain

// GoalPeriod selects which study-time target a progress query is against.
type GoalPeriod string

const (
	PeriodDaily   GoalPeriod = "daily"
	PeriodWeekly  GoalPeriod = "weekly"
	PeriodMonthly GoalPeriod = "monthly"
	PeriodTotal   GoalPeriod = "total"
)

// Periods lists all goal periods in display order.
func Periods() []GoalPeriod {
	return []GoalPeriod{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodTotal}
}

// GoalSet holds the user's configured targets in hours per period.
type GoalSet struct {
	DailyHours   float64 `json:"daily"`
	WeeklyHours  float64 `json:"weekly"`
	MonthlyHours float64 `json:"monthly"`
	TotalHours   float64 `json:"total"`
}

// DefaultGoals returns the stock targets: 4h / 20h / 80h / 200h.
func DefaultGoals() GoalSet {
	return GoalSet{DailyHours: 4, WeeklyHours: 20, MonthlyHours: 80, TotalHours: 200}
}

// TargetSeconds returns the configured target for a period in seconds.
func (g GoalSet) TargetSeconds(period GoalPeriod) int {
	hours := 0.0
	switch period {
	case PeriodDaily:
		hours = g.DailyHours
	case PeriodWeekly:
		hours = g.WeeklyHours
	case PeriodMonthly:
		hours = g.MonthlyHours
	case PeriodTotal:
		hours = g.TotalHours
	}
	return int(hours * 3600)
}

// Validate rejects inconsistent goal configurations before they are
// persisted. A shorter period's target may not exceed a longer one's.
func (g GoalSet) Validate() error {
	if g.DailyHours < 0 || g.WeeklyHours < 0 || g.MonthlyHours < 0 || g.TotalHours < 0 {
		return ErrInvalidGoals
	}
	if g.DailyHours > g.WeeklyHours {
		return ErrInvalidGoals
	}
	if g.WeeklyHours > g.MonthlyHours {
		return ErrInvalidGoals
	}
	return nil
}

// GoalProgress is the derived actual-vs-target result for one period.
type GoalProgress struct {
	Period        GoalPeriod `json:"period"`
	ActualSeconds int        `json:"actualSeconds"`
	TargetSeconds int        `json:"targetSeconds"`
	Percentage    float64    `json:"percentage"` // 0-100, capped
}
