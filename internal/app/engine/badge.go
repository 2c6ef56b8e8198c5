package engine

import (
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// BadgeStats is the snapshot of session-derived figures the badge
// predicates read. Computing it once amortizes the bucketing pass across
// the whole catalog.
type BadgeStats struct {
	CurrentStreak     int
	DistinctDays      int // distinct calendar days with any session
	BestFocusScore    int
	MaxSessionSeconds int
	MaxDaySeconds     int
	TotalSeconds      int
	HasNightSession   bool // local hour in [22,24) or [0,4)
	HasEarlySession   bool // local hour in [4,7)
}

// BadgeDef binds a catalog entry to its unlock predicate and its
// 0-100 distance-to-unlock measure for locked display.
type BadgeDef struct {
	domain.Badge
	Unlocked func(BadgeStats) bool
	Progress func(BadgeStats) float64
}

// ratio maps current/target onto 0-100, capped.
func ratio(current, target float64) float64 {
	if target <= 0 {
		return 100
	}
	pct := current / target * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func boolPct(ok bool) float64 {
	if ok {
		return 100
	}
	return 0
}

// Catalog returns the fixed badge catalog. This is the only badge list
// in the codebase: the unlock engine and every progress display consume
// it, so the rules cannot drift apart.
func Catalog() []BadgeDef {
	return []BadgeDef{
		{
			Badge: domain.Badge{ID: "streak_3", Name: "Streak Starter", Icon: "🔥",
				Description: "3-day focus streak", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.CurrentStreak >= 3 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.CurrentStreak), 3) },
		},
		{
			Badge: domain.Badge{ID: "streak_7", Name: "Streak Master", Icon: "⚡",
				Description: "7-day focus streak", Rarity: domain.RarityRare},
			Unlocked: func(s BadgeStats) bool { return s.CurrentStreak >= 7 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.CurrentStreak), 7) },
		},
		{
			Badge: domain.Badge{ID: "streak_30", Name: "Habit Hero", Icon: "🏆",
				Description: "30-day focus streak", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.CurrentStreak >= 30 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.CurrentStreak), 30) },
		},
		{
			Badge: domain.Badge{ID: "consistency_5", Name: "Consistency Champ", Icon: "📅",
				Description: "Study on 5 days", Rarity: domain.RarityRare},
			Unlocked: func(s BadgeStats) bool { return s.DistinctDays >= 5 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.DistinctDays), 5) },
		},
		{
			Badge: domain.Badge{ID: "consistency_14", Name: "Dedicated Learner", Icon: "🛡️",
				Description: "Study on 14 days", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.DistinctDays >= 14 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.DistinctDays), 14) },
		},
		{
			Badge: domain.Badge{ID: "focus_80", Name: "Focus Beast", Icon: "🧠",
				Description: "80%+ focus session", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.BestFocusScore >= 80 },
			Progress: func(s BadgeStats) float64 { return boolPct(s.BestFocusScore >= 80) },
		},
		{
			Badge: domain.Badge{ID: "perfect_day", Name: "Perfect Focus", Icon: "✨",
				Description: "90%+ focus session", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.BestFocusScore >= 90 },
			Progress: func(s BadgeStats) float64 { return boolPct(s.BestFocusScore >= 90) },
		},
		{
			Badge: domain.Badge{ID: "deep_worker", Name: "Deep Worker", Icon: "⏱️",
				Description: "2+ hours in one session", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.MaxSessionSeconds >= 7200 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.MaxSessionSeconds), 7200) },
		},
		{
			Badge: domain.Badge{ID: "marathon_day", Name: "Marathoner", Icon: "🏃",
				Description: "3+ hours in one day", Rarity: domain.RarityRare},
			Unlocked: func(s BadgeStats) bool { return s.MaxDaySeconds >= 10800 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.MaxDaySeconds), 10800) },
		},
		{
			Badge: domain.Badge{ID: "night_owl", Name: "Night Owl", Icon: "🦉",
				Description: "Study late at night", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.HasNightSession },
			Progress: func(s BadgeStats) float64 { return boolPct(s.HasNightSession) },
		},
		{
			Badge: domain.Badge{ID: "early_bird", Name: "Early Bird", Icon: "🌅",
				Description: "Study before 7 AM", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.HasEarlySession },
			Progress: func(s BadgeStats) float64 { return boolPct(s.HasEarlySession) },
		},
		{
			Badge: domain.Badge{ID: "scholar_10", Name: "Scholar", Icon: "🎓",
				Description: "10 hours total study", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.TotalSeconds >= 10*3600 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.TotalSeconds), 10*3600) },
		},
		{
			Badge: domain.Badge{ID: "scholar_50", Name: "Master Scholar", Icon: "📜",
				Description: "50 hours total study", Rarity: domain.RarityCommon},
			Unlocked: func(s BadgeStats) bool { return s.TotalSeconds >= 50*3600 },
			Progress: func(s BadgeStats) float64 { return ratio(float64(s.TotalSeconds), 50*3600) },
		},
	}
}

// LookupBadge finds a catalog entry by ID.
func LookupBadge(id string) (BadgeDef, bool) {
	for _, def := range Catalog() {
		if def.ID == id {
			return def, true
		}
	}
	return BadgeDef{}, false
}

// ComputeBadgeStats derives the predicate snapshot from the session set.
func ComputeBadgeStats(sessions []domain.Session, today time.Time) BadgeStats {
	return badgeStatsIn(BucketByDay(sessions), sessions, today)
}

func badgeStatsIn(buckets map[string][]domain.Session, sessions []domain.Session, today time.Time) BadgeStats {
	stats := BadgeStats{
		CurrentStreak: currentStreakIn(buckets, today),
		DistinctDays:  len(buckets),
	}
	for _, s := range sessions {
		if s.FocusScore > stats.BestFocusScore {
			stats.BestFocusScore = s.FocusScore
		}
		if s.DurationSeconds > stats.MaxSessionSeconds {
			stats.MaxSessionSeconds = s.DurationSeconds
		}
		stats.TotalSeconds += s.DurationSeconds
		if s.Timestamp != 0 {
			hour := s.Time().Hour()
			if hour >= 22 || hour < 4 {
				stats.HasNightSession = true
			}
			if hour >= 4 && hour < 7 {
				stats.HasEarlySession = true
			}
		}
	}
	for _, daySessions := range buckets {
		day := 0
		for _, s := range daySessions {
			day += s.DurationSeconds
		}
		if day > stats.MaxDaySeconds {
			stats.MaxDaySeconds = day
		}
	}
	return stats
}

// BadgeEvaluation is the result of one catalog sweep.
type BadgeEvaluation struct {
	NewlyUnlocked []domain.Badge
	// Progress holds a 0-100 figure per badge ID: distance to unlocking
	// for locked badges, 100 for anything already earned or unlocked now.
	Progress map[string]float64
}

// EvaluateBadges sweeps the catalog against the session set. Already
// earned IDs are skipped, never re-evaluated and never revoked, so a
// second sweep with the updated earned set unlocks nothing.
func EvaluateBadges(sessions []domain.Session, earned map[string]bool, today time.Time) BadgeEvaluation {
	return evaluateBadgesWith(ComputeBadgeStats(sessions, today), earned)
}

func evaluateBadgesWith(stats BadgeStats, earned map[string]bool) BadgeEvaluation {
	eval := BadgeEvaluation{Progress: make(map[string]float64)}
	for _, def := range Catalog() {
		if earned[def.ID] {
			eval.Progress[def.ID] = 100
			continue
		}
		if def.Unlocked(stats) {
			eval.NewlyUnlocked = append(eval.NewlyUnlocked, def.Badge)
			eval.Progress[def.ID] = 100
			continue
		}
		eval.Progress[def.ID] = def.Progress(stats)
	}
	return eval
}
