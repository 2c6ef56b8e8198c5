package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// Insight priorities. Lower sorts first.
const (
	priHigh = 1
	priMed  = 2
	priLow  = 3
)

// GenerateInsights derives ranked study suggestions from the session
// history. Rules are independent; each either fires with a fixed
// priority or stays silent. The result is sorted by ascending priority
// with ties kept in rule order, so output is deterministic for a given
// input. No sessions means no insights.
func GenerateInsights(sessions []domain.Session, streak domain.StreakState, now time.Time) []domain.Suggestion {
	if len(sessions) == 0 {
		return nil
	}

	var out []domain.Suggestion
	add := func(priority int, icon, text string) {
		out = append(out, domain.Suggestion{Icon: icon, Text: text, Priority: priority})
	}

	weekInsight(sessions, now, add)
	peakHourInsight(sessions, add)
	badgeProximityInsight(streak, add)
	focusLevelInsight(sessions, add)
	weakSubjectInsight(sessions, add)
	subjectBalanceInsight(sessions, add)
	sessionLengthInsight(sessions, add)
	consistencyInsight(sessions, now, add)
	pauseHabitInsight(sessions, add)
	weekendInsight(sessions, add)
	trendInsight(sessions, add)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

type addFunc func(priority int, icon, text string)

// weekInsight compares this week's minutes against last week's.
func weekInsight(sessions []domain.Session, now time.Time, add addFunc) {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	thisWeek, lastWeek := 0, 0
	for _, s := range sessions {
		eff := s.EffectiveTime()
		if eff.IsZero() || eff.After(now) {
			continue
		}
		switch {
		case !eff.Before(weekAgo):
			thisWeek += s.DurationSeconds
		case !eff.Before(twoWeeksAgo):
			lastWeek += s.DurationSeconds
		}
	}
	if lastWeek == 0 {
		return
	}
	deltaMin := (thisWeek - lastWeek) / 60
	switch {
	case deltaMin > 0:
		add(priHigh, "📈", fmt.Sprintf("You studied %d min more than last week", deltaMin))
	case deltaMin < 0:
		add(priHigh, "📉", fmt.Sprintf("You studied %d min less than last week", -deltaMin))
	}
}

// peakHourInsight finds the local hour with the highest summed focus
// score. Only timestamped sessions participate.
func peakHourInsight(sessions []domain.Session, add addFunc) {
	var byHour [24]int
	any := false
	for _, s := range sessions {
		if s.Timestamp == 0 {
			continue
		}
		byHour[s.Time().Hour()] += s.FocusScore
		any = true
	}
	if !any {
		return
	}
	best := 0
	for h := 1; h < 24; h++ {
		if byHour[h] > byHour[best] {
			best = h
		}
	}
	add(priMed, "🧠", fmt.Sprintf("Best focus time: %d:00", best))
}

// badgeProximityInsight nudges toward the next streak badge.
func badgeProximityInsight(streak domain.StreakState, add addFunc) {
	switch {
	case streak.Current < 3:
		add(priLow, "🔥", fmt.Sprintf("%d more focus days to earn Streak Starter", 3-streak.Current))
	case streak.Current < 7:
		add(priLow, "⚡", fmt.Sprintf("%d more focus days to earn Streak Master", 7-streak.Current))
	}
}

// focusLevelInsight reacts to the overall average focus score. The low
// and high branches are mutually exclusive.
func focusLevelInsight(sessions []domain.Session, add addFunc) {
	sum := 0
	for _, s := range sessions {
		sum += s.FocusScore
	}
	avg := float64(sum) / float64(len(sessions))
	switch {
	case avg < 50:
		add(priHigh, "⚠️", "Try shorter sessions (25-30 min) to improve focus")
	case avg >= 75:
		add(priMed, "🌟", fmt.Sprintf("Excellent focus! You average %.0f%%", avg))
	}
}

// weakSubjectInsight flags the subject with the lowest average focus,
// requiring at least two sessions so one bad day doesn't condemn it.
func weakSubjectInsight(sessions []domain.Session, add addFunc) {
	type tally struct {
		sum, n int
	}
	bySubject := make(map[string]*tally)
	var order []string
	for _, s := range sessions {
		t, ok := bySubject[s.Subject]
		if !ok {
			t = &tally{}
			bySubject[s.Subject] = t
			order = append(order, s.Subject)
		}
		t.sum += s.FocusScore
		t.n++
	}

	worst := ""
	worstAvg := 0.0
	for _, name := range order {
		t := bySubject[name]
		if t.n < 2 {
			continue
		}
		avg := float64(t.sum) / float64(t.n)
		if avg < 60 && (worst == "" || avg < worstAvg) {
			worst, worstAvg = name, avg
		}
	}
	if worst != "" {
		add(priMed, "📖", fmt.Sprintf("Focus dips during %s (%.0f%% avg). Try studying it when you're freshest", worst, worstAvg))
	}
}

// subjectBalanceInsight names the most-studied subject whenever more
// than one subject exists.
func subjectBalanceInsight(sessions []domain.Session, add addFunc) {
	seconds := make(map[string]int)
	var order []string
	total := 0
	for _, s := range sessions {
		if _, ok := seconds[s.Subject]; !ok {
			order = append(order, s.Subject)
		}
		seconds[s.Subject] += s.DurationSeconds
		total += s.DurationSeconds
	}
	if len(order) < 2 || total == 0 {
		return
	}
	top := order[0]
	for _, name := range order[1:] {
		if seconds[name] > seconds[top] {
			top = name
		}
	}
	share := float64(seconds[top]) / float64(total) * 100
	add(priLow, "⚖️", fmt.Sprintf("%s takes %.0f%% of your study time. Other subjects may need attention", top, share))
}

// sessionLengthInsight reacts to the average session length.
func sessionLengthInsight(sessions []domain.Session, add addFunc) {
	total := 0
	for _, s := range sessions {
		total += s.DurationSeconds
	}
	avgMin := float64(total) / float64(len(sessions)) / 60
	switch {
	case avgMin < 20:
		add(priMed, "⏳", fmt.Sprintf("Sessions average %.0f min. Try stretching to 25-45 min for deeper work", avgMin))
	case avgMin > 60:
		add(priMed, "☕", fmt.Sprintf("Sessions average %.0f min. Regular breaks keep focus from fading", avgMin))
	}
}

// consistencyInsight measures study days against elapsed days since the
// first session. The encouragement needs more than three distinct study
// days so a brand-new history isn't scolded.
func consistencyInsight(sessions []domain.Session, now time.Time, add addFunc) {
	buckets := BucketByDay(sessions)
	if len(buckets) == 0 {
		return
	}
	var first time.Time
	for key := range buckets {
		d, err := time.ParseInLocation(domain.DateLayout, key, time.Local)
		if err != nil {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	if first.IsZero() {
		return
	}
	elapsed := int(now.Sub(first).Hours()/24) + 1
	if elapsed < 1 {
		elapsed = 1
	}
	ratio := float64(len(buckets)) / float64(elapsed) * 100
	switch {
	case ratio < 50 && len(buckets) > 3:
		add(priHigh, "📆", "Studying most days beats occasional marathons. Aim for a little every day")
	case ratio >= 80:
		add(priMed, "✅", fmt.Sprintf("You've studied on %.0f%% of days. Great consistency", ratio))
	}
}

// pauseHabitInsight fires when sessions are heavily interrupted.
func pauseHabitInsight(sessions []domain.Session, add addFunc) {
	pauses := 0
	for _, s := range sessions {
		pauses += s.PauseCount
	}
	avg := float64(pauses) / float64(len(sessions))
	if avg > 5 {
		add(priMed, "⏸️", fmt.Sprintf("You pause %.0f times per session on average. Silencing notifications may help", avg))
	}
}

// weekendInsight compares weekend and weekday focus.
func weekendInsight(sessions []domain.Session, add addFunc) {
	var weSum, weN, wdSum, wdN int
	for _, s := range sessions {
		eff := s.EffectiveTime()
		if eff.IsZero() {
			continue
		}
		if wd := eff.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weSum += s.FocusScore
			weN++
		} else {
			wdSum += s.FocusScore
			wdN++
		}
	}
	if weN == 0 || wdN == 0 {
		return
	}
	gap := float64(weSum)/float64(weN) - float64(wdSum)/float64(wdN)
	if gap > 10 {
		add(priLow, "🌤️", "Your weekend focus is noticeably higher. Consider scheduling tough topics then")
	}
}

// trendInsight compares the three most recent sessions against the
// three before them.
func trendInsight(sessions []domain.Session, add addFunc) {
	if len(sessions) < 6 {
		return
	}
	ordered := make([]domain.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EffectiveTime().Before(ordered[j].EffectiveTime())
	})

	n := len(ordered)
	recent := avgFocus(ordered[n-3:])
	previous := avgFocus(ordered[n-6 : n-3])
	switch {
	case recent-previous > 15:
		add(priMed, "📊", "Your focus is trending up over recent sessions. Keep it going")
	case previous-recent > 15:
		add(priHigh, "🔻", "Your focus has dipped in recent sessions. A rest day might help")
	}
}

func avgFocus(sessions []domain.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sessions {
		sum += s.FocusScore
	}
	return float64(sum) / float64(len(sessions))
}
