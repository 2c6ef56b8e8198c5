package engine

import (
	"sort"
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// maxStreakScan bounds the backward walk from today. A year is far past
// any realistic unbroken streak in the stored data.
const maxStreakScan = 365

// CurrentStreak counts consecutive focus days ending at today (local
// time). Today failing to qualify does not break the streak: the day may
// still be in progress, so the walk continues from yesterday. Any older
// day failing ends the count.
func CurrentStreak(sessions []domain.Session, today time.Time) int {
	return currentStreakIn(BucketByDay(sessions), today)
}

func currentStreakIn(buckets map[string][]domain.Session, today time.Time) int {
	streak := 0
	for i := 0; i < maxStreakScan; i++ {
		key := DayKey(today.AddDate(0, 0, -i))
		if IsFocusDay(buckets[key]) {
			streak++
			continue
		}
		if i == 0 {
			// Today is not (yet) a focus day; yesterday decides.
			continue
		}
		break
	}
	return streak
}

// LongestStreak returns the longest run of calendar-consecutive focus
// days anywhere in the history. Independent of today; an isolated
// qualifying day counts as 1.
func LongestStreak(sessions []domain.Session) int {
	return longestStreakIn(BucketByDay(sessions))
}

func longestStreakIn(buckets map[string][]domain.Session) int {
	var days []time.Time
	for key, daySessions := range buckets {
		if !IsFocusDay(daySessions) {
			continue
		}
		d, err := time.ParseInLocation(domain.DateLayout, key, time.Local)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		// Calendar-day delta, not 24h, so DST transitions don't split runs.
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// Streak computes both streak figures in one pass over the buckets.
func Streak(sessions []domain.Session, today time.Time) domain.StreakState {
	buckets := BucketByDay(sessions)
	return domain.StreakState{
		Current: currentStreakIn(buckets, today),
		Longest: longestStreakIn(buckets),
	}
}
