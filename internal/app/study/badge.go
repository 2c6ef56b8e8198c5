package study

import (
	"fmt"
	"time"

	"github.com/memoir-app/memoir/internal/app/engine"
	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/metrics"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

// BadgeService evaluates the badge catalog against stored sessions and
// persists unlocks. Unlocks are idempotent end to end: the engine skips
// earned IDs and the store ignores duplicate inserts.
type BadgeService struct {
	db            *sqlite.DB
	userID        string
	notifications *NotificationService
	now           func() time.Time
}

// NewBadgeService creates a badge service for one user. notifications
// may be nil; unlocks are then recorded silently.
func NewBadgeService(db *sqlite.DB, userID string, notifications *NotificationService) *BadgeService {
	return &BadgeService{db: db, userID: userID, notifications: notifications, now: time.Now}
}

// Sync evaluates every badge and persists new unlocks. Returns the
// newly unlocked badges; an empty result means nothing changed. Rare
// unlocks queue a celebration notification, common ones a regular one.
func (b *BadgeService) Sync() ([]domain.Badge, error) {
	sessions, err := b.db.ListSessions(b.userID)
	if err != nil {
		return nil, err
	}
	earned, err := b.earnedSet()
	if err != nil {
		return nil, err
	}

	now := b.now()
	eval := engine.EvaluateBadges(sessions, earned, now)

	var unlocked []domain.Badge
	for _, badge := range eval.NewlyUnlocked {
		isNew, err := b.db.UnlockBadge(b.userID, badge.ID, now)
		if err != nil {
			return nil, err
		}
		if !isNew {
			continue
		}
		unlocked = append(unlocked, badge)
		metrics.BadgesUnlocked.WithLabelValues(string(badge.Rarity)).Inc()

		if b.notifications != nil {
			if err := b.notifications.BadgeUnlocked(badge); err != nil {
				return nil, fmt.Errorf("notify badge unlock: %w", err)
			}
		}
	}
	return unlocked, nil
}

// Progress returns the full catalog with earned state and a 0-100
// distance-to-unlock figure per badge, in catalog order.
func (b *BadgeService) Progress() ([]domain.BadgeProgress, error) {
	sessions, err := b.db.ListSessions(b.userID)
	if err != nil {
		return nil, err
	}
	earnedList, err := b.db.ListEarnedBadges(b.userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]time.Time, len(earnedList))
	earned := make(map[string]bool, len(earnedList))
	for _, e := range earnedList {
		earned[e.ID] = true
		earnedAt[e.ID] = e.EarnedAt
	}

	eval := engine.EvaluateBadges(sessions, earned, b.now())

	var out []domain.BadgeProgress
	for _, def := range engine.Catalog() {
		p := domain.BadgeProgress{
			Badge:   def.Badge,
			Earned:  earned[def.ID],
			Percent: eval.Progress[def.ID],
		}
		if at, ok := earnedAt[def.ID]; ok {
			p.EarnedAt = &at
		}
		out = append(out, p)
	}
	return out, nil
}

// Earned returns the earned badges joined with their catalog entries,
// newest first.
func (b *BadgeService) Earned() ([]domain.BadgeProgress, error) {
	earnedList, err := b.db.ListEarnedBadges(b.userID)
	if err != nil {
		return nil, err
	}
	var out []domain.BadgeProgress
	for _, e := range earnedList {
		def, ok := engine.LookupBadge(e.ID)
		if !ok {
			// Catalog entry removed in a later version; skip the orphan.
			continue
		}
		at := e.EarnedAt
		out = append(out, domain.BadgeProgress{
			Badge: def.Badge, Earned: true, EarnedAt: &at, Percent: 100,
		})
	}
	return out, nil
}

// Unlock records a single badge as earned regardless of its predicate.
// Returns whether the badge was newly earned. An ID outside the catalog
// is rejected with ErrUnknownBadge.
func (b *BadgeService) Unlock(id string) (bool, error) {
	def, ok := engine.LookupBadge(id)
	if !ok {
		return false, domain.ErrUnknownBadge
	}
	isNew, err := b.db.UnlockBadge(b.userID, def.ID, b.now())
	if err != nil || !isNew {
		return false, err
	}
	metrics.BadgesUnlocked.WithLabelValues(string(def.Rarity)).Inc()
	if b.notifications != nil {
		if err := b.notifications.BadgeUnlocked(def.Badge); err != nil {
			return true, fmt.Errorf("notify badge unlock: %w", err)
		}
	}
	return true, nil
}

func (b *BadgeService) earnedSet() (map[string]bool, error) {
	list, err := b.db.ListEarnedBadges(b.userID)
	if err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(list))
	for _, e := range list {
		earned[e.ID] = true
	}
	return earned, nil
}
