package domain

import "time"

// BadgeRarity groups badges for presentation. Rare badges additionally
// trigger a celebration (confetti) event when unlocked.
type BadgeRarity string

const (
	RarityCommon BadgeRarity = "common"
	RarityRare   BadgeRarity = "rare"
)

// Badge is a static catalog entry. The catalog itself lives in the
// engine; the unlock predicate and progress function are attached there.
type Badge struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
	Rarity      BadgeRarity `json:"rarity"`
}

// EarnedBadge records a single unlock. The earned set is append-only and
// unique by badge ID; a badge is never revoked.
type EarnedBadge struct {
	ID       string    `json:"id"`
	EarnedAt time.Time `json:"earnedAt"`
}

// BadgeProgress pairs a catalog entry with its unlock state for display.
// Percent is 100 for earned badges and a 0-100 distance-to-unlock measure
// for locked ones.
type BadgeProgress struct {
	Badge    Badge      `json:"badge"`
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
	Percent  float64    `json:"percent"`
}
