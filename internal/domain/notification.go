package domain

import "time"

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyBadge       NotificationType = "badge"       // badge unlocked
	NotifyCelebration NotificationType = "celebration" // rare badge — confetti-worthy
	NotifyReminder    NotificationType = "reminder"    // study reminder
)

// Notification is a user-facing message queued for the presentation
// layer (toast in the web UI, desktop notification from the daemon).
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs delivery. Quiet hours suppress desktop
// delivery; suppressed notifications are still logged for the web UI.
type NotificationPolicy struct {
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy keeps desktop toasts out of late evenings.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{QuietStart: "22:00", QuietEnd: "08:00"}
}
