package study

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/notify"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

// NotificationService logs notifications and forwards them to the
// desktop notifier. Quiet hours suppress desktop delivery only; the log
// entry is always written so the web UI can still show it.
type NotificationService struct {
	db       *sqlite.DB
	userID   string
	notifier notify.Notifier
	policy   domain.NotificationPolicy
	now      func() time.Time
}

// NewNotificationService creates a notification service with the
// default quiet-hours policy.
func NewNotificationService(db *sqlite.DB, userID string, notifier notify.Notifier) *NotificationService {
	return NewNotificationServiceWithPolicy(db, userID, notifier, domain.DefaultNotificationPolicy())
}

// NewNotificationServiceWithPolicy creates a notification service with
// a custom policy.
func NewNotificationServiceWithPolicy(db *sqlite.DB, userID string, notifier notify.Notifier, policy domain.NotificationPolicy) *NotificationService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &NotificationService{db: db, userID: userID, notifier: notifier, policy: policy, now: time.Now}
}

// BadgeUnlocked queues an unlock notification. Rare badges get a
// celebration, common ones a regular toast.
func (n *NotificationService) BadgeUnlocked(badge domain.Badge) error {
	notif := domain.Notification{
		Type:  domain.NotifyBadge,
		Title: "Badge unlocked!",
		Body:  fmt.Sprintf("%s %s: %s", badge.Icon, badge.Name, badge.Description),
	}
	if badge.Rarity == domain.RarityRare {
		notif.Type = domain.NotifyCelebration
		notif.Title = "Rare badge unlocked!"
	}
	_, err := n.Create(notif)
	return err
}

// Create logs a notification and delivers it to the desktop unless the
// current time falls in quiet hours. Returns the notification ID.
func (n *NotificationService) Create(notif domain.Notification) (int64, error) {
	notif.CreatedAt = n.now()
	notif.Shown = false

	id, err := n.db.InsertNotification(n.userID, notif)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	if n.isQuietHour(notif.CreatedAt) {
		return id, nil // Logged but not delivered
	}

	if notif.Type == domain.NotifyCelebration {
		err = n.notifier.Celebrate(notif.Title, notif.Body)
	} else {
		err = n.notifier.Notify(notif.Title, notif.Body)
	}
	if err != nil {
		// Desktop delivery is best effort; the log entry stands.
		return id, nil
	}
	return id, n.db.MarkNotificationShown(n.userID, id)
}

// Pending returns unshown notifications.
func (n *NotificationService) Pending(limit int) ([]domain.Notification, error) {
	return n.db.ListPendingNotifications(n.userID, limit)
}

// MarkShown marks a notification as shown.
func (n *NotificationService) MarkShown(id int64) error {
	return n.db.MarkNotificationShown(n.userID, id)
}

// Policy returns the current notification policy.
func (n *NotificationService) Policy() domain.NotificationPolicy {
	return n.policy
}

// isQuietHour returns true if the given time falls within quiet hours.
func (n *NotificationService) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(n.policy.QuietStart)
	endHour, endMin := parseHHMM(n.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
