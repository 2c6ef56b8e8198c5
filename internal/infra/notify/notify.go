// Package notify delivers user-facing notifications. The daemon uses
// the desktop notifier (native toasts via beeep); tests and headless
// environments use the no-op or recording notifiers.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
)

// Notifier delivers one notification to the user. Celebrate is used for
// rare badge unlocks and may be louder than Notify.
type Notifier interface {
	Notify(title, body string) error
	Celebrate(title, body string) error
}

// Desktop sends native desktop notifications.
type Desktop struct{}

// NewDesktop returns a desktop notifier with the app name set.
func NewDesktop() *Desktop {
	beeep.AppName = "Memoir"
	return &Desktop{}
}

// Notify shows a regular desktop notification.
func (d *Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Celebrate shows an alert-level notification for rare unlocks.
func (d *Desktop) Celebrate(title, body string) error {
	return beeep.Alert(title, body, "")
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Notify(title, body string) error    { return nil }
func (Noop) Celebrate(title, body string) error { return nil }

// Recorder captures notifications for tests.
type Recorder struct {
	mu sync.Mutex

	Notified   []string
	Celebrated []string
}

func (r *Recorder) Notify(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notified = append(r.Notified, title+": "+body)
	return nil
}

func (r *Recorder) Celebrate(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Celebrated = append(r.Celebrated, title+": "+body)
	return nil
}
