// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/mrtimely/timely-cli/internal/config"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	return beeep.Notify(title, message, "")
}

// NotifyActivityComplete displays a notification when an activity's
// completion countdown finalizes.
func (n *Notifier) NotifyActivityComplete(name, tracked string) error {
	title := "⏱ Activity Complete"
	message := fmt.Sprintf("%s finished with %s tracked. Start another round?", name, tracked)
	return n.Notify(title, message)
}

// NotifySessionOver displays a notification when the planned session
// duration runs out.
func (n *Notifier) NotifySessionOver(planned string) error {
	title := "⏱ Session Over"
	message := fmt.Sprintf("Your %s session is up. Everything after this counts as overtime.", planned)
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
