package app

import (
	"context"

	"github.com/cla-bangladesh/cla-portal/models"
)

// Notifications returns the signed-in user's notification feed snapshot.
func (a *App) Notifications() []models.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.user == nil {
		return nil
	}
	out := make([]models.Notification, 0, len(a.st.notifications))
	for _, n := range a.st.notifications {
		if n.UserID == a.st.user.ID {
			out = append(out, n)
		}
	}
	return out
}

// MarkAllNotificationsRead flips every notification belonging to the
// signed-in user.
func (a *App) MarkAllNotificationsRead() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.user == nil {
		return
	}
	me := a.st.user.ID

	next := make([]models.Notification, len(a.st.notifications))
	copy(next, a.st.notifications)
	for i := range next {
		if next[i].UserID == me {
			next[i].Read = true
		}
	}
	a.st.notifications = next
}

// OpenNotification resolves a notification's link into a dashboard
// navigation and flips that single notification's read flag. Notifications
// without a link are inert.
func (a *App) OpenNotification(ctx context.Context, id string) {
	a.mu.Lock()
	var link *models.NotificationLink
	for _, n := range a.st.notifications {
		if n.ID == id {
			if n.Link != nil {
				l := *n.Link
				link = &l
			}
			break
		}
	}
	if link == nil {
		a.mu.Unlock()
		return
	}

	next := make([]models.Notification, len(a.st.notifications))
	copy(next, a.st.notifications)
	for i := range next {
		if next[i].ID == id {
			next[i].Read = true
		}
	}
	a.st.notifications = next
	a.mu.Unlock()

	a.GoToDashboardSubPage(ctx, link.Page, link.CaseID)
}

// raiseNotificationLocked appends a locally produced notification and pushes
// it to the event stream.
func (a *App) raiseNotificationLocked(n models.Notification) {
	if n.ID == "" {
		n.ID = newEntityID()
	}
	if n.Timestamp == 0 {
		n.Timestamp = a.clock.Now().UnixMilli()
	}
	if n.Severity == "" {
		n.Severity = models.SeverityNormal
	}
	next := make([]models.Notification, 0, len(a.st.notifications)+1)
	next = append(next, n)
	next = append(next, a.st.notifications...)
	a.st.notifications = next
	a.events.Publish(Event{Kind: EventNotification, Payload: n})
}

// RaiseNotification appends a notification from outside the orchestrator,
// used by background jobs.
func (a *App) RaiseNotification(n models.Notification) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.raiseNotificationLocked(n)
}
