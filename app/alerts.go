package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/models"
)

// SendAlert creates an Active emergency alert for the signed-in user,
// prepends it to the alert list, raises a critical notification and a
// success toast. Unauthenticated callers get ErrNoSession and no alert is
// created.
func (a *App) SendAlert(ctx context.Context, location models.Location) (*models.EmergencyAlert, error) {
	a.mu.Lock()
	if a.st.user == nil {
		a.mu.Unlock()
		return nil, ErrNoSession
	}
	user := a.st.user

	alert := models.EmergencyAlert{
		ID:        newEntityID(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserPhone: user.Phone,
		Location:  location,
		Timestamp: a.clock.Now().UnixMilli(),
		Status:    models.AlertActive,
	}
	next := make([]models.EmergencyAlert, 0, len(a.st.alerts)+1)
	next = append(next, alert)
	next = append(next, a.st.alerts...)
	a.st.alerts = next

	a.raiseNotificationLocked(models.Notification{
		UserID:   user.ID,
		Type:     models.NotificationSystem,
		Title:    "Emergency alert sent",
		Body:     "Your emergency alert has been broadcast. Help is on the way.",
		Severity: models.SeverityCritical,
	})
	a.showToastLocked("Emergency alert sent.", models.ToastSuccess)
	a.events.Publish(Event{Kind: EventAlert, Payload: alert})
	a.mu.Unlock()

	a.persistAlerts(ctx)
	zap.S().Infow("emergency alert raised", "alertId", alert.ID, "userId", user.ID)
	return &alert, nil
}

// ResolveAlert transitions the matching Active alert to a terminal state.
// Unknown ids and already-terminal alerts are silent no-ops. Alerts are
// never removed from the list.
func (a *App) ResolveAlert(ctx context.Context, id string, outcome models.AlertStatus) {
	if outcome != models.AlertResolved && outcome != models.AlertFalseAlarm {
		return
	}

	a.mu.Lock()
	changed := false
	next := make([]models.EmergencyAlert, len(a.st.alerts))
	copy(next, a.st.alerts)
	for i := range next {
		if next[i].ID == id && next[i].Status == models.AlertActive {
			next[i].Status = outcome
			changed = true
			a.events.Publish(Event{Kind: EventAlert, Payload: next[i]})
		}
	}
	if !changed {
		a.mu.Unlock()
		return
	}
	a.st.alerts = next
	a.mu.Unlock()

	a.persistAlerts(ctx)
	zap.S().Infow("emergency alert resolved", "alertId", id, "outcome", outcome)
}

func (a *App) persistAlerts(ctx context.Context) {
	a.mu.Lock()
	alerts := a.st.alerts
	a.mu.Unlock()
	if err := localstore.SetJSON(ctx, a.durable, localstore.KeyEmergencyList, alerts); err != nil {
		zap.S().Warnw("failed to persist alerts", "error", err)
	}
}
