package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cla-bangladesh/cla-portal/models"
)

// notificationPayload is the backend's wire representation of a notification.
type notificationPayload struct {
	ID        string `json:"id"`
	UserID    string `json:"user"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	LinkPage  string `json:"link_page"`
	LinkCase  string `json:"link_case"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
	Severity  string `json:"severity"`
}

func normalizeNotification(p notificationPayload) models.Notification {
	n := models.Notification{
		ID:        p.ID,
		UserID:    p.UserID,
		Type:      models.NotificationType(p.Type),
		Title:     p.Title,
		Body:      p.Body,
		Timestamp: p.Timestamp,
		Read:      p.Read,
		Severity:  models.NotificationSeverity(p.Severity),
	}
	if n.Severity == "" {
		n.Severity = models.SeverityNormal
	}
	if p.LinkPage != "" {
		n.Link = &models.NotificationLink{
			Page:   models.DashboardSubPage(p.LinkPage),
			CaseID: p.LinkCase,
		}
	}
	return n
}

// UserNotifications implements NotificationService; the backend scopes the
// feed to the bearer session.
func (c *Client) UserNotifications(ctx context.Context) ([]models.Notification, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/notifications/", nil, &raw); err != nil {
		return nil, err
	}
	var payloads []notificationPayload
	if err := decodeList(raw, &payloads); err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, normalizeNotification(p))
	}
	return out, nil
}
