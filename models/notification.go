package models

// NotificationType classifies what produced a notification.
type NotificationType string

// Notification types.
const (
	NotificationCaseUpdate   NotificationType = "case_update"
	NotificationNewMessage   NotificationType = "new_message"
	NotificationAppointment  NotificationType = "appointment"
	NotificationSystem       NotificationType = "system"
	NotificationDeadline     NotificationType = "deadline"
	NotificationVerification NotificationType = "verification"
)

// NotificationSeverity ranks a notification's urgency.
type NotificationSeverity string

// Severities.
const (
	SeverityNormal   NotificationSeverity = "normal"
	SeverityWarning  NotificationSeverity = "warning"
	SeverityCritical NotificationSeverity = "critical"
)

// NotificationLink translates a notification into a dashboard destination.
type NotificationLink struct {
	Page   DashboardSubPage `json:"page"`
	CaseID string           `json:"caseId,omitempty"`
}

// Notification holds the structure for a per-user notification. Notifications
// without a link are informational only.
type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Type      NotificationType     `json:"type"`
	Title     string               `json:"title"`
	Body      string               `json:"body,omitempty"`
	Link      *NotificationLink    `json:"link,omitempty"`
	Timestamp int64                `json:"timestamp"`
	Read      bool                 `json:"read"`
	Severity  NotificationSeverity `json:"severity"`
}
