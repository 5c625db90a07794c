package models

// AlertStatus is the lifecycle state of an emergency alert. Active is the
// only non-terminal state; alerts are re-statused, never deleted.
type AlertStatus string

// Emergency alert states.
const (
	AlertActive     AlertStatus = "Active"
	AlertResolved   AlertStatus = "Resolved"
	AlertFalseAlarm AlertStatus = "False Alarm"
)

// Location is a geographic point with an optional resolved address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// EmergencyAlert holds the structure for a user-initiated SOS incident.
// Alerts form an audit trail and are retained indefinitely.
type EmergencyAlert struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	UserName  string      `json:"userName"`
	UserPhone string      `json:"userPhone,omitempty"`
	Location  Location    `json:"location"`
	Timestamp int64       `json:"timestamp"`
	Status    AlertStatus `json:"status"`
}
