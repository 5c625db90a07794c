package models

// AppointmentStatus is the booking state of a consultation.
type AppointmentStatus string

// Appointment states.
const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// Appointment holds the structure for a consultation booking. Client and
// lawyer display fields are denormalized so list views need no directory
// lookup.
type Appointment struct {
	ID       string            `json:"id"`
	ClientID string            `json:"clientId"`
	LawyerID string            `json:"lawyerId"`
	Title    string            `json:"title,omitempty"`
	Type     string            `json:"type,omitempty"`
	Date     string            `json:"date"` // YYYY-MM-DD
	Time     string            `json:"time"`
	Duration int               `json:"duration,omitempty"` // minutes
	Mode     string            `json:"mode"`               // Online | In-Person
	Status   AppointmentStatus `json:"status"`
	Reviewed bool              `json:"reviewed"`
	Notes    string            `json:"notes,omitempty"`
	CaseID   string            `json:"caseId,omitempty"`

	ClientName string `json:"clientName,omitempty"`
	LawyerName string `json:"lawyerName,omitempty"`
	Fee        int    `json:"fee,omitempty"`
}
