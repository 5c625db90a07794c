package models

// UserRole identifies which persona an account belongs to.
type UserRole string

// Roles supported by the portal.
const (
	RoleCitizen UserRole = "citizen"
	RoleLawyer  UserRole = "lawyer"
	RoleAdmin   UserRole = "admin"
)

// VerificationStatus is the lifecycle state of an account's identity
// confirmation. It is distinct from evidence-document verification.
type VerificationStatus string

// Account verification states.
const (
	VerificationPending      VerificationStatus = "Pending"
	VerificationPendingEmail VerificationStatus = "PendingEmailVerification"
	VerificationVerified     VerificationStatus = "Verified"
	VerificationRejected     VerificationStatus = "Rejected"
)

// User holds the structure for a portal account as seen by the client.
// The backend owns durable truth; this is the normalized in-memory copy.
type User struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone,omitempty"`
	Role               UserRole           `json:"role"`
	Avatar             string             `json:"avatar,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Language           string             `json:"language,omitempty"`
	Theme              string             `json:"theme,omitempty"`

	NotificationSettings *NotificationSettings `json:"notificationSettings,omitempty"`

	// Lawyer-specific fields
	Specializations []string `json:"specializations,omitempty"`
	Experience      int      `json:"experience,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Location        string   `json:"location,omitempty"`
	Fees            int      `json:"fees,omitempty"`
	BarID           string   `json:"barId,omitempty"`
}

// NotificationSettings holds the per-user delivery toggles and the
// appointment reminder lead times.
type NotificationSettings struct {
	EmailCaseUpdates          bool `json:"emailCaseUpdates"`
	EmailNewMessages          bool `json:"emailNewMessages"`
	EmailAppointmentReminders bool `json:"emailAppointmentReminders"`
	RemindOneDay              bool `json:"remindOneDay"`
	RemindOneHour             bool `json:"remindOneHour"`
	RemindTenMinutes          bool `json:"remindTenMinutes"`
}

// Review is a client review left on a lawyer profile.
type Review struct {
	ReviewerName string `json:"reviewerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Timestamp    int64  `json:"timestamp"`
}

// IsAdmin reports whether the account is an admin persona.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
