// Package backend is the REST collaborator client. The backend owns durable
// truth for users, cases, appointments, messages and evidence documents; this
// package normalizes its wire representation into the client-facing models
// and hides the lossy status collapse behind typed mappers.
package backend

import (
	"context"
	"errors"

	"github.com/cla-bangladesh/cla-portal/models"
)

// Sentinel errors for the recoverable auth outcomes. Everything else is a
// plain transport/backend error.
var (
	ErrInvalidCredentials = errors.New("backend: invalid credentials")
	ErrDuplicateAccount   = errors.New("backend: account already exists")
	ErrTokenInvalid       = errors.New("backend: token invalid")
	ErrTokenExpired       = errors.New("backend: token expired")
)

// RegisterRequest carries a signup payload. The document and photo are
// optional multipart parts.
type RegisterRequest struct {
	Email            string
	Phone            string
	Password         string
	Name             string
	Role             models.UserRole
	Language         string
	BarID            string
	Bio              string
	Experience       int
	VerificationDoc  []byte
	VerificationName string
}

// ProfilePatch carries a partial profile update; nil fields are untouched.
type ProfilePatch struct {
	Name                 *string
	Phone                *string
	Avatar               *string
	Language             *string
	Bio                  *string
	Location             *string
	Fees                 *int
	Experience           *int
	Specializations      []string
	NotificationSettings *models.NotificationSettings
}

// CasePatch carries a partial case update; nil fields are untouched.
type CasePatch struct {
	Title       *string
	Description *string
	Status      *models.CaseStatus
	LawyerID    *string
	Reviewed    *bool
}

// AppointmentPatch carries a partial booking update; nil fields are
// untouched.
type AppointmentPatch struct {
	Date     *string
	Time     *string
	Status   *models.AppointmentStatus
	Notes    *string
	Reviewed *bool
}

// SessionCarrier installs a bearer session on a backend collaborator, used
// when restoring a persisted session at startup.
type SessionCarrier interface {
	SetSession(s *Session)
}

// AuthService covers the /auth/ endpoint family.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*models.User, *Session, error)
	Register(ctx context.Context, req RegisterRequest) (*models.User, *Session, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	ResendVerification(ctx context.Context) error
}

// UserService covers /users/, /lawyer-profiles/ and /lawyer-reviews/.
type UserService interface {
	AllUsers(ctx context.Context) ([]models.User, error)
	UpdateUserVerification(ctx context.Context, userID string, status models.VerificationStatus) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	SubmitLawyerReview(ctx context.Context, lawyerID string, review models.Review) error
}

// CaseService covers /cases/.
type CaseService interface {
	UserCases(ctx context.Context, user *models.User) ([]models.Case, error)
	CreateCase(ctx context.Context, patch CasePatch, clientID string) (*models.Case, error)
	UpdateCase(ctx context.Context, caseID string, patch CasePatch) (*models.Case, error)
}

// AppointmentService covers /consultation-bookings/.
type AppointmentService interface {
	UserAppointments(ctx context.Context, userID string, role models.UserRole) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) (*models.Appointment, error)
}

// DocumentService covers /evidence-documents/.
type DocumentService interface {
	Documents(ctx context.Context) ([]models.EvidenceDocument, error)
	UploadDocument(ctx context.Context, doc models.EvidenceDocument) (*models.EvidenceDocument, error)
	DeleteDocument(ctx context.Context, id string) error
}

// NotificationService covers the notification feed.
type NotificationService interface {
	UserNotifications(ctx context.Context) ([]models.Notification, error)
}

// Services bundles the per-resource collaborator interfaces the orchestrator
// consumes. Production wiring points every field at the same *Client; tests
// substitute fakes per resource.
type Services struct {
	Auth          AuthService
	Users         UserService
	Cases         CaseService
	Appointments  AppointmentService
	Documents     DocumentService
	Notifications NotificationService
}

// FromClient wires every service to one REST client.
func FromClient(c *Client) Services {
	return Services{
		Auth:          c,
		Users:         c,
		Cases:         c,
		Appointments:  c,
		Documents:     c,
		Notifications: c,
	}
}
