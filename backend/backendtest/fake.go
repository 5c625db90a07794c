// Package backendtest provides an in-memory stand-in for the REST backend,
// used by unit tests and by local development when no backend is reachable.
package backendtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/models"
)

var signingKey = []byte("cla-portal-dev-key")

// Fake implements every backend service interface over in-memory maps.
// All methods are safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	users         map[string]*models.User
	passwords     map[string][]byte // userID -> bcrypt hash
	cases         map[string]*models.Case
	appointments  map[string]*models.Appointment
	documents     map[string]*models.EvidenceDocument
	notifications []models.Notification
	verifyTokens  map[string]verifyToken // token -> target
	resetTokens   map[string]string      // token -> userID

	// current mirrors the bearer session the real client would carry.
	current string

	// WriteErr, when set, is returned from every mutation to simulate a
	// backend outage.
	WriteErr error
	// ReadErr, when set, is returned from every fetch.
	ReadErr error
	// ListErr, when set, is returned only from the collection fetches
	// (cases, appointments, documents, notifications, directory), leaving
	// auth reads working.
	ListErr error
}

type verifyToken struct {
	userID  string
	expires time.Time
}

// NewFake creates an empty fake backend.
func NewFake() *Fake {
	return &Fake{
		users:        map[string]*models.User{},
		passwords:    map[string][]byte{},
		cases:        map[string]*models.Case{},
		appointments: map[string]*models.Appointment{},
		documents:    map[string]*models.EvidenceDocument{},
		verifyTokens: map[string]verifyToken{},
		resetTokens:  map[string]string{},
	}
}

// Services bundles the fake for orchestrator construction.
func (f *Fake) Services() backend.Services {
	return backend.Services{
		Auth:          f,
		Users:         f,
		Cases:         f,
		Appointments:  f,
		Documents:     f,
		Notifications: f,
	}
}

func newID() string { return primitive.NewObjectID().Hex() }

func (f *Fake) signSession(userID string) *backend.Session {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	return &backend.Session{UserID: userID, AccessToken: token, RefreshToken: token}
}

// SeedUser adds an account with the given password and returns its id.
func (f *Fake) SeedUser(u models.User, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	f.users[u.ID] = &u
	f.passwords[u.ID] = hash
	return u.ID
}

// SeedCase adds a case.
func (f *Fake) SeedCase(c models.Case) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	f.cases[c.ID] = &c
	return c.ID
}

// SeedAppointment adds a booking.
func (f *Fake) SeedAppointment(a models.Appointment) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	f.appointments[a.ID] = &a
	return a.ID
}

// SeedNotification adds a notification to the feed.
func (f *Fake) SeedNotification(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == "" {
		n.ID = newID()
	}
	f.notifications = append(f.notifications, n)
}

// LastVerificationToken returns the most recently issued verification token
// for the user, for tests that complete the email flow.
func (f *Fake) LastVerificationToken(userID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, target := range f.verifyTokens {
		if target.userID == userID {
			return token
		}
	}
	return ""
}

func (f *Fake) findByIdentifier(identifier string) *models.User {
	for _, u := range f.users {
		if u.Email == identifier || u.Phone == identifier {
			return u
		}
	}
	return nil
}

// Login implements backend.AuthService.
func (f *Fake) Login(_ context.Context, identifier, password string) (*models.User, *backend.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, nil, f.ReadErr
	}
	u := f.findByIdentifier(identifier)
	if u == nil {
		return nil, nil, backend.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(f.passwords[u.ID], []byte(password)); err != nil {
		return nil, nil, backend.ErrInvalidCredentials
	}
	f.current = u.ID
	copied := *u
	return &copied, f.signSession(u.ID), nil
}

// Register implements backend.AuthService.
func (f *Fake) Register(_ context.Context, req backend.RegisterRequest) (*models.User, *backend.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return nil, nil, f.WriteErr
	}
	if f.findByIdentifier(req.Email) != nil {
		return nil, nil, backend.ErrDuplicateAccount
	}
	status := models.VerificationPendingEmail
	u := &models.User{
		ID:                 newID(),
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Role:               req.Role,
		Language:           req.Language,
		Bio:                req.Bio,
		Experience:         req.Experience,
		BarID:              req.BarID,
		VerificationStatus: status,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	f.users[u.ID] = u
	f.passwords[u.ID] = hash
	f.issueVerifyTokenLocked(u.ID)
	f.current = u.ID
	copied := *u
	return &copied, f.signSession(u.ID), nil
}

func (f *Fake) issueVerifyTokenLocked(userID string) string {
	token := newID()
	f.verifyTokens[token] = verifyToken{userID: userID, expires: time.Now().Add(24 * time.Hour)}
	return token
}

// Profile implements backend.AuthService for the currently signed-in user.
func (f *Fake) Profile(_ context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	u, ok := f.users[f.current]
	if !ok {
		return nil, backend.ErrInvalidCredentials
	}
	copied := *u
	return &copied, nil
}

// SetSession pins the signed-in user, as a restored bearer token would.
func (f *Fake) SetSession(s *backend.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s == nil {
		f.current = ""
		return
	}
	f.current = s.UserID
}

// UpdateProfile implements backend.AuthService.
func (f *Fake) UpdateProfile(_ context.Context, patch backend.ProfilePatch) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	u, ok := f.users[f.current]
	if !ok {
		return nil, backend.ErrInvalidCredentials
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Language != nil {
		u.Language = *patch.Language
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}
	if patch.Fees != nil {
		u.Fees = *patch.Fees
	}
	if patch.NotificationSettings != nil {
		u.NotificationSettings = patch.NotificationSettings
	}
	copied := *u
	return &copied, nil
}

// ChangePassword implements backend.AuthService.
func (f *Fake) ChangePassword(_ context.Context, oldPassword, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	hash, ok := f.passwords[f.current]
	if !ok {
		return backend.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(oldPassword)); err != nil {
		return backend.ErrInvalidCredentials
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	f.passwords[f.current] = newHash
	return nil
}

// RequestPasswordReset implements backend.AuthService.
func (f *Fake) RequestPasswordReset(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	u := f.findByIdentifier(email)
	if u == nil {
		return backend.ErrInvalidCredentials
	}
	f.resetTokens[newID()] = u.ID
	return nil
}

// ConfirmPasswordReset implements backend.AuthService.
func (f *Fake) ConfirmPasswordReset(_ context.Context, token, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.resetTokens[token]
	if !ok {
		return backend.ErrTokenInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	f.passwords[userID] = hash
	delete(f.resetTokens, token)
	return nil
}

// VerifyEmail implements backend.AuthService.
func (f *Fake) VerifyEmail(_ context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, ok := f.verifyTokens[token]
	if !ok {
		return nil, backend.ErrTokenInvalid
	}
	if time.Now().After(target.expires) {
		return nil, backend.ErrTokenExpired
	}
	u := f.users[target.userID]
	if u == nil {
		return nil, backend.ErrTokenInvalid
	}
	u.VerificationStatus = models.VerificationVerified
	delete(f.verifyTokens, token)
	copied := *u
	return &copied, nil
}

// ResendVerification implements backend.AuthService.
func (f *Fake) ResendVerification(_ context.Context) error {
	return nil
}

// ReissueVerification issues a fresh token for the user, mirroring what the
// real /auth/resend-verification does server-side.
func (f *Fake) ReissueVerification(userID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueVerifyTokenLocked(userID)
}

// ExpireVerification backdates a token's expiry so the expired path can be
// exercised.
func (f *Fake) ExpireVerification(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.verifyTokens[token]; ok {
		t.expires = time.Now().Add(-time.Minute)
		f.verifyTokens[token] = t
	}
}

// AllUsers implements backend.UserService.
func (f *Fake) AllUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

// UpdateUserVerification implements backend.UserService.
func (f *Fake) UpdateUserVerification(_ context.Context, userID string, status models.VerificationStatus) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, backend.ErrInvalidCredentials
	}
	u.VerificationStatus = status
	copied := *u
	return &copied, nil
}

// DeleteUser implements backend.UserService.
func (f *Fake) DeleteUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	delete(f.users, userID)
	delete(f.passwords, userID)
	return nil
}

// SubmitLawyerReview implements backend.UserService.
func (f *Fake) SubmitLawyerReview(_ context.Context, lawyerID string, review models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	u, ok := f.users[lawyerID]
	if !ok || u.Role != models.RoleLawyer {
		return fmt.Errorf("backendtest: unknown lawyer %q", lawyerID)
	}
	return nil
}

// UserCases implements backend.CaseService.
func (f *Fake) UserCases(_ context.Context, user *models.User) ([]models.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := []models.Case{}
	for _, c := range f.cases {
		switch user.Role {
		case models.RoleCitizen:
			if c.ClientID == user.ID {
				out = append(out, *c)
			}
		case models.RoleLawyer:
			if c.LawyerID == user.ID {
				out = append(out, *c)
			}
		default:
			out = append(out, *c)
		}
	}
	return out, nil
}

// CreateCase implements backend.CaseService.
func (f *Fake) CreateCase(_ context.Context, patch backend.CasePatch, clientID string) (*models.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	c := &models.Case{
		ID:            newID(),
		Status:        models.CaseSubmitted,
		BackendStatus: "SUBMITTED",
		ClientID:      clientID,
		SubmittedDate: time.Now().UTC().Format(time.RFC3339),
	}
	applyCasePatch(c, patch)
	f.cases[c.ID] = c
	copied := *c
	return &copied, nil
}

// UpdateCase implements backend.CaseService.
func (f *Fake) UpdateCase(_ context.Context, caseID string, patch backend.CasePatch) (*models.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	c, ok := f.cases[caseID]
	if !ok {
		return nil, fmt.Errorf("backendtest: unknown case %q", caseID)
	}
	applyCasePatch(c, patch)
	copied := *c
	return &copied, nil
}

func applyCasePatch(c *models.Case, patch backend.CasePatch) {
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.LawyerID != nil {
		c.LawyerID = *patch.LawyerID
	}
	if patch.Reviewed != nil {
		c.Reviewed = *patch.Reviewed
	}
}

// UserAppointments implements backend.AppointmentService.
func (f *Fake) UserAppointments(_ context.Context, userID string, role models.UserRole) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := []models.Appointment{}
	for _, a := range f.appointments {
		switch role {
		case models.RoleCitizen:
			if a.ClientID == userID {
				out = append(out, *a)
			}
		case models.RoleLawyer:
			if a.LawyerID == userID {
				out = append(out, *a)
			}
		default:
			out = append(out, *a)
		}
	}
	return out, nil
}

// UpdateAppointment implements backend.AppointmentService.
func (f *Fake) UpdateAppointment(_ context.Context, id string, patch backend.AppointmentPatch) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	a, ok := f.appointments[id]
	if !ok {
		return nil, fmt.Errorf("backendtest: unknown booking %q", id)
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Time != nil {
		a.Time = *patch.Time
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.Reviewed != nil {
		a.Reviewed = *patch.Reviewed
	}
	copied := *a
	return &copied, nil
}

// Documents implements backend.DocumentService.
func (f *Fake) Documents(_ context.Context) ([]models.EvidenceDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.EvidenceDocument, 0, len(f.documents))
	for _, d := range f.documents {
		out = append(out, *d)
	}
	return out, nil
}

// UploadDocument implements backend.DocumentService.
func (f *Fake) UploadDocument(_ context.Context, doc models.EvidenceDocument) (*models.EvidenceDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	if doc.ID == "" {
		doc.ID = newID()
	}
	f.documents[doc.ID] = &doc
	copied := doc
	return &copied, nil
}

// DeleteDocument implements backend.DocumentService.
func (f *Fake) DeleteDocument(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	delete(f.documents, id)
	return nil
}

// UserNotifications implements backend.NotificationService.
func (f *Fake) UserNotifications(_ context.Context) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out, nil
}
