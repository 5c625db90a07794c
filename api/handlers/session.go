package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cla-bangladesh/cla-portal/api"
	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Session exported for testing purposes
type Session struct {
	Orchestrator *app.App
}

type loginRequest struct {
	Identifier   string          `json:"identifier"`
	Password     string          `json:"password"`
	Remember     bool            `json:"remember"`
	ExpectedRole models.UserRole `json:"expectedRole"`
}

type loginResponse struct {
	Status app.LoginStatus `json:"status"`
	User   *models.User    `json:"user,omitempty"`
}

// LoginHandler authenticates a user and returns the discriminated outcome
func (s Session) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode login request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	res, err := s.Orchestrator.Login(ctx, req.Identifier, req.Password, req.Remember, req.ExpectedRole)
	if err != nil {
		config.ErrorStatus("failed to reach the backend", http.StatusBadGateway, w, err)
		return
	}

	b, err := json.Marshal(loginResponse{Status: res.Status, User: res.User})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type signupRequest struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Password   string          `json:"password"`
	Role       models.UserRole `json:"role"`
	Language   string          `json:"language"`
	BarID      string          `json:"barId"`
	Bio        string          `json:"bio"`
	Experience int             `json:"experience"`
}

// SignupHandler creates a new account in the pending-email state
func (s Session) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode signup request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	user, err := s.Orchestrator.Signup(ctx, backend.RegisterRequest{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		Role:       req.Role,
		Language:   req.Language,
		BarID:      req.BarID,
		Bio:        req.Bio,
		Experience: req.Experience,
	})
	if err != nil {
		if errors.Is(err, backend.ErrDuplicateAccount) {
			config.ErrorStatus("an account with this email already exists", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to create account", http.StatusBadGateway, w, err)
		return
	}

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// LogoutHandler clears the session; it is idempotent
func (s Session) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	s.Orchestrator.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// RestoreHandler resumes a persisted session, if one exists
func (s Session) RestoreHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	user, err := s.Orchestrator.RestoreSession(ctx)
	if err != nil {
		config.ErrorStatus("failed to restore session", http.StatusBadGateway, w, err)
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VerifyEmailHandler completes email verification with the mailed token
func (s Session) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode verification request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	status := s.Orchestrator.VerifyEmail(ctx, req.Token)

	b, _ := json.Marshal(map[string]string{"status": string(status)})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RequestPasswordResetHandler starts the two-phase password reset
func (s Session) RequestPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode reset request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	ok := s.Orchestrator.RequestPasswordReset(ctx, req.Email)

	b, _ := json.Marshal(map[string]bool{"sent": ok})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ResetPasswordHandler completes the reset with the emailed token
func (s Session) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode reset request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := s.Orchestrator.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		config.ErrorStatus("failed to reset password", http.StatusBadRequest, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePasswordHandler rotates the signed-in user's password
func (s Session) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode change request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	ok := s.Orchestrator.ChangePassword(ctx, req.OldPassword, req.NewPassword)

	b, _ := json.Marshal(map[string]bool{"changed": ok})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CurrentUserHandler returns the signed-in user, if any
func (s Session) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := s.Orchestrator.CurrentUser()
	if user == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type profilePatchRequest struct {
	Name                 *string                      `json:"name,omitempty"`
	Phone                *string                      `json:"phone,omitempty"`
	Avatar               *string                      `json:"avatar,omitempty"`
	Language             *string                      `json:"language,omitempty"`
	Bio                  *string                      `json:"bio,omitempty"`
	Location             *string                      `json:"location,omitempty"`
	Fees                 *int                         `json:"fees,omitempty"`
	Experience           *int                         `json:"experience,omitempty"`
	Specializations      []string                     `json:"specializations,omitempty"`
	NotificationSettings *models.NotificationSettings `json:"notificationSettings,omitempty"`
}

// UpdateProfileHandler applies a partial profile update
func (s Session) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req profilePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode profile patch", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	s.Orchestrator.UpdateProfile(ctx, backend.ProfilePatch{
		Name:                 req.Name,
		Phone:                req.Phone,
		Avatar:               req.Avatar,
		Language:             req.Language,
		Bio:                  req.Bio,
		Location:             req.Location,
		Fees:                 req.Fees,
		Experience:           req.Experience,
		Specializations:      req.Specializations,
		NotificationSettings: req.NotificationSettings,
	})

	b, err := json.Marshal(s.Orchestrator.CurrentUser())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
