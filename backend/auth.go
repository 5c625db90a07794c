package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cla-bangladesh/cla-portal/models"
)

// userPayload is the backend's wire representation of an account.
type userPayload struct {
	ID                 string `json:"id"`
	UserID             string `json:"user_id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	IsVerified         bool   `json:"is_verified"`
	Phone              string `json:"phone_number"`
	Language           string `json:"language_preference"`
	Theme              string `json:"theme_preference"`
	Avatar             string `json:"avatar"`
	Profile            struct {
		FullName        string   `json:"full_name_en"`
		Bio             string   `json:"bio_en"`
		Specializations []string `json:"specializations"`
		ExperienceYears int      `json:"experience_years"`
		ChamberAddress  string   `json:"chamber_address"`
		ConsultationFee int      `json:"consultation_fee_online"`
		ProfilePhotoURL string   `json:"profile_photo_url"`
		BarID           string   `json:"bar_council_id"`
	} `json:"profile"`
}

type loginResponse struct {
	User    userPayload `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

func roleFromBackend(value string) models.UserRole {
	switch strings.ToLower(value) {
	case "lawyer":
		return models.RoleLawyer
	case "admin":
		return models.RoleAdmin
	default:
		return models.RoleCitizen
	}
}

func verificationFromBackend(value string, isVerified bool) models.VerificationStatus {
	switch strings.ToUpper(value) {
	case "VERIFIED":
		return models.VerificationVerified
	case "REJECTED":
		return models.VerificationRejected
	case "PENDING_EMAIL_VERIFICATION":
		return models.VerificationPendingEmail
	case "PENDING":
		return models.VerificationPending
	}
	if isVerified {
		return models.VerificationVerified
	}
	return models.VerificationPending
}

func verificationToBackend(status models.VerificationStatus) string {
	switch status {
	case models.VerificationVerified:
		return "VERIFIED"
	case models.VerificationRejected:
		return "REJECTED"
	default:
		return "PENDING"
	}
}

func languageFromBackend(value string) string {
	if strings.EqualFold(value, "BN") {
		return "Bangla"
	}
	return "English"
}

// normalizeUser maps the backend payload into the client model.
func normalizeUser(p userPayload) models.User {
	id := p.ID
	if id == "" {
		id = p.UserID
	}
	name := p.Name
	if name == "" {
		name = p.Profile.FullName
	}
	u := models.User{
		ID:                 id,
		Name:               name,
		Email:              p.Email,
		Phone:              p.Phone,
		Role:               roleFromBackend(p.Role),
		Avatar:             p.Avatar,
		VerificationStatus: verificationFromBackend(p.VerificationStatus, p.IsVerified),
		Language:           languageFromBackend(p.Language),
		Theme:              p.Theme,
		Bio:                p.Profile.Bio,
		Specializations:    p.Profile.Specializations,
		Experience:         p.Profile.ExperienceYears,
		Location:           p.Profile.ChamberAddress,
		Fees:               p.Profile.ConsultationFee,
		BarID:              p.Profile.BarID,
	}
	if u.Avatar == "" {
		u.Avatar = p.Profile.ProfilePhotoURL
	}
	return u
}

// Login implements AuthService.
func (c *Client) Login(ctx context.Context, identifier, password string) (*models.User, *Session, error) {
	identifier = strings.TrimSpace(identifier)
	payload := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	if strings.Contains(identifier, "@") {
		payload["email"] = identifier
	} else {
		payload["phone_number"] = identifier
	}

	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return nil, nil, err
	}
	user := normalizeUser(resp.User)
	session := &Session{UserID: user.ID, AccessToken: resp.Access, RefreshToken: resp.Refresh}
	return &user, session, nil
}

// Register implements AuthService. The request goes out as multipart when a
// verification document is attached, plain JSON otherwise.
func (c *Client) Register(ctx context.Context, reg RegisterRequest) (*models.User, *Session, error) {
	var resp loginResponse
	if len(reg.VerificationDoc) == 0 {
		payload := map[string]interface{}{
			"email":        reg.Email,
			"phone_number": reg.Phone,
			"password":     reg.Password,
			"name":         reg.Name,
			"role":         strings.ToUpper(string(reg.Role)),
			"language":     backendLanguage(reg.Language),
		}
		if reg.BarID != "" {
			payload["lawyerId"] = reg.BarID
		}
		if reg.Bio != "" {
			payload["bio"] = reg.Bio
		}
		if reg.Experience > 0 {
			payload["experience"] = reg.Experience
		}
		if err := c.doJSON(ctx, http.MethodPost, "/auth/register", payload, &resp); err != nil {
			return nil, nil, err
		}
	} else if err := c.registerMultipart(ctx, reg, &resp); err != nil {
		return nil, nil, err
	}

	user := normalizeUser(resp.User)
	session := &Session{UserID: user.ID, AccessToken: resp.Access, RefreshToken: resp.Refresh}
	return &user, session, nil
}

func backendLanguage(language string) string {
	if language == "Bangla" {
		return "BN"
	}
	return "EN"
}

func (c *Client) registerMultipart(ctx context.Context, reg RegisterRequest, out *loginResponse) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"email":        reg.Email,
		"phone_number": reg.Phone,
		"password":     reg.Password,
		"name":         reg.Name,
		"role":         strings.ToUpper(string(reg.Role)),
		"language":     backendLanguage(reg.Language),
	}
	if reg.BarID != "" {
		fields["lawyerId"] = reg.BarID
	}
	if reg.Bio != "" {
		fields["bio"] = reg.Bio
	}
	if reg.Experience > 0 {
		fields["experience"] = fmt.Sprintf("%d", reg.Experience)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile("verification_document", reg.VerificationName)
	if err != nil {
		return err
	}
	if _, err := part.Write(reg.VerificationDoc); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ae apiError
		_ = json.NewDecoder(resp.Body).Decode(&ae)
		ae.Status = resp.StatusCode
		return c.mapError(&ae)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Profile implements AuthService.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var p userPayload
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, &p); err != nil {
		return nil, err
	}
	user := normalizeUser(p)
	return &user, nil
}

// UpdateProfile implements AuthService.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*models.User, error) {
	payload := map[string]interface{}{}
	if patch.Name != nil {
		payload["name"] = *patch.Name
	}
	if patch.Phone != nil {
		payload["phone_number"] = *patch.Phone
	}
	if patch.Language != nil {
		payload["preferred_language"] = backendLanguage(*patch.Language)
	}
	if patch.Bio != nil {
		payload["bio"] = *patch.Bio
	}
	if patch.Location != nil {
		payload["location"] = *patch.Location
	}
	if patch.Fees != nil {
		payload["fees"] = *patch.Fees
	}
	if patch.Experience != nil {
		payload["experience"] = *patch.Experience
	}
	if len(patch.Specializations) > 0 {
		payload["specializations"] = strings.Join(patch.Specializations, ",")
	}
	if patch.Avatar != nil {
		payload["avatar"] = *patch.Avatar
	}
	if patch.NotificationSettings != nil {
		payload["notification_settings"] = patch.NotificationSettings
	}

	var p userPayload
	if err := c.doJSON(ctx, http.MethodPatch, "/auth/profile/update", payload, &p); err != nil {
		return nil, err
	}
	user := normalizeUser(p)
	return &user, nil
}

// ChangePassword implements AuthService.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/password/change", map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}, nil)
}

// RequestPasswordReset implements AuthService.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/password/reset", map[string]string{
		"email": email,
	}, nil)
}

// ConfirmPasswordReset implements AuthService.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/password/reset/confirm", map[string]string{
		"token":        token,
		"new_password": newPassword,
	}, nil)
}

// VerifyEmail implements AuthService. ErrTokenInvalid and ErrTokenExpired
// discriminate the two failure outcomes.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	var p userPayload
	err := c.doJSON(ctx, http.MethodPost, "/auth/verify-email", map[string]string{"token": token}, &p)
	if err != nil {
		if err == ErrInvalidCredentials {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	user := normalizeUser(p)
	return &user, nil
}

// ResendVerification implements AuthService.
func (c *Client) ResendVerification(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/resend-verification", nil, nil)
}
