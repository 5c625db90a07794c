package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/mailer"
	"github.com/cla-bangladesh/cla-portal/models"
)

// ErrNoSession is returned by operations that require a signed-in user.
var ErrNoSession = errors.New("app: no authenticated session")

// LoginStatus discriminates the recoverable outcomes of Login. None of them
// is an error; the portal reacts to each differently.
type LoginStatus string

// Login outcomes.
const (
	LoginSuccess                  LoginStatus = "success"
	LoginFailed                   LoginStatus = "failed"
	LoginPendingEmailVerification LoginStatus = "pending_email_verification"
	LoginRoleMismatch             LoginStatus = "role_mismatch"
)

// LoginResult is the discriminated outcome of a login attempt. User is set
// only on LoginSuccess.
type LoginResult struct {
	Status LoginStatus
	User   *models.User
}

// VerifyStatus is the outcome of an email verification attempt.
type VerifyStatus string

// Verification outcomes.
const (
	VerifySuccess VerifyStatus = "success"
	VerifyInvalid VerifyStatus = "invalid"
	VerifyExpired VerifyStatus = "expired"
)

// Login authenticates against the backend, gates on the expected persona and
// on email verification, and on success bootstraps the entity cache and lands
// the user on the dashboard. Bad credentials and the two gate outcomes are
// results, not errors.
func (a *App) Login(ctx context.Context, identifier, secret string, remember bool, expectedRole models.UserRole) (LoginResult, error) {
	user, session, err := a.services.Auth.Login(ctx, identifier, secret)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidCredentials) {
			return LoginResult{Status: LoginFailed}, nil
		}
		return LoginResult{Status: LoginFailed}, err
	}

	if user.Role != expectedRole {
		zap.S().Infow("login rejected, persona mismatch", "expected", expectedRole, "actual", user.Role)
		return LoginResult{Status: LoginRoleMismatch}, nil
	}

	if user.VerificationStatus == models.VerificationPendingEmail {
		// Issue a fresh verification mail so the user can complete the flow.
		if err := a.services.Auth.ResendVerification(ctx); err != nil {
			zap.S().Warnw("failed to reissue verification", "error", err)
		}
		a.sendAccountMail(ctx, user.Email, "Verify your account",
			"Welcome back to CLA Bangladesh. Please verify your email address to activate your account.",
			mailer.ActionVerifyEmail, "")
		return LoginResult{Status: LoginPendingEmailVerification}, nil
	}

	a.persistSession(ctx, session, remember)
	a.installUser(ctx, user)
	a.bootstrap(ctx, user)
	// Accounts still awaiting document verification stay where they are;
	// only verified users land on the dashboard.
	if user.VerificationStatus == models.VerificationVerified {
		a.landOnDashboard(ctx)
	}
	zap.S().Infow("user logged in", "userId", user.ID, "role", user.Role)

	u := *user
	return LoginResult{Status: LoginSuccess, User: &u}, nil
}

// Signup creates an account in the pending-email state and issues a
// verification mail. Duplicate accounts surface backend.ErrDuplicateAccount.
func (a *App) Signup(ctx context.Context, req backend.RegisterRequest) (*models.User, error) {
	user, _, err := a.services.Auth.Register(ctx, req)
	if err != nil {
		if errors.Is(err, backend.ErrDuplicateAccount) {
			return nil, backend.ErrDuplicateAccount
		}
		return nil, err
	}

	a.sendAccountMail(ctx, user.Email, "Verify your account",
		"Welcome to CLA Bangladesh. Please verify your email address to activate your account.",
		mailer.ActionVerifyEmail, "")
	zap.S().Infow("account created", "userId", user.ID, "role", user.Role)
	return user, nil
}

// Logout clears the session from both stores, resets dashboard locality to
// its defaults and navigates to the public landing page. Idempotent.
func (a *App) Logout(ctx context.Context) {
	for _, s := range []localstore.Store{a.durable, a.ephemeral} {
		if err := s.Delete(ctx, localstore.KeySessionUserID); err != nil {
			zap.S().Warnw("failed to clear session", "error", err)
		}
	}
	if err := a.durable.Delete(ctx, localstore.KeyLastSubPage); err != nil {
		zap.S().Warnw("failed to clear locality", "error", err)
	}
	if err := a.durable.Delete(ctx, localstore.KeyLastCaseID); err != nil {
		zap.S().Warnw("failed to clear locality", "error", err)
	}
	if a.carrier != nil {
		a.carrier.SetSession(nil)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.st.user = nil
	a.st.users = nil
	a.st.cases = nil
	a.st.appointments = nil
	a.st.messages = nil
	a.st.notifications = nil
	a.st.documents = nil
	a.st.activity = nil
	a.st.typing = map[string]bool{}
	a.goToPageLocked(models.PageHome)
	a.st.location.SubPage = models.SubPageOverview
	a.st.location.SelectedCaseID = ""
}

// RestoreSession resumes a persisted session at startup. It returns the
// restored user, or nil when no usable session exists.
func (a *App) RestoreSession(ctx context.Context) (*models.User, error) {
	var session backend.Session
	err := localstore.GetJSON(ctx, a.durable, localstore.KeySessionUserID, &session)
	if errors.Is(err, localstore.ErrNotFound) {
		err = localstore.GetJSON(ctx, a.ephemeral, localstore.KeySessionUserID, &session)
	}
	if err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(a.clock.Now()) {
		zap.S().Infow("persisted session expired", "userId", session.UserID)
		a.Logout(ctx)
		return nil, nil
	}
	if a.carrier != nil {
		a.carrier.SetSession(&session)
	}

	user, err := a.services.Auth.Profile(ctx)
	if err != nil {
		zap.S().Warnw("failed to restore session", "error", err)
		a.Logout(ctx)
		return nil, nil
	}

	a.installUser(ctx, user)
	a.bootstrap(ctx, user)
	if user.VerificationStatus == models.VerificationVerified {
		a.landOnDashboard(ctx)
	}
	zap.S().Infow("session restored", "userId", user.ID)
	u := *user
	return &u, nil
}

// VerifyEmail completes the email verification flow. On success the account
// is promoted out of the pending-email state.
func (a *App) VerifyEmail(ctx context.Context, token string) VerifyStatus {
	user, err := a.services.Auth.VerifyEmail(ctx, token)
	if err != nil {
		if errors.Is(err, backend.ErrTokenExpired) {
			return VerifyExpired
		}
		zap.S().Debugw("email verification rejected", "error", err)
		return VerifyInvalid
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.user != nil && a.st.user.ID == user.ID {
		u := *a.st.user
		u.VerificationStatus = user.VerificationStatus
		a.st.user = &u
	}
	a.showToastLocked("Email verified successfully.", models.ToastSuccess)
	return VerifySuccess
}

// RequestPasswordReset starts the two-phase reset. The boolean is the only
// signal; it does not leak whether the account exists beyond that.
func (a *App) RequestPasswordReset(ctx context.Context, email string) bool {
	if err := a.services.Auth.RequestPasswordReset(ctx, email); err != nil {
		zap.S().Debugw("password reset request rejected", "error", err)
		return false
	}
	a.sendAccountMail(ctx, email, "Reset your password",
		"A password reset was requested for your CLA Bangladesh account. Use the link in this email to choose a new password.",
		mailer.ActionResetPassword, "")
	return true
}

// ResetPassword completes the reset with the emailed token.
func (a *App) ResetPassword(ctx context.Context, token, newSecret string) error {
	return a.services.Auth.ConfirmPasswordReset(ctx, token, newSecret)
}

// ChangePassword rotates the signed-in user's password. It reports false,
// with no side effects, when the old secret does not match.
func (a *App) ChangePassword(ctx context.Context, oldSecret, newSecret string) bool {
	if err := a.services.Auth.ChangePassword(ctx, oldSecret, newSecret); err != nil {
		zap.S().Debugw("password change rejected", "error", err)
		return false
	}
	a.ShowToast("Password updated.", models.ToastSuccess)
	return true
}

// UpdateProfile applies the patch to the cached user immediately and
// reconciles with the backend. A failed reconcile surfaces an error toast
// and keeps the optimistic state.
func (a *App) UpdateProfile(ctx context.Context, patch backend.ProfilePatch) {
	a.mu.Lock()
	if a.st.user == nil {
		a.mu.Unlock()
		return
	}
	u := *a.st.user
	applyProfilePatch(&u, patch)
	a.st.user = &u
	a.replaceUserInDirectoryLocked(u)
	a.mu.Unlock()

	if _, err := a.services.Auth.UpdateProfile(ctx, patch); err != nil {
		zap.S().Errorw("profile update failed to sync", "error", err)
		a.ShowToast("Could not save profile changes.", models.ToastError)
		return
	}
	a.ShowToast("Profile updated.", models.ToastSuccess)
}

func applyProfilePatch(u *models.User, patch backend.ProfilePatch) {
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
	if patch.Experience != nil {
		u.Experience = *patch.Experience
	}
	if len(patch.Specializations) > 0 {
		u.Specializations = patch.Specializations
	}
	if patch.NotificationSettings != nil {
		u.NotificationSettings = patch.NotificationSettings
	}
}

func (a *App) replaceUserInDirectoryLocked(u models.User) {
	next := make([]models.User, len(a.st.users))
	copy(next, a.st.users)
	for i := range next {
		if next[i].ID == u.ID {
			next[i] = u
		}
	}
	a.st.users = next
}

func (a *App) persistSession(ctx context.Context, session *backend.Session, remember bool) {
	if session == nil {
		return
	}
	target := a.ephemeral
	if remember {
		target = a.durable
	}
	if err := localstore.SetJSON(ctx, target, localstore.KeySessionUserID, session); err != nil {
		zap.S().Warnw("failed to persist session", "error", err)
	}
}

func (a *App) installUser(_ context.Context, user *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u := *user
	a.st.user = &u
}

// landOnDashboard moves to the dashboard, restoring persisted locality or
// defaulting the subpage to overview.
func (a *App) landOnDashboard(ctx context.Context) {
	subpage := models.SubPageOverview
	if v, err := a.durable.Get(ctx, localstore.KeyLastSubPage); err == nil && v != "" {
		subpage = models.DashboardSubPage(v)
	}
	caseID := ""
	if v, err := a.durable.Get(ctx, localstore.KeyLastCaseID); err == nil {
		caseID = v
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.goToPageLocked(models.PageDashboard)
	a.st.location.SubPage = subpage
	a.st.location.SelectedCaseID = caseID
}

func (a *App) sendAccountMail(ctx context.Context, to, subject, body, action, token string) {
	if err := a.mailer.Send(ctx, mailer.Mail{
		To:         to,
		Subject:    subject,
		Body:       body,
		ActionType: action,
		Token:      token,
	}); err != nil {
		zap.S().Warnw("failed to send account mail", "to", to, "error", err)
	}
}
