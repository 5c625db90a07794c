package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/models"
)

// bootstrap fills the entity cache for a freshly signed-in user. The four
// collection fetches run concurrently; a failed fetch degrades to an empty
// collection rather than failing the login. Only admins fetch the full user
// directory, everyone else is seeded with just themselves.
func (a *App) bootstrap(ctx context.Context, user *models.User) {
	var (
		cases         []models.Case
		appointments  []models.Appointment
		notifications []models.Notification
		documents     []models.EvidenceDocument
		directory     []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cases, err = a.services.Cases.UserCases(gctx, user); err != nil {
			zap.S().Errorw("failed to fetch cases", "error", err)
			cases = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if appointments, err = a.services.Appointments.UserAppointments(gctx, user.ID, user.Role); err != nil {
			zap.S().Errorw("failed to fetch appointments", "error", err)
			appointments = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if notifications, err = a.services.Notifications.UserNotifications(gctx); err != nil {
			zap.S().Errorw("failed to fetch notifications", "error", err)
			notifications = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if documents, err = a.services.Documents.Documents(gctx); err != nil {
			zap.S().Errorw("failed to fetch documents", "error", err)
			documents = nil
		}
		return nil
	})
	if user.IsAdmin() {
		g.Go(func() error {
			var err error
			if directory, err = a.services.Users.AllUsers(gctx); err != nil {
				zap.S().Errorw("failed to fetch user directory", "error", err)
				directory = nil
			}
			return nil
		})
	}
	_ = g.Wait()

	if !user.IsAdmin() {
		directory = []models.User{*user}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.st.cases = cases
	a.st.appointments = appointments
	a.st.notifications = notifications
	a.st.documents = documents
	a.st.users = directory
}

// CreateCase registers a new case with the backend and appends it to the
// cache.
func (a *App) CreateCase(ctx context.Context, title, description string) (*models.Case, error) {
	a.mu.Lock()
	user := a.st.user
	a.mu.Unlock()
	if user == nil {
		return nil, ErrNoSession
	}

	patch := backend.CasePatch{Title: &title, Description: &description}
	created, err := a.services.Cases.CreateCase(ctx, patch, user.ID)
	if err != nil {
		zap.S().Errorw("failed to create case", "error", err)
		a.ShowToast("Could not submit your case.", models.ToastError)
		return nil, err
	}

	a.mu.Lock()
	next := make([]models.Case, 0, len(a.st.cases)+1)
	next = append(next, *created)
	next = append(next, a.st.cases...)
	a.st.cases = next
	a.appendActivityLocked(user.ID, fmt.Sprintf("Case %q submitted", created.Title), created.ID)
	a.mu.Unlock()

	a.ShowToast("Case submitted successfully.", models.ToastSuccess)
	return created, nil
}

// UpdateCase applies the patch to the cached case immediately and reconciles
// with the backend; failure keeps the optimistic state and raises an error
// toast.
func (a *App) UpdateCase(ctx context.Context, caseID string, patch backend.CasePatch) {
	a.mu.Lock()
	next := make([]models.Case, len(a.st.cases))
	copy(next, a.st.cases)
	for i := range next {
		if next[i].ID == caseID {
			applyCasePatchLocal(&next[i], patch)
		}
	}
	a.st.cases = next
	a.mu.Unlock()

	if _, err := a.services.Cases.UpdateCase(ctx, caseID, patch); err != nil {
		zap.S().Errorw("case update failed to sync", "caseId", caseID, "error", err)
		a.ShowToast("Could not save case changes.", models.ToastError)
	}
}

func applyCasePatchLocal(c *models.Case, patch backend.CasePatch) {
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

// UpdateAppointment applies the patch optimistically, then reconciles.
func (a *App) UpdateAppointment(ctx context.Context, id string, patch backend.AppointmentPatch) {
	a.mu.Lock()
	next := make([]models.Appointment, len(a.st.appointments))
	copy(next, a.st.appointments)
	for i := range next {
		if next[i].ID == id {
			if patch.Date != nil {
				next[i].Date = *patch.Date
			}
			if patch.Time != nil {
				next[i].Time = *patch.Time
			}
			if patch.Status != nil {
				next[i].Status = *patch.Status
			}
			if patch.Notes != nil {
				next[i].Notes = *patch.Notes
			}
		}
	}
	a.st.appointments = next
	a.mu.Unlock()

	if _, err := a.services.Appointments.UpdateAppointment(ctx, id, patch); err != nil {
		zap.S().Errorw("appointment update failed to sync", "bookingId", id, "error", err)
		a.ShowToast("Could not save appointment changes.", models.ToastError)
	}
}

// UploadDocument stores the file through the media uploader caller-side,
// registers the metadata optimistically and reconciles with the backend. An
// activity line is recorded for the dashboard.
func (a *App) UploadDocument(ctx context.Context, doc models.EvidenceDocument) *models.EvidenceDocument {
	a.mu.Lock()
	user := a.st.user
	a.mu.Unlock()
	if user == nil {
		return nil
	}

	if doc.ID == "" {
		doc.ID = newEntityID()
	}
	if doc.UploadedAt == "" {
		doc.UploadedAt = a.clock.Now().UTC().Format(time.RFC3339)
	}

	a.mu.Lock()
	next := make([]models.EvidenceDocument, 0, len(a.st.documents)+1)
	next = append(next, doc)
	next = append(next, a.st.documents...)
	a.st.documents = next
	a.appendActivityLocked(user.ID, fmt.Sprintf("Document %q uploaded", doc.Name), doc.CaseID)
	a.mu.Unlock()

	if _, err := a.services.Documents.UploadDocument(ctx, doc); err != nil {
		zap.S().Errorw("document upload failed to sync", "documentId", doc.ID, "error", err)
		a.ShowToast("Could not upload the document.", models.ToastError)
		return &doc
	}
	a.ShowToast("Document uploaded.", models.ToastSuccess)
	return &doc
}

// DeleteDocument removes the document optimistically, then reconciles.
func (a *App) DeleteDocument(ctx context.Context, id string) {
	a.mu.Lock()
	next := make([]models.EvidenceDocument, 0, len(a.st.documents))
	for _, d := range a.st.documents {
		if d.ID != id {
			next = append(next, d)
		}
	}
	a.st.documents = next
	a.mu.Unlock()

	if err := a.services.Documents.DeleteDocument(ctx, id); err != nil {
		zap.S().Errorw("document delete failed to sync", "documentId", id, "error", err)
		a.ShowToast("Could not delete the document.", models.ToastError)
	}
}

// UpdateUserVerification is the admin operation flipping an account's
// verification state. Optimistic in the cached directory, then reconciled.
func (a *App) UpdateUserVerification(ctx context.Context, userID string, status models.VerificationStatus) {
	a.mu.Lock()
	next := make([]models.User, len(a.st.users))
	copy(next, a.st.users)
	for i := range next {
		if next[i].ID == userID {
			next[i].VerificationStatus = status
		}
	}
	a.st.users = next
	a.mu.Unlock()

	if _, err := a.services.Users.UpdateUserVerification(ctx, userID, status); err != nil {
		zap.S().Errorw("verification update failed to sync", "userId", userID, "error", err)
		a.ShowToast("Could not update verification status.", models.ToastError)
	}
}

// ReviewSource identifies what prompted a review: a resolved case or a
// completed booking. At most one id is set.
type ReviewSource struct {
	CaseID        string
	AppointmentID string
}

// SubmitReview records a client review for a lawyer and marks the source
// case or appointment reviewed so the prompt is not shown again.
func (a *App) SubmitReview(ctx context.Context, lawyerID string, review models.Review, source ReviewSource) {
	a.mu.Lock()
	if source.CaseID != "" {
		next := make([]models.Case, len(a.st.cases))
		copy(next, a.st.cases)
		for i := range next {
			if next[i].ID == source.CaseID {
				next[i].Reviewed = true
			}
		}
		a.st.cases = next
	}
	if source.AppointmentID != "" {
		next := make([]models.Appointment, len(a.st.appointments))
		copy(next, a.st.appointments)
		for i := range next {
			if next[i].ID == source.AppointmentID {
				next[i].Reviewed = true
			}
		}
		a.st.appointments = next
	}
	a.mu.Unlock()

	if err := a.services.Users.SubmitLawyerReview(ctx, lawyerID, review); err != nil {
		zap.S().Errorw("review submission failed to sync", "lawyerId", lawyerID, "error", err)
		a.ShowToast("Could not submit your review.", models.ToastError)
		return
	}
	reviewed := true
	if source.CaseID != "" {
		if _, err := a.services.Cases.UpdateCase(ctx, source.CaseID, backend.CasePatch{Reviewed: &reviewed}); err != nil {
			zap.S().Errorw("review flag failed to sync", "caseId", source.CaseID, "error", err)
		}
	}
	if source.AppointmentID != "" {
		if _, err := a.services.Appointments.UpdateAppointment(ctx, source.AppointmentID, backend.AppointmentPatch{Reviewed: &reviewed}); err != nil {
			zap.S().Errorw("review flag failed to sync", "bookingId", source.AppointmentID, "error", err)
		}
	}
	a.ShowToast("Thank you for your review.", models.ToastSuccess)
}

func (a *App) appendActivityLocked(userID, message, caseID string) {
	entry := models.ActivityLog{
		ID:        newEntityID(),
		UserID:    userID,
		Message:   message,
		Timestamp: a.clock.Now().UnixMilli(),
		CaseID:    caseID,
	}
	next := make([]models.ActivityLog, 0, len(a.st.activity)+1)
	next = append(next, entry)
	next = append(next, a.st.activity...)
	a.st.activity = next
}
