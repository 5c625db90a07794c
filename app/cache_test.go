package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/models"
)

func TestBootstrapAdminFetchesDirectory(t *testing.T) {
	f := newFixture(t)
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.fake.SeedUser(models.User{
		Name:               "Admin",
		Email:              "admin@example.com",
		Role:               models.RoleAdmin,
		VerificationStatus: models.VerificationVerified,
	}, "admin123")

	res, err := f.app.Login(context.Background(), "admin@example.com", "admin123", false, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, LoginSuccess, res.Status)

	assert.Len(t, f.app.Users(), 2)
}

func TestBootstrapReadFailureDegradesToEmpty(t *testing.T) {
	f := newFixture(t)
	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.fake.SeedCase(models.Case{Title: "Land dispute", ClientID: id})
	f.fake.SeedAppointment(models.Appointment{ClientID: id, LawyerID: "lawyer-1", Date: "2026-09-10", Time: "15:00"})

	// The collection fetches fail while the credential check still works, so
	// login succeeds and every cache degrades to empty.
	f.fake.ListErr = errors.New("backend down")
	res, err := f.app.Login(context.Background(), "rahim@example.com", "secret123", false, models.RoleCitizen)
	require.NoError(t, err)
	require.Equal(t, LoginSuccess, res.Status)
	assert.Empty(t, f.app.Cases())
	assert.Empty(t, f.app.Appointments())
	assert.Empty(t, f.app.Documents())

	// A later login with the backend healthy repopulates the caches.
	f.fake.ListErr = nil
	f.app.Logout(context.Background())
	f.loginCitizen(t, "rahim@example.com", "secret123")
	require.Len(t, f.app.Cases(), 1)
	require.Len(t, f.app.Appointments(), 1)
}

func TestCreateCaseAppendsAndLogsActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	created, err := f.app.CreateCase(ctx, "Tenancy dispute", "My landlord has not returned the deposit.")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.CaseSubmitted, created.Status)

	cases := f.app.Cases()
	require.Len(t, cases, 1)
	assert.Equal(t, created.ID, cases[0].ID)
	require.NotEmpty(t, f.app.ActivityLogs())
}

func TestUpdateCaseOptimisticKeptOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	caseID := f.fake.SeedCase(models.Case{Title: "Land dispute", ClientID: id, Status: models.CaseSubmitted})
	f.loginCitizen(t, "rahim@example.com", "secret123")

	f.fake.WriteErr = errors.New("backend down")
	status := models.CaseInReview
	f.app.UpdateCase(ctx, caseID, backend.CasePatch{Status: &status})

	// Optimistic state is retained and the failure surfaces as a toast.
	require.Len(t, f.app.Cases(), 1)
	assert.Equal(t, models.CaseInReview, f.app.Cases()[0].Status)
	toast := f.app.CurrentToast()
	require.NotNil(t, toast)
	assert.Equal(t, models.ToastError, toast.Kind)
}

func TestDocumentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	doc := f.app.UploadDocument(ctx, models.EvidenceDocument{
		Name:   "deed.pdf",
		Type:   "application/pdf",
		Size:   2048,
		URL:    "https://files.example.com/deed.pdf",
		CaseID: "case-1",
	})
	require.NotNil(t, doc)
	require.NotEmpty(t, doc.ID)
	require.Len(t, f.app.Documents(), 1)

	f.app.DeleteDocument(ctx, doc.ID)
	assert.Empty(t, f.app.Documents())
}

func TestUpdateUserVerificationAdminFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizenID := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.fake.SeedUser(models.User{
		Name:               "Admin",
		Email:              "admin@example.com",
		Role:               models.RoleAdmin,
		VerificationStatus: models.VerificationVerified,
	}, "admin123")

	res, err := f.app.Login(ctx, "admin@example.com", "admin123", false, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, LoginSuccess, res.Status)

	f.app.UpdateUserVerification(ctx, citizenID, models.VerificationRejected)

	for _, u := range f.app.Users() {
		if u.ID == citizenID {
			assert.Equal(t, models.VerificationRejected, u.VerificationStatus)
		}
	}
}

func TestSubmitReviewMarksCaseReviewed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	lawyerID := f.fake.SeedUser(models.User{
		Name:               "Advocate Sultana",
		Email:              "sultana@example.com",
		Role:               models.RoleLawyer,
		VerificationStatus: models.VerificationVerified,
	}, "lawyer123")
	caseID := f.fake.SeedCase(models.Case{Title: "Land dispute", ClientID: id, LawyerID: lawyerID})
	f.loginCitizen(t, "rahim@example.com", "secret123")

	f.app.SubmitReview(ctx, lawyerID, models.Review{ReviewerName: "Rahim", Rating: 5, Comment: "Very helpful"}, ReviewSource{CaseID: caseID})

	require.Len(t, f.app.Cases(), 1)
	assert.True(t, f.app.Cases()[0].Reviewed)
}

func TestSubmitReviewMarksAppointmentReviewed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	lawyerID := f.fake.SeedUser(models.User{
		Name:               "Advocate Sultana",
		Email:              "sultana@example.com",
		Role:               models.RoleLawyer,
		VerificationStatus: models.VerificationVerified,
	}, "lawyer123")
	bookingID := f.fake.SeedAppointment(models.Appointment{
		ClientID: id,
		LawyerID: lawyerID,
		Date:     "2026-08-20",
		Time:     "15:00",
		Status:   models.AppointmentConfirmed,
	})
	f.loginCitizen(t, "rahim@example.com", "secret123")

	f.app.SubmitReview(ctx, lawyerID, models.Review{ReviewerName: "Rahim", Rating: 4, Comment: "On time and clear"}, ReviewSource{AppointmentID: bookingID})

	require.Len(t, f.app.Appointments(), 1)
	assert.True(t, f.app.Appointments()[0].Reviewed)
	// The flag also reaches the backend, so a fresh login still sees it.
	f.app.Logout(ctx)
	f.loginCitizen(t, "rahim@example.com", "secret123")
	require.Len(t, f.app.Appointments(), 1)
	assert.True(t, f.app.Appointments()[0].Reviewed)
}
