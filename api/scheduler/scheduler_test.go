package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/backend/backendtest"
	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/models"
)

func newLoggedInApp(t *testing.T, role models.UserRole, settings *models.NotificationSettings) (*app.App, *backendtest.Fake, string) {
	t.Helper()

	fake := backendtest.NewFake()
	userID := fake.SeedUser(models.User{
		Name:                 "Rahim Uddin",
		Email:                "rahim@example.com",
		Role:                 role,
		VerificationStatus:   models.VerificationVerified,
		NotificationSettings: settings,
	}, "password123")

	a := app.New(app.Options{
		Services:  fake.Services(),
		Carrier:   fake,
		Durable:   localstore.NewMemoryStore(),
		Ephemeral: localstore.NewMemoryStore(),
	})

	res, err := a.Login(context.Background(), "rahim@example.com", "password123", false, role)
	require.NoError(t, err)
	require.Equal(t, app.LoginSuccess, res.Status)
	return a, fake, userID
}

func countByType(a *app.App, kind models.NotificationType) int {
	n := 0
	for _, note := range a.Notifications() {
		if note.Type == kind {
			n++
		}
	}
	return n
}

func TestAppointmentReminderHonorsLeadTimes(t *testing.T) {
	settings := &models.NotificationSettings{RemindOneHour: true}
	fake := backendtest.NewFake()
	start := time.Now().UTC().Add(30 * time.Minute)
	userID := fake.SeedUser(models.User{
		Name:                 "Rahim Uddin",
		Email:                "rahim@example.com",
		Role:                 models.RoleCitizen,
		VerificationStatus:   models.VerificationVerified,
		NotificationSettings: settings,
	}, "password123")
	fake.SeedAppointment(models.Appointment{
		ClientID:   userID,
		LawyerID:   "lawyer-1",
		LawyerName: "Advocate Sultana",
		Date:       start.Format("2006-01-02"),
		Time:       start.Format("15:04"),
		Mode:       "Online",
		Status:     models.AppointmentConfirmed,
	})

	a := app.New(app.Options{
		Services:  fake.Services(),
		Carrier:   fake,
		Durable:   localstore.NewMemoryStore(),
		Ephemeral: localstore.NewMemoryStore(),
	})
	res, err := a.Login(context.Background(), "rahim@example.com", "password123", false, models.RoleCitizen)
	require.NoError(t, err)
	require.Equal(t, app.LoginSuccess, res.Status)

	s := NewScheduler(a)
	s.processAppointmentReminders()
	assert.Equal(t, 1, countByType(a, models.NotificationAppointment))

	// A second sweep must not raise the same reminder again.
	s.processAppointmentReminders()
	assert.Equal(t, 1, countByType(a, models.NotificationAppointment))
}

func TestAppointmentReminderSkipsDisabledLeads(t *testing.T) {
	fake := backendtest.NewFake()
	start := time.Now().UTC().Add(30 * time.Minute)
	userID := fake.SeedUser(models.User{
		Name:                 "Rahim Uddin",
		Email:                "rahim@example.com",
		Role:                 models.RoleCitizen,
		VerificationStatus:   models.VerificationVerified,
		NotificationSettings: &models.NotificationSettings{RemindTenMinutes: true},
	}, "password123")
	fake.SeedAppointment(models.Appointment{
		ClientID: userID,
		LawyerID: "lawyer-1",
		Date:     start.Format("2006-01-02"),
		Time:     start.Format("15:04"),
		Status:   models.AppointmentConfirmed,
	})

	a := app.New(app.Options{
		Services:  fake.Services(),
		Carrier:   fake,
		Durable:   localstore.NewMemoryStore(),
		Ephemeral: localstore.NewMemoryStore(),
	})
	res, err := a.Login(context.Background(), "rahim@example.com", "password123", false, models.RoleCitizen)
	require.NoError(t, err)
	require.Equal(t, app.LoginSuccess, res.Status)

	s := NewScheduler(a)
	s.processAppointmentReminders()
	assert.Zero(t, countByType(a, models.NotificationAppointment))
}

func TestReminderRequiresSettings(t *testing.T) {
	a, _, _ := newLoggedInApp(t, models.RoleCitizen, nil)

	s := NewScheduler(a)
	s.processAppointmentReminders()
	assert.Empty(t, a.Notifications())
}

func TestStaleAlertRebroadcastIsAdminOnly(t *testing.T) {
	a, _, _ := newLoggedInApp(t, models.RoleCitizen, nil)
	_, err := a.SendAlert(context.Background(), models.Location{Lat: 23.81, Lng: 90.41})
	require.NoError(t, err)

	before := countByType(a, models.NotificationSystem)
	s := NewScheduler(a)
	s.processStaleAlerts()
	assert.Equal(t, before, countByType(a, models.NotificationSystem))
}
