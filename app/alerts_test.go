package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/models"
)

func TestSendAlertRequiresAuthentication(t *testing.T) {
	f := newFixture(t)

	alert, err := f.app.SendAlert(context.Background(), models.Location{Lat: 23.8, Lng: 90.4})
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Nil(t, alert)
	assert.Empty(t, f.app.Alerts())
}

func TestSendAlertCreatesActiveAlertAndCriticalNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	alert, err := f.app.SendAlert(ctx, models.Location{Lat: 23.8, Lng: 90.4})
	require.NoError(t, err)
	require.NotNil(t, alert)

	alerts := f.app.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertActive, alerts[0].Status)
	assert.Equal(t, id, alerts[0].UserID)
	assert.Equal(t, "Rahim", alerts[0].UserName)

	var critical int
	for _, n := range f.app.Notifications() {
		if n.Severity == models.SeverityCritical {
			critical++
		}
	}
	assert.Equal(t, 1, critical)

	toast := f.app.CurrentToast()
	require.NotNil(t, toast)
	assert.Equal(t, models.ToastSuccess, toast.Kind)
}

func TestSendAlertPrependsMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	first, err := f.app.SendAlert(ctx, models.Location{Lat: 23.8, Lng: 90.4})
	require.NoError(t, err)
	second, err := f.app.SendAlert(ctx, models.Location{Lat: 23.7, Lng: 90.3})
	require.NoError(t, err)

	alerts := f.app.Alerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, second.ID, alerts[0].ID)
	assert.Equal(t, first.ID, alerts[1].ID)
}

func TestResolveAlertTransitionsAndRetains(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	alert, err := f.app.SendAlert(ctx, models.Location{Lat: 23.8, Lng: 90.4})
	require.NoError(t, err)

	f.app.ResolveAlert(ctx, alert.ID, models.AlertFalseAlarm)

	alerts := f.app.Alerts()
	require.Len(t, alerts, 1, "alerts are re-statused, never removed")
	assert.Equal(t, models.AlertFalseAlarm, alerts[0].Status)

	// Terminal states do not transition again.
	f.app.ResolveAlert(ctx, alert.ID, models.AlertResolved)
	assert.Equal(t, models.AlertFalseAlarm, f.app.Alerts()[0].Status)
}

func TestResolveAlertUnknownIDIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	_, err := f.app.SendAlert(ctx, models.Location{Lat: 23.8, Lng: 90.4})
	require.NoError(t, err)
	before := f.app.Alerts()

	f.app.ResolveAlert(ctx, "no-such-id", models.AlertResolved)

	after := f.app.Alerts()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i], after[i])
	}
}

func TestAlertsPersistAcrossRestart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	alert, err := f.app.SendAlert(ctx, models.Location{Lat: 23.8, Lng: 90.4, Address: "Dhaka"})
	require.NoError(t, err)

	reborn := New(Options{
		Services:  f.fake.Services(),
		Durable:   f.durable,
		Ephemeral: localstore.NewMemoryStore(),
		Clock:     f.clock,
	})
	alerts := reborn.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.ID, alerts[0].ID)
	assert.Equal(t, "Dhaka", alerts[0].Location.Address)
}
