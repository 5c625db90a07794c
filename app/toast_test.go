package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/models"
)

func TestToastExpiresOnClock(t *testing.T) {
	f := newFixture(t)

	f.app.ShowToast("Saved.", models.ToastSuccess)
	require.NotNil(t, f.app.CurrentToast())

	f.clock.Advance(defaultToastTTL - time.Second)
	assert.NotNil(t, f.app.CurrentToast())

	f.clock.Advance(time.Second)
	assert.Nil(t, f.app.CurrentToast())
}

func TestNewerToastOutlivesOldTimer(t *testing.T) {
	f := newFixture(t)

	f.app.ShowToast("First.", models.ToastSuccess)
	f.clock.Advance(defaultToastTTL / 2)
	f.app.ShowToast("Second.", models.ToastError)

	// The first toast's timer fires but must not clear the replacement.
	f.clock.Advance(defaultToastTTL / 2)
	toast := f.app.CurrentToast()
	require.NotNil(t, toast)
	assert.Equal(t, "Second.", toast.Message)

	f.clock.Advance(defaultToastTTL / 2)
	assert.Nil(t, f.app.CurrentToast())
}

func TestToastEventsPublished(t *testing.T) {
	f := newFixture(t)

	f.app.ShowToast("Saved.", models.ToastSuccess)
	f.clock.Advance(defaultToastTTL)

	kinds := f.events.kinds()
	assert.Contains(t, kinds, EventToast)
	assert.Contains(t, kinds, EventToastExpired)
}
