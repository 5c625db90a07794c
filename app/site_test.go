package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/localstore"
)

func TestSupportInboxLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The contact form is public; no session required.
	msg := f.app.AddSupportMessage(ctx, "Karim", "karim@example.com", "How do I find a lawyer?")
	require.Equal(t, "New", msg.Status)

	f.app.UpdateSupportStatus(ctx, msg.ID, "Replied")

	inbox := f.app.SupportMessages()
	require.Len(t, inbox, 1)
	assert.Equal(t, "Replied", inbox[0].Status)

	// Survives a restart over the same durable store.
	reborn := New(Options{
		Services:  f.fake.Services(),
		Durable:   f.durable,
		Ephemeral: localstore.NewMemoryStore(),
	})
	require.Len(t, reborn.SupportMessages(), 1)
}

func TestSiteContentDefaultsAndOverrides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	content := f.app.SiteContent()
	assert.NotEmpty(t, content.About.Mission)

	content.Contact.Email = "help@cla-bangladesh.com"
	f.app.UpdateSiteContent(ctx, content)

	reborn := New(Options{
		Services:  f.fake.Services(),
		Durable:   f.durable,
		Ephemeral: localstore.NewMemoryStore(),
	})
	assert.Equal(t, "help@cla-bangladesh.com", reborn.SiteContent().Contact.Email)
}

func TestThemePreferencePersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, "system", f.app.Theme())
	f.app.SetTheme(ctx, "dark")

	reborn := New(Options{
		Services:  f.fake.Services(),
		Durable:   f.durable,
		Ephemeral: localstore.NewMemoryStore(),
	})
	assert.Equal(t, "dark", reborn.Theme())
}
