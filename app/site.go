package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/models"
)

// AddSupportMessage records a public contact-form submission in the local
// support inbox. No authentication is required.
func (a *App) AddSupportMessage(ctx context.Context, name, email, message string) models.SupportMessage {
	msg := models.SupportMessage{
		ID:        newEntityID(),
		Name:      name,
		Email:     email,
		Message:   message,
		Timestamp: a.clock.Now().UnixMilli(),
		Status:    "New",
	}

	a.mu.Lock()
	next := make([]models.SupportMessage, 0, len(a.st.support)+1)
	next = append(next, msg)
	next = append(next, a.st.support...)
	a.st.support = next
	a.mu.Unlock()

	a.persistSupport(ctx)
	return msg
}

// SupportMessages returns the support inbox snapshot, newest first.
func (a *App) SupportMessages() []models.SupportMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.support
}

// UpdateSupportStatus moves a support message between New, Read and Replied.
// Unknown ids are ignored.
func (a *App) UpdateSupportStatus(ctx context.Context, id, status string) {
	a.mu.Lock()
	next := make([]models.SupportMessage, len(a.st.support))
	copy(next, a.st.support)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
		}
	}
	a.st.support = next
	a.mu.Unlock()

	a.persistSupport(ctx)
}

func (a *App) persistSupport(ctx context.Context) {
	a.mu.Lock()
	support := a.st.support
	a.mu.Unlock()
	if err := localstore.SetJSON(ctx, a.durable, localstore.KeySupportInbox, support); err != nil {
		zap.S().Warnw("failed to persist support inbox", "error", err)
	}
}

// SiteContent returns the current public site copy.
func (a *App) SiteContent() models.SiteContent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.content
}

// UpdateSiteContent replaces the public site copy and persists it. Admin
// gating happens at the HTTP surface.
func (a *App) UpdateSiteContent(ctx context.Context, content models.SiteContent) {
	a.mu.Lock()
	a.st.content = content
	a.mu.Unlock()

	if err := localstore.SetJSON(ctx, a.durable, localstore.KeySiteContent, content); err != nil {
		zap.S().Warnw("failed to persist site content", "error", err)
	}
}

// Theme returns the persisted theme preference.
func (a *App) Theme() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.theme
}

// SetTheme persists the theme preference (light, dark or system).
func (a *App) SetTheme(ctx context.Context, theme string) {
	a.mu.Lock()
	a.st.theme = theme
	a.mu.Unlock()

	if err := a.durable.Set(ctx, localstore.KeyThemePreference, theme); err != nil {
		zap.S().Warnw("failed to persist theme", "error", err)
	}
}
