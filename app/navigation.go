package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/models"
)

// maxHistoryDepth caps the back stack; the oldest entries are evicted first.
const maxHistoryDepth = 10

// GoToPage navigates to a top-level page, pushing the current location onto
// the back stack when the destination differs.
func (a *App) GoToPage(page models.Page) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.goToPageLocked(page)
}

func (a *App) goToPageLocked(page models.Page) {
	if a.st.location.Page == page {
		return
	}
	a.pushHistoryLocked()
	a.st.location.Page = page
}

// GoToDashboardSubPage changes the active dashboard panel and, optionally,
// the selected case. The current location is pushed only when the
// destination differs, and the new locality is persisted.
func (a *App) GoToDashboardSubPage(ctx context.Context, subpage models.DashboardSubPage, caseID string) {
	a.mu.Lock()
	loc := a.st.location
	if loc.Page == models.PageDashboard && loc.SubPage == subpage && loc.SelectedCaseID == caseID {
		a.mu.Unlock()
		return
	}
	a.pushHistoryLocked()
	a.st.location.Page = models.PageDashboard
	a.st.location.SubPage = subpage
	a.st.location.SelectedCaseID = caseID
	a.mu.Unlock()

	a.persistLocality(ctx, subpage, caseID)
}

// GoBack pops the most recent history entry and restores it as the current
// location without pushing anything. An empty stack makes it a no-op.
func (a *App) GoBack(ctx context.Context) {
	a.mu.Lock()
	if len(a.st.history) == 0 {
		a.mu.Unlock()
		return
	}
	top := a.st.history[len(a.st.history)-1]
	a.st.history = a.st.history[:len(a.st.history)-1]

	a.st.location.Page = top.Page
	if top.SubPage != "" {
		a.st.location.SubPage = top.SubPage
	}
	if top.HasCase {
		a.st.location.SelectedCaseID = top.CaseID
	} else {
		a.st.location.SelectedCaseID = ""
	}
	subpage, caseID := a.st.location.SubPage, a.st.location.SelectedCaseID
	a.mu.Unlock()

	a.persistLocality(ctx, subpage, caseID)
}

// pushHistoryLocked records the current location before a forward
// navigation. Back restores never call this.
func (a *App) pushHistoryLocked() {
	entry := models.NavigationHistoryEntry{
		Page:    a.st.location.Page,
		SubPage: a.st.location.SubPage,
		CaseID:  a.st.location.SelectedCaseID,
		HasCase: a.st.location.SelectedCaseID != "",
	}
	next := make([]models.NavigationHistoryEntry, len(a.st.history), len(a.st.history)+1)
	copy(next, a.st.history)
	next = append(next, entry)
	if len(next) > maxHistoryDepth {
		next = next[len(next)-maxHistoryDepth:]
	}
	a.st.history = next
}

func (a *App) persistLocality(ctx context.Context, subpage models.DashboardSubPage, caseID string) {
	if err := a.durable.Set(ctx, localstore.KeyLastSubPage, string(subpage)); err != nil {
		zap.S().Warnw("failed to persist locality", "error", err)
	}
	if err := a.durable.Set(ctx, localstore.KeyLastCaseID, caseID); err != nil {
		zap.S().Warnw("failed to persist locality", "error", err)
	}
}
