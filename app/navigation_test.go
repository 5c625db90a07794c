package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/models"
)

func TestHistoryCapAndFIFOEviction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Alternate destinations so every navigation differs from the current
	// location and produces a push.
	for i := 0; i < 25; i++ {
		caseID := fmt.Sprintf("case-%d", i)
		f.app.GoToDashboardSubPage(ctx, models.SubPageCases, caseID)
	}

	require.Equal(t, maxHistoryDepth, f.app.HistoryDepth())

	// Walk all the way back; the oldest entries must have been evicted, so
	// the deepest reachable location is the one recorded 10 pushes ago.
	for i := 0; i < maxHistoryDepth; i++ {
		f.app.GoBack(ctx)
	}
	assert.Equal(t, 0, f.app.HistoryDepth())
	assert.Equal(t, "case-14", f.app.Location().SelectedCaseID)
}

func TestGoBackEmptiesStackThenNoOps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.app.GoToPage(models.PageAbout)
	f.app.GoToPage(models.PageContact)
	require.Equal(t, 2, f.app.HistoryDepth())

	f.app.GoBack(ctx)
	f.app.GoBack(ctx)
	require.Equal(t, 0, f.app.HistoryDepth())
	require.Equal(t, models.PageHome, f.app.Location().Page)

	// Further calls leave location and depth untouched.
	f.app.GoBack(ctx)
	assert.Equal(t, 0, f.app.HistoryDepth())
	assert.Equal(t, models.PageHome, f.app.Location().Page)
}

func TestSameDestinationDoesNotPush(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.app.GoToPage(models.PageHome) // already there
	assert.Equal(t, 0, f.app.HistoryDepth())

	f.app.GoToDashboardSubPage(ctx, models.SubPageCases, "")
	depth := f.app.HistoryDepth()
	f.app.GoToDashboardSubPage(ctx, models.SubPageCases, "")
	assert.Equal(t, depth, f.app.HistoryDepth())
}

func TestBackAcrossPagesRestoresSelectedCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.app.GoToDashboardSubPage(ctx, models.SubPageCases, "case-7")
	f.app.GoToDashboardSubPage(ctx, models.SubPageSettings, "")
	require.Equal(t, "", f.app.Location().SelectedCaseID)

	f.app.GoBack(ctx)
	loc := f.app.Location()
	assert.Equal(t, models.SubPageCases, loc.SubPage)
	assert.Equal(t, "case-7", loc.SelectedCaseID)
}

func TestNavigationScenarioHomeDashboardSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Start away from home so each of the three navigations pushes.
	f.app.GoToPage(models.PageLogin)
	require.Equal(t, 1, f.app.HistoryDepth())

	f.app.GoToPage(models.PageHome)
	f.app.GoToPage(models.PageDashboard)
	f.app.GoToDashboardSubPage(ctx, models.SubPageSettings, "")
	require.Equal(t, 4, f.app.HistoryDepth())

	f.app.GoBack(ctx)
	f.app.GoBack(ctx)

	loc := f.app.Location()
	assert.Equal(t, models.PageHome, loc.Page)
	assert.Equal(t, 2, f.app.HistoryDepth())
}

func TestLocalityPersistsAcrossRestart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	_ = id
	f.loginCitizen(t, "rahim@example.com", "secret123")
	f.app.GoToDashboardSubPage(ctx, models.SubPageVault, "case-3")

	// A fresh orchestrator over the same durable store restores the same
	// dashboard view on the next login.
	reborn := New(Options{
		Services:  f.fake.Services(),
		Carrier:   f.fake,
		Durable:   f.durable,
		Ephemeral: localstore.NewMemoryStore(),
		Clock:     f.clock,
	})
	res, err := reborn.Login(ctx, "rahim@example.com", "secret123", false, models.RoleCitizen)
	require.NoError(t, err)
	require.Equal(t, LoginSuccess, res.Status)

	loc := reborn.Location()
	assert.Equal(t, models.PageDashboard, loc.Page)
	assert.Equal(t, models.SubPageVault, loc.SubPage)
	assert.Equal(t, "case-3", loc.SelectedCaseID)
}

func TestLogoutClearsLocality(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")
	f.app.GoToDashboardSubPage(ctx, models.SubPageVault, "case-3")

	f.app.Logout(ctx)

	loc := f.app.Location()
	assert.Equal(t, models.PageHome, loc.Page)
	assert.Equal(t, models.SubPageOverview, loc.SubPage)
	assert.Equal(t, "", loc.SelectedCaseID)
	_, err := f.durable.Get(ctx, localstore.KeyLastSubPage)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}
