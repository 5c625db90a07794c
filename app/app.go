// Package app implements the portal's application state orchestrator. It
// owns the session lifecycle, the entity cache, the bounded navigation
// history, derived conversation and notification views, the emergency alert
// lifecycle, the reply simulator and the toast notifier.
//
// All state transitions are serialized behind one mutex. Mutations treat the
// prior slice values as immutable inputs and produce fresh values, so
// snapshots handed to readers stay consistent while later mutations land.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/mailer"
	"github.com/cla-bangladesh/cla-portal/models"
)

const (
	defaultReplyDelay = 3 * time.Second
	defaultToastTTL   = 4 * time.Second
)

// Options configures an App. Services, Durable and Ephemeral are required;
// everything else has a working default.
type Options struct {
	Services  backend.Services
	Carrier   backend.SessionCarrier // session installer for restore, may be nil
	Durable   localstore.Store       // survives restart
	Ephemeral localstore.Store       // cleared on restart
	Clock     Clock
	Events    Events
	Mailer    mailer.Mailer

	ReplyDelay time.Duration
	ToastTTL   time.Duration
}

// App is the orchestrator. UI collaborators call its operations and render
// its snapshots; it is constructed once at process start and passed by
// reference.
type App struct {
	mu sync.Mutex

	services  backend.Services
	carrier   backend.SessionCarrier
	durable   localstore.Store
	ephemeral localstore.Store
	clock     Clock
	events    Events
	mailer    mailer.Mailer

	replyDelay time.Duration
	toastTTL   time.Duration

	st state
}

// state is the orchestrator's canonical in-memory state. Slices are
// replaced whole on mutation, never modified in place.
type state struct {
	user *models.User

	users         []models.User
	cases         []models.Case
	appointments  []models.Appointment
	messages      []models.Message
	notifications []models.Notification
	documents     []models.EvidenceDocument
	alerts        []models.EmergencyAlert
	activity      []models.ActivityLog
	support       []models.SupportMessage

	content models.SiteContent
	theme   string

	toast  *models.Toast
	typing map[string]bool

	location models.CurrentLocation
	history  []models.NavigationHistoryEntry
}

// New constructs an orchestrator and loads the locally persisted entities
// (alerts, support inbox, site content, theme) from the durable store.
func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = NewRealClock()
	}
	if opts.Events == nil {
		opts.Events = NopEvents{}
	}
	if opts.Mailer == nil {
		opts.Mailer = mailer.NewOutbox("no-reply@cla-bangladesh.com")
	}
	if opts.ReplyDelay == 0 {
		opts.ReplyDelay = defaultReplyDelay
	}
	if opts.ToastTTL == 0 {
		opts.ToastTTL = defaultToastTTL
	}

	a := &App{
		services:   opts.Services,
		carrier:    opts.Carrier,
		durable:    opts.Durable,
		ephemeral:  opts.Ephemeral,
		clock:      opts.Clock,
		events:     opts.Events,
		mailer:     opts.Mailer,
		replyDelay: opts.ReplyDelay,
		toastTTL:   opts.ToastTTL,
		st: state{
			content:  models.DefaultSiteContent(),
			theme:    "system",
			typing:   map[string]bool{},
			location: models.CurrentLocation{Page: models.PageHome, SubPage: models.SubPageOverview},
		},
	}
	a.loadPersisted(context.Background())
	return a
}

func (a *App) loadPersisted(ctx context.Context) {
	var alerts []models.EmergencyAlert
	if err := localstore.GetJSON(ctx, a.durable, localstore.KeyEmergencyList, &alerts); err == nil {
		a.st.alerts = alerts
	} else if !errors.Is(err, localstore.ErrNotFound) {
		zap.S().Warnw("failed to load persisted alerts", "error", err)
	}

	var support []models.SupportMessage
	if err := localstore.GetJSON(ctx, a.durable, localstore.KeySupportInbox, &support); err == nil {
		a.st.support = support
	} else if !errors.Is(err, localstore.ErrNotFound) {
		zap.S().Warnw("failed to load support inbox", "error", err)
	}

	var content models.SiteContent
	if err := localstore.GetJSON(ctx, a.durable, localstore.KeySiteContent, &content); err == nil {
		a.st.content = content
	} else if !errors.Is(err, localstore.ErrNotFound) {
		zap.S().Warnw("failed to load site content", "error", err)
	}

	if theme, err := a.durable.Get(ctx, localstore.KeyThemePreference); err == nil && theme != "" {
		a.st.theme = theme
	}
}

func newEntityID() string { return primitive.NewObjectID().Hex() }

// CurrentUser returns a copy of the signed-in user, or nil.
func (a *App) CurrentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.user == nil {
		return nil
	}
	u := *a.st.user
	return &u
}

// Users returns the cached user directory snapshot.
func (a *App) Users() []models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.users
}

// Cases returns the cached case snapshot.
func (a *App) Cases() []models.Case {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.cases
}

// Appointments returns the cached booking snapshot.
func (a *App) Appointments() []models.Appointment {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.appointments
}

// Messages returns the flat message collection snapshot.
func (a *App) Messages() []models.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.messages
}

// Documents returns the cached evidence document snapshot.
func (a *App) Documents() []models.EvidenceDocument {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.documents
}

// ActivityLogs returns the dashboard activity snapshot.
func (a *App) ActivityLogs() []models.ActivityLog {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.activity
}

// Alerts returns the emergency alert snapshot, most recent first.
func (a *App) Alerts() []models.EmergencyAlert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.alerts
}

// Location returns the current navigation location.
func (a *App) Location() models.CurrentLocation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.location
}

// HistoryDepth returns the current back-stack depth.
func (a *App) HistoryDepth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.st.history)
}

// CurrentToast returns the active toast, or nil once it has expired.
func (a *App) CurrentToast() *models.Toast {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.toast
}

// ShowToast raises a transient status message; it expires after the
// configured interval.
func (a *App) ShowToast(message string, kind models.ToastKind) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showToastLocked(message, kind)
}

func (a *App) showToastLocked(message string, kind models.ToastKind) {
	expires := a.clock.Now().Add(a.toastTTL).UnixMilli()
	t := &models.Toast{Message: message, Kind: kind, ExpiresAt: expires}
	a.st.toast = t
	a.events.Publish(Event{Kind: EventToast, Payload: *t})

	a.clock.AfterFunc(a.toastTTL, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		// A newer toast may have replaced this one already.
		if a.st.toast == t {
			a.st.toast = nil
			a.events.Publish(Event{Kind: EventToastExpired})
		}
	})
}
