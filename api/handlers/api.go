package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/api"
	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/backend/backendtest"
	"github.com/cla-bangladesh/cla-portal/billing"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/mailer"
	"github.com/cla-bangladesh/cla-portal/media"
	"github.com/cla-bangladesh/cla-portal/models"
)

// App stores the router and the orchestrator, so it can be reused
type App struct {
	Router       *mux.Router
	Config       config.Config
	Orchestrator *app.App
	Hub          *EventHub
	Outbox       *mailer.Outbox
	Media        media.Uploader
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareAuth{ClientID: a.Config.UIClientID, ClientSecret: a.Config.UIClientSecret}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	s := Session{Orchestrator: a.Orchestrator}
	nav := Navigation{Orchestrator: a.Orchestrator}
	c := Cases{Orchestrator: a.Orchestrator}
	b := Bookings{Orchestrator: a.Orchestrator}
	d := Documents{Orchestrator: a.Orchestrator, Media: a.Media}
	dir := Directory{Orchestrator: a.Orchestrator}
	msg := Messages{Orchestrator: a.Orchestrator}
	n := Notifications{Orchestrator: a.Orchestrator}
	al := Alerts{Orchestrator: a.Orchestrator}
	site := Site{Orchestrator: a.Orchestrator}
	inbox := Emails{Outbox: a.Outbox}
	bill := Billing{Orchestrator: a.Orchestrator, Config: a.Config}
	cloudinaryHandler := CloudinaryHandler{Config: a.Config}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/session/login", api.Middleware(http.HandlerFunc(s.LoginHandler))).Methods("POST")
	apiCreate.Handle("/session/signup", api.Middleware(http.HandlerFunc(s.SignupHandler))).Methods("POST")
	apiCreate.Handle("/session/logout", api.Middleware(http.HandlerFunc(s.LogoutHandler))).Methods("POST")
	apiCreate.Handle("/session/restore", api.Middleware(http.HandlerFunc(s.RestoreHandler))).Methods("POST")
	apiCreate.Handle("/session/verify-email", api.Middleware(http.HandlerFunc(s.VerifyEmailHandler))).Methods("POST")
	apiCreate.Handle("/session/password/reset-request", api.Middleware(http.HandlerFunc(s.RequestPasswordResetHandler))).Methods("POST")
	apiCreate.Handle("/session/password/reset", api.Middleware(http.HandlerFunc(s.ResetPasswordHandler))).Methods("POST")
	apiCreate.Handle("/session/password/change", api.Middleware(http.HandlerFunc(s.ChangePasswordHandler))).Methods("POST")
	apiCreate.Handle("/session/user", api.Middleware(http.HandlerFunc(s.CurrentUserHandler))).Methods("GET")
	apiCreate.Handle("/session/profile", api.Middleware(http.HandlerFunc(s.UpdateProfileHandler))).Methods("PATCH")

	apiCreate.Handle("/navigation/location", api.Middleware(http.HandlerFunc(nav.LocationHandler))).Methods("GET")
	apiCreate.Handle("/navigation/page", api.Middleware(http.HandlerFunc(nav.GoToPageHandler))).Methods("POST")
	apiCreate.Handle("/navigation/subpage", api.Middleware(http.HandlerFunc(nav.GoToSubPageHandler))).Methods("POST")
	apiCreate.Handle("/navigation/back", api.Middleware(http.HandlerFunc(nav.GoBackHandler))).Methods("POST")

	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.ListHandler))).Methods("GET")
	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.CreateHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}", api.Middleware(http.HandlerFunc(c.UpdateHandler))).Methods("PATCH")

	apiCreate.Handle("/appointments", api.Middleware(http.HandlerFunc(b.ListHandler))).Methods("GET")
	apiCreate.Handle("/appointments/{booking_id}", api.Middleware(http.HandlerFunc(b.UpdateHandler))).Methods("PATCH")

	apiCreate.Handle("/documents", api.Middleware(http.HandlerFunc(d.ListHandler))).Methods("GET")
	apiCreate.Handle("/documents", api.Middleware(http.HandlerFunc(d.UploadHandler))).Methods("POST")
	apiCreate.Handle("/documents/{document_id}", api.Middleware(http.HandlerFunc(d.DeleteHandler))).Methods("DELETE")
	apiCreate.Handle("/activity", api.Middleware(http.HandlerFunc(d.ActivityHandler))).Methods("GET")

	apiCreate.Handle("/users", api.Middleware(http.HandlerFunc(dir.ListHandler))).Methods("GET")
	apiCreate.Handle("/users/{user_id}/verification", api.Middleware(http.HandlerFunc(dir.UpdateVerificationHandler))).Methods("PUT")
	apiCreate.Handle("/lawyers/{lawyer_id}/reviews", api.Middleware(http.HandlerFunc(dir.SubmitReviewHandler))).Methods("POST")

	apiCreate.Handle("/conversations", api.Middleware(http.HandlerFunc(msg.ConversationsHandler))).Methods("GET")
	apiCreate.Handle("/conversations/{counterpart_id}/read", api.Middleware(http.HandlerFunc(msg.MarkConversationReadHandler))).Methods("POST")
	apiCreate.Handle("/messages", api.Middleware(http.HandlerFunc(msg.SendHandler))).Methods("POST")
	apiCreate.Handle("/messages/read-all", api.Middleware(http.HandlerFunc(msg.MarkAllReadHandler))).Methods("POST")
	apiCreate.Handle("/messages/typing/{case_id}", api.Middleware(http.HandlerFunc(msg.TypingHandler))).Methods("GET")

	apiCreate.Handle("/notifications", api.Middleware(http.HandlerFunc(n.ListHandler))).Methods("GET")
	apiCreate.Handle("/notifications/read-all", api.Middleware(http.HandlerFunc(n.MarkAllReadHandler))).Methods("POST")
	apiCreate.Handle("/notifications/{notification_id}/open", api.Middleware(http.HandlerFunc(n.OpenHandler))).Methods("POST")

	apiCreate.Handle("/alerts", api.Middleware(http.HandlerFunc(al.ListHandler))).Methods("GET")
	apiCreate.Handle("/alerts", api.Middleware(http.HandlerFunc(al.SendHandler))).Methods("POST")
	apiCreate.Handle("/alerts/{alert_id}/resolve", api.Middleware(http.HandlerFunc(al.ResolveHandler))).Methods("POST")

	apiCreate.Handle("/site-content", http.HandlerFunc(site.ContentHandler)).Methods("GET")
	apiCreate.Handle("/site-content", api.Middleware(http.HandlerFunc(site.UpdateContentHandler))).Methods("PUT")
	apiCreate.Handle("/support", http.HandlerFunc(site.AddSupportHandler)).Methods("POST")
	apiCreate.Handle("/support", api.Middleware(http.HandlerFunc(site.ListSupportHandler))).Methods("GET")
	apiCreate.Handle("/support/{message_id}/status", api.Middleware(http.HandlerFunc(site.UpdateSupportStatusHandler))).Methods("PUT")
	apiCreate.Handle("/theme", api.Middleware(http.HandlerFunc(site.ThemeHandler))).Methods("GET")
	apiCreate.Handle("/theme", api.Middleware(http.HandlerFunc(site.SetThemeHandler))).Methods("PUT")

	apiCreate.Handle("/emails", api.Middleware(http.HandlerFunc(inbox.ListHandler))).Methods("GET")
	apiCreate.Handle("/emails/{email_id}/read", api.Middleware(http.HandlerFunc(inbox.MarkReadHandler))).Methods("POST")

	apiCreate.Handle("/billing/invoices", api.Middleware(http.HandlerFunc(bill.InvoicesHandler))).Methods("GET")
	apiCreate.Handle("/billing/create-checkout-session", api.Middleware(http.HandlerFunc(bill.CreateCheckoutSessionHandler))).Methods("POST")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	r.HandleFunc("/ws/events", a.Hub.HandleEventsWebSocket)

	return r
}

// Initialize is invoked by main to wire the orchestrator and create a router
func (a *App) Initialize() error {
	durable, err := a.newDurableStore()
	if err != nil {
		zap.S().With(err).Error("failed to open durable state store")
		return err
	}

	var services backend.Services
	var carrier backend.SessionCarrier
	if a.Config.BackendURL != "" {
		client := backend.New(a.Config.BackendURL)
		services = backend.FromClient(client)
		carrier = client
	} else {
		// No backend configured, run against the in-memory fake.
		zap.S().Warn("BACKEND_URL is not set, using the in-memory backend")
		fake := backendtest.NewFake()
		seedDemoAccounts(fake)
		services = fake.Services()
		carrier = fake
	}

	a.Outbox = mailer.NewOutbox(a.Config.MailFrom)
	var mail mailer.Mailer = a.Outbox
	if a.Config.SendgridKey != "" {
		mail = mailer.NewSendGrid(a.Config.SendgridKey, "CLA Bangladesh", a.Config.MailFrom)
	}

	if a.Config.CloudinaryName != "" {
		uploader, err := media.NewCloudinaryUploader(a.Config.CloudinaryName, a.Config.CloudinaryKey, a.Config.CloudinarySecret)
		if err != nil {
			zap.S().With(err).Error("failed to initialize cloudinary")
			return err
		}
		a.Media = uploader
	} else {
		dir := a.Config.UploadDir
		if dir == "" {
			dir = "./uploads"
		}
		uploader, err := media.NewDirUploader(dir, a.Config.BaseURL+"/uploads")
		if err != nil {
			zap.S().With(err).Error("failed to initialize upload dir")
			return err
		}
		a.Media = uploader
	}

	// initialize stripe
	if a.Config.StripeKey != "" {
		if err := billing.Init(a.Config.StripeKey); err != nil {
			return err
		}
	} else {
		zap.S().Warn("STRIPE_SECRET_KEY is not set, checkout is disabled")
	}

	a.Hub = NewEventHub()
	a.Orchestrator = app.New(app.Options{
		Services:  services,
		Carrier:   carrier,
		Durable:   durable,
		Ephemeral: localstore.NewMemoryStore(),
		Events:    a.Hub,
		Mailer:    mail,
	})

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) newDurableStore() (localstore.Store, error) {
	if a.Config.RedisURL != "" {
		return localstore.NewRedisStore(a.Config.RedisURL)
	}
	dir := a.Config.StateDir
	if dir == "" {
		dir = "."
	}
	return localstore.NewFileStore(dir)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// seedDemoAccounts gives the in-memory backend something to log into.
func seedDemoAccounts(fake *backendtest.Fake) {
	citizenID := fake.SeedUser(models.User{
		Name:               "Rahim Uddin",
		Email:              "citizen@example.com",
		Phone:              "+8801700000001",
		Role:               models.RoleCitizen,
		VerificationStatus: models.VerificationVerified,
		Language:           "Bangla",
	}, "password123")
	lawyerID := fake.SeedUser(models.User{
		Name:               "Advocate Sultana",
		Email:              "lawyer@example.com",
		Role:               models.RoleLawyer,
		VerificationStatus: models.VerificationVerified,
		Specializations:    []string{"Family Law", "Land Law"},
		Experience:         8,
		Fees:               1500,
		Location:           "Dhaka",
	}, "password123")
	fake.SeedUser(models.User{
		Name:               "Portal Admin",
		Email:              "admin@example.com",
		Role:               models.RoleAdmin,
		VerificationStatus: models.VerificationVerified,
	}, "password123")
	fake.SeedCase(models.Case{
		Title:         "Land boundary dispute",
		Description:   "Neighbour has encroached on registered land in Savar.",
		Status:        models.CaseInReview,
		BackendStatus: "IN_REVIEW",
		ClientID:      citizenID,
		LawyerID:      lawyerID,
		SubmittedDate: time.Now().UTC().Format(time.RFC3339),
	})
	fake.SeedAppointment(models.Appointment{
		ClientID:   citizenID,
		LawyerID:   lawyerID,
		ClientName: "Rahim Uddin",
		LawyerName: "Advocate Sultana",
		Date:       time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		Time:       "15:00",
		Mode:       "Online",
		Status:     models.AppointmentConfirmed,
		Fee:        1500,
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
