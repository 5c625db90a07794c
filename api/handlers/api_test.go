package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/backend/backendtest"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/localstore"
	"github.com/cla-bangladesh/cla-portal/mailer"
	"github.com/cla-bangladesh/cla-portal/media"
	"github.com/cla-bangladesh/cla-portal/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	a := &App{Config: config.Config{
		UIClientID:     "test-ui",
		UIClientSecret: "test-secret",
	}}

	fake := backendtest.NewFake()
	seedDemoAccounts(fake)

	uploader, err := media.NewDirUploader(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	a.Outbox = mailer.NewOutbox("no-reply@cla-bangladesh.com")
	a.Media = uploader
	a.Hub = NewEventHub()
	a.Orchestrator = app.New(app.Options{
		Services:  fake.Services(),
		Carrier:   fake,
		Durable:   localstore.NewMemoryStore(),
		Ephemeral: localstore.NewMemoryStore(),
		Events:    a.Hub,
		Mailer:    a.Outbox,
	})
	a.Router = a.New()
	return a
}

func executeRequest(a *App, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

// obtainToken runs the basic-auth token exchange the UI performs at startup.
func obtainToken(t *testing.T, a *App) string {
	t.Helper()

	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	req.SetBasicAuth("test-ui", "test-secret")
	response := executeRequest(a, req)
	require.Equal(t, http.StatusOK, response.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func authedRequest(method, path, token string, payload interface{}) *http.Request {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func loginCitizen(t *testing.T, a *App, token string) {
	t.Helper()

	req := authedRequest("POST", "/api/v1/session/login", token, map[string]interface{}{
		"identifier":   "citizen@example.com",
		"password":     "password123",
		"remember":     true,
		"expectedRole": models.RoleCitizen,
	})
	response := executeRequest(a, req)
	require.Equal(t, http.StatusOK, response.Code)

	var res loginResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &res))
	require.Equal(t, app.LoginSuccess, res.Status)
}

func TestHealthCheckRoute(t *testing.T) {
	a := newTestApp(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(a, req)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "alive")
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t)

	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(a, req)

	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	a := newTestApp(t)

	req, _ := http.NewRequest("GET", "/api/v1/cases", nil)
	response := executeRequest(a, req)

	assert.Equal(t, http.StatusUnauthorized, response.Code)
	assert.Contains(t, response.Body.String(), "unauthorized")
}

func TestTokenExchangeRejectsBadCredential(t *testing.T) {
	a := newTestApp(t)

	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	req.SetBasicAuth("test-ui", "wrong-secret")
	response := executeRequest(a, req)

	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func TestSiteContentIsPublic(t *testing.T) {
	a := newTestApp(t)

	req, _ := http.NewRequest("GET", "/api/v1/site-content", nil)
	response := executeRequest(a, req)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "empower every citizen")
}

func TestSupportFormIsPublic(t *testing.T) {
	a := newTestApp(t)

	payload, _ := json.Marshal(map[string]string{
		"name":    "Anonymous Visitor",
		"email":   "visitor@example.com",
		"message": "How do I find a lawyer?",
	})
	req, _ := http.NewRequest("POST", "/api/v1/support", bytes.NewBuffer(payload))
	response := executeRequest(a, req)

	assert.Equal(t, http.StatusCreated, response.Code)

	var msg models.SupportMessage
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &msg))
	assert.Equal(t, "New", msg.Status)
	assert.NotEmpty(t, msg.ID)
}

func TestLoginAndListCases(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)
	loginCitizen(t, a, token)

	response := executeRequest(a, authedRequest("GET", "/api/v1/cases", token, nil))
	require.Equal(t, http.StatusOK, response.Code)

	var cases []models.Case
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &cases))
	require.Len(t, cases, 1)
	assert.Equal(t, "Land boundary dispute", cases[0].Title)
}

func TestLoginBadPasswordReturnsFailedStatus(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)

	req := authedRequest("POST", "/api/v1/session/login", token, map[string]interface{}{
		"identifier":   "citizen@example.com",
		"password":     "nope",
		"remember":     false,
		"expectedRole": models.RoleCitizen,
	})
	response := executeRequest(a, req)
	require.Equal(t, http.StatusOK, response.Code)

	var res loginResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &res))
	assert.Equal(t, app.LoginFailed, res.Status)
	assert.Nil(t, res.User)
}

func TestNavigationRoutes(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)
	loginCitizen(t, a, token)

	req := authedRequest("POST", "/api/v1/navigation/subpage", token, map[string]interface{}{
		"subPage": models.SubPageVault,
	})
	response := executeRequest(a, req)
	require.Equal(t, http.StatusOK, response.Code)

	var loc locationResponse
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &loc))
	assert.Equal(t, models.SubPageVault, loc.Location.SubPage)

	response = executeRequest(a, authedRequest("POST", "/api/v1/navigation/back", token, nil))
	require.Equal(t, http.StatusOK, response.Code)
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &loc))
	assert.Equal(t, models.SubPageOverview, loc.Location.SubPage)
}

func TestSendAlertWithoutSessionIsUnauthorized(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)

	req := authedRequest("POST", "/api/v1/alerts", token, map[string]interface{}{
		"location": models.Location{Lat: 23.81, Lng: 90.41},
	})
	response := executeRequest(a, req)

	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func TestAlertLifecycleRoutes(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)
	loginCitizen(t, a, token)

	req := authedRequest("POST", "/api/v1/alerts", token, map[string]interface{}{
		"location": models.Location{Lat: 23.81, Lng: 90.41, Address: "Mirpur Road, Dhaka"},
	})
	response := executeRequest(a, req)
	require.Equal(t, http.StatusCreated, response.Code)

	var alert models.EmergencyAlert
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &alert))
	require.Equal(t, models.AlertActive, alert.Status)

	response = executeRequest(a, authedRequest("POST", "/api/v1/alerts/"+alert.ID+"/resolve", token, map[string]interface{}{
		"outcome": models.AlertResolved,
	}))
	require.Equal(t, http.StatusOK, response.Code)

	var alerts []models.EmergencyAlert
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertResolved, alerts[0].Status)
}

func TestUploadDocumentMultipart(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)
	loginCitizen(t, a, token)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "deed.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("registered deed scan"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("caseId", "case-1"))
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/v1/documents", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	response := executeRequest(a, req)
	require.Equal(t, http.StatusCreated, response.Code)

	var doc models.EvidenceDocument
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &doc))
	assert.Equal(t, "deed.pdf", doc.Name)
	assert.True(t, strings.HasPrefix(doc.URL, "http://localhost:8080/uploads/"))
	assert.Equal(t, "case-1", doc.CaseID)
}

func TestAdminOnlySupportInbox(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)
	loginCitizen(t, a, token)

	response := executeRequest(a, authedRequest("GET", "/api/v1/support", token, nil))
	assert.Equal(t, http.StatusForbidden, response.Code)
}

func TestEmailInboxRoute(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)

	// Signup records a verification email in the outbox.
	req := authedRequest("POST", "/api/v1/session/signup", token, map[string]interface{}{
		"name":     "Karim Hossain",
		"email":    "karim@example.com",
		"phone":    "+8801700000099",
		"password": "password123",
		"role":     models.RoleCitizen,
	})
	response := executeRequest(a, req)
	require.Equal(t, http.StatusCreated, response.Code)

	response = executeRequest(a, authedRequest("GET", "/api/v1/emails", token, nil))
	require.Equal(t, http.StatusOK, response.Code)

	var emails []models.SimulatedEmail
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &emails))
	require.NotEmpty(t, emails)
	assert.Equal(t, "karim@example.com", emails[0].To)
	assert.Equal(t, mailer.ActionVerifyEmail, emails[0].ActionType)
}

func TestBillingInvoicesRoute(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)
	loginCitizen(t, a, token)

	response := executeRequest(a, authedRequest("GET", "/api/v1/billing/invoices", token, nil))
	require.Equal(t, http.StatusOK, response.Code)

	var invoices []models.Invoice
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &invoices))
	require.Len(t, invoices, 1)
	assert.Equal(t, "unpaid", invoices[0].Status)
}

func TestCheckoutUnavailableWithoutStripe(t *testing.T) {
	a := newTestApp(t)
	token := obtainToken(t, a)
	loginCitizen(t, a, token)

	response := executeRequest(a, authedRequest("POST", "/api/v1/billing/create-checkout-session", token, map[string]interface{}{
		"appointmentId": "apt-1",
	}))
	assert.Equal(t, http.StatusServiceUnavailable, response.Code)
}
