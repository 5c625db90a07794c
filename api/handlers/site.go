package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Site exported for testing purposes
type Site struct {
	Orchestrator *app.App
}

// ContentHandler returns the public site copy
func (s Site) ContentHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(s.Orchestrator.SiteContent())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateContentHandler replaces the site copy; admin only
func (s Site) UpdateContentHandler(w http.ResponseWriter, r *http.Request) {
	current := s.Orchestrator.CurrentUser()
	if current == nil || !current.IsAdmin() {
		config.ErrorStatus("admin role required", http.StatusForbidden, w, app.ErrNoSession)
		return
	}

	var content models.SiteContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		config.ErrorStatus("failed to decode site content", http.StatusBadRequest, w, err)
		return
	}

	s.Orchestrator.UpdateSiteContent(r.Context(), content)
	w.WriteHeader(http.StatusNoContent)
}

// AddSupportHandler records a public contact-form submission
func (s Site) AddSupportHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode support request", http.StatusBadRequest, w, err)
		return
	}

	msg := s.Orchestrator.AddSupportMessage(r.Context(), req.Name, req.Email, req.Message)
	b, err := json.Marshal(msg)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ListSupportHandler returns the support inbox; admin only
func (s Site) ListSupportHandler(w http.ResponseWriter, r *http.Request) {
	current := s.Orchestrator.CurrentUser()
	if current == nil || !current.IsAdmin() {
		config.ErrorStatus("admin role required", http.StatusForbidden, w, app.ErrNoSession)
		return
	}

	b, err := json.Marshal(s.Orchestrator.SupportMessages())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateSupportStatusHandler moves a support message through its workflow
func (s Site) UpdateSupportStatusHandler(w http.ResponseWriter, r *http.Request) {
	current := s.Orchestrator.CurrentUser()
	if current == nil || !current.IsAdmin() {
		config.ErrorStatus("admin role required", http.StatusForbidden, w, app.ErrNoSession)
		return
	}

	messageID := mux.Vars(r)["message_id"]
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode status request", http.StatusBadRequest, w, err)
		return
	}

	s.Orchestrator.UpdateSupportStatus(r.Context(), messageID, req.Status)
	w.WriteHeader(http.StatusNoContent)
}

// ThemeHandler returns the persisted theme preference
func (s Site) ThemeHandler(w http.ResponseWriter, r *http.Request) {
	b, _ := json.Marshal(map[string]string{"theme": s.Orchestrator.Theme()})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SetThemeHandler persists a theme preference
func (s Site) SetThemeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode theme request", http.StatusBadRequest, w, err)
		return
	}

	s.Orchestrator.SetTheme(r.Context(), req.Theme)
	w.WriteHeader(http.StatusNoContent)
}
