package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Alerts exported for testing purposes
type Alerts struct {
	Orchestrator *app.App
}

// ListHandler returns the emergency alert audit trail, newest first
func (a Alerts) ListHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(a.Orchestrator.Alerts())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SendHandler raises an emergency alert at the given location
func (a Alerts) SendHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location models.Location `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode alert request", http.StatusBadRequest, w, err)
		return
	}

	alert, err := a.Orchestrator.SendAlert(r.Context(), req.Location)
	if err != nil {
		if errors.Is(err, app.ErrNoSession) {
			config.ErrorStatus("no active session", http.StatusUnauthorized, w, err)
			return
		}
		config.ErrorStatus("failed to raise alert", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(alert)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ResolveHandler closes an active alert with a final outcome
func (a Alerts) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	alertID := mux.Vars(r)["alert_id"]

	var req struct {
		Outcome models.AlertStatus `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode resolve request", http.StatusBadRequest, w, err)
		return
	}

	a.Orchestrator.ResolveAlert(r.Context(), alertID, req.Outcome)

	b, err := json.Marshal(a.Orchestrator.Alerts())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
