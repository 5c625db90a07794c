package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Navigation exported for testing purposes
type Navigation struct {
	Orchestrator *app.App
}

type locationResponse struct {
	Location models.CurrentLocation `json:"location"`
	Depth    int                    `json:"historyDepth"`
}

// LocationHandler returns the current location and the history depth
func (n Navigation) LocationHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(locationResponse{
		Location: n.Orchestrator.Location(),
		Depth:    n.Orchestrator.HistoryDepth(),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GoToPageHandler moves to a top-level page
func (n Navigation) GoToPageHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page models.Page `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode navigation request", http.StatusBadRequest, w, err)
		return
	}

	n.Orchestrator.GoToPage(req.Page)
	n.writeLocation(w)
}

// GoToSubPageHandler moves to a dashboard sub page, optionally selecting a case
func (n Navigation) GoToSubPageHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubPage models.DashboardSubPage `json:"subPage"`
		CaseID  string                  `json:"caseId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode navigation request", http.StatusBadRequest, w, err)
		return
	}

	n.Orchestrator.GoToDashboardSubPage(r.Context(), req.SubPage, req.CaseID)
	n.writeLocation(w)
}

// GoBackHandler pops the navigation history; a no-op when it is empty
func (n Navigation) GoBackHandler(w http.ResponseWriter, r *http.Request) {
	n.Orchestrator.GoBack(r.Context())
	n.writeLocation(w)
}

func (n Navigation) writeLocation(w http.ResponseWriter) {
	b, err := json.Marshal(locationResponse{
		Location: n.Orchestrator.Location(),
		Depth:    n.Orchestrator.HistoryDepth(),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
