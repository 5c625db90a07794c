package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/api"
	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Cases exported for testing purposes
type Cases struct {
	Orchestrator *app.App
}

// ListHandler returns the cached cases for the signed-in user
func (c Cases) ListHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(c.Orchestrator.Cases())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateHandler files a new case
func (c Cases) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode case request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	created, err := c.Orchestrator.CreateCase(ctx, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, app.ErrNoSession) {
			config.ErrorStatus("no active session", http.StatusUnauthorized, w, err)
			return
		}
		config.ErrorStatus("failed to create case", http.StatusBadGateway, w, err)
		return
	}

	b, err := json.Marshal(created)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

type casePatchRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *models.CaseStatus `json:"status,omitempty"`
	LawyerID    *string            `json:"lawyerId,omitempty"`
	Reviewed    *bool              `json:"reviewed,omitempty"`
}

// UpdateHandler applies a partial update to a case
func (c Cases) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req casePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode case patch", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	c.Orchestrator.UpdateCase(ctx, caseID, backend.CasePatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		LawyerID:    req.LawyerID,
		Reviewed:    req.Reviewed,
	})

	b, err := json.Marshal(c.Orchestrator.Cases())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
