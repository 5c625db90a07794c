package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/api"
	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Directory exported for testing purposes
type Directory struct {
	Orchestrator *app.App
}

// ListHandler returns the cached user directory
func (d Directory) ListHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(d.Orchestrator.Users())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateVerificationHandler moves a lawyer through the verification pipeline
func (d Directory) UpdateVerificationHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	current := d.Orchestrator.CurrentUser()
	if current == nil || !current.IsAdmin() {
		config.ErrorStatus("admin role required", http.StatusForbidden, w, app.ErrNoSession)
		return
	}

	var req struct {
		Status models.VerificationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode verification request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	d.Orchestrator.UpdateUserVerification(ctx, userID, req.Status)

	b, err := json.Marshal(d.Orchestrator.Users())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SubmitReviewHandler records a client review on a lawyer and marks the
// originating case reviewed
func (d Directory) SubmitReviewHandler(w http.ResponseWriter, r *http.Request) {
	lawyerID := mux.Vars(r)["lawyer_id"]

	var req struct {
		Rating        int    `json:"rating"`
		Comment       string `json:"comment"`
		CaseID        string `json:"caseId"`
		AppointmentID string `json:"appointmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode review request", http.StatusBadRequest, w, err)
		return
	}

	current := d.Orchestrator.CurrentUser()
	if current == nil {
		config.ErrorStatus("no active session", http.StatusUnauthorized, w, app.ErrNoSession)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	d.Orchestrator.SubmitReview(ctx, lawyerID, models.Review{
		ReviewerName: current.Name,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}, app.ReviewSource{CaseID: req.CaseID, AppointmentID: req.AppointmentID})
	w.WriteHeader(http.StatusNoContent)
}
