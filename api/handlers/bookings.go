package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/api"
	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/backend"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Bookings exported for testing purposes
type Bookings struct {
	Orchestrator *app.App
}

// ListHandler returns the cached appointments for the signed-in user
func (b Bookings) ListHandler(w http.ResponseWriter, r *http.Request) {
	res, err := json.Marshal(b.Orchestrator.Appointments())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

type bookingPatchRequest struct {
	Date   *string                   `json:"date,omitempty"`
	Time   *string                   `json:"time,omitempty"`
	Status *models.AppointmentStatus `json:"status,omitempty"`
	Notes  *string                   `json:"notes,omitempty"`
}

// UpdateHandler applies a partial update to an appointment
func (b Bookings) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["booking_id"]

	var req bookingPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode booking patch", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	b.Orchestrator.UpdateAppointment(ctx, bookingID, backend.AppointmentPatch{
		Date:   req.Date,
		Time:   req.Time,
		Status: req.Status,
		Notes:  req.Notes,
	})

	res, err := json.Marshal(b.Orchestrator.Appointments())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}
