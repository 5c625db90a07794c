package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cla-bangladesh/cla-portal/models"
)

// bookingPayload is the backend's wire representation of a consultation
// booking.
type bookingPayload struct {
	ID         string `json:"id"`
	BookingID  string `json:"booking_id"`
	Citizen    string `json:"citizen"`
	Lawyer     string `json:"lawyer"`
	Title      string `json:"title"`
	Type       string `json:"consultation_type"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Duration   int    `json:"duration_minutes"`
	Mode       string `json:"mode"`
	Status     string `json:"status"`
	Reviewed   bool   `json:"reviewed"`
	Notes      string `json:"notes"`
	CaseID     string `json:"case"`
	ClientName string `json:"citizen_name"`
	LawyerName string `json:"lawyer_name"`
	Fee        int    `json:"fee"`
}

func bookingStatusFromBackend(value string) models.AppointmentStatus {
	switch strings.ToUpper(value) {
	case "CONFIRMED":
		return models.AppointmentConfirmed
	case "CANCELLED":
		return models.AppointmentCancelled
	default:
		return models.AppointmentPending
	}
}

func bookingStatusToBackend(status models.AppointmentStatus) string {
	return strings.ToUpper(string(status))
}

func normalizeBooking(p bookingPayload) models.Appointment {
	id := p.BookingID
	if id == "" {
		id = p.ID
	}
	return models.Appointment{
		ID:         id,
		ClientID:   p.Citizen,
		LawyerID:   p.Lawyer,
		Title:      p.Title,
		Type:       p.Type,
		Date:       p.Date,
		Time:       p.Time,
		Duration:   p.Duration,
		Mode:       p.Mode,
		Status:     bookingStatusFromBackend(p.Status),
		Reviewed:   p.Reviewed,
		Notes:      p.Notes,
		CaseID:     p.CaseID,
		ClientName: p.ClientName,
		LawyerName: p.LawyerName,
		Fee:        p.Fee,
	}
}

// UserAppointments implements AppointmentService.
func (c *Client) UserAppointments(ctx context.Context, userID string, role models.UserRole) ([]models.Appointment, error) {
	q := url.Values{}
	switch role {
	case models.RoleCitizen:
		q.Set("citizen", userID)
	case models.RoleLawyer:
		q.Set("lawyer", userID)
	}
	path := "/consultation-bookings/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var payloads []bookingPayload
	if err := decodeList(raw, &payloads); err != nil {
		return nil, err
	}
	appointments := make([]models.Appointment, 0, len(payloads))
	for _, p := range payloads {
		appointments = append(appointments, normalizeBooking(p))
	}
	return appointments, nil
}

// UpdateAppointment implements AppointmentService.
func (c *Client) UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) (*models.Appointment, error) {
	payload := map[string]interface{}{}
	if patch.Date != nil {
		payload["date"] = *patch.Date
	}
	if patch.Time != nil {
		payload["time"] = *patch.Time
	}
	if patch.Status != nil {
		payload["status"] = bookingStatusToBackend(*patch.Status)
	}
	if patch.Notes != nil {
		payload["notes"] = *patch.Notes
	}
	if patch.Reviewed != nil {
		payload["reviewed"] = *patch.Reviewed
	}

	var p bookingPayload
	path := fmt.Sprintf("/consultation-bookings/%s/", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, payload, &p); err != nil {
		return nil, err
	}
	appt := normalizeBooking(p)
	return &appt, nil
}
