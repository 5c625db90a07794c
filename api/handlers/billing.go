package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/billing"
	"github.com/cla-bangladesh/cla-portal/config"
)

// Billing exported for testing purposes
type Billing struct {
	Orchestrator *app.App
	Config       config.Config
}

// InvoicesHandler derives the invoice list from the cached appointments
func (b Billing) InvoicesHandler(w http.ResponseWriter, r *http.Request) {
	res, err := json.Marshal(billing.InvoicesFromAppointments(b.Orchestrator.Appointments()))
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// CreateCheckoutSessionHandler starts a Stripe payment for a consultation fee
func (b Billing) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	if b.Config.StripeKey == "" {
		config.ErrorStatus("checkout is not configured", http.StatusServiceUnavailable, w, nil)
		return
	}

	var req struct {
		AppointmentID string `json:"appointmentId"`
		SuccessURL    string `json:"successUrl"`
		CancelURL     string `json:"cancelUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode checkout request", http.StatusBadRequest, w, err)
		return
	}

	var lawyerName string
	var fee int
	for _, a := range b.Orchestrator.Appointments() {
		if a.ID == req.AppointmentID {
			lawyerName = a.LawyerName
			fee = a.Fee
			break
		}
	}
	if fee <= 0 {
		config.ErrorStatus("appointment has no payable fee", http.StatusBadRequest, w, nil)
		return
	}

	url, err := billing.CreateCheckoutSession(billing.CheckoutRequest{
		AppointmentID: req.AppointmentID,
		LawyerName:    lawyerName,
		AmountBDT:     fee,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
	})
	if err != nil {
		config.ErrorStatus("failed to create checkout session", http.StatusBadGateway, w, err)
		return
	}

	res, _ := json.Marshal(map[string]string{"url": url})
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}
