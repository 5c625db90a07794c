// Package billing creates Stripe checkout sessions for consultation fees and
// derives the billing dashboard's invoice list from appointments.
package billing

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/models"
)

// Init installs the Stripe secret key. Call once at startup.
func Init(secretKey string) error {
	if secretKey == "" {
		return fmt.Errorf("billing: stripe secret key is not set")
	}
	stripe.Key = secretKey
	return nil
}

// CheckoutRequest describes the consultation fee being collected.
type CheckoutRequest struct {
	AppointmentID string
	LawyerName    string
	AmountBDT     int
	SuccessURL    string
	CancelURL     string
}

// CreateCheckoutSession creates a one-off payment session and returns its
// redirect URL.
func CreateCheckoutSession(req CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("bdt"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Consultation with %s", req.LawyerName)),
					},
					UnitAmount: stripe.Int64(int64(req.AmountBDT) * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.AppointmentID),
	}

	s, err := session.New(params)
	if err != nil {
		zap.S().Errorw("failed to create checkout session", "appointmentId", req.AppointmentID, "error", err)
		return "", err
	}
	return s.URL, nil
}

// InvoicesFromAppointments derives the invoice list shown on the billing
// subpage. Confirmed bookings with a fee produce an unpaid invoice due seven
// days after the consultation date; cancelled bookings produce none.
func InvoicesFromAppointments(appointments []models.Appointment) []models.Invoice {
	out := []models.Invoice{}
	for _, a := range appointments {
		if a.Fee <= 0 || a.Status == models.AppointmentCancelled {
			continue
		}
		status := "pending"
		if a.Status == models.AppointmentConfirmed {
			status = "unpaid"
		}
		out = append(out, models.Invoice{
			ID:         "inv-" + a.ID,
			CaseID:     a.CaseID,
			ClientName: a.ClientName,
			LawyerName: a.LawyerName,
			IssuedDate: a.Date,
			DueDate:    dueDate(a.Date),
			Amount:     a.Fee,
			Status:     status,
		})
	}
	return out
}

func dueDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 7).Format("2006-01-02")
}
