package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/models"
)

func TestInitRequiresKey(t *testing.T) {
	assert.Error(t, Init(""))
	assert.NoError(t, Init("sk_test_123"))
}

func TestInvoicesFromAppointments(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "a1", Date: "2026-08-01", Fee: 1500, Status: models.AppointmentConfirmed, ClientName: "Rahim", LawyerName: "Advocate Sultana"},
		{ID: "a2", Date: "2026-08-02", Fee: 2000, Status: models.AppointmentPending},
		{ID: "a3", Date: "2026-08-03", Fee: 1000, Status: models.AppointmentCancelled},
		{ID: "a4", Date: "2026-08-04", Fee: 0, Status: models.AppointmentConfirmed},
	}

	invoices := InvoicesFromAppointments(appointments)
	require.Len(t, invoices, 2)

	assert.Equal(t, "inv-a1", invoices[0].ID)
	assert.Equal(t, "unpaid", invoices[0].Status)
	assert.Equal(t, "2026-08-08", invoices[0].DueDate)
	assert.Equal(t, 1500, invoices[0].Amount)

	assert.Equal(t, "pending", invoices[1].Status)
}
