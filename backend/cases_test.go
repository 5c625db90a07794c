package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cla-bangladesh/cla-portal/models"
)

func TestCaseStatusFromBackend(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		status models.CaseStatus
	}{
		{"submitted", "SUBMITTED", models.CaseSubmitted},
		{"in review", "IN_REVIEW", models.CaseInReview},
		{"doc requested collapses to in review", "DOC_REQUESTED", models.CaseInReview},
		{"scheduled", "SCHEDULED", models.CaseScheduled},
		{"resolved", "RESOLVED", models.CaseResolved},
		{"closed collapses to resolved", "CLOSED", models.CaseResolved},
		{"lower case input", "closed", models.CaseResolved},
		{"unknown falls back to submitted", "ARCHIVED", models.CaseSubmitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, caseStatusFromBackend(tt.raw))
		})
	}
}

func TestNormalizeCaseKeepsRawStatus(t *testing.T) {
	kase := normalizeCase(casePayload{
		CaseID:         "case-1",
		Title:          "Land boundary dispute",
		Status:         "doc_requested",
		SubmissionDate: "2026-08-01T10:00:00Z",
		Citizen:        "user-1",
	})

	assert.Equal(t, models.CaseInReview, kase.Status)
	// The lossy collapse keeps the raw backend value alongside.
	assert.Equal(t, "DOC_REQUESTED", kase.BackendStatus)
	assert.Equal(t, "case-1", kase.ID)
	assert.Equal(t, "2026-08-01T10:00:00Z", kase.SubmittedDate)
}

func TestNormalizeCaseFallbacks(t *testing.T) {
	kase := normalizeCase(casePayload{
		ID:        "case-2",
		Status:    "SUBMITTED",
		CreatedAt: "2026-08-02T09:00:00Z",
	})

	// Alternate id and date fields are honored when the primary ones are empty.
	assert.Equal(t, "case-2", kase.ID)
	assert.Equal(t, "2026-08-02T09:00:00Z", kase.SubmittedDate)
}

func TestSerializeCasePatchTranslatesStatus(t *testing.T) {
	status := models.CaseResolved
	reviewed := true
	payload := serializeCasePatch(CasePatch{Status: &status, Reviewed: &reviewed})

	assert.Equal(t, "RESOLVED", payload["status"])
	assert.Equal(t, true, payload["reviewed"])
	assert.NotContains(t, payload, "title")
}
