package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cla-bangladesh/cla-portal/models"
)

// caseStatusMap collapses the backend enumeration onto the client-facing one.
// The collapse is lossy: IN_REVIEW and DOC_REQUESTED both surface as
// "In Review", RESOLVED and CLOSED both as "Resolved". The raw value is kept
// on the model so nothing downstream has to guess.
var caseStatusMap = map[string]models.CaseStatus{
	"SUBMITTED":     models.CaseSubmitted,
	"IN_REVIEW":     models.CaseInReview,
	"DOC_REQUESTED": models.CaseInReview,
	"SCHEDULED":     models.CaseScheduled,
	"RESOLVED":      models.CaseResolved,
	"CLOSED":        models.CaseResolved,
}

func caseStatusFromBackend(value string) models.CaseStatus {
	if s, ok := caseStatusMap[strings.ToUpper(value)]; ok {
		return s
	}
	return models.CaseSubmitted
}

func caseStatusToBackend(status models.CaseStatus) string {
	switch status {
	case models.CaseInReview:
		return "IN_REVIEW"
	case models.CaseScheduled:
		return "SCHEDULED"
	case models.CaseResolved:
		return "RESOLVED"
	default:
		return "SUBMITTED"
	}
}

// casePayload is the backend's wire representation of a case.
type casePayload struct {
	CaseID         string `json:"case_id"`
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Status         string `json:"status"`
	SubmissionDate string `json:"submission_date"`
	CreatedAt      string `json:"created_at"`
	AssignedLawyer string `json:"assigned_lawyer"`
	Citizen        string `json:"citizen"`
	Reviewed       bool   `json:"reviewed"`
}

func normalizeCase(p casePayload) models.Case {
	id := p.CaseID
	if id == "" {
		id = p.ID
	}
	submitted := p.SubmissionDate
	if submitted == "" {
		submitted = p.CreatedAt
	}
	if submitted == "" {
		submitted = time.Now().UTC().Format(time.RFC3339)
	}
	return models.Case{
		ID:            id,
		Title:         p.Title,
		Description:   p.Description,
		Status:        caseStatusFromBackend(p.Status),
		BackendStatus: strings.ToUpper(p.Status),
		SubmittedDate: submitted,
		LawyerID:      p.AssignedLawyer,
		ClientID:      p.Citizen,
		Reviewed:      p.Reviewed,
	}
}

func serializeCasePatch(patch CasePatch) map[string]interface{} {
	payload := map[string]interface{}{}
	if patch.Title != nil {
		payload["title"] = *patch.Title
	}
	if patch.Description != nil {
		payload["description"] = *patch.Description
	}
	if patch.Status != nil {
		payload["status"] = caseStatusToBackend(*patch.Status)
	}
	if patch.LawyerID != nil {
		payload["assigned_lawyer"] = *patch.LawyerID
	}
	if patch.Reviewed != nil {
		payload["reviewed"] = *patch.Reviewed
	}
	return payload
}

// UserCases implements CaseService. The backend filters by the foreign key
// matching the caller's role.
func (c *Client) UserCases(ctx context.Context, user *models.User) ([]models.Case, error) {
	q := url.Values{}
	switch user.Role {
	case models.RoleCitizen:
		q.Set("clientId", user.ID)
	case models.RoleLawyer:
		q.Set("lawyerId", user.ID)
	}
	path := "/cases/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var payloads []casePayload
	if err := decodeList(raw, &payloads); err != nil {
		return nil, err
	}
	cases := make([]models.Case, 0, len(payloads))
	for _, p := range payloads {
		cases = append(cases, normalizeCase(p))
	}
	return cases, nil
}

// CreateCase implements CaseService.
func (c *Client) CreateCase(ctx context.Context, patch CasePatch, clientID string) (*models.Case, error) {
	payload := serializeCasePatch(patch)
	payload["citizen"] = clientID

	var p casePayload
	if err := c.doJSON(ctx, http.MethodPost, "/cases/", payload, &p); err != nil {
		return nil, err
	}
	kase := normalizeCase(p)
	return &kase, nil
}

// UpdateCase implements CaseService.
func (c *Client) UpdateCase(ctx context.Context, caseID string, patch CasePatch) (*models.Case, error) {
	var p casePayload
	path := fmt.Sprintf("/cases/%s/", caseID)
	if err := c.doJSON(ctx, http.MethodPatch, path, serializeCasePatch(patch), &p); err != nil {
		return nil, err
	}
	kase := normalizeCase(p)
	return &kase, nil
}
