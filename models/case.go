package models

// CaseStatus is the collapsed client-facing case status. The backend keeps a
// wider enumeration; the collapse is lossy and one-directional, so the raw
// backend value is preserved alongside it.
type CaseStatus string

// Client-facing case states.
const (
	CaseSubmitted CaseStatus = "Submitted"
	CaseInReview  CaseStatus = "In Review"
	CaseScheduled CaseStatus = "Scheduled"
	CaseResolved  CaseStatus = "Resolved"
)

// Case holds the structure for a legal case. The orchestrator treats it as a
// read/write-through cache entry, not source of truth.
type Case struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        CaseStatus `json:"status"`
	BackendStatus string     `json:"backendStatus,omitempty"`
	SubmittedDate string     `json:"submittedDate"`
	LawyerID      string     `json:"lawyerId,omitempty"`
	ClientID      string     `json:"clientId"`
	Reviewed      bool       `json:"reviewed"`
}
