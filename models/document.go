package models

// EvidenceDocument holds the structure for an uploaded case document.
type EvidenceDocument struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
	CaseID     string `json:"caseId"`
}

// ActivityLog is a short per-user audit line shown on the dashboard.
type ActivityLog struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	CaseID    string `json:"caseId,omitempty"`
}
