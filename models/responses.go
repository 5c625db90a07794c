package models

// HealthCheckResponse is the health check endpoint body.
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// MessageError holds a message and error for responses
type MessageError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ErrorMessageResponse returns the response message and error
type ErrorMessageResponse struct {
	Response MessageError `json:"response"`
}

// Invoice is a billing line derived from a consultation appointment.
type Invoice struct {
	ID         string `json:"id"`
	CaseID     string `json:"caseId,omitempty"`
	CaseTitle  string `json:"caseTitle,omitempty"`
	ClientName string `json:"clientName"`
	LawyerName string `json:"lawyerName"`
	IssuedDate string `json:"issuedDate"`
	DueDate    string `json:"dueDate"`
	Amount     int    `json:"amount"`
	Status     string `json:"status"` // paid | unpaid | pending
}
