package models

// ToastKind distinguishes success and failure toasts.
type ToastKind string

// Toast kinds.
const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient, self-expiring status message surfaced to the UI.
type Toast struct {
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	ExpiresAt int64     `json:"expiresAt"`
}

// SimulatedEmail is a locally recorded email used when no real mail provider
// is configured. Verification and reset actions carry their token so the UI
// can complete the flow.
type SimulatedEmail struct {
	ID         string `json:"id"`
	To         string `json:"to"`
	From       string `json:"from"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Read       bool   `json:"read"`
	Timestamp  int64  `json:"timestamp"`
	ActionType string `json:"actionType,omitempty"` // VERIFY_EMAIL | RESET_PASSWORD
	Token      string `json:"token,omitempty"`
}
