package models

// Attachment is an optional file reference carried by a message.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Message holds the structure for a chat message between two portal users.
// Messages are created on send and never deleted; only the receiver's read
// actions flip the read flag.
type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	ReceiverID string      `json:"receiverId"`
	Text       string      `json:"text"`
	Timestamp  int64       `json:"timestamp"`
	Read       bool        `json:"read"`
	CaseID     string      `json:"caseId,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Conversation is the derived per-counterpart view over the flat message
// collection. It is recomputed on demand and never persisted.
type Conversation struct {
	CounterpartID string  `json:"counterpartId"`
	LatestMessage Message `json:"latestMessage"`
	UnreadCount   int     `json:"unreadCount"`
}

// SupportMessage holds the structure for a public contact-form submission.
// Support messages are local-only entities with no backend counterpart.
type SupportMessage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"` // New | Read | Replied
}
