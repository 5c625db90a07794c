package app

// Event kinds pushed to connected UI clients.
const (
	EventToast        = "toast"
	EventToastExpired = "toast_expired"
	EventTyping       = "typing"
	EventMessage      = "message"
	EventNotification = "notification"
	EventAlert        = "alert"
)

// Event is a single push to the UI event stream.
type Event struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload,omitempty"`
}

// Events receives orchestrator events for delivery to connected clients.
// Implementations must not block; the orchestrator publishes while holding
// its state lock.
type Events interface {
	Publish(e Event)
}

// NopEvents discards every event.
type NopEvents struct{}

// Publish implements Events.
func (NopEvents) Publish(Event) {}
