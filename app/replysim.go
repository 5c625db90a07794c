package app

import (
	"github.com/cla-bangladesh/cla-portal/models"
)

// simulatedReplyText stands in for a real counterpart in this environment.
const simulatedReplyText = "Thank you for your message. I have received it and will get back to you shortly."

// SendMessage appends a message from the signed-in user immediately. When a
// case id is attached, a "counterpart is typing" flag is set for that case
// and, after a fixed delay, the reply simulator appends a synthetic reply
// from the receiver and raises a new_message notification for the sender.
// The timer is never cancelled; a fired timer re-enters through the same
// mutex.
func (a *App) SendMessage(receiverID, text, caseID string, attachment *models.Attachment) *models.Message {
	a.mu.Lock()
	if a.st.user == nil {
		a.mu.Unlock()
		return nil
	}
	senderID := a.st.user.ID

	msg := models.Message{
		ID:         newEntityID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  a.clock.Now().UnixMilli(),
		CaseID:     caseID,
		Attachment: attachment,
	}
	a.appendMessageLocked(msg)

	if caseID != "" {
		typing := make(map[string]bool, len(a.st.typing)+1)
		for k, v := range a.st.typing {
			typing[k] = v
		}
		typing[caseID] = true
		a.st.typing = typing
		a.events.Publish(Event{Kind: EventTyping, Payload: map[string]interface{}{"caseId": caseID, "typing": true}})

		a.clock.AfterFunc(a.replyDelay, func() {
			a.completeSimulatedReply(senderID, receiverID, caseID)
		})
	}
	a.mu.Unlock()
	return &msg
}

// completeSimulatedReply clears the typing flag, appends the synthetic
// counterpart reply and notifies the original sender.
func (a *App) completeSimulatedReply(senderID, receiverID, caseID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	typing := make(map[string]bool, len(a.st.typing))
	for k, v := range a.st.typing {
		if k != caseID {
			typing[k] = v
		}
	}
	a.st.typing = typing
	a.events.Publish(Event{Kind: EventTyping, Payload: map[string]interface{}{"caseId": caseID, "typing": false}})

	reply := models.Message{
		ID:         newEntityID(),
		SenderID:   receiverID,
		ReceiverID: senderID,
		Text:       simulatedReplyText,
		Timestamp:  a.clock.Now().UnixMilli(),
		CaseID:     caseID,
	}
	a.appendMessageLocked(reply)

	a.raiseNotificationLocked(models.Notification{
		UserID: senderID,
		Type:   models.NotificationNewMessage,
		Title:  "New message",
		Body:   "You have received a reply on your case.",
		Link:   &models.NotificationLink{Page: models.SubPageMessages, CaseID: caseID},
	})
}

func (a *App) appendMessageLocked(msg models.Message) {
	next := make([]models.Message, 0, len(a.st.messages)+1)
	next = append(next, a.st.messages...)
	next = append(next, msg)
	a.st.messages = next
	a.events.Publish(Event{Kind: EventMessage, Payload: msg})
}

// TypingIndicator reports whether the counterpart on the given case is
// currently "typing".
func (a *App) TypingIndicator(caseID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.typing[caseID]
}

// SeedMessages installs an initial message collection, used by local
// development wiring and tests.
func (a *App) SeedMessages(messages []models.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()
	next := make([]models.Message, len(messages))
	copy(next, messages)
	a.st.messages = next
}
