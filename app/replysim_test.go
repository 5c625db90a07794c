package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cla-bangladesh/cla-portal/models"
)

func TestSendMessageRequiresSession(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.app.SendMessage("lawyer-1", "hello", "", nil))
	assert.Empty(t, f.app.Messages())
}

func TestSendMessageAppendsImmediately(t *testing.T) {
	f := newFixture(t)
	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	sent := f.app.SendMessage("lawyer-1", "I need advice on my land dispute.", "", nil)
	require.NotNil(t, sent)

	messages := f.app.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, id, messages[0].SenderID)
	assert.False(t, messages[0].Read)
	// No case id means no simulated counterpart.
	assert.False(t, f.app.TypingIndicator(""))
	f.clock.Advance(5 * time.Second)
	assert.Len(t, f.app.Messages(), 1)
}

func TestSimulatedReplyLifecycle(t *testing.T) {
	f := newFixture(t)
	id := f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	sent := f.app.SendMessage("lawyer-1", "Any update on my hearing?", "case-7", nil)
	require.NotNil(t, sent)
	assert.False(t, sent.Read)
	assert.True(t, f.app.TypingIndicator("case-7"))

	// Not yet due.
	f.clock.Advance(2 * time.Second)
	assert.Len(t, f.app.Messages(), 1)
	assert.True(t, f.app.TypingIndicator("case-7"))

	f.clock.Advance(2 * time.Second)

	assert.False(t, f.app.TypingIndicator("case-7"))
	messages := f.app.Messages()
	require.Len(t, messages, 2)
	reply := messages[1]
	assert.Equal(t, "lawyer-1", reply.SenderID)
	assert.Equal(t, id, reply.ReceiverID)
	assert.Equal(t, "case-7", reply.CaseID)
	assert.False(t, reply.Read)

	var newMessage *models.Notification
	for _, n := range f.app.Notifications() {
		if n.Type == models.NotificationNewMessage {
			nn := n
			newMessage = &nn
		}
	}
	require.NotNil(t, newMessage, "sender must be notified of the reply")
	assert.Equal(t, id, newMessage.UserID)
	require.NotNil(t, newMessage.Link)
	assert.Equal(t, models.SubPageMessages, newMessage.Link.Page)
	assert.Equal(t, "case-7", newMessage.Link.CaseID)
}

func TestReplyTimerSurvivesNavigation(t *testing.T) {
	f := newFixture(t)
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	f.app.SendMessage("lawyer-1", "hello", "case-7", nil)
	f.app.GoToPage(models.PageHome)

	f.clock.Advance(3 * time.Second)
	assert.Len(t, f.app.Messages(), 2, "pending reply fires even after navigating away")
}

func TestTypingEventsPublished(t *testing.T) {
	f := newFixture(t)
	f.seedCitizen(t, "Rahim", "rahim@example.com", "secret123")
	f.loginCitizen(t, "rahim@example.com", "secret123")

	f.app.SendMessage("lawyer-1", "hello", "case-7", nil)
	f.clock.Advance(3 * time.Second)

	kinds := f.events.kinds()
	var typing, message int
	for _, k := range kinds {
		switch k {
		case EventTyping:
			typing++
		case EventMessage:
			message++
		}
	}
	assert.Equal(t, 2, typing, "typing on, then off")
	assert.Equal(t, 2, message, "original message and synthetic reply")
}
