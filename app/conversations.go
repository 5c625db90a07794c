package app

import (
	"sort"

	"github.com/cla-bangladesh/cla-portal/models"
)

// Conversations derives the per-counterpart view of the message collection
// for the signed-in user. It is recomputed on every call; output is ordered
// by each conversation's latest message timestamp, descending.
func (a *App) Conversations() []models.Conversation {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.user == nil {
		return nil
	}
	return aggregateConversations(a.st.messages, a.st.user.ID)
}

// aggregateConversations is the pure aggregation over a flat message
// collection. Unread counts only messages received by currentUserID.
func aggregateConversations(messages []models.Message, currentUserID string) []models.Conversation {
	byCounterpart := map[string]*models.Conversation{}
	for _, m := range messages {
		var counterpart string
		switch {
		case m.SenderID == currentUserID:
			counterpart = m.ReceiverID
		case m.ReceiverID == currentUserID:
			counterpart = m.SenderID
		default:
			continue
		}

		conv, ok := byCounterpart[counterpart]
		if !ok {
			conv = &models.Conversation{CounterpartID: counterpart, LatestMessage: m}
			byCounterpart[counterpart] = conv
		} else if m.Timestamp >= conv.LatestMessage.Timestamp {
			conv.LatestMessage = m
		}
		if m.ReceiverID == currentUserID && m.SenderID == counterpart && !m.Read {
			conv.UnreadCount++
		}
	}

	out := make([]models.Conversation, 0, len(byCounterpart))
	for _, conv := range byCounterpart {
		out = append(out, *conv)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LatestMessage.Timestamp > out[j].LatestMessage.Timestamp
	})
	return out
}

// MarkConversationRead flips the read flag on every message from the
// counterpart to the signed-in user. Messages in the other direction are
// never touched.
func (a *App) MarkConversationRead(counterpartID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.user == nil {
		return
	}
	me := a.st.user.ID

	next := make([]models.Message, len(a.st.messages))
	copy(next, a.st.messages)
	for i := range next {
		if next[i].SenderID == counterpartID && next[i].ReceiverID == me {
			next[i].Read = true
		}
	}
	a.st.messages = next
}

// MarkAllMessagesRead flips the read flag on every message received by the
// signed-in user.
func (a *App) MarkAllMessagesRead() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.user == nil {
		return
	}
	me := a.st.user.ID

	next := make([]models.Message, len(a.st.messages))
	copy(next, a.st.messages)
	for i := range next {
		if next[i].ReceiverID == me {
			next[i].Read = true
		}
	}
	a.st.messages = next
}
