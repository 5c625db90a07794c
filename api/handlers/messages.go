package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/models"
)

// Messages exported for testing purposes
type Messages struct {
	Orchestrator *app.App
}

// ConversationsHandler returns the aggregated conversation heads
func (m Messages) ConversationsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(m.Orchestrator.Conversations())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkConversationReadHandler flips a single counterpart's incoming traffic
func (m Messages) MarkConversationReadHandler(w http.ResponseWriter, r *http.Request) {
	counterpartID := mux.Vars(r)["counterpart_id"]
	m.Orchestrator.MarkConversationRead(counterpartID)
	w.WriteHeader(http.StatusNoContent)
}

type sendMessageRequest struct {
	ReceiverID string             `json:"receiverId"`
	Text       string             `json:"text"`
	CaseID     string             `json:"caseId"`
	Attachment *models.Attachment `json:"attachment,omitempty"`
}

// SendHandler records an outgoing chat message
func (m Messages) SendHandler(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode message request", http.StatusBadRequest, w, err)
		return
	}

	msg := m.Orchestrator.SendMessage(req.ReceiverID, req.Text, req.CaseID, req.Attachment)
	if msg == nil {
		config.ErrorStatus("no active session", http.StatusUnauthorized, w, app.ErrNoSession)
		return
	}

	b, err := json.Marshal(msg)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// MarkAllReadHandler flips every message addressed to the signed-in user
func (m Messages) MarkAllReadHandler(w http.ResponseWriter, r *http.Request) {
	m.Orchestrator.MarkAllMessagesRead()
	w.WriteHeader(http.StatusNoContent)
}

// TypingHandler reports whether a reply is being composed on a case thread
func (m Messages) TypingHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	b, _ := json.Marshal(map[string]bool{"typing": m.Orchestrator.TypingIndicator(caseID)})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
