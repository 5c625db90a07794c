package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/mailer"
)

// Emails exported for testing purposes
type Emails struct {
	Outbox *mailer.Outbox
}

// ListHandler returns the simulated email inbox, newest first
func (e Emails) ListHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(e.Outbox.Emails())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkReadHandler flips a simulated email's read flag
func (e Emails) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	emailID := mux.Vars(r)["email_id"]
	e.Outbox.MarkRead(emailID)
	w.WriteHeader(http.StatusNoContent)
}
