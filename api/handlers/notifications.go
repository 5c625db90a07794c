package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/config"
)

// Notifications exported for testing purposes
type Notifications struct {
	Orchestrator *app.App
}

// ListHandler returns the signed-in user's notifications, newest first
func (n Notifications) ListHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(n.Orchestrator.Notifications())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkAllReadHandler flips every notification for the signed-in user
func (n Notifications) MarkAllReadHandler(w http.ResponseWriter, r *http.Request) {
	n.Orchestrator.MarkAllNotificationsRead()
	w.WriteHeader(http.StatusNoContent)
}

// OpenHandler routes to a notification's link target and marks it read.
// A notification without a link is left untouched.
func (n Notifications) OpenHandler(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["notification_id"]
	n.Orchestrator.OpenNotification(r.Context(), notificationID)

	b, err := json.Marshal(n.Orchestrator.Location())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
