package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/api"
	"github.com/cla-bangladesh/cla-portal/app"
	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/cla-bangladesh/cla-portal/media"
	"github.com/cla-bangladesh/cla-portal/models"
)

// maxUploadBytes caps evidence uploads at 16 MiB.
const maxUploadBytes = 16 << 20

// Documents exported for testing purposes
type Documents struct {
	Orchestrator *app.App
	Media        media.Uploader
}

// ListHandler returns the cached evidence documents
func (d Documents) ListHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(d.Orchestrator.Documents())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UploadHandler accepts a multipart evidence file, stores it through the
// configured uploader and registers it against the given case
func (d Documents) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("missing file field", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	up, err := d.Media.Upload(ctx, header.Filename, file)
	if err != nil {
		config.ErrorStatus("failed to store file", http.StatusBadGateway, w, err)
		return
	}
	zap.S().Debugw("stored evidence file", "name", header.Filename, "url", up.URL)

	doc := d.Orchestrator.UploadDocument(ctx, models.EvidenceDocument{
		Name:   header.Filename,
		Type:   header.Header.Get("Content-Type"),
		Size:   header.Size,
		URL:    up.URL,
		CaseID: r.FormValue("caseId"),
	})
	if doc == nil {
		config.ErrorStatus("no active session", http.StatusUnauthorized, w, app.ErrNoSession)
		return
	}

	b, err := json.Marshal(doc)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// DeleteHandler removes an evidence document from the cache and the backend
func (d Documents) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["document_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	d.Orchestrator.DeleteDocument(ctx, documentID)
	w.WriteHeader(http.StatusNoContent)
}

// ActivityHandler returns the per-user activity feed
func (d Documents) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(d.Orchestrator.ActivityLogs())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
