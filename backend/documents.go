package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cla-bangladesh/cla-portal/models"
)

// documentPayload is the backend's wire representation of an evidence
// document.
type documentPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FileType   string `json:"file_type"`
	Size       int64  `json:"size"`
	URL        string `json:"file_url"`
	UploadedAt string `json:"uploaded_at"`
	Case       string `json:"case"`
}

func normalizeDocument(p documentPayload) models.EvidenceDocument {
	return models.EvidenceDocument{
		ID:         p.ID,
		Name:       p.Name,
		Type:       p.FileType,
		Size:       p.Size,
		URL:        p.URL,
		UploadedAt: p.UploadedAt,
		CaseID:     p.Case,
	}
}

// Documents implements DocumentService.
func (c *Client) Documents(ctx context.Context) ([]models.EvidenceDocument, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/evidence-documents/", nil, &raw); err != nil {
		return nil, err
	}
	var payloads []documentPayload
	if err := decodeList(raw, &payloads); err != nil {
		return nil, err
	}
	docs := make([]models.EvidenceDocument, 0, len(payloads))
	for _, p := range payloads {
		docs = append(docs, normalizeDocument(p))
	}
	return docs, nil
}

// UploadDocument implements DocumentService. The binary itself has already
// been placed in media storage; this registers the metadata.
func (c *Client) UploadDocument(ctx context.Context, doc models.EvidenceDocument) (*models.EvidenceDocument, error) {
	payload := map[string]interface{}{
		"name":      doc.Name,
		"file_type": doc.Type,
		"size":      doc.Size,
		"file_url":  doc.URL,
		"case":      doc.CaseID,
	}
	var p documentPayload
	if err := c.doJSON(ctx, http.MethodPost, "/evidence-documents/", payload, &p); err != nil {
		return nil, err
	}
	out := normalizeDocument(p)
	return &out, nil
}

// DeleteDocument implements DocumentService.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/evidence-documents/%s/", id), nil, nil)
}
