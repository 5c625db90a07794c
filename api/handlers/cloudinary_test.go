package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cla-bangladesh/cla-portal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSignatureUsesConfiguredCredentials(t *testing.T) {
	handler := CloudinaryHandler{Config: config.Config{
		CloudinarySecret:       "shhh-cloudinary",
		CloudinaryUploadPreset: "cla_documents",
	}}

	req, _ := http.NewRequest("POST", "/api/v1/generate-signature", nil)
	rr := httptest.NewRecorder()
	handler.GenerateSignature(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotEmpty(t, body["timestamp"])
	require.NotEmpty(t, body["signature"])

	h := hmac.New(sha1.New, []byte("shhh-cloudinary"))
	h.Write([]byte("timestamp=" + body["timestamp"] + "&upload_preset=cla_documents"))
	assert.Equal(t, hex.EncodeToString(h.Sum(nil)), body["signature"])
}
