package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cla-bangladesh/cla-portal/config"
)

// CloudinaryHandler handles Cloudinary related requests
type CloudinaryHandler struct {
	Config config.Config
}

// GenerateSignature generates a signature for direct Cloudinary uploads
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	// Create the signature
	h := hmac.New(sha1.New, []byte(c.Config.CloudinarySecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + c.Config.CloudinaryUploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	// Respond with the timestamp and signature
	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
