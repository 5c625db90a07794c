package config

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	BackendURL  string
	BaseURL     string
	Port        string
	StateDir    string
	UploadDir   string
	RedisURL    string
	SendgridKey string
	StripeKey   string
	MailFrom    string

	CloudinaryName         string
	CloudinaryKey          string
	CloudinarySecret       string
	CloudinaryUploadPreset string

	// UI client credential for the basic-auth token exchange.
	UIClientID     string
	UIClientSecret string
}

// New sets up all config related services
func New() *Config {

	// .env is optional, deployments set the environment directly
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		BackendURL:  os.Getenv("BACKEND_URL"),
		BaseURL:     os.Getenv("BASE_URL"),
		Port:        os.Getenv("PORT"),
		StateDir:    os.Getenv("STATE_DIR"),
		UploadDir:   os.Getenv("UPLOAD_DIR"),
		RedisURL:    os.Getenv("REDIS_URL"),
		SendgridKey: os.Getenv("SENDGRID_API_KEY"),
		StripeKey:   os.Getenv("STRIPE_SECRET_KEY"),
		MailFrom:    os.Getenv("MAIL_FROM"),

		CloudinaryName:         os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:          os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret:       os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),

		UIClientID:     os.Getenv("UI_CLIENT_ID"),
		UIClientSecret: os.Getenv("UI_CLIENT_SECRET"),
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	b, _ := json.Marshal(map[string]map[string]string{
		"response": {"message": message, "error": errText},
	})
	w.Write(b)
}
