package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("BACKEND_URL", "http://127.0.0.1:8000/api")
	os.Setenv("PORT", "8080")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "http://127.0.0.1:8000/api", conf.BackendURL)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "error it borked")
}
