package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
)

// MiddlewareAuth holds the UI client credential the token exchange validates
// against.
type MiddlewareAuth struct {
	ClientID     string
	ClientSecret string
}

var authenticator auth.Authenticator
var cache store.Cache

// Middleware adds header authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("Client %s Authenticated\n", user.UserName())
		next.ServeHTTP(w, r)
	})
}

// CreateToken exchanges the UI client's basic credential for a bearer token
func (m MiddlewareAuth) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	clientID, _, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "basic auth failed", http.StatusUnauthorized)
		return
	}

	token := uuid.New().String()
	authUser := auth.NewDefaultUser(clientID, clientID, nil, nil)
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, token, authUser, r)

	response := map[string]string{
		"token": token,
	}

	responseBody, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Write(responseBody)
}

// RevokeToken drops the caller's bearer token from the cache
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if len(token) > len("Bearer ") {
		token = token[len("Bearer "):]
	}
	if err := cache.Delete(token, r); err != nil {
		zap.S().Warnw("failed to revoke token", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetupGoGuardian sets up the go-guardian middleware
func (m MiddlewareAuth) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), time.Hour*24)
	basicStrategy := basic.New(m.ValidateClient, cache)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateClient validates the UI client's basic credential in constant time
func (m MiddlewareAuth) ValidateClient(_ context.Context, _ *http.Request, clientID, clientSecret string) (auth.Info, error) {
	idHash := sha256.Sum256([]byte(clientID))
	secretHash := sha256.Sum256([]byte(clientSecret))
	expectedIDHash := sha256.Sum256([]byte(m.ClientID))
	expectedSecretHash := sha256.Sum256([]byte(m.ClientSecret))

	idMatch := subtle.ConstantTimeCompare(idHash[:], expectedIDHash[:]) == 1
	secretMatch := subtle.ConstantTimeCompare(secretHash[:], expectedSecretHash[:]) == 1
	if !idMatch || !secretMatch {
		return nil, fmt.Errorf("invalid client credential")
	}

	return auth.NewDefaultUser(clientID, clientID, nil, nil), nil
}
