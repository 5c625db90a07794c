package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Session holds the tokens returned by the backend on login/register.
type Session struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Expired reports whether the access token's exp claim has passed. The token
// is not verified here: the backend is the verifier, the client only needs to
// know whether a restore attempt is worth the round trip.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return true
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

// Client talks to the portal backend over REST/JSON. It implements every
// per-resource service interface in this package.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session *Session
}

// New constructs a Client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetSession installs the bearer session used by authenticated calls.
// A nil session clears it.
func (c *Client) SetSession(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// CurrentSession returns the installed session, if any.
func (c *Client) CurrentSession() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// apiError is the backend's error envelope.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *apiError) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s := c.CurrentSession(); s != nil && s.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ae apiError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(raw, &ae)
		ae.Status = resp.StatusCode
		zap.S().Debugw("backend request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return c.mapError(&ae)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mapError converts recognizable backend failures into sentinel errors.
func (c *Client) mapError(ae *apiError) error {
	switch ae.Status {
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusConflict:
		return ErrDuplicateAccount
	case http.StatusGone:
		return ErrTokenExpired
	}
	if txt := ae.text(); txt != "" {
		return fmt.Errorf("backend: %s (status %d)", txt, ae.Status)
	}
	return fmt.Errorf("backend: request failed with status %d", ae.Status)
}

// results unwraps the list envelope some endpoints use ({"results": [...]})
// while others return a bare array.
func decodeList(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if envelope.Results == nil {
		return nil
	}
	return json.Unmarshal(envelope.Results, out)
}
