package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cla-bangladesh/cla-portal/models"
)

// AllUsers implements UserService. Admin-only on the backend side; other
// roles get a 403 surfaced as a plain error.
func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/users/", nil, &raw); err != nil {
		return nil, err
	}
	var payloads []userPayload
	if err := decodeList(raw, &payloads); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(payloads))
	for _, p := range payloads {
		users = append(users, normalizeUser(p))
	}
	return users, nil
}

// UpdateUserVerification implements UserService.
func (c *Client) UpdateUserVerification(ctx context.Context, userID string, status models.VerificationStatus) (*models.User, error) {
	var p userPayload
	path := fmt.Sprintf("/users/%s/verification/", userID)
	payload := map[string]string{"status": verificationToBackend(status)}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &p); err != nil {
		return nil, err
	}
	user := normalizeUser(p)
	return &user, nil
}

// DeleteUser implements UserService.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%s/", userID), nil, nil)
}

// SubmitLawyerReview implements UserService.
func (c *Client) SubmitLawyerReview(ctx context.Context, lawyerID string, review models.Review) error {
	return c.doJSON(ctx, http.MethodPost, "/lawyer-reviews/", map[string]interface{}{
		"lawyer":  lawyerID,
		"rating":  review.Rating,
		"comment": review.Comment,
	}, nil)
}
