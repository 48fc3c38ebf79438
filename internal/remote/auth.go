package remote

import (
	"context"
	"net/http"

	"dms-go/internal/model"
)

// Login exchanges credentials for a bearer token and the authenticated user.
func (c *Client) Login(ctx context.Context, email, password string) (model.Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var payload wireAuthPayload
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: payload.AccessToken, User: mapUser(payload.User)}, nil
}

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, email, fullName, password string) (model.Session, error) {
	body := struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}{Email: email, FullName: fullName, Password: password}

	var payload wireAuthPayload
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/register", body, &payload); err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: payload.AccessToken, User: mapUser(payload.User)}, nil
}

// Me returns the user the held token authenticates as.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u wireUser
	if err := c.get(ctx, "/auth/me", nil, &u); err != nil {
		return model.User{}, err
	}
	return mapUser(u), nil
}
