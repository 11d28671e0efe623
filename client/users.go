package client

import (
	"context"
	"net/http"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

// profileResponse wraps the user record the profile endpoint returns.
type profileResponse struct {
	User *frigocheck.User `json:"user"`
}

// Login posts credentials to the login endpoint and returns the parsed
// response. Shape enforcement (token plus user with id) lives in the
// session manager.
func (c *Client) Login(ctx context.Context, email, password string) (*frigocheck.LoginResult, error) {
	payload := frigocheck.LoginRequest{Email: email, Password: password}

	result := &frigocheck.LoginResult{}
	if _, err := c.do(ctx, http.MethodPost, "/api/user/login", payload, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Register posts registration data and returns the parsed response.
func (c *Client) Register(ctx context.Context, payload frigocheck.RegisterRequest) (*frigocheck.RegisterResult, error) {
	result := &frigocheck.RegisterResult{}
	if _, err := c.do(ctx, http.MethodPost, "/api/user", payload, result); err != nil {
		return nil, err
	}
	return result, nil
}

// FetchProfile fetches the identity record keyed by user id.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*frigocheck.User, error) {
	result := &profileResponse{}
	if _, err := c.do(ctx, http.MethodGet, "/api/user/profile/"+userID, nil, result); err != nil {
		return nil, err
	}
	return result.User, nil
}

// Logout tells the backend to drop the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/user/logout", nil, nil)
	return err
}

// UpdateProfile sends a partial user update keyed by user id.
func (c *Client) UpdateProfile(ctx context.Context, userID string, fields map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, "/api/user/update/"+userID, fields, nil)
	return err
}

// passwordChange matches the backend's field casing exactly.
type passwordChange struct {
	Password    string `json:"Password"`
	NewPassword string `json:"newPassword"`
}

// UpdatePassword posts the old and new password to the update
// endpoint.
func (c *Client) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	payload := passwordChange{Password: oldPassword, NewPassword: newPassword}
	_, err := c.do(ctx, http.MethodPut, "/api/user/update/"+userID, payload, nil)
	return err
}
