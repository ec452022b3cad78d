package client

import (
	"context"
	"net/http"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

// AuthService handles communication with the auth endpoints. Login and
// Refresh are public; Logout and Me require a valid session.
type AuthService struct {
	client   *Client
	resource *resourceService
}

// NewAuthService creates a new auth service
func NewAuthService(client *Client) *AuthService {
	return &AuthService{
		client:   client,
		resource: newResourceService(client, "auth", "auth"),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*v1.Session, error) {
	var session v1.Session

	err := s.resource.roundTrip(ctx, http.MethodPost, s.resource.baseURL+"/login",
		LoginRequest{Email: email, Password: password}, &session, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh trades a refresh token for a new session
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*v1.Session, error) {
	var session v1.Session

	err := s.resource.roundTrip(ctx, http.MethodPost, s.resource.baseURL+"/refresh",
		refreshRequest{RefreshToken: refreshToken}, &session, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// Logout invalidates the current session on the backend
func (s *AuthService) Logout(ctx context.Context) error {
	return s.resource.roundTrip(ctx, http.MethodPost, s.resource.baseURL+"/logout",
		nil, nil, http.StatusOK, http.StatusNoContent)
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context) (*v1.User, error) {
	var user v1.User

	err := s.resource.roundTrip(ctx, http.MethodGet, s.resource.baseURL+"/me",
		nil, &user, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
