package auth

import (
	"context"
	"net/http"
)

// FetchOptions describes a request handed to an AuthenticatedClient. A nil
// Body means the request carries no body at all.
type FetchOptions struct {
	Method  string
	Headers map[string]string
	Body    *string
}

// AuthenticatedClient performs requests that may require a challenge/response
// handshake with the server.
type AuthenticatedClient interface {
	Fetch(ctx context.Context, url string, opts FetchOptions) (*http.Response, error)
}

// Capability is the per-session authentication capability.
type Capability interface {
	// IsNotSecured reports whether the server accepts unauthenticated calls.
	IsNotSecured() bool

	// AuthenticatedClient returns the challenge/response client.
	AuthenticatedClient() AuthenticatedClient
}

// Service implements Capability from a fixed security decision.
type Service struct {
	secured bool
	client  AuthenticatedClient
}

// NewService creates a new Service.
func NewService(secured bool, client AuthenticatedClient) *Service {
	return &Service{secured: secured, client: client}
}

// IsNotSecured reports whether the session needs no authentication.
func (s *Service) IsNotSecured() bool {
	return !s.secured
}

// AuthenticatedClient returns the challenge/response client.
func (s *Service) AuthenticatedClient() AuthenticatedClient {
	return s.client
}

var _ Capability = (*Service)(nil)
