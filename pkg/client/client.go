package client

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// Implementations may refresh credentials under the hood; returning an empty
// token sends the request unauthenticated and lets the backend answer 401.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// Client represents an agentdeck API client
type Client struct {
	// Common client properties
	baseURL     string
	tokenSource TokenSource
	httpClient  *http.Client

	// Service endpoints
	Deployments *DeploymentsService
	Auth        *AuthService
	Billing     *BillingService
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// WithTokenSource sets the bearer token source for the client
func WithTokenSource(ts TokenSource) ClientOption {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

// WithHTTPClient sets the HTTP client for the API client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithInsecureSkipVerify() ClientOption {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{
				Timeout: 30 * time.Second,
			}
		}

		if c.httpClient.Transport == nil {
			transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:errcheck
			transport.TLSClientConfig = &tls.Config{
				//nolint:gosec
				InsecureSkipVerify: true,
			}
			c.httpClient.Transport = transport

			return
		}

		if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
			if transport.TLSClientConfig == nil {
				transport.TLSClientConfig = &tls.Config{} //nolint:gosec
			}
			//nolint:gosec
			transport.TLSClientConfig.InsecureSkipVerify = true
		}
	}
}

// WithTimeout sets the timeout for the default HTTP client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{
				Timeout: timeout,
			}
		} else {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new agentdeck API client
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	// Apply options
	for _, option := range options {
		option(client)
	}

	// Initialize services
	client.Deployments = NewDeploymentsService(client)
	client.Auth = NewAuthService(client)
	client.Billing = NewBillingService(client)

	return client
}

// do performs an HTTP request using the client's HTTP client
func (c *Client) do(req *http.Request) (*http.Response, error) {
	// Attach bearer token when a source is configured. A source error is
	// treated as "no token": the backend decides with a 401.
	if c.tokenSource != nil {
		if token, err := c.tokenSource.Token(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	req.Header.Set("X-Request-ID", uuid.NewString())

	return c.httpClient.Do(req)
}
