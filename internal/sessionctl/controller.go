// Package sessionctl couples stored credentials to API requests. It is the
// one place that reacts to authentication expiry: the API client only reports
// ErrAuthExpired, the controller refreshes or clears the session and lets the
// owning view decide what to show.
package sessionctl

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	v1 "github.com/agentdeck/agentdeck/api/v1"
	"github.com/agentdeck/agentdeck/pkg/client"
	"github.com/agentdeck/agentdeck/pkg/session"
)

// Refresher trades a refresh token for a new session.
// *client.AuthService satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*v1.Session, error)
}

// Options configure a Controller.
type Options struct {
	Store     session.Store
	Refresher Refresher

	// ExpirySkew defaults to session.DefaultExpirySkew.
	ExpirySkew time.Duration

	// OnLogout is invoked after credentials are cleared because they could
	// not be refreshed. The view transition lives here, never in the client.
	OnLogout func()
}

// Controller implements client.TokenSource backed by the session store.
type Controller struct {
	store     session.Store
	refresher Refresher
	skew      time.Duration
	onLogout  func()

	mu     sync.Mutex
	cached *v1.Session
}

var _ client.TokenSource = (*Controller)(nil)

func New(opts Options) *Controller {
	skew := opts.ExpirySkew
	if skew <= 0 {
		skew = session.DefaultExpirySkew
	}

	return &Controller{
		store:     opts.Store,
		refresher: opts.Refresher,
		skew:      skew,
		onLogout:  opts.OnLogout,
	}
}

// SetRefresher attaches the auth service after construction. The controller
// is the client's token source and the refresher needs that client, so the
// two are wired in two steps.
func (c *Controller) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refresher = r
}

// Token returns a usable access token, refreshing the session first when the
// stored token is expired. The mutex makes concurrent callers share a single
// refresh.
func (c *Controller) Token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.currentLocked()
	if err != nil {
		return "", err
	}

	if !session.Expired(current, c.skew) {
		return current.AccessToken, nil
	}

	refreshed, err := c.refreshLocked(context.Background(), current)
	if err != nil {
		return "", err
	}

	return refreshed.AccessToken, nil
}

// SetSession stores a freshly issued session, e.g. after login.
func (c *Controller) SetSession(s *v1.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(s); err != nil {
		return err
	}

	c.cached = s

	return nil
}

// Session returns the stored session.
func (c *Controller) Session() (*v1.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.currentLocked()
}

// HandleAuthError inspects an API error. On ErrAuthExpired it attempts one
// refresh; if that fails the credentials are cleared and OnLogout fires.
// It returns true when the caller may retry the request.
func (c *Controller) HandleAuthError(ctx context.Context, apiErr error) bool {
	if !errors.Is(apiErr, client.ErrAuthExpired) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.currentLocked()
	if err != nil {
		return false
	}

	if _, err := c.refreshLocked(ctx, current); err != nil {
		return false
	}

	return true
}

// Clear drops the stored credentials.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.clearLocked()
}

func (c *Controller) currentLocked() (*v1.Session, error) {
	if c.cached != nil {
		return c.cached, nil
	}

	current, err := c.store.Load()
	if err != nil {
		return nil, err
	}

	c.cached = current

	return current, nil
}

func (c *Controller) refreshLocked(ctx context.Context, current *v1.Session) (*v1.Session, error) {
	if current.RefreshToken == "" || c.refresher == nil {
		c.logoutLocked()
		return nil, session.ErrNoSession
	}

	refreshed, err := c.refresher.Refresh(ctx, current.RefreshToken)
	if err != nil {
		klog.V(4).Infof("session refresh failed: %v", err)
		c.logoutLocked()

		return nil, errors.Wrapf(err, "failed to refresh session")
	}

	if err := c.store.Save(refreshed); err != nil {
		return nil, errors.Wrapf(err, "failed to persist refreshed session")
	}

	c.cached = refreshed

	return refreshed, nil
}

func (c *Controller) logoutLocked() {
	if err := c.clearLocked(); err != nil {
		klog.Errorf("failed to clear session: %v", err)
	}

	if c.onLogout != nil {
		c.onLogout()
	}
}

func (c *Controller) clearLocked() error {
	c.cached = nil

	return c.store.Clear()
}
