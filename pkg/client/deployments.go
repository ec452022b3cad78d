package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

// DeploymentsService handles communication with the deployment related endpoints
type DeploymentsService struct {
	client   *Client
	resource *resourceService
}

// NewDeploymentsService creates a new deployments service
func NewDeploymentsService(client *Client) *DeploymentsService {
	return &DeploymentsService{
		client:   client,
		resource: newResourceService(client, "deployments", "deployment"),
	}
}

// ListOptions defines common options for listing deployments
type ListOptions struct {
	Status v1.DeploymentStatus
	Region string
}

// List lists all deployments owned by the authenticated user
func (s *DeploymentsService) List(ctx context.Context, opts ListOptions) ([]v1.Deployment, error) {
	params := url.Values{}
	if opts.Status != "" {
		params.Add("status", string(opts.Status))
	}

	if opts.Region != "" {
		params.Add("region", opts.Region)
	}

	var deployments []v1.Deployment
	if err := s.resource.list(ctx, params, &deployments); err != nil {
		return nil, err
	}

	return deployments, nil
}

// Get retrieves the full deployment record by id
func (s *DeploymentsService) Get(ctx context.Context, id string) (*v1.Deployment, error) {
	var deployment v1.Deployment
	if err := s.resource.get(ctx, id, &deployment); err != nil {
		return nil, err
	}

	return &deployment, nil
}

// CreateDeploymentRequest is the payload for creating a deployment.
type CreateDeploymentRequest struct {
	Name string             `json:"name"`
	Spec *v1.DeploymentSpec `json:"spec,omitempty"`
	// IdempotencyKey lets the backend dedupe retried creates.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// Create creates a new deployment
func (s *DeploymentsService) Create(ctx context.Context, req CreateDeploymentRequest) (*v1.Deployment, error) {
	var deployment v1.Deployment
	if err := s.resource.create(ctx, req, &deployment); err != nil {
		return nil, err
	}

	return &deployment, nil
}

// Update patches an existing deployment's spec
func (s *DeploymentsService) Update(ctx context.Context, id string, spec *v1.DeploymentSpec) (*v1.Deployment, error) {
	var deployment v1.Deployment
	if err := s.resource.update(ctx, id, map[string]interface{}{"spec": spec}, &deployment); err != nil {
		return nil, err
	}

	return &deployment, nil
}

// Delete removes a deployment
func (s *DeploymentsService) Delete(ctx context.Context, id string) error {
	return s.resource.delete(ctx, id)
}

// Start requests the backend to start a stopped deployment
func (s *DeploymentsService) Start(ctx context.Context, id string) error {
	return s.resource.action(ctx, id, "start", nil)
}

// Stop requests the backend to stop a running deployment
func (s *DeploymentsService) Stop(ctx context.Context, id string) error {
	return s.resource.action(ctx, id, "stop", nil)
}

// Restart requests the backend to restart a deployment in place
func (s *DeploymentsService) Restart(ctx context.Context, id string) error {
	return s.resource.action(ctx, id, "restart", nil)
}

// GetStatus fetches the current status snapshot for a deployment. This is the
// single operation the status poller depends on.
func (s *DeploymentsService) GetStatus(ctx context.Context, id string) (*v1.StatusSnapshot, error) {
	var snapshot v1.StatusSnapshot
	if err := s.resource.subresource(ctx, id, "status", &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// LogsOptions control the log window returned by Logs.
type LogsOptions struct {
	TailLines int
}

// Logs fetches the most recent log lines of a deployment
func (s *DeploymentsService) Logs(ctx context.Context, id string, opts LogsOptions) ([]string, error) {
	u := s.resource.baseURL + "/" + url.PathEscape(id) + "/logs"
	if opts.TailLines > 0 {
		params := url.Values{}
		params.Add("tail", strconv.Itoa(opts.TailLines))
		u = u + "?" + params.Encode()
	}

	var lines []string
	if err := s.resource.roundTrip(ctx, http.MethodGet, u, nil, &lines, http.StatusOK); err != nil {
		return nil, err
	}

	return lines, nil
}
