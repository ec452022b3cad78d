package v1

// DeploymentStatus is the lifecycle phase of a hosted agent deployment. It is
// the sole driver of client polling cadence.
type DeploymentStatus string

const (
	DeploymentStatusIdle         DeploymentStatus = "idle"
	DeploymentStatusConfiguring  DeploymentStatus = "configuring"
	DeploymentStatusProvisioning DeploymentStatus = "provisioning"
	DeploymentStatusStarting     DeploymentStatus = "starting"
	DeploymentStatusHealthy      DeploymentStatus = "healthy"
	DeploymentStatusStopped      DeploymentStatus = "stopped"
	DeploymentStatusError        DeploymentStatus = "error"
	DeploymentStatusRestarting   DeploymentStatus = "restarting"
)

// Deploying reports whether the status is one of the active provisioning
// phases the user is waiting on.
func (s DeploymentStatus) Deploying() bool {
	switch s {
	case DeploymentStatusConfiguring, DeploymentStatusProvisioning,
		DeploymentStatusStarting, DeploymentStatusRestarting:
		return true
	default:
		return false
	}
}

// Settled reports whether the deployment reached a terminal-ish phase that no
// longer changes without user action or backend recovery.
func (s DeploymentStatus) Settled() bool {
	return s == DeploymentStatusStopped || s == DeploymentStatusError
}

// StatusSnapshot is the result of a single status query for one deployment.
// A snapshot is immutable once returned; a new snapshot replaces the previous
// one, no history is retained.
type StatusSnapshot struct {
	ID               string           `json:"id"`
	Status           DeploymentStatus `json:"status"`
	ProvisioningStep string           `json:"provisioning_step,omitempty"`
	ErrorMessage     string           `json:"error_message,omitempty"`
	URL              string           `json:"url,omitempty"`
}

type DeploymentResources struct {
	CPU    float64 `json:"cpu,omitempty"`
	Memory float64 `json:"memory,omitempty"`
	GPU    float64 `json:"gpu,omitempty"`
}

type DeploymentSpec struct {
	AgentTemplate string               `json:"agent_template,omitempty"`
	Model         string               `json:"model,omitempty"`
	Region        string               `json:"region,omitempty"`
	// Replicas is a pointer so a patch can distinguish "leave unchanged"
	// from an explicit scale to zero.
	Replicas      *int                 `json:"replicas,omitempty"`
	Resources     *DeploymentResources `json:"resources,omitempty"`
	Variables     map[string]string    `json:"variables,omitempty"`
}

type DeploymentState struct {
	Status             DeploymentStatus `json:"status,omitempty"`
	ProvisioningStep   string           `json:"provisioning_step,omitempty"`
	ServiceURL         string           `json:"service_url,omitempty"`
	LastTransitionTime string           `json:"last_transition_time,omitempty"`
	ErrorMessage       string           `json:"error_message,omitempty"`
}

// Deployment is the full record of a hosted agent deployment as returned by
// the backend.
type Deployment struct {
	ID         string           `json:"id,omitempty"`
	Name       string           `json:"name"`
	CreatedAt  string           `json:"created_at,omitempty"`
	UpdatedAt  string           `json:"updated_at,omitempty"`
	Spec       *DeploymentSpec  `json:"spec,omitempty"`
	State      *DeploymentState `json:"state,omitempty"`
}

// Snapshot projects the deployment record into the status payload shape used
// by the polling endpoint.
func (d *Deployment) Snapshot() *StatusSnapshot {
	if d.State == nil {
		return &StatusSnapshot{ID: d.ID}
	}

	return &StatusSnapshot{
		ID:               d.ID,
		Status:           d.State.Status,
		ProvisioningStep: d.State.ProvisioningStep,
		ErrorMessage:     d.State.ErrorMessage,
		URL:              d.State.ServiceURL,
	}
}
