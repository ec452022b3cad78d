package poller

import (
	"time"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

// Poll cadence per lifecycle phase. Provisioning phases poll fast because the
// user is actively waiting on them; error/stopped poll slower but still catch
// auto-recovery; healthy deployments only need an occasional check.
const (
	ActiveDelay  = time.Second
	SettledDelay = 5 * time.Second
	HealthyDelay = 30 * time.Second
)

// PollDelay maps the last known snapshot to the delay before the next status
// fetch. A nil snapshot (nothing fetched yet) polls at the fast cadence.
func PollDelay(snapshot *v1.StatusSnapshot) time.Duration {
	if snapshot == nil {
		return ActiveDelay
	}

	switch snapshot.Status {
	case v1.DeploymentStatusConfiguring,
		v1.DeploymentStatusProvisioning,
		v1.DeploymentStatusStarting,
		v1.DeploymentStatusRestarting:
		return ActiveDelay
	case v1.DeploymentStatusError, v1.DeploymentStatusStopped:
		return SettledDelay
	default:
		return HealthyDelay
	}
}
