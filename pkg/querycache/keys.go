package querycache

// Query keys shared between the poller and the views reading deployment data.
// A status transition invalidates the deployment record and the deployments
// list so both re-fetch on their next read.

func DeploymentStatusKey(id string) string {
	return "deployments/" + id + "/status"
}

func DeploymentKey(id string) string {
	return "deployments/" + id
}

func DeploymentListKey() string {
	return "deployments"
}
