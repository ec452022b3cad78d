// Package poller continuously refreshes a single deployment's status at a
// cadence derived from its lifecycle phase and announces status transitions
// to the views caching deployment data.
package poller

import (
	"context"
	"sync"
	"time"

	"k8s.io/klog/v2"

	v1 "github.com/agentdeck/agentdeck/api/v1"
	"github.com/agentdeck/agentdeck/pkg/querycache"
)

// StatusFetcher is the one API operation the poller depends on.
// *client.DeploymentsService satisfies it.
type StatusFetcher interface {
	GetStatus(ctx context.Context, id string) (*v1.StatusSnapshot, error)
}

// Options configure a StatusPoller.
type Options struct {
	// Enabled gates all fetching. When false no fetch is issued and no timer
	// runs for the lifetime of the poller.
	Enabled bool

	// OnStatusChange is invoked exactly once per observed status transition,
	// including the first observed status.
	OnStatusChange func(status v1.DeploymentStatus, snapshot *v1.StatusSnapshot)
}

// State is the poller's externally visible state.
type State struct {
	// Snapshot is the latest successfully fetched snapshot, nil before the
	// first success. A failed fetch never clears it.
	Snapshot *v1.StatusSnapshot

	// Loading is true until the first fetch settles.
	Loading bool

	// Err holds the most recent fetch error; nil after any success.
	Err error
}

func (s State) IsDeploying() bool {
	return s.Snapshot != nil && s.Snapshot.Status.Deploying()
}

func (s State) IsHealthy() bool {
	return s.Snapshot != nil && s.Snapshot.Status == v1.DeploymentStatusHealthy
}

func (s State) IsError() bool {
	return s.Snapshot != nil && s.Snapshot.Status == v1.DeploymentStatusError
}

func (s State) IsStopped() bool {
	return s.Snapshot != nil && s.Snapshot.Status == v1.DeploymentStatusStopped
}

// StatusPoller polls one deployment id. Fetches are sequential: the next poll
// is scheduled only after the previous fetch settled, so at most one fetch is
// in flight per id.
type StatusPoller struct {
	fetcher StatusFetcher
	cache   *querycache.Cache
	id      string
	opts    Options

	mu    sync.RWMutex
	state State
}

// New creates a poller for the given deployment id.
func New(fetcher StatusFetcher, cache *querycache.Cache, id string, opts Options) *StatusPoller {
	return &StatusPoller{
		fetcher: fetcher,
		cache:   cache,
		id:      id,
		opts:    opts,
		state:   State{Loading: true},
	}
}

// State returns a copy of the current poller state.
func (p *StatusPoller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state
}

// Run polls until ctx is cancelled. When the poller is disabled or has no id
// it returns immediately without issuing a single fetch.
func (p *StatusPoller) Run(ctx context.Context) {
	if !p.opts.Enabled || p.id == "" {
		return
	}

	for {
		p.pollOnce(ctx)

		if ctx.Err() != nil {
			return
		}

		timer := time.NewTimer(PollDelay(p.State().Snapshot))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// pollOnce issues one status fetch and folds the result into the cache and
// the poller state.
func (p *StatusPoller) pollOnce(ctx context.Context) {
	snapshot, err := p.fetcher.GetStatus(ctx, p.id)
	if err != nil {
		if ctx.Err() != nil {
			return
		}

		klog.V(4).Infof("status fetch for deployment %s failed: %v", p.id, err)

		// The cached snapshot stays untouched; only the error surfaces.
		p.mu.Lock()
		p.state.Loading = false
		p.state.Err = err
		p.mu.Unlock()

		return
	}

	statusKey := querycache.DeploymentStatusKey(p.id)

	// Read the previous snapshot before the new one overwrites it, so
	// transition detection never races with the write.
	var (
		prevStatus v1.DeploymentStatus
		havePrev   bool
	)

	if prev, ok := p.cache.Get(statusKey); ok {
		if prevSnapshot, ok := prev.(*v1.StatusSnapshot); ok {
			prevStatus = prevSnapshot.Status
			havePrev = true
		}
	}

	p.cache.Set(statusKey, snapshot)

	p.mu.Lock()
	p.state = State{Snapshot: snapshot}
	p.mu.Unlock()

	if havePrev && prevStatus == snapshot.Status {
		return
	}

	klog.V(4).Infof("deployment %s status transition %q -> %q", p.id, prevStatus, snapshot.Status)

	if p.opts.OnStatusChange != nil {
		p.opts.OnStatusChange(snapshot.Status, snapshot)
	}

	// Dependent views re-fetch on their next read.
	p.cache.Invalidate(querycache.DeploymentKey(p.id))
	p.cache.Invalidate(querycache.DeploymentListKey())
}
