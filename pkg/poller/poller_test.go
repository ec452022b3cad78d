package poller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/agentdeck/agentdeck/api/v1"
	"github.com/agentdeck/agentdeck/pkg/poller/mocks"
	"github.com/agentdeck/agentdeck/pkg/querycache"
)

const testID = "dep-abc"

// transitionRecorder captures OnStatusChange invocations.
type transitionRecorder struct {
	statuses []v1.DeploymentStatus
}

func (r *transitionRecorder) record(status v1.DeploymentStatus, _ *v1.StatusSnapshot) {
	r.statuses = append(r.statuses, status)
}

func snapshot(status v1.DeploymentStatus) *v1.StatusSnapshot {
	return &v1.StatusSnapshot{ID: testID, Status: status}
}

// seedDependentKeys stores fresh values for the deployment record and list
// keys so invalidation is observable.
func seedDependentKeys(cache *querycache.Cache) {
	cache.Set(querycache.DeploymentKey(testID), &v1.Deployment{ID: testID})
	cache.Set(querycache.DeploymentListKey(), []v1.Deployment{{ID: testID}})
}

func TestStatusPoller_FirstFetchCountsAsTransition(t *testing.T) {
	fetcher := mocks.NewMockStatusFetcher(t)
	fetcher.On("GetStatus", mock.Anything, testID).Return(snapshot(v1.DeploymentStatusProvisioning), nil).Once()

	cache := querycache.New()
	seedDependentKeys(cache)

	recorder := &transitionRecorder{}
	p := New(fetcher, cache, testID, Options{Enabled: true, OnStatusChange: recorder.record})

	p.pollOnce(context.Background())

	require.Equal(t, []v1.DeploymentStatus{v1.DeploymentStatusProvisioning}, recorder.statuses)
	assert.True(t, cache.Stale(querycache.DeploymentKey(testID)))
	assert.True(t, cache.Stale(querycache.DeploymentListKey()))

	state := p.State()
	require.NotNil(t, state.Snapshot)
	assert.True(t, state.IsDeploying())
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
}

func TestStatusPoller_TransitionFiresOncePerChange(t *testing.T) {
	fetcher := mocks.NewMockStatusFetcher(t)
	fetcher.On("GetStatus", mock.Anything, testID).Return(snapshot(v1.DeploymentStatusProvisioning), nil).Once()
	fetcher.On("GetStatus", mock.Anything, testID).Return(snapshot(v1.DeploymentStatusHealthy), nil).Twice()

	cache := querycache.New()

	recorder := &transitionRecorder{}
	p := New(fetcher, cache, testID, Options{Enabled: true, OnStatusChange: recorder.record})

	ctx := context.Background()

	p.pollOnce(ctx)

	// Re-seed the dependent keys so the healthy transition's invalidation is
	// distinguishable from the first one.
	seedDependentKeys(cache)

	p.pollOnce(ctx)

	require.Equal(t, []v1.DeploymentStatus{
		v1.DeploymentStatusProvisioning,
		v1.DeploymentStatusHealthy,
	}, recorder.statuses)
	assert.True(t, cache.Stale(querycache.DeploymentKey(testID)))
	assert.True(t, cache.Stale(querycache.DeploymentListKey()))

	// Same status again: no callback, no fresh invalidation.
	seedDependentKeys(cache)

	p.pollOnce(ctx)

	assert.Len(t, recorder.statuses, 2)
	assert.False(t, cache.Stale(querycache.DeploymentKey(testID)))
	assert.False(t, cache.Stale(querycache.DeploymentListKey()))
	assert.True(t, p.State().IsHealthy())
}

func TestStatusPoller_DisabledNeverFetches(t *testing.T) {
	fetcher := mocks.NewMockStatusFetcher(t)

	p := New(fetcher, querycache.New(), testID, Options{Enabled: false})

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled poller did not return immediately")
	}

	fetcher.AssertNotCalled(t, "GetStatus", mock.Anything, mock.Anything)
}

func TestStatusPoller_EmptyIDNeverFetches(t *testing.T) {
	fetcher := mocks.NewMockStatusFetcher(t)

	p := New(fetcher, querycache.New(), "", Options{Enabled: true})
	p.Run(context.Background())

	fetcher.AssertNotCalled(t, "GetStatus", mock.Anything, mock.Anything)
}

func TestStatusPoller_FetchFailureKeepsSnapshot(t *testing.T) {
	fetcher := mocks.NewMockStatusFetcher(t)
	fetcher.On("GetStatus", mock.Anything, testID).Return(snapshot(v1.DeploymentStatusHealthy), nil).Once()
	fetcher.On("GetStatus", mock.Anything, testID).Return(nil, assert.AnError).Once()

	cache := querycache.New()

	p := New(fetcher, cache, testID, Options{Enabled: true})

	ctx := context.Background()

	p.pollOnce(ctx)
	p.pollOnce(ctx)

	// The cached snapshot survives the failed fetch.
	cached, ok := cache.Get(querycache.DeploymentStatusKey(testID))
	require.True(t, ok)
	assert.Equal(t, v1.DeploymentStatusHealthy, cached.(*v1.StatusSnapshot).Status)

	state := p.State()
	assert.Error(t, state.Err)
	require.NotNil(t, state.Snapshot)
	assert.True(t, state.IsHealthy())
}

func TestStatusPoller_FirstFetchFailure(t *testing.T) {
	fetcher := mocks.NewMockStatusFetcher(t)
	fetcher.On("GetStatus", mock.Anything, testID).Return(nil, assert.AnError).Once()

	p := New(fetcher, querycache.New(), testID, Options{Enabled: true})
	p.pollOnce(context.Background())

	state := p.State()
	assert.Error(t, state.Err)
	assert.Nil(t, state.Snapshot)
	assert.False(t, state.Loading)
	assert.False(t, state.IsHealthy())
	assert.False(t, state.IsDeploying())
	assert.False(t, state.IsStopped())
	assert.False(t, state.IsError())
}

func TestStatusPoller_RunStopsOnCancel(t *testing.T) {
	fetcher := mocks.NewMockStatusFetcher(t)
	fetcher.On("GetStatus", mock.Anything, testID).Return(snapshot(v1.DeploymentStatusHealthy), nil)

	ctx, cancel := context.WithCancel(context.Background())

	p := New(fetcher, querycache.New(), testID, Options{Enabled: true})

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// Let the first poll land, then cancel.
	require.Eventually(t, func() bool {
		return p.State().Snapshot != nil
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on context cancellation")
	}
}

func TestStatusPoller_FailureIsolatedPerID(t *testing.T) {
	cache := querycache.New()

	healthy := mocks.NewMockStatusFetcher(t)
	healthy.On("GetStatus", mock.Anything, "dep-ok").Return(&v1.StatusSnapshot{ID: "dep-ok", Status: v1.DeploymentStatusHealthy}, nil).Once()

	failing := mocks.NewMockStatusFetcher(t)
	failing.On("GetStatus", mock.Anything, "dep-bad").Return(nil, assert.AnError).Once()

	okPoller := New(healthy, cache, "dep-ok", Options{Enabled: true})
	badPoller := New(failing, cache, "dep-bad", Options{Enabled: true})

	ctx := context.Background()

	okPoller.pollOnce(ctx)
	badPoller.pollOnce(ctx)

	assert.NoError(t, okPoller.State().Err)
	assert.True(t, okPoller.State().IsHealthy())
	assert.Error(t, badPoller.State().Err)

	_, ok := cache.Get(querycache.DeploymentStatusKey("dep-bad"))
	assert.False(t, ok)
}
