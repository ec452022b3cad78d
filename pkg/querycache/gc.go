package querycache

import (
	"context"
	"time"

	gocron "github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultSweepInterval is how often the retention sweep runs when none is
// given.
const DefaultSweepInterval = time.Minute

// StartGC runs the retention sweep on a schedule until ctx is cancelled.
func (c *Cache) StartGC(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrapf(err, "failed to init cache gc scheduler")
	}

	_, err = s.NewJob(gocron.DurationJob(interval), gocron.NewTask(func() {
		evicted := c.sweep()
		if evicted > 0 {
			klog.V(4).Infof("query cache sweep evicted %d entries", evicted)
		}
	}), gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return errors.Wrapf(err, "failed to add cache sweep job")
	}

	s.Start()

	go func() {
		<-ctx.Done()

		if err := s.Shutdown(); err != nil {
			klog.Errorf("Failed to shutdown cache gc scheduler: %v", err)
		}
	}()

	return nil
}
