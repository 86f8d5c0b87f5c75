package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anicoll/foxess-integration/internal/pkg/contxt"
	"github.com/anicoll/foxess-integration/internal/pkg/foxess"
	"github.com/anicoll/foxess-integration/internal/pkg/model"
	"github.com/anicoll/foxess-integration/internal/pkg/publisher"
	"go.uber.org/zap"
)

type foxessClient interface {
	GetData(ctx context.Context) (*model.Snapshot, error)
}

// Coordinator runs the poll loop and owns the latest snapshot. Single
// writer (the loop), many readers (entities, HTTP handlers). The snapshot
// is replaced wholesale on every successful refresh; a failed refresh keeps
// the previous one.
type Coordinator struct {
	client   foxessClient
	interval time.Duration
	logger   *zap.Logger
	errChan  chan error

	mu          sync.RWMutex
	data        *model.Snapshot
	lastSuccess bool

	registered bool
	refreshCh  chan struct{}
}

func New(client foxessClient, interval time.Duration, errChan chan error) *Coordinator {
	return &Coordinator{
		client:    client,
		interval:  interval,
		logger:    zap.L(), // returns the global logger.
		errChan:   errChan,
		refreshCh: make(chan struct{}, 1),
	}
}

// Data returns the most recent successful snapshot, nil before the first
// refresh completes.
func (c *Coordinator) Data() *model.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

func (c *Coordinator) LastUpdateSuccess() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSuccess
}

// RequestRefresh schedules an out-of-band refresh, used after a write-back
// so entities converge faster than the poll interval. Non-blocking; a
// pending request is enough.
func (c *Coordinator) RequestRefresh() {
	select {
	case c.refreshCh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. The first refresh happens immediately.
// Authentication errors are terminal; everything else is reported on the
// error channel and retried next tick.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.refresh(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("coordinator stopping")
			return ctx.Err()
		case <-ticker.C:
		case <-c.refreshCh:
		}
		if err := c.refresh(ctx); err != nil {
			return err
		}
	}
}

func (c *Coordinator) refresh(ctx context.Context) error {
	snapshot, err := c.client.GetData(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastSuccess = false
		c.mu.Unlock()
		if errors.Is(err, foxess.ErrAuthentication) {
			c.logger.Error("authentication failed, not retrying", zap.Error(err))
			return err
		}
		c.logger.Error("refresh failed", zap.Error(err))
		c.errChan <- err
		return nil
	}

	c.mu.Lock()
	c.data = snapshot
	c.lastSuccess = true
	c.mu.Unlock()

	device := DeviceFromSnapshot(snapshot)
	if !c.registered {
		if err := publisher.RegisterDevice(device); err != nil {
			c.errChan <- err
		} else {
			c.registered = true
		}
	}

	statuses := map[model.Device][]model.DeviceStatus{
		*device: StatusesFromSnapshot(snapshot),
	}
	if err := publisher.PublishData(contxt.NewContext(time.Second*5), statuses); err != nil {
		c.errChan <- err
	}
	return nil
}
