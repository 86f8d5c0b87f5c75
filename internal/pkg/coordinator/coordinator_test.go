package coordinator

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/anicoll/foxess-integration/internal/pkg/foxess"
	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

type mockClient struct {
	GetDataFunc func(ctx context.Context) (*model.Snapshot, error)
}

func (m *mockClient) GetData(ctx context.Context) (*model.Snapshot, error) {
	return m.GetDataFunc(ctx)
}

func testSnapshot(sn string) *model.Snapshot {
	return &model.Snapshot{
		DeviceInfo: model.DeviceDetail{
			StationName: "Home",
			DeviceSN:    sn,
			DeviceType:  "H1-5.0-E",
			HasBattery:  true,
		},
		RealTime: model.RealTimeData{BatterySoc: 50},
		WorkMode: model.WorkModeSelfUse,
	}
}

func newTestCoordinator(t *testing.T, client foxessClient, interval time.Duration) (*Coordinator, chan error) {
	t.Helper()
	errChan := make(chan error, 10)
	c := New(client, interval, errChan)
	c.logger = zaptest.NewLogger(t)
	return c, errChan
}

func TestCoordinator_FirstRefreshStoresSnapshot(t *testing.T) {
	client := &mockClient{
		GetDataFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return testSnapshot("SN1"), nil
		},
	}
	c, _ := newTestCoordinator(t, client, time.Hour)

	assert.Nil(t, c.Data())
	assert.False(t, c.LastUpdateSuccess())

	require.NoError(t, c.refresh(context.Background()))

	require.NotNil(t, c.Data())
	assert.Equal(t, "SN1", c.Data().DeviceInfo.DeviceSN)
	assert.True(t, c.LastUpdateSuccess())
}

func TestCoordinator_FailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	calls := 0
	client := &mockClient{
		GetDataFunc: func(ctx context.Context) (*model.Snapshot, error) {
			calls++
			if calls == 1 {
				return testSnapshot("SN1"), nil
			}
			return nil, fmt.Errorf("%w: timeout", foxess.ErrCommunication)
		},
	}
	c, errChan := newTestCoordinator(t, client, time.Hour)

	require.NoError(t, c.refresh(context.Background()))
	require.NoError(t, c.refresh(context.Background()))

	// The stale snapshot stays readable, only the success flag drops.
	require.NotNil(t, c.Data())
	assert.Equal(t, "SN1", c.Data().DeviceInfo.DeviceSN)
	assert.False(t, c.LastUpdateSuccess())

	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, foxess.ErrCommunication)
	default:
		t.Fatal("expected communication error on the error channel")
	}
}

func TestCoordinator_AuthenticationErrorIsTerminal(t *testing.T) {
	client := &mockClient{
		GetDataFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return nil, fmt.Errorf("%w: bad key", foxess.ErrAuthentication)
		},
	}
	c, _ := newTestCoordinator(t, client, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.Run(ctx)
	assert.ErrorIs(t, err, foxess.ErrAuthentication)
}

func TestCoordinator_RequestRefreshTriggersPoll(t *testing.T) {
	var calls atomic.Int32
	client := &mockClient{
		GetDataFunc: func(ctx context.Context) (*model.Snapshot, error) {
			calls.Add(1)
			return testSnapshot("SN1"), nil
		},
	}
	c, _ := newTestCoordinator(t, client, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	c.RequestRefresh()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("coordinator did not stop")
	}
}

func TestCoordinator_RequestRefreshNeverBlocks(t *testing.T) {
	c, _ := newTestCoordinator(t, &mockClient{}, time.Hour)
	c.logger = zap.NewNop()
	for range 10 {
		c.RequestRefresh() // no reader on the channel
	}
}
