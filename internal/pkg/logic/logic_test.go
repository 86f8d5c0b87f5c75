package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

type mockCommands struct {
	modes []model.WorkMode
	err   error
}

func (m *mockCommands) SetWorkMode(_ context.Context, mode model.WorkMode) error {
	m.modes = append(m.modes, mode)
	return m.err
}

type mockDatabase struct {
	properties model.Properties
	err        error
}

func (m *mockDatabase) GetLatestProperties(context.Context) (model.Properties, error) {
	return m.properties, m.err
}

type mockSnapshotter struct {
	snapshot  *model.Snapshot
	refreshes int
}

func (m *mockSnapshotter) Data() *model.Snapshot { return m.snapshot }
func (m *mockSnapshotter) RequestRefresh()       { m.refreshes++ }

func socProperty(value string) model.Property {
	return model.Property{
		TimeStamp: time.Now(),
		Unit:      "%",
		Value:     value,
		Slug:      "battery_soc",
	}
}

func dischargingSnapshot() *model.Snapshot {
	return &model.Snapshot{
		DeviceInfo: model.DeviceDetail{DeviceSN: "SN1", HasBattery: true},
		WorkMode:   model.WorkModeForceDischarge,
	}
}

func TestGuardSocFloor_SwitchesToSelfUse(t *testing.T) {
	t.Parallel()
	inverter := &mockCommands{}
	coordinator := &mockSnapshotter{snapshot: dischargingSnapshot()}
	db := &mockDatabase{properties: model.Properties{socProperty("8.00")}}

	l := NewLogicSvc(inverter, db, coordinator, 10)
	require.NoError(t, l.GuardSocFloor(context.Background()))

	require.Len(t, inverter.modes, 1)
	assert.Equal(t, model.WorkModeSelfUse, inverter.modes[0])
	assert.Equal(t, 1, coordinator.refreshes)
}

func TestGuardSocFloor_AboveFloorDoesNothing(t *testing.T) {
	t.Parallel()
	inverter := &mockCommands{}
	coordinator := &mockSnapshotter{snapshot: dischargingSnapshot()}
	db := &mockDatabase{properties: model.Properties{socProperty("55.00")}}

	l := NewLogicSvc(inverter, db, coordinator, 10)
	require.NoError(t, l.GuardSocFloor(context.Background()))

	assert.Empty(t, inverter.modes)
	assert.Zero(t, coordinator.refreshes)
}

func TestGuardSocFloor_OnlyActsOnForceDischarge(t *testing.T) {
	t.Parallel()
	snapshot := dischargingSnapshot()
	snapshot.WorkMode = model.WorkModeSelfUse
	inverter := &mockCommands{}
	db := &mockDatabase{properties: model.Properties{socProperty("5.00")}}

	l := NewLogicSvc(inverter, db, &mockSnapshotter{snapshot: snapshot}, 10)
	require.NoError(t, l.GuardSocFloor(context.Background()))
	assert.Empty(t, inverter.modes)
}

func TestGuardSocFloor_NoSnapshotOrBattery(t *testing.T) {
	t.Parallel()
	inverter := &mockCommands{}
	db := &mockDatabase{properties: model.Properties{socProperty("5.00")}}

	l := NewLogicSvc(inverter, db, &mockSnapshotter{}, 10)
	require.NoError(t, l.GuardSocFloor(context.Background()))
	assert.Empty(t, inverter.modes)

	snapshot := dischargingSnapshot()
	snapshot.DeviceInfo.HasBattery = false
	l = NewLogicSvc(inverter, db, &mockSnapshotter{snapshot: snapshot}, 10)
	require.NoError(t, l.GuardSocFloor(context.Background()))
	assert.Empty(t, inverter.modes)
}

func TestGuardSocFloor_NoSocMeasurement(t *testing.T) {
	t.Parallel()
	inverter := &mockCommands{}
	db := &mockDatabase{properties: model.Properties{}}

	l := NewLogicSvc(inverter, db, &mockSnapshotter{snapshot: dischargingSnapshot()}, 10)
	require.NoError(t, l.GuardSocFloor(context.Background()))
	assert.Empty(t, inverter.modes)
}

func TestGuardSocFloor_DatabaseError(t *testing.T) {
	t.Parallel()
	dbErr := errors.New("connection refused")
	l := NewLogicSvc(&mockCommands{}, &mockDatabase{err: dbErr}, &mockSnapshotter{snapshot: dischargingSnapshot()}, 10)
	assert.ErrorIs(t, l.GuardSocFloor(context.Background()), dbErr)
}
