package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/anicoll/foxess-integration/internal/pkg/database/migration"
	"github.com/anicoll/foxess-integration/internal/pkg/model"
)

func setupDatabase(t *testing.T) *Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("foxess"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.Migrate(dsn, "../../../migrations"))

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)

	db := NewDatabase(conn)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func record(slug, value string, ts time.Time) map[string]any {
	return map[string]any{
		"value":               value,
		"slug":                slug,
		"timestamp":           ts,
		"identifier":          "home_sn1",
		"unit_of_measurement": "kW",
	}
}

func TestDatabase_WriteAndRead(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, db.Write(ctx, []map[string]any{
		record("pv_power", "1.50", now.Add(-time.Hour)),
		record("pv_power", "2.00", now),
		record("battery_soc", "55.00", now),
	}))

	properties, err := db.GetProperties(ctx, "home_sn1", "pv_power", nil, nil)
	require.NoError(t, err)
	require.Len(t, properties, 2)
	// Newest first.
	assert.Equal(t, "2.00", properties[0].Value)
	assert.Equal(t, "1.50", properties[1].Value)
	assert.Equal(t, "kW", properties[0].Unit)

	latest, err := db.GetLatestProperties(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2) // one per slug
	values := map[string]string{}
	for _, p := range latest {
		values[p.Slug] = p.Value
	}
	assert.Equal(t, "2.00", values["pv_power"])
	assert.Equal(t, "55.00", values["battery_soc"])
}

func TestDatabase_Cleanup(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()

	require.NoError(t, db.Write(ctx, []map[string]any{
		record("pv_power", "1.00", time.Now().AddDate(0, 0, -30)),
		record("pv_power", "2.00", time.Now()),
	}))

	require.NoError(t, db.Cleanup(ctx))

	properties, err := db.GetProperties(ctx, "home_sn1", "pv_power",
		func() *time.Time { t := time.Now().AddDate(0, 0, -60); return &t }(),
		func() *time.Time { t := time.Now(); return &t }())
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "2.00", properties[0].Value)
}

func TestDatabase_RegisterDeviceUpsert(t *testing.T) {
	db := setupDatabase(t)

	device := &model.Device{
		ID:           "home_sn1",
		Model:        "H1-5.0-E",
		SerialNumber: "SN1",
		Name:         "Home",
		HasBattery:   true,
	}
	require.NoError(t, db.RegisterDevice(device))

	device.Name = "Home Renamed"
	require.NoError(t, db.RegisterDevice(device)) // same id, no conflict error

	var name string
	err := db.conn.QueryRow(context.Background(),
		"SELECT station_name FROM device WHERE id = $1", device.ID).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Home Renamed", name)
}
