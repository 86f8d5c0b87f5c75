package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://www.foxesscloud.com", cfg.FoxessCfg.BaseURL)
	assert.Equal(t, time.Hour, cfg.FoxessCfg.PollInterval)
	assert.Equal(t, 10, cfg.ServerCfg.SocFloor)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestFromEnv_ReadsEnvironment(t *testing.T) {
	t.Setenv("FOXESS_API_KEY", "key-from-env")
	t.Setenv("FOXESS_DEVICE_SN", "SN-ENV")
	t.Setenv("FOXESS_BASE_URL", "http://localhost:9999")
	t.Setenv("POLL_INTERVAL", "15m")
	t.Setenv("MQTT_HOST", "tcp://broker:1883")
	t.Setenv("MQTT_USER", "mqtt-user")
	t.Setenv("MQTT_PASS", "mqtt-pass")
	t.Setenv("API_PASSWORD", "hunter2")
	t.Setenv("SOC_FLOOR", "20")
	t.Setenv("DATABASE_URL", "postgres://localhost/foxess")
	t.Setenv("MIGRATIONS_FOLDER", "/migrations")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "key-from-env", cfg.FoxessCfg.APIKey)
	assert.Equal(t, "SN-ENV", cfg.FoxessCfg.DeviceSN)
	assert.Equal(t, "http://localhost:9999", cfg.FoxessCfg.BaseURL)
	assert.Equal(t, 15*time.Minute, cfg.FoxessCfg.PollInterval)
	assert.Equal(t, "tcp://broker:1883", cfg.MqttCfg.Host)
	assert.Equal(t, "mqtt-user", cfg.MqttCfg.Username)
	assert.Equal(t, "mqtt-pass", cfg.MqttCfg.Password)
	assert.Equal(t, "hunter2", cfg.ServerCfg.Password)
	assert.Equal(t, 20, cfg.ServerCfg.SocFloor)
	assert.Equal(t, "postgres://localhost/foxess", cfg.DatabaseURL)
	assert.Equal(t, "/migrations", cfg.MigrationsFolder)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "often")
	_, err := FromEnv()
	assert.Error(t, err)
}
