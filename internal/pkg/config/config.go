package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	FoxessCfg *FoxessConfig
	MqttCfg   *MqttConfig
	ServerCfg *ServerConfig

	DatabaseURL      string `env:"DATABASE_URL"`
	MigrationsFolder string `env:"MIGRATIONS_FOLDER"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"INFO"`
}

type FoxessConfig struct {
	APIKey       string        `env:"FOXESS_API_KEY"`
	DeviceSN     string        `env:"FOXESS_DEVICE_SN"`
	BaseURL      string        `env:"FOXESS_BASE_URL" envDefault:"https://www.foxesscloud.com"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"1h"`
}

type MqttConfig struct {
	Host     string `env:"MQTT_HOST"`
	Username string `env:"MQTT_USER"`
	Password string `env:"MQTT_PASS"`
}

type ServerConfig struct {
	Password string `env:"API_PASSWORD"`
	SocFloor int    `env:"SOC_FLOOR" envDefault:"10"`
}

// FromEnv builds a Config purely from environment variables. CLI flags take
// precedence in cmd; this covers container deployments without flags.
func FromEnv() (*Config, error) {
	cfg := &Config{
		FoxessCfg: &FoxessConfig{},
		MqttCfg:   &MqttConfig{},
		ServerCfg: &ServerConfig{},
	}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg.FoxessCfg); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg.MqttCfg); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg.ServerCfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
