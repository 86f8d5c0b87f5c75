package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/anicoll/foxess-integration/cmd"
)

func main() {
	app := &cli.App{
		Name:   "foxess-integration",
		Usage:  "cloud polling and control bridge for FoxESS inverters",
		Action: cmd.FoxessCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "foxess-api-key",
				EnvVars:  []string{"FOXESS_API_KEY"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "foxess-device-sn",
				EnvVars:  []string{"FOXESS_DEVICE_SN"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "foxess-base-url",
				EnvVars: []string{"FOXESS_BASE_URL"},
				Value:   "https://www.foxesscloud.com",
			},
			&cli.StringFlag{
				Name:    "mqtt-host",
				EnvVars: []string{"MQTT_HOST"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-user",
				EnvVars: []string{"MQTT_USER"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-pass",
				EnvVars: []string{"MQTT_PASS"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:     "database-url",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "migrations-folder",
				EnvVars: []string{"MIGRATIONS_FOLDER"},
				Value:   "",
			},
			&cli.DurationFlag{
				Name:    "poll-interval",
				EnvVars: []string{"POLL_INTERVAL"},
				Value:   time.Hour,
			},
			&cli.StringFlag{
				Name:    "api-password",
				EnvVars: []string{"API_PASSWORD"},
				Value:   "",
			},
			&cli.IntFlag{
				Name:    "soc-floor",
				EnvVars: []string{"SOC_FLOOR"},
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "INFO",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
