package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anicoll/foxess-integration/internal/pkg/config"
	"github.com/anicoll/foxess-integration/internal/pkg/coordinator"
	"github.com/anicoll/foxess-integration/internal/pkg/database"
	"github.com/anicoll/foxess-integration/internal/pkg/database/migration"
	"github.com/anicoll/foxess-integration/internal/pkg/foxess"
	"github.com/anicoll/foxess-integration/internal/pkg/logic"
	"github.com/anicoll/foxess-integration/internal/pkg/mqtt"
	"github.com/anicoll/foxess-integration/internal/pkg/publisher"
	"github.com/anicoll/foxess-integration/internal/pkg/server"
)

func FoxessCommand(ctx *cli.Context) error {
	// Environment first, flags on top. Covers container deployments that set
	// only env vars as well as flag-driven runs.
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	applyFlags(cfg, ctx)

	return run(ctx.Context, cfg)
}

func applyFlags(cfg *config.Config, ctx *cli.Context) {
	setString := func(target *string, name string) {
		if v := ctx.String(name); v != "" {
			*target = v
		}
	}
	setString(&cfg.FoxessCfg.APIKey, "foxess-api-key")
	setString(&cfg.FoxessCfg.DeviceSN, "foxess-device-sn")
	setString(&cfg.FoxessCfg.BaseURL, "foxess-base-url")
	setString(&cfg.MqttCfg.Host, "mqtt-host")
	setString(&cfg.MqttCfg.Username, "mqtt-user")
	setString(&cfg.MqttCfg.Password, "mqtt-pass")
	setString(&cfg.ServerCfg.Password, "api-password")
	setString(&cfg.DatabaseURL, "database-url")
	setString(&cfg.MigrationsFolder, "migrations-folder")
	setString(&cfg.LogLevel, "log-level")
	if ctx.IsSet("poll-interval") {
		cfg.FoxessCfg.PollInterval = ctx.Duration("poll-interval")
	}
	if ctx.IsSet("soc-floor") {
		cfg.ServerCfg.SocFloor = ctx.Int("soc-floor")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	errorChan := make(chan error, 1000)

	if cfg.MigrationsFolder != "" {
		if err := migration.Migrate(cfg.DatabaseURL, cfg.MigrationsFolder); err != nil {
			return err
		}
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	db := database.NewDatabase(conn)
	defer db.Close()

	if err := publisher.RegisterPublisher("postgres", db); err != nil {
		return err
	}

	foxessSvc := foxess.New(cfg.FoxessCfg, errorChan)

	return runServices(ctx, cfg, foxessSvc, db, errorChan, logger)
}

// runServices starts the poll loop, the control API, the MQTT bridge and the
// cron jobs, and blocks until the first of them fails or ctx is cancelled.
func runServices(ctx context.Context, cfg *config.Config, foxessSvc FoxessService, db *database.Database, errChan chan error, logger *zap.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)

	coord := coordinator.New(foxessSvc, cfg.FoxessCfg.PollInterval, errChan)

	eg.Go(func() error {
		return coord.Run(ctx)
	})

	if cfg.MqttCfg != nil && cfg.MqttCfg.Host != "" {
		opts := paho_mqtt.NewClientOptions().
			AddBroker(cfg.MqttCfg.Host).
			SetUsername(cfg.MqttCfg.Username).
			SetPassword(cfg.MqttCfg.Password).
			SetClientID("foxess-integration")
		mqttSvc := mqtt.New(paho_mqtt.NewClient(opts))
		if err := mqttSvc.Connect(); err != nil {
			return err
		}
		if err := publisher.RegisterPublisher("mqtt", mqttSvc); err != nil {
			return err
		}

		eg.Go(func() error {
			// Command topics carry the device serial, so wait for the first
			// successful poll before subscribing.
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}
				snapshot := coord.Data()
				if snapshot == nil {
					continue
				}
				device := coordinator.DeviceFromSnapshot(snapshot)
				return mqttSvc.SubscribeCommands(device, foxessSvc, coord)
			}
		})
	}

	if db != nil {
		eg.Go(func() error {
			return cronDbCleanup(db, errChan)
		})

		logicSvc := logic.NewLogicSvc(foxessSvc, db, coord, float64(cfg.ServerCfg.SocFloor))
		eg.Go(func() error {
			return cronSocGuard(logicSvc, errChan)
		})
	}

	if cfg.ServerCfg != nil && cfg.ServerCfg.Password != "" {
		eg.Go(func() error {
			srv := &http.Server{
				Handler:      server.New(foxessSvc, coord, cfg.ServerCfg.Password).Handler(),
				Addr:         "0.0.0.0:8000",
				WriteTimeout: 15 * time.Second,
				ReadTimeout:  15 * time.Second,
			}
			return srv.ListenAndServe()
		})
	}

	eg.Go(func() error {
		// handle any async errors from services
		for {
			select {
			case err := <-errChan:
				if errors.Is(err, errCron) {
					logger.Error("cron error", zap.Error(err))
					return err
				}
				logger.Error("service error", zap.Error(err))
			case <-ctx.Done():
				logger.Info("context done")
				return ctx.Err()
			}
		}
	})

	return eg.Wait()
}

func buildLogger(level string) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	var err error
	logCfg.Level, err = zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	return zap.Must(logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))), nil
}

var errCron = errors.New("cron error")

func cronDbCleanup(db *database.Database, errChan chan error) error {
	if err := db.Cleanup(context.Background()); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", func() {
		if err := db.Cleanup(context.Background()); err != nil {
			zap.L().Error("error cleaning up database", zap.Error(err))
			errChan <- errCron
			return
		}
		zap.L().Info("cleaned up old measurements")
	}); err != nil {
		return err
	}

	c.Run()
	return nil
}

type socGuard interface {
	GuardSocFloor(ctx context.Context) error
}

func cronSocGuard(guard socGuard, errChan chan error) error {
	c := cron.New()
	if _, err := c.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := guard.GuardSocFloor(ctx); err != nil {
			zap.L().Error("soc floor guard failed", zap.Error(err))
			errChan <- errCron
		}
	}); err != nil {
		return err
	}

	c.Run()
	return nil
}
