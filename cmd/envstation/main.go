// v3
// cmd/envstation/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nrg-champ/envstation/internal/actuator"
	"github.com/nrg-champ/envstation/internal/api"
	"github.com/nrg-champ/envstation/internal/circuitbreaker"
	"github.com/nrg-champ/envstation/internal/config"
	"github.com/nrg-champ/envstation/internal/hal"
	"github.com/nrg-champ/envstation/internal/logging"
	"github.com/nrg-champ/envstation/internal/netinfo"
	"github.com/nrg-champ/envstation/internal/observability"
	"github.com/nrg-champ/envstation/internal/sensor"
	"github.com/nrg-champ/envstation/internal/station"
	"github.com/nrg-champ/envstation/internal/telemetry"
)

func main() {
	godotenv.Load()

	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger, err := logging.New()
	if err != nil {
		bootstrap.Error("logger_init_failed", slog.Any("err", err))
		os.Exit(1)
	}

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("config error", "err", err)
		os.Exit(1)
	}

	logger.Info("station starting",
		"id", cfg.StationID,
		"bind", cfg.BindAddr,
		"backend", cfg.Backend,
		"light_threshold", cfg.LightThreshold,
		"air_threshold", cfg.AirThreshold,
	)

	met := observability.NewMetrics()

	board, err := hal.Open(hal.Config{
		Backend:      cfg.Backend,
		I2CBus:       cfg.I2CBus,
		TempAddr:     cfg.TempAddr,
		ADCAddr:      cfg.ADCAddr,
		AirChannel:   cfg.AirChannel,
		LightChannel: cfg.LightChannel,
		LEDPin:       cfg.LEDPin,
		BuzzerPin:    cfg.BuzzerPin,
		SimSeed:      cfg.SimSeed,
		SimFailRate:  cfg.SimFailRate,
	}, logger, met)
	if err != nil {
		logger.Error("board open failed", "err", err)
		os.Exit(1)
	}

	reader := sensor.NewReader(board, cfg.SlowInterval, logger)
	outputs := actuator.NewOutputs(board)
	th := actuator.Thresholds{Light: cfg.LightThreshold, Air: cfg.AirThreshold}

	st := station.New(reader, outputs, th, cfg.PollInterval, logger, met)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Sampling starts before the network is up; the cache warms while we wait.
	st.Start(ctx)

	if netinfo.WaitForOnline(ctx, cfg.NetWait, logger) {
		logger.Info("network ready", "ip", netinfo.LocalIP())
	}

	if cfg.MQTTBroker != "" {
		pub, merr := telemetry.NewMQTT(cfg.MQTTBroker, cfg.StationID, cfg.MQTTTopic, logger)
		if merr != nil {
			logger.Warn("mqtt unavailable, telemetry disabled", "broker", cfg.MQTTBroker, "err", merr)
		} else {
			telemetry.Start(ctx, st, pub, cfg.StationID, cfg.TelemetryRate, logger)
			logger.Info("mqtt telemetry started", "broker", cfg.MQTTBroker, "topic", cfg.MQTTTopic)
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		br := circuitbreaker.New("kafka-telemetry", circuitbreaker.Config{
			MaxFailures:  cfg.BreakerMaxFailures,
			ResetTimeout: cfg.BreakerReset,
		}, nil, logger)
		kp := telemetry.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, br, logger)
		telemetry.Start(ctx, st, kp, cfg.StationID, cfg.TelemetryRate, logger)
		logger.Info("kafka telemetry started",
			"brokers", strings.Join(cfg.KafkaBrokers, ","), "topic", cfg.KafkaTopic)
	}

	wifi := netinfo.Wireless{Iface: cfg.WifiIface}
	h := &api.Handlers{
		Log:         logger,
		Source:      st,
		Fast:        reader,
		Net:         wifi,
		Th:          th,
		RefreshHint: cfg.RefreshHint,
	}
	srv := api.NewServer(cfg.BindAddr, api.NewRouter(h, met), logger)
	srvErr := make(chan error, 1)
	go func() {
		if serr := srv.Start(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			logger.Error("http server error", "err", serr)
			srvErr <- serr
			cancel()
		}
	}()

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("run context ended")
	}

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	if serr := srv.Stop(shCtx); serr != nil {
		logger.Error("http shutdown error", "err", serr)
	}
	cancel()
	if cerr := board.Close(); cerr != nil {
		logger.Error("board close error", "err", cerr)
	}
	time.Sleep(300 * time.Millisecond)
	logger.Info("shutdown complete")

	select {
	case <-srvErr:
		os.Exit(1)
	default:
	}
}
