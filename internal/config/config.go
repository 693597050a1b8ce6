// v1
// internal/config/config.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	StationID string
	BindAddr  string

	// Raw-code trip points. Lower light codes mean darker; higher air codes
	// mean poorer air.
	LightThreshold int
	AirThreshold   int

	PollInterval time.Duration
	SlowInterval time.Duration
	RefreshHint  time.Duration
	NetWait      time.Duration

	Backend      string
	I2CBus       string
	TempAddr     uint16
	ADCAddr      uint16
	AirChannel   int
	LightChannel int
	LEDPin       string
	BuzzerPin    string
	SimSeed      int64
	SimFailRate  float64

	WifiIface string

	MQTTBroker string
	MQTTTopic  string

	KafkaBrokers []string
	KafkaTopic   string

	TelemetryRate time.Duration

	BreakerMaxFailures int
	BreakerReset       time.Duration
}

func loadProps(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(b), "\n")
	m := map[string]string{}
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") || strings.HasPrefix(ln, "//") {
			continue
		}
		kv := strings.SplitN(ln, "=", 2)
		if len(kv) != 2 {
			continue
		}
		m[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return m, nil
}

func gets(m map[string]string, key, def string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return def
}

func geti(m map[string]string, key string, def int, log *slog.Logger) int {
	if v, ok := m[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn("invalid integer in properties, using default", "key", key, "val", v, "default", def)
	}
	return def
}

func getf(m map[string]string, key string, def float64, log *slog.Logger) float64 {
	if v, ok := m[key]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn("invalid float in properties, using default", "key", key, "val", v, "default", def)
	}
	return def
}

func getd(m map[string]string, key string, def time.Duration, log *slog.Logger) time.Duration {
	if v, ok := m[key]; ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn("invalid duration in properties, using default", "key", key, "val", v, "default", def)
	}
	return def
}

// getu16 accepts decimal or 0x-prefixed hex, the usual spelling for bus
// addresses.
func getu16(m map[string]string, key string, def uint16, log *slog.Logger) uint16 {
	if v, ok := m[key]; ok {
		if n, err := strconv.ParseUint(v, 0, 16); err == nil {
			return uint16(n)
		}
		log.Warn("invalid address in properties, using default", "key", key, "val", v, "default", def)
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Load assembles the station configuration. Device tunables come from an
// optional STATION_PROPERTIES key=value file; infrastructure knobs come from
// the environment. Malformed values fall back to their defaults with a
// warning, so a bad file never stops the station.
func Load(log *slog.Logger) (Config, error) {
	props := map[string]string{}
	if path := os.Getenv("STATION_PROPERTIES"); path != "" {
		var err error
		props, err = loadProps(path)
		if err != nil {
			return Config{}, err
		}
		log.Info("properties loaded", "path", path, "keys", len(props))
	}

	cfg := Config{
		LightThreshold: geti(props, "light_threshold", 1500, log),
		AirThreshold:   geti(props, "air_threshold", 1800, log),

		PollInterval: getd(props, "poll", 50*time.Millisecond, log),
		SlowInterval: getd(props, "slow_interval", 2*time.Second, log),
		RefreshHint:  getd(props, "refresh_hint", 2*time.Second, log),

		Backend:      gets(props, "hal.backend", "auto"),
		I2CBus:       gets(props, "i2c.bus", "/dev/i2c-1"),
		TempAddr:     getu16(props, "i2c.tempAddr", 0x44, log),
		ADCAddr:      getu16(props, "i2c.adcAddr", 0x48, log),
		AirChannel:   geti(props, "adc.airChannel", 0, log),
		LightChannel: geti(props, "adc.lightChannel", 1, log),
		LEDPin:       gets(props, "pin.led", "GPIO26"),
		BuzzerPin:    gets(props, "pin.buzzer", "GPIO27"),
		SimSeed:      int64(geti(props, "sim.seed", 1, log)),
		SimFailRate:  getf(props, "sim.failRate", 0.02, log),

		TelemetryRate: getd(props, "telemetry_rate", 2*time.Second, log),

		BreakerMaxFailures: geti(props, "circuit.maxFailures", 5, log),
		BreakerReset:       getd(props, "circuit.reset", 30*time.Second, log),
	}

	cfg.StationID = os.Getenv("STATION_ID")
	if cfg.StationID == "" {
		cfg.StationID = "station-" + uuid.NewString()[:8]
	}
	cfg.BindAddr = os.Getenv("STATION_BIND_ADDR")
	if cfg.BindAddr == "" {
		cfg.BindAddr = ":8080"
	}
	cfg.WifiIface = os.Getenv("WIFI_IFACE")
	if cfg.WifiIface == "" {
		cfg.WifiIface = "wlan0"
	}

	cfg.NetWait = 20 * time.Second
	if s := os.Getenv("STATION_NET_WAIT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.NetWait = d
		} else {
			log.Warn("invalid STATION_NET_WAIT, using default", "val", s, "default", cfg.NetWait)
		}
	}

	cfg.MQTTBroker = os.Getenv("MQTT_BROKER")
	cfg.MQTTTopic = os.Getenv("MQTT_TOPIC")
	if cfg.MQTTTopic == "" {
		cfg.MQTTTopic = "sensors/readings"
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitCSV(brokers)
	}
	cfg.KafkaTopic = os.Getenv("TOPIC_READINGS")
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "station.readings"
	}

	return cfg, nil
}
