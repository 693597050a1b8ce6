// v0
// internal/hal/hal.go
package hal

import (
	"fmt"
	"log/slog"

	"github.com/nrg-champ/envstation/internal/observability"
)

// FastReading carries one immediate pass over the analog channels. Values
// are raw converter codes, uninterpreted.
type FastReading struct {
	AirRaw   int
	LightRaw int
}

// Board is the hardware surface the station drives. Implementations must be
// safe for concurrent use: the sampling loop and the HTTP handlers both call
// SampleFast.
type Board interface {
	// SampleFast reads both analog channels immediately. It never fails; on
	// a bus error the implementation returns the last good codes.
	SampleFast() FastReading
	// ReadTempHumidity performs one slow-sensor measurement. A quantity is
	// NaN when its value could not be obtained; the two are independent.
	ReadTempHumidity() (tempC, humidityPct float64)
	SetLED(on bool)
	SetBuzzer(on bool)
	Close() error
}

// Config describes where the physical devices live and how the simulated
// board behaves.
type Config struct {
	Backend string // "auto", "periph" or "sim"

	I2CBus       string
	TempAddr     uint16
	ADCAddr      uint16
	AirChannel   int
	LightChannel int
	LEDPin       string
	BuzzerPin    string

	SimSeed     int64
	SimFailRate float64
}

// Open selects and opens a board. Backend "auto" tries the real hardware
// first and falls back to the simulated board so the station can run on a
// development host.
func Open(cfg Config, log *slog.Logger, met *observability.Metrics) (Board, error) {
	switch cfg.Backend {
	case "periph":
		return OpenPeriph(cfg, log, met)
	case "sim":
		log.Info("simulated board ready", "seed", cfg.SimSeed, "failRate", cfg.SimFailRate)
		return NewSim(cfg.SimSeed, cfg.SimFailRate), nil
	case "auto", "":
		b, err := OpenPeriph(cfg, log, met)
		if err != nil {
			log.Warn("hardware unavailable, using simulated board", "err", err)
			return NewSim(cfg.SimSeed, cfg.SimFailRate), nil
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown hal backend %q", cfg.Backend)
	}
}
