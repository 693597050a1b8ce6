// v1
// internal/hal/periph.go
package hal

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/nrg-champ/envstation/internal/observability"
)

// PeriphBoard talks to the real sensors over one shared I2C bus plus two
// GPIO lines. All bus transactions are serialized behind mu because the
// sampling loop and the HTTP handlers sample concurrently.
type PeriphBoard struct {
	log *slog.Logger
	met *observability.Metrics

	bus i2c.BusCloser
	sht *sht3x
	adc *ads1115

	led    gpio.PinOut
	buzzer gpio.PinOut

	airCh   int
	lightCh int

	mu        sync.Mutex
	lastAir   int
	lastLight int
}

var _ Board = (*PeriphBoard)(nil)

// OpenPeriph initializes the periph host and claims the bus and pins. Both
// output pins start low.
func OpenPeriph(cfg Config, log *slog.Logger, met *observability.Metrics) (*PeriphBoard, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %s: %w", cfg.I2CBus, err)
	}
	led := gpioreg.ByName(cfg.LEDPin)
	if led == nil {
		_ = bus.Close()
		return nil, fmt.Errorf("gpio pin %s not found", cfg.LEDPin)
	}
	buzzer := gpioreg.ByName(cfg.BuzzerPin)
	if buzzer == nil {
		_ = bus.Close()
		return nil, fmt.Errorf("gpio pin %s not found", cfg.BuzzerPin)
	}
	if err := led.Out(gpio.Low); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("init led pin: %w", err)
	}
	if err := buzzer.Out(gpio.Low); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("init buzzer pin: %w", err)
	}
	b := &PeriphBoard{
		log:     log.With(slog.String("component", "hal")),
		met:     met,
		bus:     bus,
		sht:     &sht3x{dev: i2c.Dev{Bus: bus, Addr: cfg.TempAddr}},
		adc:     &ads1115{dev: i2c.Dev{Bus: bus, Addr: cfg.ADCAddr}},
		led:     led,
		buzzer:  buzzer,
		airCh:   cfg.AirChannel,
		lightCh: cfg.LightChannel,
	}
	log.Info("periph board ready",
		"bus", cfg.I2CBus, "tempAddr", cfg.TempAddr, "adcAddr", cfg.ADCAddr,
		"led", cfg.LEDPin, "buzzer", cfg.BuzzerPin)
	return b, nil
}

// SampleFast reads both converter channels. A failed read keeps that
// channel's previous code so callers always get a usable pair.
func (b *PeriphBoard) SampleFast() FastReading {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v, err := b.adc.readChannel(b.airCh); err == nil {
		b.lastAir = v
	} else {
		b.met.BusError()
		b.log.Debug("air channel read failed", "err", err)
	}
	if v, err := b.adc.readChannel(b.lightCh); err == nil {
		b.lastLight = v
	} else {
		b.met.BusError()
		b.log.Debug("light channel read failed", "err", err)
	}
	return FastReading{AirRaw: b.lastAir, LightRaw: b.lastLight}
}

func (b *PeriphBoard) ReadTempHumidity() (float64, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, h, err := b.sht.measure()
	if err != nil {
		b.met.BusError()
		b.log.Warn("temp/humidity read failed", "err", err)
		return t, h
	}
	if math.IsNaN(t) {
		b.log.Warn("temperature word failed checksum")
	}
	if math.IsNaN(h) {
		b.log.Warn("humidity word failed checksum")
	}
	return t, h
}

func (b *PeriphBoard) SetLED(on bool) {
	if err := b.led.Out(gpio.Level(on)); err != nil {
		b.log.Warn("led write failed", "err", err)
	}
}

func (b *PeriphBoard) SetBuzzer(on bool) {
	if err := b.buzzer.Out(gpio.Level(on)); err != nil {
		b.log.Warn("buzzer write failed", "err", err)
	}
}

func (b *PeriphBoard) Close() error {
	_ = b.led.Out(gpio.Low)
	_ = b.buzzer.Out(gpio.Low)
	return b.bus.Close()
}
