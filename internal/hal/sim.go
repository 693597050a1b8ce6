// v0
// internal/hal/sim.go
package hal

import (
	"math"
	"math/rand"
	"sync"
)

// SimBoard fabricates plausible readings so the full pipeline runs on a
// machine with no sensors attached. A fixed seed gives a reproducible
// sequence; failRate injects transient slow-sensor failures.
type SimBoard struct {
	mu       sync.Mutex
	rng      *rand.Rand
	air      float64
	light    float64
	temp     float64
	hum      float64
	failRate float64

	led    bool
	buzzer bool
}

var _ Board = (*SimBoard)(nil)

// NewSim seeds the synthetic board. Air starts near the alarm threshold and
// light near the dark threshold so both actuators exercise over time.
func NewSim(seed int64, failRate float64) *SimBoard {
	return &SimBoard{
		rng:      rand.New(rand.NewSource(seed)),
		air:      1650,
		light:    1400,
		temp:     24.5,
		hum:      48,
		failRate: failRate,
	}
}

func (b *SimBoard) SampleFast() FastReading {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.air = clamp(b.air+(b.rng.Float64()-0.5)*80, 0, 4095)
	b.light = clamp(b.light+(b.rng.Float64()-0.5)*80, 0, 4095)
	return FastReading{AirRaw: int(b.air), LightRaw: int(b.light)}
}

func (b *SimBoard) ReadTempHumidity() (float64, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failRate > 0 && b.rng.Float64() < b.failRate {
		return math.NaN(), math.NaN()
	}
	b.temp = clamp(b.temp+(b.rng.Float64()-0.5)*0.2, 5, 45)
	b.hum = clamp(b.hum+(b.rng.Float64()-0.5)*0.6, 10, 95)
	return b.temp, b.hum
}

func (b *SimBoard) SetLED(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.led = on
}

func (b *SimBoard) SetBuzzer(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buzzer = on
}

// LED reports the simulated pin level.
func (b *SimBoard) LED() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.led
}

// Buzzer reports the simulated pin level.
func (b *SimBoard) Buzzer() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buzzer
}

func (b *SimBoard) Close() error { return nil }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
