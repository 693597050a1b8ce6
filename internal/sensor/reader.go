// v1
// internal/sensor/reader.go
package sensor

import (
	"log/slog"
	"math"
	"time"

	"github.com/nrg-champ/envstation/internal/hal"
)

// source exposes the subset of the board the reader needs.
type source interface {
	SampleFast() hal.FastReading
	ReadTempHumidity() (tempC, humidityPct float64)
}

// Sample is the cached slow-sensor pair. NaN marks a quantity that has never
// been read successfully; the two fields update independently.
type Sample struct {
	TemperatureC float64
	HumidityPct  float64
}

func (s Sample) HasTemperature() bool { return !math.IsNaN(s.TemperatureC) }
func (s Sample) HasHumidity() bool    { return !math.IsNaN(s.HumidityPct) }

// RefreshOutcome classifies one MaybeRefresh call.
type RefreshOutcome int

const (
	RefreshSkipped RefreshOutcome = iota
	RefreshOK
	RefreshPartial
	RefreshFailed
)

func (o RefreshOutcome) String() string {
	switch o {
	case RefreshSkipped:
		return "skipped"
	case RefreshOK:
		return "ok"
	case RefreshPartial:
		return "partial"
	case RefreshFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reader owns the slow-sensor cache and its cadence. MaybeRefresh must only
// be called from the sampling loop; SampleFast is safe from any goroutine
// because it holds no reader state.
type Reader struct {
	log *slog.Logger
	src source

	minInterval time.Duration

	cache       Sample
	lastRefresh time.Time
}

func NewReader(src source, minInterval time.Duration, log *slog.Logger) *Reader {
	return &Reader{
		log:         log.With(slog.String("component", "sensor")),
		src:         src,
		minInterval: minInterval,
		cache:       Sample{TemperatureC: math.NaN(), HumidityPct: math.NaN()},
	}
}

// SampleFast passes straight through to the board: live codes, no cache.
func (r *Reader) SampleFast() hal.FastReading {
	return r.src.SampleFast()
}

// MaybeRefresh reads the slow sensor at most once per minInterval. Each
// quantity overwrites the cache only on success; a failure keeps the last
// good value. The refresh clock advances whenever a read is attempted, so a
// failing sensor is retried at the normal cadence, never faster. The first
// call always reads.
func (r *Reader) MaybeRefresh(now time.Time) (Sample, RefreshOutcome) {
	if !r.lastRefresh.IsZero() && now.Sub(r.lastRefresh) < r.minInterval {
		return r.cache, RefreshSkipped
	}
	r.lastRefresh = now

	t, h := r.src.ReadTempHumidity()
	gotT, gotH := !math.IsNaN(t), !math.IsNaN(h)
	if gotT {
		r.cache.TemperatureC = t
	}
	if gotH {
		r.cache.HumidityPct = h
	}

	switch {
	case gotT && gotH:
		return r.cache, RefreshOK
	case gotT || gotH:
		r.log.Warn("slow sensor returned one quantity", "gotTemperature", gotT, "gotHumidity", gotH)
		return r.cache, RefreshPartial
	default:
		r.log.Warn("slow sensor read failed, keeping cached values")
		return r.cache, RefreshFailed
	}
}
