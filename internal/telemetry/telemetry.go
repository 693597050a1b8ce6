// v0
// internal/telemetry/telemetry.go
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/nrg-champ/envstation/internal/station"
)

// Reading is the flattened station sample pushed to the fleet backends.
// Absent slow-sensor quantities serialize as null.
type Reading struct {
	StationID    string    `json:"stationId"`
	Timestamp    time.Time `json:"timestamp"`
	TemperatureC *float64  `json:"temperatureC"`
	HumidityPct  *float64  `json:"humidityPct"`
	AirRaw       int       `json:"airRaw"`
	LightRaw     int       `json:"lightRaw"`
	LEDDark      bool      `json:"ledDark"`
	BuzzerAir    bool      `json:"buzzerAir"`
}

// FromSnapshot flattens one consistent station view into a wire reading.
func FromSnapshot(stationID string, snap station.Snapshot) Reading {
	r := Reading{
		StationID: stationID,
		Timestamp: snap.Taken,
		AirRaw:    snap.Fast.AirRaw,
		LightRaw:  snap.Fast.LightRaw,
		LEDDark:   snap.State.DarkLED,
		BuzzerAir: snap.State.AirBuzzer,
	}
	if snap.Sample.HasTemperature() {
		v := snap.Sample.TemperatureC
		r.TemperatureC = &v
	}
	if snap.Sample.HasHumidity() {
		v := snap.Sample.HumidityPct
		r.HumidityPct = &v
	}
	return r
}

// Publisher pushes one reading to a backend.
type Publisher interface {
	Publish(ctx context.Context, r Reading) error
	Close()
}

// snapshotSource is the slice of the station the publishers need.
type snapshotSource interface {
	Snapshot() station.Snapshot
}

// Start publishes the latest snapshot at a fixed rate until ctx is
// cancelled. Publish failures are logged and counted by the publisher's own
// guards; they never propagate back to the sampling loop.
func Start(ctx context.Context, src snapshotSource, p Publisher, stationID string, rate time.Duration, log *slog.Logger) {
	if rate <= 0 {
		rate = 2 * time.Second
	}
	t := time.NewTicker(rate)
	log.Info("telemetry publisher started", "rate", rate.String())
	go func() {
		defer t.Stop()
		for {
			select {
			case <-t.C:
				r := FromSnapshot(stationID, src.Snapshot())
				if err := p.Publish(ctx, r); err != nil {
					log.Warn("telemetry publish failed", "err", err)
				}
			case <-ctx.Done():
				p.Close()
				log.Info("telemetry publisher stopped")
				return
			}
		}
	}()
}
