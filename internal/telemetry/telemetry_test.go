// v0
// internal/telemetry/telemetry_test.go
package telemetry

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/nrg-champ/envstation/internal/actuator"
	"github.com/nrg-champ/envstation/internal/hal"
	"github.com/nrg-champ/envstation/internal/sensor"
	"github.com/nrg-champ/envstation/internal/station"
)

func snapshotAt(ts time.Time, temp, hum float64) station.Snapshot {
	return station.Snapshot{
		Sample: sensor.Sample{TemperatureC: temp, HumidityPct: hum},
		Fast:   hal.FastReading{AirRaw: 1700, LightRaw: 900},
		State:  actuator.State{DarkLED: true, AirBuzzer: false},
		Taken:  ts,
	}
}

func TestFromSnapshotPresentValues(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := FromSnapshot("station-lab42", snapshotAt(ts, 21.5, 40))

	if r.StationID != "station-lab42" || !r.Timestamp.Equal(ts) {
		t.Fatalf("identity fields wrong: %+v", r)
	}
	if r.TemperatureC == nil || *r.TemperatureC != 21.5 {
		t.Fatalf("temperature got %v want 21.5", r.TemperatureC)
	}
	if r.HumidityPct == nil || *r.HumidityPct != 40 {
		t.Fatalf("humidity got %v want 40", r.HumidityPct)
	}
	if r.AirRaw != 1700 || r.LightRaw != 900 {
		t.Fatalf("raw codes wrong: %+v", r)
	}
	if !r.LEDDark || r.BuzzerAir {
		t.Fatalf("actuator flags wrong: %+v", r)
	}
}

func TestFromSnapshotAbsentValues(t *testing.T) {
	nan := math.NaN()
	r := FromSnapshot("s", snapshotAt(time.Now(), nan, 40))
	if r.TemperatureC != nil {
		t.Fatalf("absent temperature should be nil, got %v", *r.TemperatureC)
	}
	if r.HumidityPct == nil {
		t.Fatalf("humidity lost alongside temperature")
	}

	r = FromSnapshot("s", snapshotAt(time.Now(), 21.5, nan))
	if r.HumidityPct != nil {
		t.Fatalf("absent humidity should be nil, got %v", *r.HumidityPct)
	}
	if r.TemperatureC == nil {
		t.Fatalf("temperature lost alongside humidity")
	}
}

func TestReadingWireFormat(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("present", func(t *testing.T) {
		b, err := json.Marshal(FromSnapshot("station-lab42", snapshotAt(ts, 21.5, 40)))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		s := string(b)
		for _, want := range []string{
			`"stationId":"station-lab42"`,
			`"temperatureC":21.5`,
			`"humidityPct":40`,
			`"airRaw":1700`,
			`"lightRaw":900`,
			`"ledDark":true`,
			`"buzzerAir":false`,
		} {
			if !strings.Contains(s, want) {
				t.Fatalf("payload %s missing %s", s, want)
			}
		}
	})

	t.Run("absent quantities are null", func(t *testing.T) {
		b, err := json.Marshal(FromSnapshot("s", snapshotAt(ts, math.NaN(), math.NaN())))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		s := string(b)
		if !strings.Contains(s, `"temperatureC":null`) || !strings.Contains(s, `"humidityPct":null`) {
			t.Fatalf("payload %s should carry nulls", s)
		}
	})
}
