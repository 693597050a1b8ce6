// v0
// internal/api/dashboard.go
package api

import (
	_ "embed"
	"html/template"
	"strconv"

	"github.com/nrg-champ/envstation/internal/hal"
	"github.com/nrg-champ/envstation/internal/station"
)

//go:embed templates/dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardData struct {
	HasTemp  bool
	Temp     string
	HasHum   bool
	Hum      string
	AirRaw   int
	LightRaw int
	LED      bool
	Buzzer   bool
	IP       string
	RSSI     int
	LightTh  int
	AirTh    int
	Refresh  int
}

// dashboardData folds one snapshot plus live codes into template fields.
// Slow quantities render with one decimal here; the JSON API keeps two.
func (h *Handlers) dashboardData(snap station.Snapshot, fast hal.FastReading) dashboardData {
	d := dashboardData{
		AirRaw:   fast.AirRaw,
		LightRaw: fast.LightRaw,
		LED:      snap.State.DarkLED,
		Buzzer:   snap.State.AirBuzzer,
		IP:       h.Net.IP(),
		RSSI:     h.Net.RSSI(),
		LightTh:  h.Th.Light,
		AirTh:    h.Th.Air,
		Refresh:  int(h.RefreshHint.Seconds()),
	}
	if d.IP == "" {
		d.IP = "offline"
	}
	if d.Refresh <= 0 {
		d.Refresh = 2
	}
	if snap.Sample.HasTemperature() {
		d.HasTemp = true
		d.Temp = strconv.FormatFloat(snap.Sample.TemperatureC, 'f', 1, 64)
	}
	if snap.Sample.HasHumidity() {
		d.HasHum = true
		d.Hum = strconv.FormatFloat(snap.Sample.HumidityPct, 'f', 1, 64)
	}
	return d
}
