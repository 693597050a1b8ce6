// v1
// internal/api/handlers.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/nrg-champ/envstation/internal/actuator"
	"github.com/nrg-champ/envstation/internal/hal"
	"github.com/nrg-champ/envstation/internal/station"
)

// stationSource is the slice of the station the handlers read. Handlers
// never mutate station state.
type stationSource interface {
	Snapshot() station.Snapshot
}

// fastSampler provides the live analog codes; requests always sample fresh.
type fastSampler interface {
	SampleFast() hal.FastReading
}

// netStatus reports the station's network position.
type netStatus interface {
	IP() string
	RSSI() int
}

type Handlers struct {
	Log         *slog.Logger
	Source      stationSource
	Fast        fastSampler
	Net         netStatus
	Th          actuator.Thresholds
	RefreshHint time.Duration
}

type apiResponse struct {
	TemperatureC *json.Number `json:"temperature_c"`
	HumidityPct  *json.Number `json:"humidity_pct"`
	MQ135Raw     int          `json:"mq135_raw"`
	LDRRaw       int          `json:"ldr_raw"`
	LEDDark      bool         `json:"led_dark"`
	BuzzerAir    bool         `json:"buzzer_air"`
	RSSIDBm      int          `json:"rssi_dbm"`
}

// num2 renders a value with exactly two decimals, the precision the JSON
// consumers were built against.
func num2(v float64) *json.Number {
	n := json.Number(strconv.FormatFloat(v, 'f', 2, 64))
	return &n
}

func (h *Handlers) API(w http.ResponseWriter, r *http.Request) {
	snap := h.Source.Snapshot()
	fast := h.Fast.SampleFast()

	resp := apiResponse{
		MQ135Raw:  fast.AirRaw,
		LDRRaw:    fast.LightRaw,
		LEDDark:   snap.State.DarkLED,
		BuzzerAir: snap.State.AirBuzzer,
		RSSIDBm:   h.Net.RSSI(),
	}
	if snap.Sample.HasTemperature() {
		resp.TemperatureC = num2(snap.Sample.TemperatureC)
	}
	if snap.Sample.HasHumidity() {
		resp.HumidityPct = num2(snap.Sample.HumidityPct)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.Source.Snapshot()
	fast := h.Fast.SampleFast()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, h.dashboardData(snap, fast)); err != nil {
		h.Log.Error("dashboard render failed", "err", err)
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "ts": time.Now().UTC()})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if _, err := w.Write([]byte("Not found")); err != nil {
		h.Log.Error("write_response_failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
