// v0
// internal/api/handlers_test.go
package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nrg-champ/envstation/internal/actuator"
	"github.com/nrg-champ/envstation/internal/hal"
	"github.com/nrg-champ/envstation/internal/sensor"
	"github.com/nrg-champ/envstation/internal/station"
)

type fakeSource struct{ snap station.Snapshot }

func (f *fakeSource) Snapshot() station.Snapshot { return f.snap }

type fakeFast struct{ r hal.FastReading }

func (f *fakeFast) SampleFast() hal.FastReading { return f.r }

type fakeNet struct {
	ip   string
	rssi int
}

func (f fakeNet) IP() string { return f.ip }
func (f fakeNet) RSSI() int  { return f.rssi }

func testThresholds() actuator.Thresholds {
	return actuator.Thresholds{Light: 1500, Air: 1800}
}

// newTestRouter assembles the full route stack around one fast reading. The
// snapshot state is derived from the same reading, like a loop pass would.
func newTestRouter(fast hal.FastReading, temp, hum float64) http.Handler {
	th := testThresholds()
	snap := station.Snapshot{
		Sample: sensor.Sample{TemperatureC: temp, HumidityPct: hum},
		Fast:   fast,
		State:  actuator.Compute(fast, th),
		Taken:  time.Unix(100, 0),
	}
	h := &Handlers{
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Source:      &fakeSource{snap: snap},
		Fast:        &fakeFast{r: fast},
		Net:         fakeNet{ip: "192.168.1.50", rssi: -56},
		Th:          th,
		RefreshHint: 2 * time.Second,
	}
	return NewRouter(h, nil)
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAPIAbsentQuantitiesAreNull(t *testing.T) {
	nan := math.NaN()
	router := newTestRouter(hal.FastReading{AirRaw: 1700, LightRaw: 900}, nan, nan)

	rec := get(t, router, "/api")
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type got %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"temperature_c":null`) || !strings.Contains(body, `"humidity_pct":null`) {
		t.Fatalf("absent quantities must be null: %s", body)
	}

	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["mq135_raw"].(float64) != 1700 || m["ldr_raw"].(float64) != 900 {
		t.Fatalf("raw codes wrong: %v", m)
	}
	if m["led_dark"].(bool) != true {
		t.Fatalf("led_dark should be true for light 900 under threshold 1500")
	}
	if m["buzzer_air"].(bool) != false {
		t.Fatalf("buzzer_air should be false for air 1700 under threshold 1800")
	}
	if m["rssi_dbm"].(float64) != -56 {
		t.Fatalf("rssi got %v want -56", m["rssi_dbm"])
	}
}

func TestAPITwoDecimalRendering(t *testing.T) {
	router := newTestRouter(hal.FastReading{AirRaw: 1000, LightRaw: 2000}, 21.5, 40)

	body := get(t, router, "/api").Body.String()
	if !strings.Contains(body, `"temperature_c":21.50`) {
		t.Fatalf("temperature must carry two decimals: %s", body)
	}
	if !strings.Contains(body, `"humidity_pct":40.00`) {
		t.Fatalf("humidity must carry two decimals: %s", body)
	}
}

func TestAPIThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		fast       hal.FastReading
		wantLED    bool
		wantBuzzer bool
	}{
		{name: "dark trips led", fast: hal.FastReading{LightRaw: 1000, AirRaw: 1000}, wantLED: true},
		{name: "bright leaves led off", fast: hal.FastReading{LightRaw: 2000, AirRaw: 1000}},
		{name: "light at threshold stays off", fast: hal.FastReading{LightRaw: 1500, AirRaw: 1000}},
		{name: "poor air trips buzzer", fast: hal.FastReading{LightRaw: 2000, AirRaw: 1801}, wantBuzzer: true},
		{name: "air at threshold stays off", fast: hal.FastReading{LightRaw: 2000, AirRaw: 1800}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(tc.fast, 21.5, 40)
			var m map[string]any
			if err := json.Unmarshal(get(t, router, "/api").Body.Bytes(), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if m["led_dark"].(bool) != tc.wantLED {
				t.Fatalf("led_dark got %v want %v", m["led_dark"], tc.wantLED)
			}
			if m["buzzer_air"].(bool) != tc.wantBuzzer {
				t.Fatalf("buzzer_air got %v want %v", m["buzzer_air"], tc.wantBuzzer)
			}
		})
	}
}

func TestDashboardRendersValues(t *testing.T) {
	router := newTestRouter(hal.FastReading{AirRaw: 1234, LightRaw: 876}, 21.52, 40.04)

	rec := get(t, router, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type got %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`http-equiv="refresh" content="2"`,
		"21.5 &deg;C", // one decimal on the dashboard
		"40.0 %",
		">1234<",
		">876<",
		">ON<",
		"192.168.1.50 | RSSI -56 dBm",
		"LDR_TH=1500 MQ_TH=1800",
		`<a href="/api">/api</a>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, body)
		}
	}
}

func TestDashboardRendersNA(t *testing.T) {
	nan := math.NaN()
	router := newTestRouter(hal.FastReading{AirRaw: 1000, LightRaw: 2000}, nan, nan)

	body := get(t, router, "/").Body.String()
	if strings.Count(body, `<span class="bad">N/A</span>`) != 2 {
		t.Fatalf("both slow quantities should render N/A:\n%s", body)
	}
	if !strings.Contains(body, ">OFF<") {
		t.Fatalf("actuators should render OFF:\n%s", body)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	router := newTestRouter(hal.FastReading{}, 21.5, 40)

	rec := get(t, router, "/foo")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status got %d want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type got %q want text/plain", ct)
	}
	if got := rec.Body.String(); got != "Not found" {
		t.Fatalf("body got %q want %q", got, "Not found")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(hal.FastReading{}, 21.5, 40)

	rec := get(t, router, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d want 200", rec.Code)
	}
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["status"] != "ok" {
		t.Fatalf("health status got %v", m["status"])
	}
}
