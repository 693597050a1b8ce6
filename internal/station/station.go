// v1
// internal/station/station.go
package station

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/nrg-champ/envstation/internal/actuator"
	"github.com/nrg-champ/envstation/internal/hal"
	"github.com/nrg-champ/envstation/internal/observability"
	"github.com/nrg-champ/envstation/internal/sensor"
)

const minPoll = 10 * time.Millisecond

// Snapshot is one mutually consistent view of the latest loop pass: the fast
// codes and the actuator state were produced together.
type Snapshot struct {
	Sample sensor.Sample
	Fast   hal.FastReading
	State  actuator.State
	Taken  time.Time
}

// Station owns the sampling loop and the shared reading cache. The loop is
// the only writer; HTTP handlers read through Snapshot.
type Station struct {
	log *slog.Logger
	met *observability.Metrics

	reader  *sensor.Reader
	outputs *actuator.Outputs
	th      actuator.Thresholds
	poll    time.Duration

	mu  sync.RWMutex
	cur Snapshot
}

func New(reader *sensor.Reader, outputs *actuator.Outputs, th actuator.Thresholds, poll time.Duration, log *slog.Logger, met *observability.Metrics) *Station {
	if poll < minPoll {
		log.Warn("poll interval below floor, clamping", "requested", poll.String(), "floor", minPoll.String())
		poll = minPoll
	}
	return &Station{
		log:     log.With(slog.String("component", "station")),
		met:     met,
		reader:  reader,
		outputs: outputs,
		th:      th,
		poll:    poll,
		cur: Snapshot{
			Sample: sensor.Sample{TemperatureC: math.NaN(), HumidityPct: math.NaN()},
		},
	}
}

// Start runs the loop in its own goroutine until ctx is cancelled. The first
// pass happens immediately so handlers never see an empty snapshot for a
// whole tick.
func (s *Station) Start(ctx context.Context) {
	t := time.NewTicker(s.poll)
	s.log.Info("sampling loop started", "poll", s.poll.String(), "lightThreshold", s.th.Light, "airThreshold", s.th.Air)
	go func() {
		defer t.Stop()
		s.step(time.Now())
		for {
			select {
			case now := <-t.C:
				s.step(now)
			case <-ctx.Done():
				s.log.Info("sampling loop stopped")
				return
			}
		}
	}()
}

// step is one loop pass: sample the fast channels, actuate, then give the
// slow sensor its chance. The snapshot is replaced in one write so readers
// always see a matching sample/state pair. Nothing in here can fail.
func (s *Station) step(now time.Time) {
	fast := s.reader.SampleFast()
	st := actuator.Compute(fast, s.th)
	s.outputs.Apply(st)

	sample, outcome := s.reader.MaybeRefresh(now)

	s.mu.Lock()
	s.cur = Snapshot{Sample: sample, Fast: fast, State: st, Taken: now}
	s.mu.Unlock()

	s.met.LoopPass()
	s.met.SetActuators(st.DarkLED, st.AirBuzzer)
	if outcome != sensor.RefreshSkipped {
		s.met.SlowRefresh(outcome.String())
	}
}

// Snapshot returns the latest consistent view.
func (s *Station) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Thresholds returns the configured trip points.
func (s *Station) Thresholds() actuator.Thresholds {
	return s.th
}
