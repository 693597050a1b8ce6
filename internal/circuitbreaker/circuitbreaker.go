// v1
// internal/circuitbreaker/circuitbreaker.go
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case HalfOpen:
		return "HalfOpen"
	default:
		return "Unknown"
	}
}

var ErrOpen = errors.New("circuit breaker is open; fast-fail")

// Config holds the breaker tunables.
type Config struct {
	MaxFailures  int           // consecutive failures before opening
	ResetTimeout time.Duration // how long to wait before probing again
}

// Breaker guards an unreliable downstream. Closed passes operations through,
// Open fast-fails until ResetTimeout elapses, then a HalfOpen probe decides.
type Breaker struct {
	name  string
	cfg   Config
	log   *slog.Logger
	probe func(ctx context.Context) error

	mu          sync.Mutex
	state       State
	recentFails int
	openedAt    time.Time
}

// New builds a breaker. probe may be nil; the half-open attempt then goes
// straight to the guarded operation.
func New(name string, cfg Config, probe func(ctx context.Context) error, log *slog.Logger) *Breaker {
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = 1
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}
	b := &Breaker{
		name:  name,
		cfg:   cfg,
		log:   log,
		probe: probe,
		state: Closed,
	}
	b.log.Info("breaker_created", "name", name, "state", b.state.String(), "maxFailures", cfg.MaxFailures, "resetTimeout", cfg.ResetTimeout.String())
	return b
}

func (b *Breaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	state := b.state
	openedAt := b.openedAt
	b.mu.Unlock()

	if state == Open {
		if time.Since(openedAt) < b.cfg.ResetTimeout {
			b.log.Warn("breaker_fast_fail", "name", b.name, "since_open", time.Since(openedAt).String())
			return ErrOpen
		}
		return b.tryProbeThenOp(ctx, op)
	}

	err := op(ctx)
	if err == nil {
		b.onSuccess()
		return nil
	}
	b.onFailure(err)
	b.mu.Lock()
	isOpen := b.state == Open
	b.mu.Unlock()
	if isOpen {
		return ErrOpen
	}
	return err
}

func (b *Breaker) tryProbeThenOp(ctx context.Context, op func(ctx context.Context) error) error {
	b.mu.Lock()
	b.state = HalfOpen
	had := b.recentFails
	b.mu.Unlock()
	b.log.Info("breaker_probe_start", "name", b.name, "previous_failures", had)

	if b.probe != nil {
		if err := b.probe(ctx); err != nil {
			b.log.Warn("breaker_probe_failed", "name", b.name, "error", err.Error())
			b.mu.Lock()
			b.state = Open
			b.openedAt = time.Now()
			b.mu.Unlock()
			return ErrOpen
		}
		b.log.Info("breaker_probe_ok", "name", b.name)
	}

	if err := op(ctx); err != nil {
		b.log.Warn("breaker_halfopen_op_failed", "name", b.name, "error", err.Error())
		b.mu.Lock()
		b.state = Open
		b.openedAt = time.Now()
		b.recentFails++
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.state = Closed
	b.recentFails = 0
	b.mu.Unlock()
	b.log.Info("breaker_closed_after_probe", "name", b.name)
	return nil
}

func (b *Breaker) onSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Closed {
		b.log.Info("breaker_state_to_closed", "name", b.name, "from", b.state.String())
	}
	b.state = Closed
	b.recentFails = 0
}

func (b *Breaker) onFailure(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recentFails++
	b.log.Warn("operation_failure", "name", b.name, "failures", b.recentFails, "error", err.Error())
	if b.recentFails >= b.cfg.MaxFailures {
		b.state = Open
		b.openedAt = time.Now()
		b.log.Error("breaker_opened", "name", b.name, "maxFailures", b.cfg.MaxFailures)
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
