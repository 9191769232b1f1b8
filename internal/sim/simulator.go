// Package sim drives a physics system: it calls Step at a fixed cadence and
// hands every resulting snapshot to observers and metrics.
package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/solarsim/internal/dynamo"
	"github.com/san-kum/solarsim/internal/physics"
)

type Simulator struct {
	sys       Stepper
	metrics   []Metric
	observers []Observer
	log       *zap.Logger
}

func New(sys Stepper, log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{
		sys:       sys,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run performs cfg.Steps steps. On a step failure, an observer failure or
// cancellation it stops and returns the partial result together with the
// error; step failures come wrapped in *SimulationError.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{Metrics: make(map[string]float64)}
	for _, m := range s.metrics {
		m.Reset()
	}

	var tick <-chan time.Time
	if interval := tickInterval(cfg.Rate); interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	dt := s.sys.Timestep()
	bodies := s.sys.Snapshot()
	if err := s.notify(0, 0, bodies); err != nil {
		return s.finish(result, bodies), err
	}

	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return s.finish(result, bodies), ctx.Err()
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return s.finish(result, bodies), ctx.Err()
			case <-tick:
			}
		}

		t := float64(i) * dt
		if err := s.sys.Step(); err != nil {
			s.log.Error("step failed", zap.Int("step", i), zap.Float64("t", t), zap.Error(err))
			return s.finish(result, bodies), &SimulationError{Step: i, Time: t, Wrapped: err}
		}
		result.StepsTaken++
		result.Elapsed = t
		bodies = s.sys.Snapshot()

		if cfg.ValidateState {
			if name, ok := invalidBody(bodies); ok {
				// phase 2 already ran; bodies after this one may carry the bad force
				s.log.Error("non-finite state", zap.Int("step", i), zap.String("body", name))
				return s.finish(result, bodies), &SimulationError{
					Step:    i,
					Time:    t,
					Wrapped: fmt.Errorf("%w: body %s", dynamo.ErrInvalidState, name),
				}
			}
		}

		if err := s.notify(i, t, bodies); err != nil {
			return s.finish(result, bodies), err
		}
	}

	s.log.Debug("run complete", zap.Int("steps", result.StepsTaken), zap.Float64("elapsed", result.Elapsed))
	return s.finish(result, bodies), nil
}

func (s *Simulator) notify(step int, t float64, bodies []physics.BodyState) error {
	for _, m := range s.metrics {
		m.Observe(step, t, bodies)
	}
	for _, obs := range s.observers {
		if err := obs.OnStep(step, t, bodies); err != nil {
			return fmt.Errorf("observer at step %d: %w", step, err)
		}
	}
	return nil
}

func (s *Simulator) finish(result *Result, bodies []physics.BodyState) *Result {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = bodies
	return result
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Rate < 0 || math.IsNaN(cfg.Rate) || math.IsInf(cfg.Rate, 0) {
		return fmt.Errorf("rate must be finite and not negative, got %f", cfg.Rate)
	}
	if s.sys.Timestep() <= 0 {
		return fmt.Errorf("timestep must be positive, got %f", s.sys.Timestep())
	}
	return nil
}

// tickInterval is the wall-clock time per step. Zero means unthrottled,
// which covers rates too high for a one-nanosecond tick.
func tickInterval(rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rate)
}

func invalidBody(bodies []physics.BodyState) (string, bool) {
	for _, b := range bodies {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			return b.Name, true
		}
	}
	return "", false
}
