package sim

import (
	"fmt"

	"github.com/san-kum/solarsim/internal/physics"
)

// Stepper is the part of a physics.System the driver needs.
type Stepper interface {
	Step() error
	Snapshot() []physics.BodyState
	Timestep() float64
}

// Observer receives the bodies after every successful step, and once with
// step 0 before the first step. Returning an error stops the run.
type Observer interface {
	OnStep(step int, t float64, bodies []physics.BodyState) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, t float64, bodies []physics.BodyState) error

func (f ObserverFunc) OnStep(step int, t float64, bodies []physics.BodyState) error {
	return f(step, t, bodies)
}

type Metric interface {
	Name() string
	Observe(step int, t float64, bodies []physics.BodyState)
	Value() float64
	Reset()
}

type Config struct {
	Steps         int
	Rate          float64 // steps per wall-clock second; 0, or above 1e9, runs unthrottled
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         365,
		Rate:          0,
		ValidateState: true,
	}
}

type Result struct {
	StepsTaken int
	Elapsed    float64 // simulated seconds
	Metrics    map[string]float64
	Final      []physics.BodyState
}

// SimulationError wraps a failure with the step it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
