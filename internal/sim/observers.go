package sim

import (
	"go.uber.org/zap"

	"github.com/san-kum/solarsim/internal/physics"
)

// LogObserver writes a debug line with the closest pair every Every steps.
type LogObserver struct {
	Every int
	Log   *zap.Logger
}

func (o *LogObserver) OnStep(step int, t float64, bodies []physics.BodyState) error {
	if o.Every <= 0 || step%o.Every != 0 {
		return nil
	}
	a, b, d := physics.ClosestPair(bodies)
	o.Log.Debug("step",
		zap.Int("step", step),
		zap.Float64("days", t/86400),
		zap.String("closest_a", a),
		zap.String("closest_b", b),
		zap.Float64("closest_m", d),
	)
	return nil
}
