package loop

import (
	"time"

	"github.com/trytobebee/gridsnake/pkg/config"
)

// IntervalStrategy maps the current score to a tick interval
type IntervalStrategy func(score int) time.Duration

// Fixed always ticks at d
func Fixed(d time.Duration) IntervalStrategy {
	return func(int) time.Duration { return d }
}

// Ramp speeds up by step per point scored, never going below floor
func Ramp(base, step, floor time.Duration) IntervalStrategy {
	return func(score int) time.Duration {
		return max(floor, base-step*time.Duration(score))
	}
}

// IntervalFor picks the strategy a config asks for
func IntervalFor(cfg config.Config) IntervalStrategy {
	if cfg.SpeedRamp {
		return Ramp(config.RampBase, config.RampStep, config.RampFloor)
	}
	return Fixed(cfg.TickInterval())
}
