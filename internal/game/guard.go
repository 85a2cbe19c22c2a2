package game

import "math/rand"

// Guard models the patrolling guard as a one-dimensional random walk over
// a distance percentage. 0 means on top of the player, 100 means as far
// away as possible.
type Guard struct {
	Distance float64

	speed          float64
	detectionRange float64
	rng            *rand.Rand
}

// NewGuard creates a guard at the starting distance. The rng is owned by
// the caller; seeding it makes the patrol deterministic.
func NewGuard(cfg DifficultyConfig, rng *rand.Rand) *Guard {
	return &Guard{
		Distance:       GuardStartDistance,
		speed:          cfg.GuardSpeed,
		detectionRange: cfg.DetectionRange,
		rng:            rng,
	}
}

// Tick advances the patrol by one step and reports whether the guard
// detected the player. Being within detection range is necessary but not
// sufficient: detection additionally requires an independent coin flip,
// so proximity builds tension without guaranteeing a bust.
func (g *Guard) Tick() (distance float64, detected bool) {
	step := (g.rng.Float64()*2 - 1) * g.speed * 2
	g.Distance = clamp(g.Distance+step, 0, 100)

	if g.Distance < g.detectionRange && g.rng.Float64() > GuardDetectionOdds {
		return g.Distance, true
	}
	return g.Distance, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
