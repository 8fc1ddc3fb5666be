package obstacle

import (
	"math"

	"golang.org/x/exp/rand"
)

type MotionConfig struct {
	// MaxMoveDistance batas kecepatan (derajat per tick) dan batas sampling akselerasi.
	MaxMoveDistance float64
	Inertia         float64
	Acceleration    float64
	MaxAttempts     int
}

func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		MaxMoveDistance: 0.0005,
		Inertia:         0.8,
		Acceleration:    0.5,
		MaxAttempts:     10,
	}
}

// Step one tick of autonomous motion. Each attempt samples an acceleration, blends it with the
// previous velocity, clamps the speed to MaxMoveDistance and tries the move. After MaxAttempts
// rejected moves the polygon stays frozen for this tick. Dragged polygons never move here.
func (p *Polygon) Step(rng *rand.Rand, cfg MotionConfig, grid CellChecker) bool {
	if p.Dragging || p.IsEmpty() {
		return false
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		ax := (rng.Float64()*2 - 1) * cfg.MaxMoveDistance * cfg.Acceleration
		ay := (rng.Float64()*2 - 1) * cfg.MaxMoveDistance * cfg.Acceleration

		p.VelocityX = cfg.Inertia*p.VelocityX + ax
		p.VelocityY = cfg.Inertia*p.VelocityY + ay

		speed := math.Hypot(p.VelocityX, p.VelocityY)
		if speed > cfg.MaxMoveDistance {
			p.VelocityX *= cfg.MaxMoveDistance / speed
			p.VelocityY *= cfg.MaxMoveDistance / speed
		}

		if p.UpdatePosition(p.VelocityX, p.VelocityY, grid) {
			return true
		}
	}
	return false
}
