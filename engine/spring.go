package engine

import "math"

// DefaultSnapThreshold is the residual Update falls back to when called
// with threshold <= 0. A larger residual would leave extra-row rendering
// active near the window's margins during animation.
const DefaultSnapThreshold = 0.01

// Spring is a critically damped 1-DOF animator: no oscillation, no
// overshoot, decaying toward zero position over approximately Length
// seconds. It holds no reference to what it animates; callers read
// Position directly.
type Spring struct {
	Position float64
	Velocity float64
}

// Update advances the spring by dt seconds given the configured animation
// length in seconds and the residual below which it snaps to rest, and
// reports whether it is still in motion. threshold <= 0 falls back to
// DefaultSnapThreshold. Once the spring settles it snaps Position and
// Velocity to exactly zero so callers never have to compare against an
// epsilon themselves.
func (s *Spring) Update(dt, length, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultSnapThreshold
	}
	if length <= dt || math.Abs(s.Position) < threshold {
		s.Position = 0
		s.Velocity = 0
		return false
	}

	omega := 4 / length
	a := s.Position
	b := s.Position*omega + s.Velocity
	c := math.Exp(-omega * dt)

	s.Position = (a + b*dt) * c
	s.Velocity = c * (-a*omega - b*dt*omega + b)
	return true
}

// Moving reports whether the spring has any residual displacement.
func (s *Spring) Moving() bool {
	return s.Position != 0 || s.Velocity != 0
}

// Reset zeroes the spring, as happens after a resize or a scrollback rebuild.
func (s *Spring) Reset() {
	s.Position = 0
	s.Velocity = 0
}
