package scene

import "math"

// ShakeStep is the duration of a single shake displacement.
const ShakeStep = 0.015

// Default shake amplitudes, per axis.
const (
	DefaultShakeAmplitudeX = 3
	DefaultShakeAmplitudeY = 3
)

// IntSource draws integers in [0, n). *rand.Rand from math/rand/v2 fits.
type IntSource interface {
	IntN(n int) int
}

// Shake builds a shake of the given duration: floor(duration/(2*ShakeStep))
// pairs of a random displacement followed by its inverse. The node is put
// back on the exact position it had when the shake started.
func Shake(duration float64, amplitudeX, amplitudeY int, rng IntSource) Action {
	steps := int(math.Floor(duration / (2 * ShakeStep)))
	if steps <= 0 {
		return Sequence()
	}
	moves := make([]Action, 0, steps*2)
	for range steps {
		dx := shakeOffset(rng, amplitudeX)
		dy := shakeOffset(rng, amplitudeY)
		moves = append(moves, MoveBy(dx, dy, ShakeStep), MoveBy(-dx, -dy, ShakeStep))
	}
	return shake{moves: sequence{actions: moves}}
}

type shake struct {
	moves sequence
}

func (a shake) start() runner {
	return &shakeRun{inner: a.moves.start()}
}

type shakeRun struct {
	inner   runner
	origin  Vec
	started bool
}

// step snaps to the origin when done; summed float deltas can miss it by
// an ulp.
func (r *shakeRun) step(n *Node, dt float64) (float64, bool) {
	if !r.started {
		r.origin = n.Pos
		r.started = true
	}
	left, done := r.inner.step(n, dt)
	if done {
		n.Pos = r.origin
	}
	return left, done
}

// shakeOffset draws from [0, amplitude) shifted down by amplitude/2.
func shakeOffset(rng IntSource, amplitude int) float64 {
	if amplitude <= 0 {
		return 0
	}
	return float64(rng.IntN(amplitude) - amplitude/2)
}
