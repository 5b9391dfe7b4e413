package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/collision"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// Outcome is what a contact event means for the game.
type Outcome int

const (
	Ignored Outcome = iota
	FatalHit
	ScorePass
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case FatalHit:
		return "fatal-hit"
	case ScorePass:
		return "score-pass"
	default:
		return "ignored"
	}
}

var (
	playerMask   = collision.MaskOf(collision.Player)
	obstacleMask = collision.MaskOf(collision.Obstacle)
	triggerMask  = collision.MaskOf(collision.ScoreTrigger)
)

// Classify maps a contact event to its outcome. The player touching an
// obstacle is fatal when the contact begins; the player leaving a score
// trigger scores when the contact ends. Argument order does not matter.
func Classify(phase physics.Phase, a, b collision.Category) Outcome {
	switch phase {
	case physics.ContactBegin:
		if pairOf(a, b, playerMask, obstacleMask) {
			return FatalHit
		}
	case physics.ContactEnd:
		if pairOf(a, b, playerMask, triggerMask) {
			return ScorePass
		}
	}
	return Ignored
}

// pairOf reports whether one side is in x and the other in y.
func pairOf(a, b collision.Category, x, y collision.Mask) bool {
	return (a.In(x) && b.In(y)) || (b.In(x) && a.In(y))
}
