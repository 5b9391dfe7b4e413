package scene

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestNodeWorldAndSpeed(t *testing.T) {
	root := NewNode("root")
	root.Pos = Vec{X: 10, Y: 5}
	root.Speed = 0.5

	child := NewNode("child")
	child.Pos = Vec{X: 1, Y: 2}
	child.Speed = 4
	root.AddChild(child)

	assert.Equal(t, Vec{X: 11, Y: 7}, child.World())
	assert.Equal(t, 2.0, child.EffectiveSpeed())

	child.RemoveFromParent()
	assert.Nil(t, child.Parent())
	assert.Empty(t, root.Children())
	assert.Equal(t, Vec{X: 1, Y: 2}, child.World())
}

func TestMoveByCarriesLeftover(t *testing.T) {
	d := NewDirector()
	n := NewNode("n")

	d.Run(n, Sequence(MoveBy(10, 0, 1), MoveBy(0, 10, 1)), "")
	d.Update(1.5)

	assert.InDelta(t, 10, n.Pos.X, eps)
	assert.InDelta(t, 5, n.Pos.Y, eps)
	assert.Equal(t, 1, d.Len())

	d.Update(0.5)
	assert.InDelta(t, 10, n.Pos.Y, eps)
	assert.Equal(t, 0, d.Len(), "finished sequence is dropped")
}

func TestMoveToAndZeroDuration(t *testing.T) {
	d := NewDirector()
	n := NewNode("n")
	n.Pos = Vec{X: 3, Y: 3}

	d.Run(n, Sequence(MoveTo(100, 0, 0), MoveBy(-50, 0, 1)), "move")
	d.Update(0)
	assert.InDelta(t, 100, n.Pos.X, eps)
	assert.InDelta(t, 0, n.Pos.Y, eps)

	d.Update(0.5)
	assert.InDelta(t, 75, n.Pos.X, eps)
}

func TestEasedMoveEndsExactly(t *testing.T) {
	d := NewDirector()
	n := NewNode("n")

	d.Run(n, MoveByEased(0, 15, 0.8, EaseInEaseOut), "hover")
	d.Update(0.4)
	assert.InDelta(t, 7.5, n.Pos.Y, eps, "smoothstep is symmetric")
	d.Update(0.4)
	assert.InDelta(t, 15, n.Pos.Y, eps)
}

func TestRunKeyReplacesAndCancel(t *testing.T) {
	d := NewDirector()
	n := NewNode("n")

	d.Run(n, MoveBy(10, 0, 1), "k")
	d.Run(n, MoveBy(0, 10, 1), "k")
	d.Update(1)

	assert.InDelta(t, 0, n.Pos.X, eps, "replaced action must not run")
	assert.InDelta(t, 10, n.Pos.Y, eps)

	d.Run(n, RepeatForever(Wait(1)), "loop")
	assert.True(t, d.Active(n, "loop"))
	assert.True(t, d.Cancel(n, "loop"))
	assert.False(t, d.Active(n, "loop"))
	assert.False(t, d.Cancel(n, "loop"))
}

func TestCancelByKeyLeavesOtherActions(t *testing.T) {
	d := NewDirector()
	n := NewNode("bird")

	d.Run(n, RepeatForever(MoveBy(1, 0, 1)), "hover")
	d.Run(n, RepeatForever(MoveBy(0, 1, 1)), "flap")
	d.Cancel(n, "hover")
	d.Update(2)

	assert.InDelta(t, 0, n.Pos.X, eps)
	assert.InDelta(t, 2, n.Pos.Y, eps)
	assert.True(t, d.Active(n, "flap"))
}

func TestRunExclusive(t *testing.T) {
	d := NewDirector()
	n := NewNode("shaking")

	require.NoError(t, d.RunExclusive(n, Wait(1), "shaking"))
	err := d.RunExclusive(n, Wait(1), "shaking")
	assert.True(t, errors.Is(err, ErrActionActive))

	d.Update(1)
	assert.NoError(t, d.RunExclusive(n, Wait(1), "shaking"), "key frees up once finished")
}

func TestSpeedFreezesAndResumes(t *testing.T) {
	d := NewDirector()
	layer := NewNode("layer")
	tile := NewNode("tile")
	layer.AddChild(tile)

	d.Run(tile, MoveBy(-100, 0, 1), "")
	d.Update(0.25)
	assert.InDelta(t, -25, tile.Pos.X, eps)

	layer.Speed = 0
	d.Update(10)
	assert.InDelta(t, -25, tile.Pos.X, eps, "frozen layer keeps its position")

	layer.Speed = 1
	d.Update(0.25)
	assert.InDelta(t, -50, tile.Pos.X, eps, "resumes mid-cycle")
}

func TestRepeatForeverLoopIsIdempotent(t *testing.T) {
	d := NewDirector()
	n := NewNode("ground")
	const tile, speed = 96.0, 100.0
	cycle := tile / speed

	d.Run(n, RepeatForever(Sequence(MoveBy(-tile, 0, cycle), MoveBy(tile, 0, 0))), "scroll")
	d.Update(cycle)
	assert.InDelta(t, 0, n.Pos.X, eps)

	d.Update(cycle / 2)
	assert.InDelta(t, -tile/2, n.Pos.X, eps)
	d.Update(cycle / 2)
	assert.InDelta(t, 0, n.Pos.X, eps)
}

func TestRepeatForeverZeroDurationRunsOncePerTick(t *testing.T) {
	d := NewDirector()
	n := NewNode("n")
	calls := 0

	d.Run(n, RepeatForever(Run(func() { calls++ })), "")
	d.Update(1)
	d.Update(1)
	assert.Equal(t, 2, calls)
}

func TestCancelAllIsRecursive(t *testing.T) {
	d := NewDirector()
	parent := NewNode("pair")
	child := NewNode("upper")
	parent.AddChild(child)
	other := NewNode("other")

	d.Run(parent, Wait(5), "a")
	d.Run(child, Wait(5), "b")
	d.Run(other, Wait(5), "c")
	d.CancelAll(parent)

	assert.False(t, d.Active(parent, "a"))
	assert.False(t, d.Active(child, "b"))
	assert.True(t, d.Active(other, "c"))
	assert.Equal(t, 1, d.Len())
}

func TestActionCancelledFromItsOwnCallback(t *testing.T) {
	d := NewDirector()
	n := NewNode("pair")
	moved := false

	d.Run(n, Sequence(Run(func() { d.CancelAll(n) }), Run(func() { moved = true })), "")
	d.Update(0.1)
	assert.Equal(t, 0, d.Len())
	assert.True(t, moved, "the running sequence finishes its tick")
}

func TestShakeReturnsToOrigin(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		seed uint64
	}{
		{"200Hz", 200, 7},
		{"144Hz", 144, 11},
		{"60Hz", 60, 3},
		{"30Hz", 30, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(tt.seed, 11))
			d := NewDirector()
			n := NewNode("shaking")
			origin := Vec{X: 4.1, Y: -2.3}
			n.Pos = origin

			const duration = 1.0
			d.Run(n, Shake(duration, DefaultShakeAmplitudeX, DefaultShakeAmplitudeY, rng), "shaking")

			dt := 1 / tt.rate
			elapsed := 0.0
			for d.Active(n, "shaking") {
				d.Update(dt)
				elapsed += dt
				require.Less(t, elapsed, 2*duration, "shake never finished")
			}

			assert.Equal(t, origin, n.Pos, "no residual drift")
			assert.InDelta(t, duration, elapsed, 2*ShakeStep+dt)
		})
	}
}

func TestShakeStepCountAndBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	a := Shake(1, 3, 3, rng)

	sh, ok := a.(shake)
	require.True(t, ok)
	seq := sh.moves
	steps := int(math.Floor(1 / (2 * ShakeStep)))
	assert.Len(t, seq.actions, steps*2)
	assert.InDelta(t, float64(steps)*2*ShakeStep, Duration(a), eps)

	var sum Vec
	for _, m := range seq.actions {
		mb := m.(moveBy)
		assert.GreaterOrEqual(t, mb.delta.X, -1.0)
		assert.LessOrEqual(t, mb.delta.X, 1.0)
		sum = sum.Add(mb.delta)
	}
	assert.InDelta(t, 0, sum.X, eps)
	assert.InDelta(t, 0, sum.Y, eps)
}

func TestShakeTooShort(t *testing.T) {
	assert.Equal(t, 0.0, Duration(Shake(0.01, 3, 3, rand.New(rand.NewPCG(1, 1)))))
}
