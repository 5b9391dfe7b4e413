// Package sim runs a game headless with a scripted tap pattern. Runs are
// deterministic for a given configuration, seed and pattern.
package sim

import (
	"errors"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// ErrNoTicks is returned when a run is asked for zero ticks.
var ErrNoTicks = errors.New("sim: ticks must be positive")

// Options describes a scripted run.
type Options struct {
	Ticks    int // Number of ticks to simulate
	TapEvery int // Tap on every n-th tick starting with the first, 0 never taps
	// StopOnGameOver ends the run at the first game over.
	StopOnGameOver bool
}

// Result summarises a run.
type Result struct {
	Ticks     int
	Taps      int
	State     core.GameState
	BestScore int
	Runs      int // Number of runs started by a tap
}

// Run resets g for rt and drives it for opts.Ticks ticks. Every tick is
// appended to trace when it is non-nil.
func Run(g *flappy.Game, rt core.RuntimeConfig, opts Options, trace *TraceWriter) (Result, error) {
	if opts.Ticks <= 0 {
		return Result{}, ErrNoTicks
	}
	g.Reset(rt)

	var res Result
	prev := g.Current()
	for tick := range opts.Ticks {
		var in core.InputFrame
		tapped := opts.TapEvery > 0 && tick%opts.TapEvery == 0
		if tapped {
			in.Set(core.ActionJump)
			res.Taps++
		}

		res.State = g.Step(in).State
		res.Ticks++
		res.BestScore = max(res.BestScore, res.State.Score)
		if cur := g.Current(); cur == flappy.StateFlying && prev != flappy.StateFlying {
			res.Runs++
		}
		prev = g.Current()

		err := trace.Write(TraceRecord{
			Tick:      g.Ticks(),
			Phase:     res.State.Phase,
			Score:     res.State.Score,
			Tapped:    tapped,
			BirdY:     g.PlayerPosition().Y,
			VelocityY: g.PlayerVelocity(),
			Obstacles: g.Obstacles(),
			Shaking:   g.Shaking(),
		})
		if err != nil {
			return res, err
		}
		if opts.StopOnGameOver && res.State.GameOver {
			break
		}
	}
	return res, nil
}
