package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

type constSource float64

func (c constSource) Rand() float64 { return float64(c) }

var rt = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}

func TestRunRejectsZeroTicks(t *testing.T) {
	_, err := Run(flappy.New(config.DefaultFlappyConfig()), rt, Options{}, nil)
	assert.ErrorIs(t, err, ErrNoTicks)
}

func TestRunWithoutTapsStaysInPrepare(t *testing.T) {
	var buf bytes.Buffer
	trace := NewTraceWriter(&buf)

	res, err := Run(flappy.New(config.DefaultFlappyConfig()), rt, Options{Ticks: 120}, trace)
	require.NoError(t, err)
	assert.Equal(t, 120, res.Ticks)
	assert.Equal(t, 0, res.Taps)
	assert.Equal(t, 0, res.Runs)
	assert.Equal(t, "prepare", res.State.Phase)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 121)
	assert.Equal(t, "tick,phase,score,tapped,bird_y,velocity_y,obstacles,shaking", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,prepare,0,false,"))
	assert.Equal(t, 120, trace.Rows())
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() (Result, string) {
		var buf bytes.Buffer
		res, err := Run(flappy.New(config.DefaultFlappyConfig()), rt,
			Options{Ticks: 900, TapEvery: 20}, NewTraceWriter(&buf))
		require.NoError(t, err)
		return res, buf.String()
	}
	r1, t1 := run()
	r2, t2 := run()
	assert.Equal(t, r1, r2)
	assert.Equal(t, t1, t2)
	assert.Equal(t, 45, r1.Taps)
	assert.GreaterOrEqual(t, r1.Runs, 1)
}

func TestRunStopsOnGameOver(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.World.Gravity = 0
	cfg.Player.FlapImpulse = 0
	cfg.Obstacles.InitialDelay = 0
	g := flappy.New(cfg, flappy.WithRandomSource(constSource(1)))

	res, err := Run(g, rt, Options{Ticks: 1200, TapEvery: 10000, StopOnGameOver: true}, nil)
	require.NoError(t, err)
	assert.True(t, res.State.GameOver)
	assert.Less(t, res.Ticks, 1200)
	assert.Equal(t, 1, res.Taps)
	assert.Equal(t, 1, res.Runs)
	assert.Equal(t, 0, res.BestScore)
}

func TestNilTraceWriter(t *testing.T) {
	var tw *TraceWriter
	assert.NoError(t, tw.Write(TraceRecord{}))
	assert.Equal(t, 0, tw.Rows())
}
