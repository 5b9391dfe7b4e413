package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type nopGame struct{ opts Options }

func (nopGame) ID() string                           { return "nop" }
func (nopGame) Title() string                        { return "Nop" }
func (nopGame) Reset(core.RuntimeConfig)             {}
func (nopGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (nopGame) Render(*core.Screen)                  {}
func (nopGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "test-nop", Title: "Nop"}, func(opts Options) (Game, error) {
		return nopGame{opts: opts}, nil
	})

	assert.True(t, Exists("test-nop"))
	assert.Contains(t, List(), GameInfo{ID: "test-nop", Title: "Nop"})

	g, err := Create("test-nop", Options{ConfigPath: "x.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "x.yaml", g.(nopGame).opts.ConfigPath)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) (Game, error) { return nopGame{}, nil }
	Register(GameInfo{ID: "test-dup"}, f)
	assert.Panics(t, func() { Register(GameInfo{ID: "test-dup"}, f) })
}

func TestCreateErrors(t *testing.T) {
	_, err := Create("test-missing", Options{})
	assert.ErrorIs(t, err, ErrUnknownGame)
	assert.False(t, Exists("test-missing"))

	boom := errors.New("boom")
	Register(GameInfo{ID: "test-broken"}, func(Options) (Game, error) { return nil, boom })
	_, err = Create("test-broken", Options{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "test-broken")
}

func TestListIsSorted(t *testing.T) {
	f := func(Options) (Game, error) { return nopGame{}, nil }
	Register(GameInfo{ID: "test-sort-b"}, f)
	Register(GameInfo{ID: "test-sort-a"}, f)

	games := List()
	for i := 1; i < len(games); i++ {
		assert.Less(t, games[i-1].ID, games[i].ID)
	}
}
