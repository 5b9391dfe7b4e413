package flappy

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/collision"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/physics"
	"github.com/vovakirdan/tui-flappy/internal/scene"
)

type fixedSource float64

func (f fixedSource) Rand() float64 { return float64(f) }

const (
	testWidth  = 640.0
	testHeight = 576.0
)

type spawnerFixture struct {
	cfg      config.FlappyObstacles
	world    *physics.World
	director *scene.Director
	layer    *scene.Node
	spawner  *Spawner
}

func newSpawnerFixture(rng RandomSource) *spawnerFixture {
	f := &spawnerFixture{
		cfg:      config.DefaultFlappyConfig().Obstacles,
		world:    physics.NewWorld(0),
		director: scene.NewDirector(),
		layer:    scene.NewNode("obstacles"),
	}
	f.spawner = NewSpawner(f.cfg, testWidth, testHeight, f.world, f.director, f.layer, rng, log.New(io.Discard))
	return f
}

func TestSpawnGapIsExact(t *testing.T) {
	for _, u := range []float64{-1, -0.37, 0, 0.5, 1} {
		f := newSpawnerFixture(fixedSource(u))
		o, err := f.spawner.Spawn()
		require.NoError(t, err)

		assert.InDelta(t, testHeight/2+u*f.cfg.PositionVariance, o.VerticalOffset, 1e-9)
		assert.Equal(t, f.cfg.Gap, o.UpperBottom()-o.LowerTop())

		upper := o.Upper.Def().Shape.Box
		lower := o.Lower.Def().Shape.Box
		assert.Equal(t, f.cfg.Gap, upper.B-lower.T, "barrier bodies must leave the configured gap")
		assert.Equal(t, testHeight, upper.T-upper.B)
		assert.Equal(t, testHeight, lower.T-lower.B)
	}
}

func TestSpawnOffsetWithinVariance(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		f := newSpawnerFixture(NewUniformSource(seed))
		mean, variance := testHeight/2, f.cfg.PositionVariance
		for range 25 {
			o, err := f.spawner.Spawn()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, o.VerticalOffset, mean-variance)
			assert.LessOrEqual(t, o.VerticalOffset, mean+variance)
		}
	}
}

func TestUniformSourceIsSeeded(t *testing.T) {
	a, b, c := NewUniformSource(7), NewUniformSource(7), NewUniformSource(8)
	var sa, sb, sc []float64
	for range 10 {
		sa = append(sa, a.Rand())
		sb = append(sb, b.Rand())
		sc = append(sc, c.Rand())
	}
	assert.Equal(t, sa, sb)
	assert.NotEqual(t, sa, sc)
}

func TestSpawnBodies(t *testing.T) {
	f := newSpawnerFixture(fixedSource(0))
	o, err := f.spawner.Spawn()
	require.NoError(t, err)

	assert.Equal(t, 3, f.world.Len())
	assert.Equal(t, collision.Obstacle, o.Upper.Category())
	assert.Equal(t, collision.Obstacle, o.Lower.Category())
	assert.Equal(t, collision.ScoreTrigger, o.Trigger.Category())
	assert.True(t, o.Trigger.Def().CollisionMask.Empty(), "trigger never collides")
	assert.False(t, o.Upper.Dynamic())

	assert.Equal(t, testWidth, o.Node.Pos.X, "pairs start at the right edge")
	assert.Same(t, f.layer, o.Node.Parent())
}

func TestObstacleRemovesItselfAfterCrossing(t *testing.T) {
	f := newSpawnerFixture(fixedSource(0))
	o, err := f.spawner.Spawn()
	require.NoError(t, err)

	travel := (testWidth + f.cfg.Width) / f.cfg.Speed
	f.director.Update(travel / 2)
	assert.InDelta(t, testWidth-f.cfg.Speed*travel/2, o.Node.Pos.X, 1e-9)
	assert.Equal(t, 1, f.spawner.Len())

	f.director.Update(travel/2 + 0.01)
	assert.Equal(t, 0, f.spawner.Len())
	assert.Equal(t, 0, f.world.Len())
	assert.Empty(t, f.layer.Children())
	_, ok := f.spawner.Get(o.ID)
	assert.False(t, ok)
}

func TestFrozenLayerStopsObstacles(t *testing.T) {
	f := newSpawnerFixture(fixedSource(0))
	o, err := f.spawner.Spawn()
	require.NoError(t, err)

	f.director.Update(1)
	x := o.Node.Pos.X
	f.layer.Speed = 0
	f.director.Update(100)
	assert.Equal(t, x, o.Node.Pos.X)
	assert.Equal(t, 1, f.spawner.Len())
}

func TestClearRemovesEverything(t *testing.T) {
	f := newSpawnerFixture(fixedSource(0))
	for range 3 {
		_, err := f.spawner.Spawn()
		require.NoError(t, err)
	}
	require.Equal(t, 3, f.spawner.Len())

	f.spawner.Clear()
	assert.Equal(t, 0, f.spawner.Len())
	assert.Equal(t, 0, f.world.Len())
	assert.Empty(t, f.layer.Children())
	assert.Equal(t, 0, f.director.Len())
	assert.False(t, f.spawner.Remove(1))
}

func TestCycleCadence(t *testing.T) {
	f := newSpawnerFixture(fixedSource(0))
	f.director.Run(f.layer, f.spawner.Cycle(), KeySpawn)

	f.director.Update(f.cfg.InitialDelay / 2)
	assert.Equal(t, 0, f.spawner.Len())
	f.director.Update(f.cfg.InitialDelay / 2)
	assert.Equal(t, 1, f.spawner.Len())
	f.director.Update(f.cfg.SpawnInterval)
	assert.Equal(t, 2, f.spawner.Len())

	require.True(t, f.director.Cancel(f.layer, KeySpawn))
	f.director.Update(f.cfg.SpawnInterval * 2)
	assert.Equal(t, 2, f.spawner.Len(), "a cancelled cycle spawns nothing")
}

func TestSyncDrivesBodiesToNode(t *testing.T) {
	f := newSpawnerFixture(fixedSource(0))
	o, err := f.spawner.Spawn()
	require.NoError(t, err)

	dt := 1.0 / 60
	f.director.Update(dt)
	f.spawner.Sync(dt)
	f.world.Step(dt)

	want := o.Node.World()
	for _, b := range []*physics.Body{o.Upper, o.Lower, o.Trigger} {
		assert.InDelta(t, want.X, b.Position().X, 1e-6)
		assert.InDelta(t, want.Y, b.Position().Y, 1e-6)
	}
}
