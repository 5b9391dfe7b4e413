// Package flappy implements a Flappy Bird-style game on top of a Chipmunk
// physics world and a small action-driven scene graph.
//
// The bird sits at a fixed column and only moves vertically; obstacle pairs
// scroll in from the right. Touching a barrier ends the run, and leaving the
// score trigger line between two barriers scores a point.
package flappy

import (
	"errors"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-flappy/internal/collision"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/physics"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/scene"
)

// Action keys.
const (
	KeyHover   = "hover"
	KeyFlap    = "flap"
	KeySpawn   = "spawnObstacles"
	KeyShaking = "shaking"
)

// Effect names.
const (
	EffectScoreBurst = "score-burst"
	EffectShake      = "shake"
)

// Effect is a transient visual effect requested by the game.
type Effect struct {
	Name     string
	Duration float64
	At       scene.Vec // Where the effect starts, in world units
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithRandomSource replaces the seeded obstacle placement source.
func WithRandomSource(rng RandomSource) Option {
	return func(g *Game) {
		g.placement = rng
	}
}

// WithShakeSource replaces the seeded shake offset source.
func WithShakeSource(rng scene.IntSource) Option {
	return func(g *Game) {
		g.shakeSrc = rng
	}
}

// Game is the scene: bird, obstacles, scrolling layers, physics and rules.
type Game struct {
	cfg       config.FlappyConfig
	rt        core.RuntimeConfig
	log       *log.Logger
	placement RandomSource
	shakeSrc  scene.IntSource
	shakeRNG  scene.IntSource

	width, height float64

	director *scene.Director
	world    *physics.World
	machine  *Machine
	score    ScoreTracker
	spawner  *Spawner

	root       *scene.Node
	shaking    *scene.Node // Shaken on game over, parent of obstacles and ground
	obstacles  *scene.Node
	bird       *scene.Node
	ground     *ScrollLayer
	background *ScrollLayer

	player *physics.Body
	floor  *physics.Body

	onEffect func(Effect)
	paused   bool
	tick     int
}

// New creates a game with the given configuration. Reset must be called
// before the first Step.
func New(cfg config.FlappyConfig, opts ...Option) *Game {
	g := &Game{
		cfg: cfg,
		log: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// OnScore registers the score display; it is called with every new value.
func (g *Game) OnScore(fn func(int)) {
	g.score.OnChange(fn)
}

// OnEffect registers the receiver of visual effect requests.
func (g *Game) OnEffect(fn func(Effect)) {
	g.onEffect = fn
}

// Reset builds a fresh scene sized for the runtime screen and enters
// Prepare.
func (g *Game) Reset(rt core.RuntimeConfig) {
	// Hosts may report an empty window; the playfield keeps at least one cell.
	rt.ScreenW = max(rt.ScreenW, 1)
	rt.ScreenH = max(rt.ScreenH, 1)
	g.rt = rt
	g.width = float64(rt.ScreenW) * g.cfg.World.CellWidth
	g.height = float64(rt.ScreenH) * g.cfg.World.CellHeight
	g.paused = false
	g.tick = 0

	placement := g.placement
	if placement == nil {
		placement = NewUniformSource(rt.Seed)
	}
	g.shakeRNG = g.shakeSrc
	if g.shakeRNG == nil {
		g.shakeRNG = rand.New(rand.NewPCG(uint64(rt.Seed), 0x5eed))
	}

	g.director = scene.NewDirector()
	g.world = physics.NewWorld(g.cfg.World.Gravity)
	g.machine = NewMachine(g.enterState)

	g.root = scene.NewNode("scene")
	g.background = NewScrollLayer("background", g.width, g.cfg.Scroll.BackgroundTileWidth,
		g.cfg.Scroll.GroundHeight, g.cfg.Obstacles.Speed/g.cfg.Scroll.BackgroundParallax)
	g.ground = NewScrollLayer("ground", g.width, g.cfg.Scroll.GroundTileWidth,
		0, g.cfg.Obstacles.Speed)
	g.shaking = scene.NewNode("shaking")
	g.obstacles = scene.NewNode("obstacles")
	g.bird = scene.NewNode("bird")

	g.root.AddChild(g.background.Node)
	g.root.AddChild(g.bird)
	g.shaking.AddChild(g.obstacles)
	g.shaking.AddChild(g.ground.Node)
	g.root.AddChild(g.shaking)

	g.background.Start(g.director)
	g.ground.Start(g.director)

	g.spawner = NewSpawner(g.cfg.Obstacles, g.width, g.height, g.world, g.director,
		g.obstacles, placement, g.log)

	g.mustCreateBodies()

	if err := g.machine.Start(); err != nil {
		g.log.Error("start", "err", err)
	}
}

// mustCreateBodies adds the bird and the floor. Their definitions come from
// a validated configuration and a non-empty playfield, so failure is a
// programming error.
func (g *Game) mustCreateBodies() {
	var err error
	g.player, err = g.world.CreateBody(physics.Def{
		Category:      collision.Player,
		CollisionMask: collision.MaskOf(collision.World, collision.Obstacle),
		ContactMask:   collision.MaskOf(collision.Obstacle, collision.ScoreTrigger),
		FixedRotation: true,
		Mass:          g.cfg.Player.Mass,
		Shape:         physics.Circle(g.cfg.Player.Radius),
		Position:      cp.Vector{X: g.cfg.Player.X, Y: g.height / 2},
	})
	if err != nil {
		panic(err)
	}
	g.floor, err = g.world.CreateBody(physics.Def{
		Category:      collision.World,
		CollisionMask: collision.MaskOf(collision.Player),
		Shape:         physics.Box(-g.width, 0, 2*g.width, g.cfg.Scroll.GroundHeight),
	})
	if err != nil {
		panic(err)
	}
}

// Current returns the active state.
func (g *Game) Current() State {
	return g.machine.Current()
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score.Value()
}

// Tap handles the primary action. In Prepare and GameOver it starts a run,
// unless the game over shake is still playing; in every accepted case it
// flaps.
func (g *Game) Tap() {
	switch g.machine.Current() {
	case StatePrepare, StateGameOver:
		if g.director.Active(g.shaking, KeyShaking) {
			g.log.Debug("tap ignored while shaking")
			return
		}
		if !g.enter(StateFlying) {
			return
		}
		g.flap()
	case StateFlying:
		g.flap()
	}
}

func (g *Game) flap() {
	g.player.ApplyImpulse(cp.Vector{Y: g.cfg.Player.FlapImpulse})
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionJump) {
		g.Tap()
	}
	g.Advance(g.rt.TickSeconds())
	return core.StepResult{State: g.State()}
}

// Advance runs dt seconds of simulation: actions, then physics, then the
// contacts the physics step reported.
func (g *Game) Advance(dt float64) {
	g.tick++
	g.director.Update(dt)

	g.spawner.Sync(dt)
	if !g.player.Dynamic() {
		g.player.Drive(toVector(g.bird.World()), dt)
	}

	contacts := g.world.Step(dt)

	if g.player.Dynamic() {
		p := g.player.Position()
		g.player.SetPosition(cp.Vector{X: g.cfg.Player.X, Y: p.Y})
		g.player.SetVelocity(cp.Vector{Y: g.player.Velocity().Y})
		g.bird.Pos = scene.Vec{X: g.cfg.Player.X, Y: p.Y}
	}

	g.handleContacts(contacts)
}

func (g *Game) handleContacts(contacts []physics.Contact) {
	for _, c := range contacts {
		switch outcome := Classify(c.Phase, c.CatA, c.CatB); outcome {
		case FatalHit:
			g.enter(StateGameOver)
		case ScorePass:
			g.scorePass()
		default:
			g.log.Debug("contact ignored", "phase", c.Phase, "a", c.CatA, "b", c.CatB)
		}
	}
}

func (g *Game) scorePass() {
	if g.machine.Current() != StateFlying {
		g.log.Debug("score pass ignored", "state", g.machine.Current())
		return
	}
	g.score.Increment()

	burst := scene.NewNode(EffectScoreBurst)
	g.bird.AddChild(burst)
	g.director.Run(burst, scene.Sequence(
		scene.Wait(g.cfg.Effects.ScoreBurstDuration),
		scene.Run(burst.RemoveFromParent),
	), "")
	g.emit(Effect{Name: EffectScoreBurst, Duration: g.cfg.Effects.ScoreBurstDuration, At: g.bird.World()})
}

func (g *Game) emit(e Effect) {
	if g.onEffect != nil {
		g.onEffect(e)
	}
}

// enter requests a transition and reports whether it happened. Rejected
// transitions are expected (a second fatal contact in the same step, for
// one) and only logged.
func (g *Game) enter(to State) bool {
	if err := g.machine.Enter(to); err != nil {
		if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrTransitionInFlight) {
			g.log.Debug("transition rejected", "err", err)
		} else {
			g.log.Error("transition failed", "err", err)
		}
		return false
	}
	g.log.Info("state changed", "state", to, "score", g.score.Value())
	return true
}

func (g *Game) enterState(from, to State) {
	switch to {
	case StatePrepare:
		g.enterPrepare()
	case StateFlying:
		g.enterFlying(from)
	case StateGameOver:
		g.enterGameOver()
	}
}

func (g *Game) enterPrepare() {
	g.obstacles.Speed = 0
	g.ground.SetFrozen(false)
	g.background.SetFrozen(false)

	g.player.SetDynamic(false)
	g.bird.Pos = scene.Vec{X: g.cfg.Player.X, Y: g.height / 2}
	g.player.SetPosition(toVector(g.bird.Pos))

	g.director.Run(g.bird, g.hoverAction(), KeyHover)
	g.director.Run(g.bird, g.flapAction(), KeyFlap)
}

func (g *Game) enterFlying(from State) {
	g.score.Reset()

	g.ground.SetFrozen(false)
	g.background.SetFrozen(false)

	g.director.Cancel(g.bird, KeyHover)
	g.player.SetDynamic(true)

	g.director.Run(g.obstacles, g.spawner.Cycle(), KeySpawn)
	g.obstacles.Speed = 1

	if from == StateGameOver {
		g.spawner.Clear()
		g.director.Run(g.bird, g.flapAction(), KeyFlap)
	}
}

func (g *Game) enterGameOver() {
	g.ground.SetFrozen(true)
	g.background.SetFrozen(true)
	g.obstacles.Speed = 0

	g.director.Cancel(g.bird, KeyFlap)
	g.director.Cancel(g.obstacles, KeySpawn)

	fx := g.cfg.Effects
	shake := scene.Shake(fx.ShakeDuration, fx.ShakeAmplitudeX, fx.ShakeAmplitudeY, g.shakeRNG)
	if err := g.director.RunExclusive(g.shaking, shake, KeyShaking); err != nil {
		g.log.Debug("shake ignored", "err", err)
		return
	}
	g.emit(Effect{Name: EffectShake, Duration: fx.ShakeDuration, At: g.shaking.World()})
}

func (g *Game) hoverAction() scene.Action {
	p := g.cfg.Player
	return scene.RepeatForever(scene.Sequence(
		scene.MoveByEased(0, p.HoverHeight, p.HoverDuration, scene.EaseInEaseOut),
		scene.MoveByEased(0, -p.HoverHeight, p.HoverDuration, scene.EaseInEaseOut),
	))
}

func (g *Game) flapAction() scene.Action {
	frames := g.cfg.Player.FlapFrames
	return scene.RepeatForever(scene.Sequence(
		scene.Run(func() { g.bird.Frame = (g.bird.Frame + 1) % frames }),
		scene.Wait(g.cfg.Player.FlapFrameTime),
	))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := g.machine.Current()
	return core.GameState{
		Phase:    state.String(),
		Score:    g.score.Value(),
		GameOver: state == StateGameOver,
		Paused:   g.paused,
	}
}

// Shaking reports whether the game over shake is still playing.
func (g *Game) Shaking() bool {
	return g.director.Active(g.shaking, KeyShaking)
}

// Ticks returns the number of simulated ticks since Reset.
func (g *Game) Ticks() int {
	return g.tick
}

// PlayerPosition returns the bird's position in world units.
func (g *Game) PlayerPosition() scene.Vec {
	return g.bird.World()
}

// PlayerVelocity returns the bird's vertical velocity.
func (g *Game) PlayerVelocity() float64 {
	return g.player.Velocity().Y
}

// Obstacles returns the number of live obstacle pairs.
func (g *Game) Obstacles() int {
	return g.spawner.Len()
}

func init() {
	registry.Register(registry.GameInfo{ID: "flappy", Title: "Flappy Bird"}, func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadFlappy(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg, WithLogger(opts.Logger)), nil
	})
}
