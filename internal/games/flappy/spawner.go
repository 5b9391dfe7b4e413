package flappy

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vovakirdan/tui-flappy/internal/collision"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/physics"
	"github.com/vovakirdan/tui-flappy/internal/scene"
)

// RandomSource draws the vertical placement factor of a new obstacle pair,
// symmetric in [-1, 1].
type RandomSource interface {
	Rand() float64
}

// NewUniformSource returns a seeded uniform source over [-1, 1].
func NewUniformSource(seed int64) RandomSource {
	return distuv.Uniform{
		Min: -1,
		Max: 1,
		Src: rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15),
	}
}

// ObstacleID identifies an obstacle pair for the lifetime of a spawner.
type ObstacleID uint32

// Obstacle is a pair of barriers with a score trigger line between them.
// All geometry is relative to Node, whose x is the pair's left edge.
type Obstacle struct {
	ID             ObstacleID
	Node           *scene.Node
	Upper          *physics.Body
	Lower          *physics.Body
	Trigger        *physics.Body
	VerticalOffset float64 // Centre of the gap
	Width          float64
	Gap            float64
}

// UpperBottom returns the y of the upper barrier's bottom edge.
func (o *Obstacle) UpperBottom() float64 {
	return o.VerticalOffset + o.Gap/2
}

// LowerTop returns the y of the lower barrier's top edge.
func (o *Obstacle) LowerTop() float64 {
	return o.VerticalOffset - o.Gap/2
}

// Spawner creates obstacle pairs, moves them across the playfield and owns
// them until they are removed.
type Spawner struct {
	cfg      config.FlappyObstacles
	width    float64
	height   float64
	world    *physics.World
	director *scene.Director
	layer    *scene.Node
	rng      RandomSource
	log      *log.Logger

	obstacles *intmap.Map[ObstacleID, *Obstacle]
	nextID    ObstacleID
}

// NewSpawner creates a spawner that adds pairs under layer. width and
// height are the playfield size.
func NewSpawner(cfg config.FlappyObstacles, width, height float64, world *physics.World,
	director *scene.Director, layer *scene.Node, rng RandomSource, logger *log.Logger,
) *Spawner {
	return &Spawner{
		cfg:       cfg,
		width:     width,
		height:    height,
		world:     world,
		director:  director,
		layer:     layer,
		rng:       rng,
		log:       logger,
		obstacles: intmap.New[ObstacleID, *Obstacle](16),
	}
}

// Len returns the number of live obstacle pairs.
func (s *Spawner) Len() int {
	return s.obstacles.Len()
}

// Get looks up a pair by ID.
func (s *Spawner) Get(id ObstacleID) (*Obstacle, bool) {
	return s.obstacles.Get(id)
}

// Each calls fn for every live pair, in no particular order.
func (s *Spawner) Each(fn func(*Obstacle)) {
	s.obstacles.ForEach(func(_ ObstacleID, o *Obstacle) bool {
		fn(o)
		return true
	})
}

// travel returns the distance a pair moves from the right edge until it has
// fully left the playfield.
func (s *Spawner) travel() float64 {
	return s.width + s.cfg.Width
}

// Spawn creates a pair at the right edge and starts moving it left. It
// removes itself once the movement completes.
func (s *Spawner) Spawn() (*Obstacle, error) {
	offset := s.height/2 + s.rng.Rand()*s.cfg.PositionVariance
	w, h := s.cfg.Width, s.height

	s.nextID++
	o := &Obstacle{
		ID:             s.nextID,
		Node:           scene.NewNode(fmt.Sprintf("obstacle-%d", s.nextID)),
		VerticalOffset: offset,
		Width:          w,
		Gap:            s.cfg.Gap,
	}
	o.Node.Pos = scene.Vec{X: s.width}
	s.layer.AddChild(o.Node)
	at := toVector(o.Node.World())

	barrier := func(bottom float64) (*physics.Body, error) {
		return s.world.CreateBody(physics.Def{
			Category:      collision.Obstacle,
			CollisionMask: collision.MaskOf(collision.Player),
			Shape:         physics.Box(0, bottom, w, bottom+h),
			Position:      at,
		})
	}
	var err error
	if o.Upper, err = barrier(o.UpperBottom()); err != nil {
		s.discard(o)
		return nil, fmt.Errorf("flappy: spawn upper barrier: %w", err)
	}
	if o.Lower, err = barrier(o.LowerTop() - h); err != nil {
		s.discard(o)
		return nil, fmt.Errorf("flappy: spawn lower barrier: %w", err)
	}
	o.Trigger, err = s.world.CreateBody(physics.Def{
		Category: collision.ScoreTrigger,
		Shape:    physics.Segment(cp.Vector{X: w}, cp.Vector{Y: h}, 0),
		Position: at,
	})
	if err != nil {
		s.discard(o)
		return nil, fmt.Errorf("flappy: spawn trigger: %w", err)
	}

	id := o.ID
	distance := s.travel()
	s.director.Run(o.Node, scene.Sequence(
		scene.MoveTo(s.width, 0, 0),
		scene.MoveBy(-distance, 0, distance/s.cfg.Speed),
		scene.Run(func() { s.Remove(id) }),
	), "move")

	s.obstacles.Put(o.ID, o)
	s.log.Debug("obstacle spawned", "id", o.ID, "offset", offset)
	return o, nil
}

// Remove destroys a pair's bodies and node. It reports whether the pair
// existed.
func (s *Spawner) Remove(id ObstacleID) bool {
	o, ok := s.obstacles.Get(id)
	if !ok {
		return false
	}
	s.obstacles.Del(id)
	s.discard(o)
	s.log.Debug("obstacle removed", "id", id)
	return true
}

// Clear removes every pair.
func (s *Spawner) Clear() {
	ids := make([]ObstacleID, 0, s.obstacles.Len())
	for id := range s.obstacles.Keys() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		s.Remove(id)
	}
}

func (s *Spawner) discard(o *Obstacle) {
	s.director.CancelAll(o.Node)
	o.Node.RemoveFromParent()
	for _, b := range []*physics.Body{o.Upper, o.Lower, o.Trigger} {
		if b != nil {
			s.world.DestroyBody(b)
		}
	}
}

// Cycle returns the action that spawns pairs forever: wait the initial
// delay, then spawn and wait the interval, repeatedly.
func (s *Spawner) Cycle() scene.Action {
	return scene.Sequence(
		scene.Wait(s.cfg.InitialDelay),
		scene.RepeatForever(scene.Sequence(
			scene.Run(func() {
				if _, err := s.Spawn(); err != nil {
					s.log.Error("spawn failed", "err", err)
				}
			}),
			scene.Wait(s.cfg.SpawnInterval),
		)),
	)
}

// Sync drives every pair's bodies to its node's position over the next
// physics step of dt seconds.
func (s *Spawner) Sync(dt float64) {
	s.Each(func(o *Obstacle) {
		at := toVector(o.Node.World())
		o.Upper.Drive(at, dt)
		o.Lower.Drive(at, dt)
		o.Trigger.Drive(at, dt)
	})
}

func toVector(v scene.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
