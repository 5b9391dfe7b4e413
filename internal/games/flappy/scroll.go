package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/scene"
)

// ScrollKey is the action key of a layer's loop.
const ScrollKey = "scroll"

// ScrollLayer is a strip of identical tiles that loops to the left forever.
// The loop runs on the layer node, so its Speed freezes and resumes every
// tile at once without resetting the phase.
type ScrollLayer struct {
	Node      *scene.Node
	Tiles     []*scene.Node
	TileWidth float64
	Speed     float64 // World units per second at layer speed 1
}

// TileCount returns how many tiles cover width with one to spare.
func TileCount(width, tileWidth float64) int {
	return int(math.Ceil(width/tileWidth)) + 1
}

// NewScrollLayer creates a layer of tiles placed edge to edge from x = 0 at
// height y.
func NewScrollLayer(name string, width, tileWidth, y, speed float64) *ScrollLayer {
	l := &ScrollLayer{
		Node:      scene.NewNode(name),
		TileWidth: tileWidth,
		Speed:     speed,
	}
	n := TileCount(width, tileWidth)
	l.Tiles = make([]*scene.Node, n)
	for i := range n {
		t := scene.NewNode(fmt.Sprintf("%s-%d", name, i))
		t.Pos = scene.Vec{X: float64(i) * tileWidth, Y: y}
		l.Node.AddChild(t)
		l.Tiles[i] = t
	}
	return l
}

// CycleDuration is the time one loop iteration takes at layer speed 1.
func (l *ScrollLayer) CycleDuration() float64 {
	return l.TileWidth / l.Speed
}

// Loop returns the looping action: slide left one tile, then snap back.
func (l *ScrollLayer) Loop() scene.Action {
	return scene.RepeatForever(scene.Sequence(
		scene.MoveBy(-l.TileWidth, 0, l.CycleDuration()),
		scene.MoveBy(l.TileWidth, 0, 0),
	))
}

// Start runs the loop on the layer node.
func (l *ScrollLayer) Start(d *scene.Director) {
	d.Run(l.Node, l.Loop(), ScrollKey)
}

// SetFrozen sets the layer speed multiplier to 0 or 1.
func (l *ScrollLayer) SetFrozen(frozen bool) {
	if frozen {
		l.Node.Speed = 0
	} else {
		l.Node.Speed = 1
	}
}

// Frozen reports whether the layer is stopped.
func (l *ScrollLayer) Frozen() bool {
	return l.Node.Speed == 0
}

// Offset returns the current loop phase in [-TileWidth, 0].
func (l *ScrollLayer) Offset() float64 {
	return l.Node.Pos.X
}
