package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '▶'
	BarrierChar   = '█'
	CapTopChar    = '▄'
	CapBottomChar = '▀'
	GroundChar    = '▓'
	GroundAltChar = '▒'
	SoilChar      = '░'
	HillChar      = '▒'
	CloudChar     = '~'
)

// wingChars are the flap animation frames, drawn behind the bird.
var wingChars = []rune{'^', '-', 'v'}

// Render draws the scene. World y grows upwards; screen rows grow
// downwards. A cell belongs to a shape when the cell centre lies inside it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.machine == nil {
		return
	}
	v := g.viewport(dst)

	g.drawBackground(dst, v)
	g.spawner.Each(func(o *Obstacle) {
		g.drawObstacle(dst, v, o)
	})
	g.drawGround(dst, v)
	g.drawBird(dst, v)
	g.drawHUD(dst)
}

// viewport maps world units to screen cells.
type viewport struct {
	cw, ch float64
	rows   int
	jx, jy int // Whole-cell shake offset of the shaking container
}

func (g *Game) viewport(dst *core.Screen) viewport {
	off := g.shaking.Pos
	return viewport{
		cw:   g.cfg.World.CellWidth,
		ch:   g.cfg.World.CellHeight,
		rows: dst.Height(),
		jx:   sign(off.X),
		jy:   -sign(off.Y),
	}
}

// cell returns the cell containing the world point (x, y).
func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor(x / v.cw)), v.rows - 1 - int(math.Floor(y/v.ch))
}

// rect returns the cells whose centres lie inside the world box.
func (v viewport) rect(x0, y0, x1, y1 float64) core.Rect {
	c0 := int(math.Ceil(x0/v.cw - 0.5))
	c1 := int(math.Floor(x1/v.cw - 0.5))
	k0 := int(math.Ceil(y0/v.ch - 0.5))
	k1 := int(math.Floor(y1/v.ch - 0.5))
	if c1 < c0 || k1 < k0 {
		return core.Rect{}
	}
	return core.NewRect(c0, v.rows-1-k1, c1-c0+1, k1-k0+1)
}

func (v viewport) shaken(r core.Rect) core.Rect {
	r.X += v.jx
	r.Y += v.jy
	return r
}

func (g *Game) drawBackground(dst *core.Screen, v viewport) {
	tile := g.background.TileWidth
	groundTop := v.rows - 1 - int(math.Floor(g.cfg.Scroll.GroundHeight/v.ch-0.5))
	for c := 0; c < dst.Width(); c++ {
		m := wrap((float64(c)+0.5)*v.cw-g.background.Offset(), tile)
		hill := int(math.Round(2.5 * math.Sin(math.Pi*m/tile)))
		for j := 1; j <= hill; j++ {
			dst.SetColored(c, groundTop-j, HillChar, core.ColorSky)
		}
		if m >= tile*0.3 && m < tile*0.5 {
			dst.SetColored(c, 3, CloudChar, core.ColorSky)
		}
	}
}

func (g *Game) drawObstacle(dst *core.Screen, v viewport, o *Obstacle) {
	x := o.Node.World().X - g.shaking.Pos.X
	top := g.height + v.ch

	upper := v.shaken(v.rect(x, o.UpperBottom(), x+o.Width, top))
	if !upper.Empty() {
		dst.FillRect(upper, BarrierChar, core.ColorObstacle)
		dst.DrawHLine(upper.X, upper.Bottom()-1, upper.W, CapTopChar, core.ColorObstacle)
	}
	lower := v.shaken(v.rect(x, -v.ch, x+o.Width, o.LowerTop()))
	if !lower.Empty() {
		dst.FillRect(lower, BarrierChar, core.ColorObstacle)
		dst.DrawHLine(lower.X, lower.Y, lower.W, CapBottomChar, core.ColorObstacle)
	}
}

func (g *Game) drawGround(dst *core.Screen, v viewport) {
	r := v.shaken(v.rect(-v.cw, 0, g.width+v.cw, g.cfg.Scroll.GroundHeight))
	if r.Empty() {
		return
	}
	dst.FillRect(r, SoilChar, core.ColorGround)

	tile := g.ground.TileWidth
	for c := r.X; c < r.Right(); c++ {
		m := wrap((float64(c-v.jx)+0.5)*v.cw-g.ground.Offset(), tile)
		ch := GroundChar
		if m >= tile/2 {
			ch = GroundAltChar
		}
		dst.SetColored(c, r.Y, ch, core.ColorGround)
	}
}

func (g *Game) drawBird(dst *core.Screen, v viewport) {
	p := g.bird.World()
	c, r := v.cell(p.X, p.Y)
	dst.SetColored(c, r, BirdChar, core.ColorBird)
	dst.SetColored(c-1, r, wingChars[g.bird.Frame%len(wingChars)], core.ColorBird)

	for i, child := range g.bird.Children() {
		if child.Name == EffectScoreBurst {
			dst.DrawText(c+1, r-1-i, "+1", core.ColorBurst)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	state := g.machine.Current()
	if state != StatePrepare {
		dst.DrawTextCentered(0, fmt.Sprintf(" %d ", g.score.Value()), core.ColorScore)
	}

	switch {
	case g.paused:
		drawMessage(dst, "PAUSED", "Press P to resume")
	case state == StatePrepare:
		drawMessage(dst, g.Title(), "Press SPACE to flap")
	case state == StateGameOver && !g.Shaking():
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  SPACE to fly again", g.score.Value()))
	}
}

// drawMessage draws a message box in the upper third of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, max((dst.Height()/3)-boxH/2, 1), boxW, boxH)

	dst.FillRect(box, ' ', core.ColorText)
	dst.DrawBox(box, core.ColorText)
	dst.DrawTextCentered(box.Y+1, title, core.ColorText)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorText)
}

// jitterEpsilon is the smallest shake offset that moves a whole cell.
const jitterEpsilon = 1e-6

// sign returns the direction of x, treating float noise as zero.
func sign(x float64) int {
	switch {
	case x > jitterEpsilon:
		return 1
	case x < -jitterEpsilon:
		return -1
	}
	return 0
}

// wrap returns x modulo m in [0, m).
func wrap(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
