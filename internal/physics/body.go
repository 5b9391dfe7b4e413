package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-flappy/internal/collision"
)

// ShapeKind selects the collision geometry.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapeSegment
)

// Shape describes body-local collision geometry.
type Shape struct {
	Kind   ShapeKind
	Radius float64   // Circle radius, segment thickness
	Box    cp.BB     // Box bounds relative to the body position
	A, B   cp.Vector // Segment endpoints relative to the body position
}

// Circle returns a circle centred on the body.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Box returns an axis-aligned box spanning [l,r]x[b,t] in body space.
func Box(l, b, r, t float64) Shape {
	return Shape{Kind: ShapeBox, Box: cp.BB{L: l, B: b, R: r, T: t}}
}

// Segment returns a line segment from a to b in body space.
func Segment(a, b cp.Vector, thickness float64) Shape {
	return Shape{Kind: ShapeSegment, A: a, B: b, Radius: thickness}
}

func (s Shape) build(body *cp.Body) (*cp.Shape, error) {
	switch s.Kind {
	case ShapeCircle:
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: circle radius %v", ErrInvalidBody, s.Radius)
		}
		return cp.NewCircle(body, s.Radius, cp.Vector{}), nil
	case ShapeBox:
		if s.Box.R <= s.Box.L || s.Box.T <= s.Box.B {
			return nil, fmt.Errorf("%w: empty box %+v", ErrInvalidBody, s.Box)
		}
		return cp.NewBox2(body, s.Box, 0), nil
	case ShapeSegment:
		if s.A == s.B {
			return nil, fmt.Errorf("%w: degenerate segment", ErrInvalidBody)
		}
		return cp.NewSegment(body, s.A, s.B, s.Radius), nil
	default:
		return nil, fmt.Errorf("%w: shape kind %d", ErrInvalidBody, s.Kind)
	}
}

// Def is everything needed to create a body.
type Def struct {
	Category      collision.Category
	CollisionMask collision.Mask // Categories this body physically bounces off
	ContactMask   collision.Mask // Categories whose touch is reported
	Dynamic       bool           // Gravity and impulses apply
	FixedRotation bool
	Mass          float64
	Friction      float64
	Elasticity    float64
	Shape         Shape
	Position      cp.Vector
}

// Body is a physics body owned by one game object.
type Body struct {
	id      BodyID
	def     Def
	world   *World
	body    *cp.Body
	shape   *cp.Shape
	dynamic bool
}

// ID returns the body's identifier.
func (b *Body) ID() BodyID {
	return b.id
}

// Category returns the body's category tag.
func (b *Body) Category() collision.Category {
	return b.def.Category
}

// Def returns the definition the body was created from.
func (b *Body) Def() Def {
	return b.def
}

// Dynamic reports whether forces apply to the body.
func (b *Body) Dynamic() bool {
	return b.dynamic
}

// SetDynamic switches the body between dynamic (simulated) and kinematic
// (moved only by SetPosition and Drive). A body changing type stops moving.
func (b *Body) SetDynamic(dynamic bool) {
	if dynamic == b.dynamic {
		return
	}
	if dynamic {
		b.body.SetType(cp.BODY_DYNAMIC)
		b.body.SetVelocity(0, 0)
		mass := b.def.Mass
		if mass <= 0 {
			mass = 1
		}
		b.body.SetMass(mass)
		if b.def.FixedRotation {
			b.body.SetMoment(math.Inf(1))
		}
	} else {
		b.body.SetType(cp.BODY_KINEMATIC)
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
	}
	b.dynamic = dynamic
}

// Position returns the body position.
func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(p)
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() cp.Vector {
	return b.body.Velocity()
}

// SetVelocity overrides the linear velocity.
func (b *Body) SetVelocity(v cp.Vector) {
	b.body.SetVelocityVector(v)
}

// Drive sets the velocity of a kinematic body so that the next step of dt
// seconds ends at target. Dynamic bodies are left alone.
func (b *Body) Drive(target cp.Vector, dt float64) {
	if b.dynamic || dt <= 0 {
		return
	}
	b.body.SetVelocityVector(target.Sub(b.body.Position()).Mult(1 / dt))
}

// ApplyImpulse adds an impulse through the body's centre. It has no effect
// on a kinematic body.
func (b *Body) ApplyImpulse(impulse cp.Vector) {
	if !b.dynamic {
		return
	}
	b.body.ApplyImpulseAtLocalPoint(impulse, cp.Vector{})
}
