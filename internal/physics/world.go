// Package physics binds game objects to Chipmunk2D bodies.
//
// Each body carries one collision category, a collision mask (categories it
// physically bounces off) and a contact mask (categories whose touch is
// reported). Chipmunk's own filter only knows a symmetric mask, so every
// shape accepts all categories and the collision handler decides, per pair,
// whether to respond physically and whether to report the contact.
//
// Contact events are queued while the space steps and handed back by Step,
// so callers never observe them in the middle of a simulation step.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-flappy/internal/collision"
)

const collisionTypeBody cp.CollisionType = 1

// ErrInvalidBody is returned when a body definition cannot be built.
var ErrInvalidBody = errors.New("physics: invalid body definition")

// BodyID identifies a body inside a World.
type BodyID uint32

// Phase tells whether a contact started or ended.
type Phase int

const (
	ContactBegin Phase = iota
	ContactEnd
)

// String returns the phase name.
func (p Phase) String() string {
	if p == ContactBegin {
		return "begin"
	}
	return "end"
}

// Contact is a reported touch between two bodies.
type Contact struct {
	Phase Phase
	A, B  BodyID
	CatA  collision.Category
	CatB  collision.Category
}

// World owns a Chipmunk space and the bodies created in it.
type World struct {
	space    *cp.Space
	bodies   *intmap.Map[BodyID, *Body]
	nextID   BodyID
	pending  []Contact
	removing bool
}

// NewWorld creates a world with the given vertical gravity (negative pulls
// down).
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w := &World{
		space:  space,
		bodies: intmap.New[BodyID, *Body](64),
	}

	handler := space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok {
			return true
		}
		return world.begin(arb)
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		if world, ok := userData.(*World); ok {
			world.separate(arb)
		}
	}

	return w
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return w.bodies.Len()
}

// Body looks up a body by ID.
func (w *World) Body(id BodyID) (*Body, bool) {
	return w.bodies.Get(id)
}

// CreateBody builds a body and its shape from def and adds both to the space.
func (w *World) CreateBody(def Def) (*Body, error) {
	if !def.Category.Valid() {
		return nil, fmt.Errorf("%w: category %d", ErrInvalidBody, def.Category)
	}
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}

	cb := cp.NewBody(mass, math.Inf(1))
	cb.SetPosition(def.Position)
	w.space.AddBody(cb)

	shape, err := def.Shape.build(cb)
	if err != nil {
		w.space.RemoveBody(cb)
		return nil, err
	}
	shape.SetMass(mass)
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(def.Category),
		Mask:       cp.ALL_CATEGORIES,
	})

	w.nextID++
	b := &Body{
		id:    w.nextID,
		def:   def,
		world: w,
		body:  cb,
		shape: shape,
	}
	shape.UserData = b
	cb.UserData = b
	w.space.AddShape(shape)

	b.dynamic = !def.Dynamic
	b.SetDynamic(def.Dynamic)

	w.bodies.Put(b.id, b)
	return b, nil
}

// DestroyBody removes b and its shape from the space. Contacts that the
// removal would end are dropped, as are queued contacts that involve b.
func (w *World) DestroyBody(b *Body) {
	if b == nil || b.world != w {
		return
	}
	w.removing = true
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	w.removing = false

	w.bodies.Del(b.id)
	b.world = nil

	kept := w.pending[:0]
	for _, c := range w.pending {
		if c.A != b.id && c.B != b.id {
			kept = append(kept, c)
		}
	}
	w.pending = kept
}

// Step advances the simulation by dt seconds and returns the contacts
// reported during the step, in the order the engine produced them.
func (w *World) Step(dt float64) []Contact {
	w.space.Step(dt)
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]Contact, len(w.pending))
	copy(out, w.pending)
	w.pending = w.pending[:0]
	return out
}

func (w *World) pair(arb *cp.Arbiter) (*Body, *Body, bool) {
	sa, sb := arb.Shapes()
	a, okA := sa.UserData.(*Body)
	b, okB := sb.UserData.(*Body)
	return a, b, okA && okB
}

func (w *World) begin(arb *cp.Arbiter) bool {
	a, b, ok := w.pair(arb)
	if !ok {
		return true
	}
	if reports(a, b) {
		w.pending = append(w.pending, Contact{
			Phase: ContactBegin,
			A:     a.id, B: b.id,
			CatA: a.def.Category, CatB: b.def.Category,
		})
	}
	return collides(a, b)
}

func (w *World) separate(arb *cp.Arbiter) {
	if w.removing {
		return
	}
	a, b, ok := w.pair(arb)
	if !ok || !reports(a, b) {
		return
	}
	w.pending = append(w.pending, Contact{
		Phase: ContactEnd,
		A:     a.id, B: b.id,
		CatA: a.def.Category, CatB: b.def.Category,
	})
}

// collides reports whether either body bounces off the other.
func collides(a, b *Body) bool {
	return a.def.CollisionMask.Has(b.def.Category) || b.def.CollisionMask.Has(a.def.Category)
}

// reports reports whether either body wants to hear about touching the other.
func reports(a, b *Body) bool {
	return a.def.ContactMask.Has(b.def.Category) || b.def.ContactMask.Has(a.def.Category)
}
