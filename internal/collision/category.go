// Package collision defines the category tags used to classify physics
// bodies and the mask algebra built on top of them.
//
// Every category owns exactly one bit in a 32-bit space. Masks are formed by
// OR-ing categories and membership is a bitwise AND. The bit assignment lives
// in a single table so no other package needs to know the raw values.
package collision

import "strings"

// Category is the physical role of a body. Exactly one bit is set.
type Category uint32

// Mask is a set of categories.
type Mask uint32

// Categories, in bit order.
const (
	World Category = 1 << iota
	Player
	Obstacle
	ScoreTrigger
)

// categoryNames is the fixed bit-assignment table.
var categoryNames = [...]struct {
	cat  Category
	name string
}{
	{World, "world"},
	{Player, "player"},
	{Obstacle, "obstacle"},
	{ScoreTrigger, "score"},
}

// None is the empty mask.
const None Mask = 0

// All returns the mask containing every known category.
func All() Mask {
	var m Mask
	for _, c := range categoryNames {
		m |= Mask(c.cat)
	}
	return m
}

// MaskOf builds a mask from the given categories.
func MaskOf(cats ...Category) Mask {
	var m Mask
	for _, c := range cats {
		m |= Mask(c)
	}
	return m
}

// Mask returns the single-category mask for c.
func (c Category) Mask() Mask {
	return Mask(c)
}

// In reports whether c is a member of m.
func (c Category) In(m Mask) bool {
	return uint32(c)&uint32(m) != 0
}

// Valid reports whether c is exactly one known category.
func (c Category) Valid() bool {
	for _, e := range categoryNames {
		if e.cat == c {
			return true
		}
	}
	return false
}

// String returns the category name, or "unknown".
func (c Category) String() string {
	for _, e := range categoryNames {
		if e.cat == c {
			return e.name
		}
	}
	return "unknown"
}

// Has reports whether c is a member of m.
func (m Mask) Has(c Category) bool {
	return c.In(m)
}

// Intersects reports whether m and other share at least one category.
func (m Mask) Intersects(other Mask) bool {
	return uint32(m)&uint32(other) != 0
}

// With returns m with the given categories added.
func (m Mask) With(cats ...Category) Mask {
	return m | MaskOf(cats...)
}

// Empty reports whether no category is set.
func (m Mask) Empty() bool {
	return m == None
}

// String lists the member categories joined by "|".
func (m Mask) String() string {
	if m.Empty() {
		return "none"
	}
	var parts []string
	for _, e := range categoryNames {
		if m.Has(e.cat) {
			parts = append(parts, e.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}
