// Package scene is a minimal node graph with declarative, time-driven actions.
//
// Nodes carry a local position and a speed multiplier. Actions (move-by,
// move-to, wait, sequence, repeat-forever, run) are descriptors; running them
// is the job of a Director, which keeps the registry of active actions keyed
// by (node, key) so they can be cancelled individually.
package scene

import (
	"sync/atomic"
)

// NodeID identifies a node for the lifetime of the process.
type NodeID uint64

var nodeSeq atomic.Uint64

// Vec is a 2D vector in world units. Y points up.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Node is an element of the scene tree.
type Node struct {
	id       NodeID
	Name     string
	Pos      Vec     // Position relative to the parent
	Speed    float64 // Action speed multiplier, 0 freezes
	Frame    int     // Animation frame, interpreted by the renderer
	parent   *Node
	children []*Node
}

// NewNode creates a detached node with speed 1.
func NewNode(name string) *Node {
	return &Node{
		id:    NodeID(nodeSeq.Add(1)),
		Name:  name,
		Speed: 1,
	}
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID {
	return n.id
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in insertion order.
// The returned slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild attaches c to n, detaching it from any previous parent.
func (n *Node) AddChild(c *Node) {
	if c.parent != nil {
		c.RemoveFromParent()
	}
	c.parent = n
	n.children = append(n.children, c)
}

// RemoveFromParent detaches n from its parent. It is a no-op for root nodes.
func (n *Node) RemoveFromParent() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// RemoveAllChildren detaches every child of n.
func (n *Node) RemoveAllChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// World returns the absolute position of n.
func (n *Node) World() Vec {
	p := n.Pos
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.Pos)
	}
	return p
}

// EffectiveSpeed is the product of the speeds of n and all its ancestors.
func (n *Node) EffectiveSpeed() float64 {
	s := n.Speed
	for a := n.parent; a != nil; a = a.parent {
		s *= a.Speed
	}
	return s
}

// Walk calls fn for n and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
