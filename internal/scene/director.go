package scene

import (
	"errors"
	"fmt"
)

// ErrActionActive is returned by RunExclusive when the key is already taken.
var ErrActionActive = errors.New("scene: action already active")

type actionKey struct {
	owner NodeID
	name  string
}

type entry struct {
	node *Node
	key  actionKey
	run  runner
	dead bool
}

// Director owns every running action. It is the registry mapping
// (node, key) to the running instance, and it advances them on Update.
// A Director is not safe for concurrent use.
type Director struct {
	entries []*entry
	index   map[actionKey]*entry
	anon    uint64
}

// NewDirector creates an empty director.
func NewDirector() *Director {
	return &Director{
		index: make(map[actionKey]*entry),
	}
}

// Run starts a on n. A non-empty key replaces any action already running
// under the same key on the same node; an empty key is never replaced.
func (d *Director) Run(n *Node, a Action, key string) {
	if key == "" {
		d.anon++
		key = fmt.Sprintf("#%d", d.anon)
	}
	k := actionKey{owner: n.ID(), name: key}
	if old, ok := d.index[k]; ok {
		old.dead = true
	}
	e := &entry{node: n, key: k, run: a.start()}
	d.entries = append(d.entries, e)
	d.index[k] = e
}

// RunExclusive starts a under key unless an action with that key is still
// running on n, in which case it returns ErrActionActive.
func (d *Director) RunExclusive(n *Node, a Action, key string) error {
	if d.Active(n, key) {
		return fmt.Errorf("%w: %s on %s", ErrActionActive, key, n.Name)
	}
	d.Run(n, a, key)
	return nil
}

// Active reports whether an action is running under key on n.
func (d *Director) Active(n *Node, key string) bool {
	e, ok := d.index[actionKey{owner: n.ID(), name: key}]
	return ok && !e.dead
}

// Cancel stops the action running under key on n. It reports whether one
// was running.
func (d *Director) Cancel(n *Node, key string) bool {
	k := actionKey{owner: n.ID(), name: key}
	e, ok := d.index[k]
	if !ok {
		return false
	}
	e.dead = true
	delete(d.index, k)
	return true
}

// CancelAll stops every action on n and on all of its descendants.
func (d *Director) CancelAll(n *Node) {
	owners := make(map[NodeID]struct{})
	n.Walk(func(c *Node) {
		owners[c.ID()] = struct{}{}
	})
	for _, e := range d.entries {
		if _, ok := owners[e.key.owner]; !ok || e.dead {
			continue
		}
		e.dead = true
		if d.index[e.key] == e {
			delete(d.index, e.key)
		}
	}
}

// Len returns the number of running actions.
func (d *Director) Len() int {
	return len(d.index)
}

// Update advances every running action by dt seconds scaled by its node's
// effective speed, in the order the actions were started. Actions started
// during Update begin on the next call.
func (d *Director) Update(dt float64) {
	count := len(d.entries)
	for i := 0; i < count; i++ {
		e := d.entries[i]
		if e.dead {
			continue
		}
		speed := e.node.EffectiveSpeed()
		if speed == 0 {
			continue
		}
		if _, done := e.run.step(e.node, dt*speed); done && !e.dead {
			e.dead = true
			if d.index[e.key] == e {
				delete(d.index, e.key)
			}
		}
	}

	live := d.entries[:0]
	for _, e := range d.entries {
		if !e.dead {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(d.entries); i++ {
		d.entries[i] = nil
	}
	d.entries = live
}
