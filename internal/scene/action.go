package scene

// Action is an immutable action descriptor. The same descriptor may be run on
// many nodes at once; per-run state lives in the runner it starts.
type Action interface {
	start() runner
}

// runner advances one running instance of an action. step consumes up to dt
// seconds and reports the unused remainder once the action is done, so
// sequences hand leftover time to their next element.
type runner interface {
	step(n *Node, dt float64) (left float64, done bool)
}

// Timing maps linear progress in [0,1] to eased progress in [0,1].
type Timing func(t float64) float64

// Linear is the identity timing.
func Linear(t float64) float64 { return t }

// EaseInEaseOut accelerates from rest and decelerates to rest.
func EaseInEaseOut(t float64) float64 {
	return t * t * (3 - 2*t)
}

// MoveBy translates a node by (dx, dy) over d seconds.
func MoveBy(dx, dy, d float64) Action {
	return moveBy{delta: Vec{X: dx, Y: dy}, d: d, timing: Linear}
}

// MoveByEased is MoveBy with a custom timing curve.
func MoveByEased(dx, dy, d float64, timing Timing) Action {
	if timing == nil {
		timing = Linear
	}
	return moveBy{delta: Vec{X: dx, Y: dy}, d: d, timing: timing}
}

type moveBy struct {
	delta  Vec
	d      float64
	timing Timing
}

func (a moveBy) start() runner {
	return &moveByRun{a: a}
}

type moveByRun struct {
	a       moveBy
	elapsed float64
	applied Vec
}

func (r *moveByRun) step(n *Node, dt float64) (float64, bool) {
	if r.a.d <= 0 {
		r.finish(n)
		return dt, true
	}
	t := r.elapsed + dt
	if t >= r.a.d {
		r.finish(n)
		return t - r.a.d, true
	}
	r.elapsed = t
	f := r.a.timing(t / r.a.d)
	target := Vec{X: r.a.delta.X * f, Y: r.a.delta.Y * f}
	n.Pos = n.Pos.Add(target.Sub(r.applied))
	r.applied = target
	return 0, false
}

// finish applies exactly what is left of the delta.
func (r *moveByRun) finish(n *Node) {
	n.Pos = n.Pos.Add(r.a.delta.Sub(r.applied))
	r.applied = r.a.delta
}

// MoveTo moves a node to (x, y) over d seconds, starting from wherever the
// node is when the action begins.
func MoveTo(x, y, d float64) Action {
	return moveTo{to: Vec{X: x, Y: y}, d: d}
}

type moveTo struct {
	to Vec
	d  float64
}

func (a moveTo) start() runner {
	return &moveToRun{a: a}
}

type moveToRun struct {
	a     moveTo
	inner runner
}

func (r *moveToRun) step(n *Node, dt float64) (float64, bool) {
	if r.inner == nil {
		delta := r.a.to.Sub(n.Pos)
		r.inner = moveBy{delta: delta, d: r.a.d, timing: Linear}.start()
	}
	return r.inner.step(n, dt)
}

// Wait does nothing for d seconds.
func Wait(d float64) Action {
	return wait{d: d}
}

type wait struct {
	d float64
}

func (a wait) start() runner {
	return &waitRun{d: a.d}
}

type waitRun struct {
	d       float64
	elapsed float64
}

func (r *waitRun) step(_ *Node, dt float64) (float64, bool) {
	t := r.elapsed + dt
	if t >= r.d {
		return t - r.d, true
	}
	r.elapsed = t
	return 0, false
}

// Run calls fn once, instantly.
func Run(fn func()) Action {
	return run{fn: fn}
}

type run struct {
	fn func()
}

func (a run) start() runner {
	return a
}

func (a run) step(_ *Node, dt float64) (float64, bool) {
	if a.fn != nil {
		a.fn()
	}
	return dt, true
}

// Sequence runs actions one after another.
func Sequence(actions ...Action) Action {
	return sequence{actions: actions}
}

type sequence struct {
	actions []Action
}

func (a sequence) start() runner {
	return &sequenceRun{a: a}
}

type sequenceRun struct {
	a   sequence
	idx int
	cur runner
}

func (r *sequenceRun) step(n *Node, dt float64) (float64, bool) {
	for r.idx < len(r.a.actions) {
		if r.cur == nil {
			r.cur = r.a.actions[r.idx].start()
		}
		left, done := r.cur.step(n, dt)
		if !done {
			return 0, false
		}
		r.idx++
		r.cur = nil
		dt = left
	}
	return dt, true
}

// RepeatForever restarts a every time it finishes. It never completes.
func RepeatForever(a Action) Action {
	return repeatForever{inner: a}
}

type repeatForever struct {
	inner Action
}

func (a repeatForever) start() runner {
	return &repeatRun{a: a}
}

type repeatRun struct {
	a   repeatForever
	cur runner
}

func (r *repeatRun) step(n *Node, dt float64) (float64, bool) {
	for {
		if r.cur == nil {
			r.cur = r.a.inner.start()
		}
		left, done := r.cur.step(n, dt)
		if !done {
			return 0, false
		}
		r.cur = nil
		// an iteration that consumed no time waits for the next tick
		if left >= dt {
			return 0, false
		}
		dt = left
	}
}

// Duration returns the total duration of a finite action, or -1 for actions
// that never finish.
func Duration(a Action) float64 {
	switch v := a.(type) {
	case moveBy:
		return v.d
	case moveTo:
		return v.d
	case wait:
		return v.d
	case run:
		return 0
	case shake:
		return Duration(v.moves)
	case sequence:
		total := 0.0
		for _, c := range v.actions {
			d := Duration(c)
			if d < 0 {
				return -1
			}
			total += d
		}
		return total
	default:
		return -1
	}
}
