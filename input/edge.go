package input

// Edge turns a held button sampled once per tick into pressed and
// released pulses that last exactly one tick.
type Edge struct {
	held     bool
	pressed  bool
	released bool
}

// Update records this tick's held state.
func (e *Edge) Update(held bool) {
	e.pressed = held && !e.held
	e.released = !held && e.held
	e.held = held
}

func (e *Edge) Held() bool     { return e.held }
func (e *Edge) Pressed() bool  { return e.pressed }
func (e *Edge) Released() bool { return e.released }

// AxisSource reads one raw horizontal axis.
type AxisSource func() float64

// AxisSources resolves the horizontal axis from sources in priority order:
// the first non-zero source wins, and every call re-evaluates the list.
type AxisSources []AxisSource

func (a AxisSources) Value() float64 {
	for _, src := range a {
		if src == nil {
			continue
		}
		if v := src(); v != 0 {
			return clampAxis(v)
		}
	}
	return 0
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
