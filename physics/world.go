package physics

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/motion"
)

// Kind is how a shape takes part in character collision.
type Kind int

const (
	KindSolid Kind = iota
	// KindOneWay only blocks from above.
	KindOneWay
	// KindTrigger never blocks; it is reported by Triggers.
	KindTrigger
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindOneWay:
		return "one_way"
	case KindTrigger:
		return "trigger"
	}
	return "unknown"
}

// castInset keeps the outer probe rays just inside the box edges.
const castInset = 0.999

type entry struct {
	shape *cp.Shape
	kind  Kind
	bb    cp.BB
}

// ShapeInfo describes a shape for debug drawing.
type ShapeInfo struct {
	ID   motion.ShapeID
	Kind Kind
	BB   cp.BB
}

// World is a motion.World backed by a Chipmunk2D space holding static
// level geometry. Character boxes are never added to the space; every
// query builds a fresh probe shape at the requested pose.
type World struct {
	space   *cp.Space
	entries map[motion.ShapeID]*entry
	ids     map[*cp.Shape]motion.ShapeID
	nextID  motion.ShapeID
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 20
	return &World{
		space:   space,
		entries: make(map[motion.ShapeID]*entry),
		ids:     make(map[*cp.Shape]motion.ShapeID),
	}
}

// Space exposes the underlying space for debug drawing.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) AddSolid(bb cp.BB) motion.ShapeID {
	return w.add(bb, KindSolid)
}

func (w *World) AddOneWay(bb cp.BB) motion.ShapeID {
	return w.add(bb, KindOneWay)
}

func (w *World) AddTrigger(bb cp.BB) motion.ShapeID {
	return w.add(bb, KindTrigger)
}

func (w *World) add(bb cp.BB, kind Kind) motion.ShapeID {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	if kind == KindTrigger {
		shape.SetSensor(true)
	}
	w.space.AddShape(shape)

	w.nextID++
	id := w.nextID
	w.entries[id] = &entry{shape: shape, kind: kind, bb: bb}
	w.ids[shape] = id
	return id
}

// Remove deletes a shape. It reports false for unknown ids.
func (w *World) Remove(id motion.ShapeID) bool {
	e, ok := w.entries[id]
	if !ok {
		return false
	}
	w.space.RemoveShape(e.shape)
	delete(w.ids, e.shape)
	delete(w.entries, id)
	return true
}

// Clear removes every shape.
func (w *World) Clear() {
	for id := range w.entries {
		w.Remove(id)
	}
}

func (w *World) Kind(id motion.ShapeID) (Kind, bool) {
	e, ok := w.entries[id]
	if !ok {
		return 0, false
	}
	return e.kind, true
}

// Shapes lists every shape ordered by id.
func (w *World) Shapes() []ShapeInfo {
	out := make([]ShapeInfo, 0, len(w.entries))
	for id, e := range w.entries {
		out = append(out, ShapeInfo{ID: id, Kind: e.kind, BB: e.bb})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *World) probe(box motion.Box) *cp.Shape {
	body := cp.NewKinematicBody()
	body.SetPosition(box.Center)
	body.SetAngle(box.Rotation)
	return cp.NewBox(body, box.HalfExtents.X*2, box.HalfExtents.Y*2, 0)
}

// query collects the penetrating shapes matching keep, ordered by id.
func (w *World) query(box motion.Box, keep func(Kind) bool) []motion.ShapeID {
	var out []motion.ShapeID
	w.space.ShapeQuery(w.probe(box), func(shape *cp.Shape, points *cp.ContactPointSet) {
		id, ok := w.ids[shape]
		if !ok || !keep(w.entries[id].kind) {
			return
		}
		if penetrationDepth(points) <= 0 {
			return
		}
		out = append(out, id)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OverlapBox returns the solid and one-way shapes penetrating box.
func (w *World) OverlapBox(box motion.Box) []motion.ShapeID {
	return w.query(box, func(k Kind) bool { return k != KindTrigger })
}

// Triggers returns the trigger shapes overlapping box.
func (w *World) Triggers(box motion.Box) []motion.ShapeID {
	return w.query(box, func(k Kind) bool { return k == KindTrigger })
}

// Distance returns the minimum translation out of other. The contact
// normal points from other towards box.
func (w *World) Distance(box motion.Box, other motion.ShapeID) motion.Contact {
	c := motion.Contact{Other: other}
	e, ok := w.entries[other]
	if !ok {
		return c
	}
	c.OneWay = e.kind == KindOneWay

	var set cp.ContactPointSet
	found := false
	w.space.ShapeQuery(w.probe(box), func(shape *cp.Shape, points *cp.ContactPointSet) {
		if shape == e.shape {
			set = *points
			found = true
		}
	})
	if !found {
		return c
	}
	depth := penetrationDepth(&set)
	if depth <= 0 {
		return c
	}
	c.Normal = set.Normal.Neg()
	c.Separation = c.Normal.Mult(depth)
	c.Overlapping = true
	return c
}

// CastBox sweeps box along dir by casting three rays from the box centre
// across its leading face. Rotation is ignored.
func (w *World) CastBox(box motion.Box, dir cp.Vector, maxDistance float64) (motion.CastHit, bool) {
	if dir.X == 0 && dir.Y == 0 {
		return motion.CastHit{}, false
	}
	dir = dir.Normalize()
	perp := cp.Vector{X: -dir.Y, Y: dir.X}
	he := box.HalfExtents
	reach := math.Abs(dir.X)*he.X + math.Abs(dir.Y)*he.Y
	span := (math.Abs(perp.X)*he.X + math.Abs(perp.Y)*he.Y) * castInset
	length := reach + maxDistance

	var best motion.CastHit
	found := false
	for _, f := range []float64{-1, 0, 1} {
		start := box.Center.Add(perp.Mult(f * span))
		info := w.space.SegmentQueryFirst(start, start.Add(dir.Mult(length)), 0, cp.SHAPE_FILTER_ALL)
		if info.Shape == nil {
			continue
		}
		id, ok := w.ids[info.Shape]
		if !ok || w.entries[id].kind == KindTrigger {
			continue
		}
		d := math.Max(0, info.Alpha*length-reach)
		if !found || d < best.Distance {
			best = motion.CastHit{Other: id, Distance: d}
			found = true
		}
	}
	return best, found
}

// penetrationDepth is the deepest overlap in a contact set, or a
// non-positive value when the shapes only touch.
func penetrationDepth(set *cp.ContactPointSet) float64 {
	depth := 0.0
	for i := 0; i < set.Count; i++ {
		if d := -set.Points[i].Distance; d > depth {
			depth = d
		}
	}
	return depth
}
