package motion

import (
	"math"

	"github.com/jakecoffman/cp"
)

// boxWorld is an axis-aligned World used to drive the controller without a
// physics engine.
type boxWorld struct {
	shapes []boxShape
	// noGround makes every cast miss.
	noGround bool
}

type boxShape struct {
	id       ShapeID
	min, max cp.Vector
	oneWay   bool
}

func (w *boxWorld) add(minX, minY, maxX, maxY float64) ShapeID {
	id := ShapeID(len(w.shapes) + 1)
	w.shapes = append(w.shapes, boxShape{id: id, min: cp.Vector{X: minX, Y: minY}, max: cp.Vector{X: maxX, Y: maxY}})
	return id
}

func (w *boxWorld) addOneWay(minX, minY, maxX, maxY float64) ShapeID {
	id := w.add(minX, minY, maxX, maxY)
	w.shapes[len(w.shapes)-1].oneWay = true
	return id
}

func (w *boxWorld) shape(id ShapeID) (boxShape, bool) {
	for _, s := range w.shapes {
		if s.id == id {
			return s, true
		}
	}
	return boxShape{}, false
}

func penetration(box Box, s boxShape) (float64, float64) {
	bmin := box.Center.Sub(box.HalfExtents)
	bmax := box.Center.Add(box.HalfExtents)
	dx := math.Min(bmax.X-s.min.X, s.max.X-bmin.X)
	dy := math.Min(bmax.Y-s.min.Y, s.max.Y-bmin.Y)
	return dx, dy
}

func (w *boxWorld) OverlapBox(box Box) []ShapeID {
	var ids []ShapeID
	for _, s := range w.shapes {
		if dx, dy := penetration(box, s); dx > 0 && dy > 0 {
			ids = append(ids, s.id)
		}
	}
	return ids
}

func (w *boxWorld) Distance(box Box, other ShapeID) Contact {
	s, ok := w.shape(other)
	if !ok {
		return Contact{Other: other}
	}
	dx, dy := penetration(box, s)
	c := Contact{Other: other, OneWay: s.oneWay, Overlapping: dx > 0 && dy > 0}
	center := s.min.Add(s.max).Mult(0.5)
	if dx < dy {
		sign := 1.0
		if box.Center.X < center.X {
			sign = -1
		}
		c.Normal = cp.Vector{X: sign}
		c.Separation = c.Normal.Mult(dx)
	} else {
		sign := 1.0
		if box.Center.Y < center.Y {
			sign = -1
		}
		c.Normal = cp.Vector{Y: sign}
		c.Separation = c.Normal.Mult(dy)
	}
	if !c.Overlapping {
		c.Separation = cp.Vector{}
	}
	return c
}

// CastBox only supports straight down casts.
func (w *boxWorld) CastBox(box Box, dir cp.Vector, maxDistance float64) (CastHit, bool) {
	if w.noGround {
		return CastHit{}, false
	}
	bottom := box.Center.Y - box.HalfExtents.Y
	best, found := CastHit{}, false
	for _, s := range w.shapes {
		if s.max.X <= box.Center.X-box.HalfExtents.X || s.min.X >= box.Center.X+box.HalfExtents.X {
			continue
		}
		if s.max.Y > box.Center.Y {
			continue
		}
		d := math.Max(0, bottom-s.max.Y)
		if d > maxDistance {
			continue
		}
		if !found || d < best.Distance {
			best, found = CastHit{Other: s.id, Distance: d}, true
		}
	}
	return best, found
}
