package motion

import (
	"errors"

	"github.com/jakecoffman/cp"
)

// ErrNoGroundBelow marks a ground probe that found no collider at all,
// meaning the character is outside the collidable world.
var ErrNoGroundBelow = errors.New("motion: ground probe found no collider")

// ShapeID identifies a shape owned by a World.
type ShapeID uint64

// Box is an oriented box pose. Rotation is in radians.
type Box struct {
	Center      cp.Vector
	HalfExtents cp.Vector
	Rotation    float64
}

// Bottom returns the centre of the box's lower edge, ignoring rotation.
func (b Box) Bottom() cp.Vector {
	return cp.Vector{X: b.Center.X, Y: b.Center.Y - b.HalfExtents.Y}
}

// Contact describes the separation between the character box and another
// shape. Normal points from the other shape towards the character and
// Separation is the push that removes the penetration.
type Contact struct {
	Other       ShapeID
	Separation  cp.Vector
	Normal      cp.Vector
	Overlapping bool
	OneWay      bool
}

// CastHit is the first shape hit by a box cast.
type CastHit struct {
	Other    ShapeID
	Distance float64
}

// World is the physics collaborator queried once per step.
type World interface {
	// OverlapBox returns every non-trigger shape overlapping box.
	OverlapBox(box Box) []ShapeID
	// Distance returns the separation between box and other.
	Distance(box Box, other ShapeID) Contact
	// CastBox sweeps box along dir and reports the first hit within maxDistance.
	CastBox(box Box, dir cp.Vector, maxDistance float64) (CastHit, bool)
}
