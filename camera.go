package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Camera converts y-up world units to y-down screen pixels.
type Camera struct {
	Center cp.Vector
	Zoom   float64
}

func NewCamera() Camera {
	return Camera{Zoom: common.PixelsPerUnit}
}

// Follow eases the camera towards target.
func (c *Camera) Follow(target cp.Vector, t float64) {
	c.Center.X = common.Lerp(c.Center.X, target.X, t)
	c.Center.Y = common.Lerp(c.Center.Y, target.Y, t)
}

func (c Camera) ToScreen(p cp.Vector) (float32, float32) {
	x := (p.X-c.Center.X)*c.Zoom + common.BaseWidth/2
	y := common.BaseHeight/2 - (p.Y-c.Center.Y)*c.Zoom
	return float32(x), float32(y)
}

// Rect returns the screen rectangle of a world bounding box.
func (c Camera) Rect(bb cp.BB) (x, y, w, h float32) {
	x, y = c.ToScreen(cp.Vector{X: bb.L, Y: bb.T})
	w = float32((bb.R - bb.L) * c.Zoom)
	h = float32((bb.T - bb.B) * c.Zoom)
	return x, y, w, h
}
