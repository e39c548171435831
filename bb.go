package verlet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BB is an axis aligned box on the x,y plane.
type BB struct {
	L, B, R, T float64
}

func NewBBForExtents(c mgl64.Vec3, hw, hh float64) BB {
	return BB{
		L: c[0] - hw,
		B: c[1] - hh,
		R: c[0] + hw,
		T: c[1] + hh,
	}
}

// EmptyBB contains nothing; expanding it by a point gives that point's box.
func EmptyBB() BB {
	return BB{INFINITY, INFINITY, -INFINITY, -INFINITY}
}

func (bb BB) Empty() bool {
	return bb.L > bb.R || bb.B > bb.T
}

func (a BB) Intersects(b BB) bool {
	return a.L <= b.R && b.L <= a.R && a.B <= b.T && b.B <= a.T
}

func (bb BB) Contains(other BB) bool {
	return bb.L <= other.L && bb.R >= other.R && bb.B <= other.B && bb.T >= other.T
}

func (bb BB) Expand(v mgl64.Vec3) BB {
	return BB{
		math.Min(bb.L, v[0]),
		math.Min(bb.B, v[1]),
		math.Max(bb.R, v[0]),
		math.Max(bb.T, v[1]),
	}
}

func (bb BB) Center() mgl64.Vec3 {
	return mgl64.Vec3{(bb.L + bb.R) / 2, (bb.B + bb.T) / 2, 0}
}

func (bb BB) Width() float64 {
	return bb.R - bb.L
}

func (bb BB) Height() float64 {
	return bb.T - bb.B
}

func (bb BB) ClampVect(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{Clamp(v[0], bb.L, bb.R), Clamp(v[1], bb.B, bb.T), v[2]}
}

// BB returns the box around every point's current position, empty when there are no points.
func (world *World) BB() BB {
	bb := EmptyBB()
	for _, p := range world.points {
		bb = bb.Expand(p.position)
	}
	return bb
}
