package verlet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const INFINITY = math.MaxFloat64

// Vec is shorthand for building the mgl64 vectors the kernel stores.
func Vec(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

func lengthSq(v mgl64.Vec3) float64 {
	return v.Dot(v)
}

func distSq(a, b mgl64.Vec3) float64 {
	return lengthSq(a.Sub(b))
}

// distSq2 ignores z, for interactions picked on the screen plane.
func distSq2(a, b mgl64.Vec3) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}
