package verlet

import "github.com/go-gl/mathgl/mgl64"

//Draw flags
const (
	DRAW_POINTS      = 1 << 0
	DRAW_CONSTRAINTS = 1 << 1
	DRAW_PINS        = 1 << 2
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// Drawer is implemented by the host renderer.
type Drawer interface {
	DrawSegment(a, b mgl64.Vec3, fill FColor, data interface{})
	DrawDot(size float64, pos mgl64.Vec3, fill FColor, data interface{})

	Flags() int
	PointColor() FColor
	PinColor() FColor
	// ConstraintColor may shade by strain, which is the live length over the resting distance.
	ConstraintColor(c *Constraint, strain float64) FColor
	PointSize() float64
	Data() interface{}
}

func DrawConstraint(c *Constraint, options Drawer) {
	strain := 0.0
	if c.restingDistance != 0 {
		strain = c.Length() / c.restingDistance
	}
	options.DrawSegment(c.a.position, c.b.position, options.ConstraintColor(c, strain), options.Data())
}

func DrawPoint(p *PointMass, options Drawer) {
	fill := options.PointColor()
	if p.pinned {
		if options.Flags()&DRAW_PINS == 0 {
			return
		}
		fill = options.PinColor()
	} else if options.Flags()&DRAW_POINTS == 0 {
		return
	}
	options.DrawDot(options.PointSize(), p.position, fill, options.Data())
}

func DrawWorld(world *World, options Drawer) {
	if options.Flags()&DRAW_CONSTRAINTS != 0 {
		world.EachConstraint(func(c *Constraint) {
			DrawConstraint(c, options)
		})
	}

	if options.Flags()&(DRAW_POINTS|DRAW_PINS) != 0 {
		for _, p := range world.points {
			DrawPoint(p, options)
		}
	}
}
