package verlet

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// PointMass is a particle integrated with position Verlet. Its velocity is implied by the
// difference between position and lastPosition.
type PointMass struct {
	id int

	position     mgl64.Vec3
	lastPosition mgl64.Vec3

	// force accumulator, already divided by mass
	acceleration mgl64.Vec3

	// last integrated velocity, informational only
	velocity mgl64.Vec3

	mass float64

	pinPosition *mgl64.Vec3
	pinned      bool
	weakPin     bool

	// every constraint touching this point, in registration order
	constraints []*Constraint

	UserData interface{}
}

func (p PointMass) String() string {
	return fmt.Sprint("PointMass ", p.id)
}

var pointCur int = 0

// NewPointMass creates a point at rest. A mass of zero means 1.
func NewPointMass(x, y, z, mass float64) *PointMass {
	p := &PointMass{
		id:           pointCur,
		position:     mgl64.Vec3{x, y, z},
		lastPosition: mgl64.Vec3{x, y, z},
	}
	pointCur++

	p.SetMass(mass)
	return p
}

func (p *PointMass) Position() mgl64.Vec3 {
	return p.position
}

func (p *PointMass) SetPosition(position mgl64.Vec3) {
	p.position = position
}

func (p *PointMass) LastPosition() mgl64.Vec3 {
	return p.lastPosition
}

func (p *PointMass) SetLastPosition(position mgl64.Vec3) {
	p.lastPosition = position
}

func (p *PointMass) Acceleration() mgl64.Vec3 {
	return p.acceleration
}

// Velocity returns the damped velocity computed by the last integration. Writing to it would
// have no effect, so there is no setter; move lastPosition instead.
func (p *PointMass) Velocity() mgl64.Vec3 {
	return p.velocity
}

func (p *PointMass) Mass() float64 {
	return p.mass
}

func (p *PointMass) SetMass(mass float64) {
	if mass == 0 {
		mass = 1
	}
	p.mass = mass
}

func (p *PointMass) AddForce(force mgl64.Vec3) {
	p.acceleration = p.acceleration.Add(force.Mul(1 / p.mass))
}

// Attach links p to other with a distance constraint and returns it. The constraint is
// registered on both points; p becomes its initiator and is the one that solves it.
func (p *PointMass) Attach(other *PointMass, restingDistance, stiffness, tearDistance float64) *Constraint {
	assert(other != nil, "Cannot attach to a nil point")
	if other == nil {
		return nil
	}

	c := newConstraint(p, other, restingDistance, stiffness, tearDistance)
	p.addConstraint(c)
	if other != p {
		other.addConstraint(c)
	}
	return c
}

func (p *PointMass) addConstraint(c *Constraint) {
	p.constraints = append(p.constraints, c)
}

// RemoveConstraint drops every reference to c from this point only.
func (p *PointMass) RemoveConstraint(c *Constraint) {
	kept := p.constraints[:0]
	for _, other := range p.constraints {
		if other != c {
			kept = append(kept, other)
		}
	}
	for i := len(kept); i < len(p.constraints); i++ {
		p.constraints[i] = nil
	}
	p.constraints = kept
}

// ClearConstraints detaches every constraint touching p from both of its endpoints.
func (p *PointMass) ClearConstraints() {
	constraints := p.constraints
	p.constraints = nil
	for _, c := range constraints {
		c.Detach()
	}
}

func (p *PointMass) Constraints() []*Constraint {
	constraints := make([]*Constraint, len(p.constraints))
	copy(constraints, p.constraints)
	return constraints
}

func (p *PointMass) ConstraintCount() int {
	return len(p.constraints)
}

func (p *PointMass) EachConstraint(f func(*Constraint)) {
	for _, c := range p.Constraints() {
		f(c)
	}
}

func (p *PointMass) Pin(x, y, z float64, weak bool) {
	if p.pinPosition == nil {
		p.pinPosition = &mgl64.Vec3{}
	}
	p.pinPosition[0] = x
	p.pinPosition[1] = y
	p.pinPosition[2] = z
	p.pinned = true
	p.weakPin = weak
}

// Unpin frees the point. The pin target is kept for the next Pin call but no longer enforced.
func (p *PointMass) Unpin() {
	p.pinned = false
	p.weakPin = false
}

func (p *PointMass) Pinned() bool {
	return p.pinned
}

func (p *PointMass) WeakPin() bool {
	return p.weakPin
}

func (p *PointMass) PinPosition() (mgl64.Vec3, bool) {
	if p.pinPosition == nil {
		return mgl64.Vec3{}, false
	}
	return *p.pinPosition, true
}

func (p *PointMass) inverseMass() float64 {
	if p.pinned {
		return 0
	}
	return 1 / p.mass
}

// SolveConstraints runs one relaxation pass over the constraints p initiated, in the order
// they were attached. A constraint that tears while solving leaves the list without the next
// one being skipped.
func (p *PointMass) SolveConstraints() {
	for i := 0; i < len(p.constraints); {
		c := p.constraints[i]
		if c.a == p {
			c.Solve()
		}
		if i < len(p.constraints) && p.constraints[i] == c {
			i++
		}
	}
}
