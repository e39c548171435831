package verlet

import "math"

// Constraint keeps two point masses near a resting distance. It is not a spring: each Solve
// moves the endpoints a stiffness-sized fraction of the way back to the resting distance.
type Constraint struct {
	a, b *PointMass

	restingDistance float64
	stiffness       float64
	tearDistance    float64

	torn bool

	UserData interface{}
}

func newConstraint(a, b *PointMass, restingDistance, stiffness, tearDistance float64) *Constraint {
	assert(stiffness > 0 && stiffness <= 1, "Stiffness must be in (0, 1]")
	return &Constraint{
		a:               a,
		b:               b,
		restingDistance: restingDistance,
		stiffness:       stiffness,
		tearDistance:    tearDistance,
	}
}

// A is the point that initiated the constraint and solves it.
func (c *Constraint) A() *PointMass {
	return c.a
}

func (c *Constraint) B() *PointMass {
	return c.b
}

// Other returns the endpoint that is not p.
func (c *Constraint) Other(p *PointMass) *PointMass {
	if c.a == p {
		return c.b
	}
	return c.a
}

func (c Constraint) RestingDistance() float64 {
	return c.restingDistance
}

func (c *Constraint) SetRestingDistance(restingDistance float64) {
	c.restingDistance = restingDistance
}

func (c Constraint) Stiffness() float64 {
	return c.stiffness
}

func (c *Constraint) SetStiffness(stiffness float64) {
	assert(stiffness > 0 && stiffness <= 1, "Stiffness must be in (0, 1]")
	c.stiffness = stiffness
}

func (c Constraint) TearDistance() float64 {
	return c.tearDistance
}

func (c *Constraint) SetTearDistance(tearDistance float64) {
	c.tearDistance = tearDistance
}

func (c Constraint) Torn() bool {
	return c.torn
}

func (c *Constraint) Length() float64 {
	return math.Sqrt(distSq(c.a.position, c.b.position))
}

// Detach removes the constraint from both endpoints. It will never be solved again.
func (c *Constraint) Detach() {
	c.torn = true
	c.a.RemoveConstraint(c)
	c.b.RemoveConstraint(c)
}

// Solve applies one relaxation step, or tears the constraint when it is stretched past its
// tear distance. Pinned endpoints do not move.
func (c *Constraint) Solve() {
	if c.torn {
		return
	}

	a := c.a
	b := c.b

	diff := a.position.Sub(b.position)
	dist := diff.Len()
	if dist == 0 {
		return
	}

	if dist > c.tearDistance {
		c.Detach()
		return
	}

	ima := a.inverseMass()
	imb := b.inverseMass()
	imSum := ima + imb
	if imSum == 0 {
		return
	}

	k := c.stiffness * (dist - c.restingDistance) / dist
	a.position = a.position.Sub(diff.Mul(k * ima / imSum))
	b.position = b.position.Add(diff.Mul(k * imb / imSum))
}
