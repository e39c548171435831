package verlet

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFriction       = 0.99
	DefaultAccuracy       = 2
	DefaultGroundFriction = 1.0
	DefaultMoveScalar     = 1.8
	DefaultMaxMove        = 100.0
)

// DefaultGravity points down the screen, y growing downwards.
var DefaultGravity = mgl64.Vec3{0, 1200, 0}

// minimum squared speed for ground friction to kick in
const groundSpeedSq = 0.000001

// Motion asks the world to drag points for one step. Points within Influence of Position
// pick up the probe's displacement since the previous step, scaled by Scalar (0 means
// DefaultMoveScalar). A displacement longer than MaxDist is ignored; MaxDist 0 disables the cap.
type Motion struct {
	Position  mgl64.Vec3
	Influence float64
	Scalar    float64
	MaxDist   float64
}

// Tear asks the world to cut every point within Influence of Position loose for one step.
type Tear struct {
	Position  mgl64.Vec3
	Influence float64
}

// Interactions is the one-shot request for a single step.
type Interactions struct {
	Motion *Motion
	Tear   *Tear
}

// World owns the point masses and advances them. It is not safe for concurrent use.
type World struct {
	// number of relaxation passes over every constraint per step
	Accuracy uint

	gravity        mgl64.Vec3
	friction       float64
	groundFriction float64
	floor          *float64
	tear3D         bool

	points []*PointMass

	// interaction probes, only their position history is used
	move *PointMass
	tear *PointMass

	// one-shot, cleared at the end of every step
	moveInfluenceSq float64
	tearInfluenceSq float64
	moveScalar      float64
	maxMoveSq       float64

	// persistent
	pinRemoveInfluenceSq float64
}

func NewWorld() *World {
	return NewWorldWithGravity(DefaultGravity)
}

func NewWorldWithGravity(gravity mgl64.Vec3) *World {
	return &World{
		Accuracy:       DefaultAccuracy,
		gravity:        gravity,
		friction:       DefaultFriction,
		groundFriction: DefaultGroundFriction,
		points:         []*PointMass{},
		move:           NewPointMass(0, 0, 0, 1),
		tear:           NewPointMass(0, 0, 0, 1),
		moveScalar:     DefaultMoveScalar,
	}
}

func (world *World) Gravity() mgl64.Vec3 {
	return world.gravity
}

func (world *World) SetGravity(gravity mgl64.Vec3) {
	world.gravity = gravity
}

func (world *World) Friction() float64 {
	return world.friction
}

// SetFriction sets the velocity kept each step; below 1 the mesh loses energy.
func (world *World) SetFriction(friction float64) {
	world.friction = friction
}

func (world *World) GroundFriction() float64 {
	return world.groundFriction
}

func (world *World) SetGroundFriction(groundFriction float64) {
	world.groundFriction = groundFriction
}

func (world *World) Floor() (float64, bool) {
	if world.floor == nil {
		return 0, false
	}
	return *world.floor, true
}

// SetFloor enables ground friction for points with y >= floor.
func (world *World) SetFloor(floor float64) {
	world.floor = &floor
}

func (world *World) RemoveFloor() {
	world.floor = nil
}

func (world *World) Tear3D() bool {
	return world.tear3D
}

// SetTear3D makes interactions measure distance in 3D instead of on the x,y plane.
func (world *World) SetTear3D(tear3D bool) {
	world.tear3D = tear3D
}

func (world *World) SetPinRemoveInfluence(influence float64) {
	world.pinRemoveInfluenceSq = influence * influence
}

func (world *World) PinRemoveInfluence() float64 {
	return math.Sqrt(world.pinRemoveInfluenceSq)
}

func (world *World) MoveInfluenceSq() float64 {
	return world.moveInfluenceSq
}

func (world *World) TearInfluenceSq() float64 {
	return world.tearInfluenceSq
}

func (world *World) MoveScalar() float64 {
	return world.moveScalar
}

func (world *World) MaxMoveSq() float64 {
	return world.maxMoveSq
}

func (world *World) AddPoint(p *PointMass) *PointMass {
	assert(p != nil, "Cannot add a nil point")
	if p == nil {
		log.Println("verlet: ignoring nil point")
		return nil
	}
	world.points = append(world.points, p)
	return p
}

func (world *World) AddPoints(points ...*PointMass) {
	for _, p := range points {
		world.AddPoint(p)
	}
}

// Points returns the simulated points in insertion order, which is also solve order.
func (world *World) Points() []*PointMass {
	points := make([]*PointMass, len(world.points))
	copy(points, world.points)
	return points
}

func (world *World) PointCount() int {
	return len(world.points)
}

func (world *World) EachPoint(f func(*PointMass)) {
	for _, p := range world.points {
		f(p)
	}
}

// EachConstraint visits every live constraint once, in solve order. f may detach constraints.
func (world *World) EachConstraint(f func(*Constraint)) {
	for _, p := range world.points {
		for _, c := range p.Constraints() {
			if c.a == p && !c.torn {
				f(c)
			}
		}
	}
}

// ApplyMotion arms the move probe for the next step with the default scalar and a 100 unit cap.
func (world *World) ApplyMotion(x, y, z, influence float64) {
	world.ApplyMotionScaled(x, y, z, influence, DefaultMoveScalar, DefaultMaxMove)
}

// ApplyMotionScaled arms the move probe for the next step. A zero scalar falls back to
// DefaultMoveScalar, a zero maxDist disables the displacement cap.
func (world *World) ApplyMotionScaled(x, y, z, influence, scalar, maxDist float64) {
	world.moveInfluenceSq = influence * influence
	if scalar == 0 {
		scalar = DefaultMoveScalar
	}
	world.moveScalar = scalar
	world.move.position = mgl64.Vec3{x, y, z}
	world.maxMoveSq = maxDist * maxDist
}

// ApplyTear arms the tear probe for the next step.
func (world *World) ApplyTear(x, y, z, influence float64) {
	world.tearInfluenceSq = influence * influence
	world.tear.position = mgl64.Vec3{x, y, z}
}

func (world *World) arm(in Interactions) {
	if m := in.Motion; m != nil {
		world.ApplyMotionScaled(m.Position[0], m.Position[1], m.Position[2], m.Influence, m.Scalar, m.MaxDist)
	}
	if t := in.Tear; t != nil {
		world.ApplyTear(t.Position[0], t.Position[1], t.Position[2], t.Influence)
	}
}

func (world *World) handleInteractions() {
	if world.moveInfluenceSq == 0 && world.tearInfluenceSq == 0 {
		return
	}

	movePos := world.move.position
	tearPos := world.tear.position
	moveAmount := movePos.Sub(world.move.lastPosition)
	moveAllowed := world.maxMoveSq == 0 || lengthSq(moveAmount) < world.maxMoveSq
	moveAmount = moveAmount.Mul(world.moveScalar)

	for _, p := range world.points {
		var moveDistSq, tearDistSq float64
		if world.tear3D {
			moveDistSq = distSq(movePos, p.position)
			tearDistSq = distSq(tearPos, p.position)
		} else {
			moveDistSq = distSq2(movePos, p.position)
			tearDistSq = distSq2(tearPos, p.position)
		}

		if world.moveInfluenceSq != 0 && moveDistSq < world.moveInfluenceSq {
			if moveAllowed {
				// velocity is position - lastPosition, so pushing history back drags the point
				p.lastPosition = p.position.Sub(moveAmount)
				if p.weakPin {
					p.Unpin()
				}
			}
		} else if world.pinRemoveInfluenceSq != 0 && moveDistSq < world.pinRemoveInfluenceSq {
			if p.weakPin {
				p.Unpin()
			}
		}

		if world.tearInfluenceSq != 0 && tearDistSq < world.tearInfluenceSq {
			p.ClearConstraints()
		}
	}
}

func (world *World) solveConstraints() {
	for i := uint(0); i < world.Accuracy; i++ {
		for _, p := range world.points {
			p.SolveConstraints()
		}
	}
}

func (world *World) integrate(dt float64) {
	tSqr := dt * dt

	for _, p := range world.points {
		p.AddForce(world.gravity)

		v := p.position.Sub(p.lastPosition).Mul(world.friction)
		p.velocity = v

		if world.floor != nil && p.position[1] >= *world.floor {
			if len2 := lengthSq(v); len2 > groundSpeedSq {
				// only the x,y part is rescaled, z keeps its speed
				m := math.Sqrt(len2)
				v[0] = v[0] / m * m * world.groundFriction
				v[1] = v[1] / m * m * world.groundFriction
			}
		}

		next := p.position.Add(v).Add(p.acceleration.Mul(0.5 * tSqr))

		p.lastPosition = p.position
		p.position = next
		p.acceleration = mgl64.Vec3{}
	}
}

func (world *World) setPins() {
	for _, p := range world.points {
		if p.pinned && p.pinPosition != nil {
			p.position = *p.pinPosition
		}
	}
}

// Step advances the world by dt: relax constraints, apply the armed interactions, integrate,
// then enforce pins. Move and tear requests only last for this step.
func (world *World) Step(dt float64) {
	world.solveConstraints()
	world.handleInteractions()
	world.integrate(dt)
	world.setPins()

	world.move.lastPosition = world.move.position
	world.tear.lastPosition = world.tear.position

	world.moveInfluenceSq = 0
	world.tearInfluenceSq = 0
}

// StepInteractions arms in and steps, so a host can pass a step's input without touching
// world state between frames.
func (world *World) StepInteractions(dt float64, in Interactions) {
	world.arm(in)
	world.Step(dt)
}
