package verlet

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestConstraint_SolveStiffness(t *testing.T) {
	tests := []struct {
		name      string
		stiffness float64
	}{
		{"rigid", 1},
		{"soft", 0.5},
		{"very soft", 0.1},
	}

	const rest, stretch = 10.0, 2.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPointMass(0, 0, 0, 1)
			b := NewPointMass(rest+stretch, 0, 0, 1)
			c := a.Attach(b, rest, tt.stiffness, 100)

			c.Solve()

			want := rest + stretch*(1-tt.stiffness)
			if got := c.Length(); math.Abs(got-want) > epsilon {
				t.Errorf("Length() = %v, want %v", got, want)
			}
			// equal masses share the correction
			mid := a.Position().Add(b.Position()).Mul(0.5)
			if !near(mid, mgl64.Vec3{(rest + stretch) / 2, 0, 0}) {
				t.Errorf("Expected the midpoint to stay put, got %v", mid)
			}
		})
	}
}

func TestConstraint_StifferConvergesFaster(t *testing.T) {
	residual := func(stiffness float64) float64 {
		a := NewPointMass(0, 0, 0, 1)
		b := NewPointMass(13, 0, 0, 1)
		c := a.Attach(b, 10, stiffness, 100)
		for i := 0; i < 3; i++ {
			c.Solve()
		}
		return math.Abs(c.Length() - 10)
	}

	soft, stiff := residual(0.3), residual(0.9)
	if !(stiff < soft) {
		t.Errorf("Expected stiffer constraint to be closer to rest: stiff=%v soft=%v", stiff, soft)
	}
}

func TestConstraint_SolveMassRatio(t *testing.T) {
	a := NewPointMass(0, 0, 0, 1)
	b := NewPointMass(13, 0, 0, 2)
	c := a.Attach(b, 10, 1, 100)

	c.Solve()

	// the lighter point absorbs two thirds
	if !near(a.Position(), mgl64.Vec3{2, 0, 0}) || !near(b.Position(), mgl64.Vec3{12, 0, 0}) {
		t.Errorf("Unexpected split: a=%v b=%v", a.Position(), b.Position())
	}
}

func TestConstraint_SolvePinnedEndpoint(t *testing.T) {
	a := NewPointMass(0, 0, 0, 1)
	b := NewPointMass(0, 15, 0, 1)
	a.Pin(0, 0, 0, false)
	c := a.Attach(b, 10, 1, 100)

	c.Solve()

	if a.Position() != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("Expected pinned point not to move, got %v", a.Position())
	}
	if !near(b.Position(), mgl64.Vec3{0, 10, 0}) {
		t.Errorf("Expected free point to take the whole correction, got %v", b.Position())
	}

	b.Pin(0, 15, 0, true)
	b.SetPosition(mgl64.Vec3{0, 15, 0})
	c.Solve()
	if a.Position() != (mgl64.Vec3{0, 0, 0}) || b.Position() != (mgl64.Vec3{0, 15, 0}) {
		t.Errorf("Expected two pinned points to stay, got %v %v", a.Position(), b.Position())
	}
}

func TestConstraint_SolveCoincident(t *testing.T) {
	a := NewPointMass(5, 5, 5, 1)
	b := NewPointMass(5, 5, 5, 1)
	c := a.Attach(b, 10, 1, 100)

	c.Solve()

	for _, pos := range []mgl64.Vec3{a.Position(), b.Position()} {
		if math.IsNaN(pos[0]) || math.IsNaN(pos[1]) || math.IsNaN(pos[2]) {
			t.Fatal("Expected coincident points to be skipped, got NaN")
		}
	}
	if a.Position() != (mgl64.Vec3{5, 5, 5}) || b.Position() != (mgl64.Vec3{5, 5, 5}) {
		t.Errorf("Expected no correction, got %v %v", a.Position(), b.Position())
	}
}

func TestConstraint_Tear(t *testing.T) {
	a := NewPointMass(0, 0, 0, 1)
	b := NewPointMass(0, 0, 0, 1)
	c := a.Attach(b, 10, 1, 15)

	b.SetPosition(mgl64.Vec3{20, 0, 0})
	c.Solve()

	if !c.Torn() {
		t.Fatal("Expected constraint to tear")
	}
	if a.ConstraintCount() != 0 || b.ConstraintCount() != 0 {
		t.Errorf("Expected torn constraint gone from both ends, got %v %v", a.Constraints(), b.Constraints())
	}
	if a.Position() != (mgl64.Vec3{0, 0, 0}) || b.Position() != (mgl64.Vec3{20, 0, 0}) {
		t.Errorf("Expected tearing not to correct, got %v %v", a.Position(), b.Position())
	}

	// back within range, still never solved
	b.SetPosition(mgl64.Vec3{12, 0, 0})
	c.Solve()
	if b.Position() != (mgl64.Vec3{12, 0, 0}) {
		t.Errorf("Expected a torn constraint to stay inert, got %v", b.Position())
	}
}

func TestConstraint_Setters(t *testing.T) {
	a := NewPointMass(0, 0, 0, 1)
	b := NewPointMass(1, 0, 0, 1)
	c := a.Attach(b, 1, 1, 2)

	c.SetRestingDistance(3)
	c.SetStiffness(0.25)
	c.SetTearDistance(9)

	if c.RestingDistance() != 3 || c.Stiffness() != 0.25 || c.TearDistance() != 9 {
		t.Errorf("Unexpected values %v %v %v", c.RestingDistance(), c.Stiffness(), c.TearDistance())
	}
}
