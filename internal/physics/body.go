package physics

import "math"

const (
	// StandardGravity is the default gravitational acceleration in m/s².
	StandardGravity = 9.81
	// WaterDensity is the density used to size bulbs and rods, in kg/m³.
	WaterDensity = 999.97
)

// Body selects how a link's mass is distributed. It is chosen once per
// pendulum and applies to every link.
type Body interface {
	Name() string
	// Radius is the display radius of a link of the given mass and length.
	Radius(mass, length float64) float64
	// COMFraction is the position of the centre of mass along the link,
	// measured from its pivot as a fraction of the length.
	COMFraction() float64
	// RotationalEnergy is the spin energy about the link's own centre of
	// mass. Point bulbs carry none.
	RotationalEnergy(mass, length, omega float64) float64
	// PivotInertia is the moment of inertia about the proximal joint.
	PivotInertia(mass, length float64) float64

	singleAlpha(g, length, theta float64) float64
	doubleSystem(c linkPair) (a [2][2]float64, b [2]float64)
	spins() bool
}

// linkPair is the state and parameters a two-link solve needs.
type linkPair struct {
	l1, l2, m1, m2 float64
	t1, t2, w1, w2 float64
	g              float64
	torque         float64
	hasTorque      bool
}

type pointMass struct{}

type uniformRod struct{}

var (
	// PointMass concentrates each link's mass in a spherical bulb at its tip.
	PointMass Body = pointMass{}
	// UniformRod spreads each link's mass uniformly along its length.
	UniformRod Body = uniformRod{}
)

// BodyFor returns UniformRod for compound chains and PointMass otherwise.
func BodyFor(compound bool) Body {
	if compound {
		return UniformRod
	}
	return PointMass
}

func (pointMass) Name() string { return "point_mass" }

// Radius of a sphere with volume m/ρ.
func (pointMass) Radius(mass, length float64) float64 {
	return math.Cbrt(3 * mass / (4 * math.Pi * WaterDensity))
}

func (pointMass) COMFraction() float64 { return 1 }

func (pointMass) RotationalEnergy(mass, length, omega float64) float64 { return 0 }

func (pointMass) PivotInertia(mass, length float64) float64 { return mass * length * length }

func (pointMass) singleAlpha(g, length, theta float64) float64 {
	return -(g / length) * math.Sin(theta)
}

func (pointMass) doubleSystem(c linkPair) (a [2][2]float64, b [2]float64) {
	d := c.t1 - c.t2
	sinD, cosD := math.Sin(d), math.Cos(d)

	a[0][0] = (c.m1 + c.m2) * c.l1
	a[0][1] = c.m2 * c.l2 * cosD
	b[0] = -c.m2*c.l2*c.w2*c.w2*sinD - c.g*(c.m1+c.m2)*math.Sin(c.t1)

	a[1][0] = c.m2 * c.l1 * cosD
	a[1][1] = c.m2 * c.l2
	b[1] = c.m2*c.l1*c.l2*c.w1*c.w1*sinD - c.l2*c.m2*c.g*math.Sin(c.t2)

	if c.hasTorque {
		b[0] += c.torque * d * c.l1
		b[1] -= c.torque * d * c.l2
	}
	return a, b
}

func (pointMass) spins() bool { return false }

func (uniformRod) Name() string { return "uniform_rod" }

// Radius of a cylinder of the link's length: πr²ℓρ = m.
func (uniformRod) Radius(mass, length float64) float64 {
	return math.Sqrt(mass / (math.Pi * length * WaterDensity))
}

func (uniformRod) COMFraction() float64 { return 0.5 }

// RotationalEnergy is ½·(mℓ²/12)·ω².
func (uniformRod) RotationalEnergy(mass, length, omega float64) float64 {
	return mass * length * length * omega * omega / 24
}

func (uniformRod) PivotInertia(mass, length float64) float64 { return mass * length * length / 3 }

func (uniformRod) singleAlpha(g, length, theta float64) float64 {
	return -(3 * g / (2 * length)) * math.Sin(theta)
}

// doubleSystem ignores the torque; forcing is only modelled for bulbs.
func (uniformRod) doubleSystem(c linkPair) (a [2][2]float64, b [2]float64) {
	d := c.t1 - c.t2
	sinD, cosD := math.Sin(d), math.Cos(d)

	a[0][0] = (c.m1/3 + c.m2) * c.l1
	a[0][1] = 0.5 * c.m2 * c.l2 * cosD
	b[0] = -0.5*c.m2*c.l2*c.w2*c.w2*sinD - (c.m1/2+c.m2)*c.g*math.Sin(c.t1)

	a[1][0] = 0.5 * c.m2 * c.l1 * cosD
	a[1][1] = (c.m2 / 3) * c.l2
	b[1] = 0.5*c.m2*c.l1*c.w1*c.w1*sinD - 0.5*c.m2*c.g*math.Sin(c.t2)
	return a, b
}

func (uniformRod) spins() bool { return true }
