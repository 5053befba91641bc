// Package physics models simple and double pendulums.
//
// A [Pendulum] is a chain of one or two rigid links pivoted at the origin,
// with angles measured from the downward vertical. Each link is either a
// bulb at its tip ([PointMass]) or a uniform rod ([UniformRod]); the body
// model is fixed for the whole chain at construction.
//
// The package covers four concerns:
//
//   - geometry: [Pendulum.JointPositions], [Pendulum.CentersOfMass],
//     [Pendulum.Velocities], [Pendulum.Radii], [Pendulum.TotalLength]
//   - dynamics: [Pendulum.AngularAccelerations], closed forms for one link
//     and a 2x2 Lagrangian system for two links
//   - integration: [Pendulum.Step] with the scheme chosen in [Params]
//   - energy: [Pendulum.EnergyBreakdown] and [Pendulum.TotalEnergy]
//
// # Example
//
//	p, err := physics.New(physics.Params{
//	    Lengths: []float64{1}, Masses: []float64{2},
//	    Thetas:  []float64{math.Pi / 2}, Omegas: []float64{0},
//	})
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < 2000; i++ {
//	    if err := p.Step(0.005, nil); err != nil {
//	        return err
//	    }
//	}
//	fmt.Println(p.Time(), p.TotalEnergy())
//
// # Known simplifications
//
// Rod velocities reuse the half-step accumulation of the centre of mass.
// External torque is applied to single links and to double bulb chains; the
// double rod equations ignore it.
package physics
