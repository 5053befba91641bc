// Package dynamo provides core simulation primitives for pendulum chains.
//
// The package defines the shared vocabulary used by the physics model, the
// integrators and the simulation driver:
//
//   - [State]: flat [theta.., omega..] snapshot
//   - [Control]: optional external generalized torque
//   - [System]: second-order dynamics (dX/dt = f(X, u, t))
//   - [Integrator]: one-step time advance over snapshots
//   - [Controller]: torque source evaluated once per step
//
// # Errors
//
// Failures are reported with the sentinel errors in this package so callers
// can match them with [errors.Is]:
//
//	if errors.Is(err, dynamo.ErrUnsupportedDimension) {
//	    // chain has more than two links
//	}
//
// None of them are transient; a failed step leaves the pendulum untouched.
package dynamo
