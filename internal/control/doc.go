// Package control provides torque sources for the pendulum.
//
// Every source implements [dynamo.Controller] and yields a one-entry
// control vector holding the torque applied to the first link, or an empty
// vector when nothing is applied:
//
//   - [None]: no torque
//   - [Constant]: a fixed torque
//   - [Manual]: a torque set from outside, e.g. by the keyboard in the live view
//   - [PID]: holds one link (the first by default) at a target angle
//   - [LQR]: linear state feedback around a target state
//
// # Usage
//
//	pid := control.NewPID(20, 0.5, 4, 0)
//	u := pid.Compute(p.State(), p.Time())
//	err := p.Step(dt, u)
//
// Use [New] to build a source from its name, as the CLI and config do.
package control
