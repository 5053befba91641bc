// Package analysis characterises pendulum trajectories.
//
//   - [Separation]: distance between two pendulums stepped side by side
//   - [LyapunovExponent]: largest Lyapunov exponent by renormalised separation
//   - [GrowthRate]: least-squares exponential growth of a separation series
//   - [GeneratePhasePortrait]: angle against angular velocity for one link
//   - [GeneratePoincareSection]: second link sampled as the first crosses zero
//   - [DominantFrequency]: strongest oscillation frequency of a series
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(p, 1e-8, 0.005, 20)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
//
// Every function here integrates copies of the pendulum state; the pendulum
// passed in is never advanced unless documented otherwise.
package analysis
