// Package scheduler implements the cooperative component scheduler: an
// accumulator of pending cycles that is drained in lockstep up to the
// soonest registered component's next event boundary, so no component
// runs past a cycle at which another component needed to observe state.
//
// Components are registered once at startup and driven by AddCycles as
// emulated time advances.
package scheduler
