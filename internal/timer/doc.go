// Package timer implements the three PSX timers: a dotclock-synced timer,
// an hblank-synced timer, and a system-clock timer with an eighth-rate
// alternate clock source. All three share the counter/target/mode register
// shape and differ only in how blanking pauses them and which clock
// divides their tick rate.
//
// The mode register's packed fields reuse internal/bitfield the same way
// the rest of this module composes small accessors over a raw register
// word.
package timer
