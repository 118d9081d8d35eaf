// Package irq implements the PSX interrupt controller: an 11-bit status
// register latched by device Request calls, masked against an 11-bit enable
// register, and propagated to the CPU's cause.IP bit 10 whenever the
// masked result is non-zero.
//
// The status/mask register pair and write-and-clear Store semantics follow
// the same small packed-register convention used throughout the hardware
// registers in this module.
package irq
