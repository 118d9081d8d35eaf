// Package cpu implements the MIPS R3000A interpreter at the core of the
// machine: the 32 general-purpose registers, the two-slot load-delay
// pipeline, branch-delay execution, the COP0 exception/status machinery,
// and the COP2 (GTE) move instructions that hand off to internal/gte.
package cpu
