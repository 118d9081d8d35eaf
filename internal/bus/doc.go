// Package bus implements the PSX address router: it masks a virtual address
// down to its physical form, decodes the result into RAM, scratchpad, BIOS,
// an IO device register, or one of the cache-control/expansion windows, and
// mediates byte/half/word access to whichever area claims it.
//
// The routing table and IO fan-out follow the same shape as a narrow
// memory-bus interface: ordinary Load/Store calls for CPU access, plus a
// side-effect-free Peek for debugger surfaces.
package bus
