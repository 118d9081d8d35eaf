// Package system is the owning context that wires every core component
// together: the CPU, bus, DMA and timer controllers, the interrupt
// controller, the cooperative scheduler, and the optional debugger/GDB
// stub pair. Nothing outside this package constructs the graph of
// cyclic references (bus -> DMA -> IRQ -> CPU, scheduler -> timers) by
// hand; callers get a System and drive it through Step/RunFrame.
package system
