// Package gdbstub implements a small subset of the GDB Remote Serial
// Protocol over TCP: register and memory reads, breakpoint add/remove,
// continue/step, and the qXfer target-description and memory-map queries
// most RSP clients need before they'll attach at all. It drives a
// *debugger.Debugger and a *cpu.CPU through their existing exported
// surfaces; it owns no emulation state of its own.
//
// When no network client is attached, an optional local console puts the
// host terminal into raw mode so a bare Ctrl-C can break into the
// debugger without a GDB client in the loop.
package gdbstub
