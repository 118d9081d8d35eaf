// Package debugger holds the process-local debugging state the core
// exposes to the outside world without requiring any particular frontend:
// breakpoint and watchpoint sets, a ring buffer of recently fetched
// instructions, and a paused/single-step flag. It implements cpu.DebugHook
// directly, and a WatchBus decorator for memory watchpoints.
package debugger
