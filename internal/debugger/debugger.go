package debugger

import "sync"

const ringBufferSize = 128

// watch describes which access kinds trigger a memory watchpoint at an
// address.
type watch struct {
	onLoad  bool
	onStore bool
}

// HistoryEntry is one (address, raw instruction) pair recorded on every
// CPU step.
type HistoryEntry struct {
	Address uint32
	Word    uint32
}

// Debugger tracks breakpoints, watchpoints, a fixed-size instruction
// history ring, and the paused/single-step state the core polls at the
// top of every CPU step. It implements cpu.DebugHook.
type Debugger struct {
	mu sync.Mutex

	breakpoints map[uint32]bool // address -> enabled
	watchpoints map[uint32]watch

	history    [ringBufferSize]HistoryEntry
	historyPos int
	historyLen int

	paused     bool
	singleStep bool
}

// New returns an empty Debugger: no breakpoints, not paused.
func New() *Debugger {
	return &Debugger{
		breakpoints: make(map[uint32]bool),
		watchpoints: make(map[uint32]watch),
	}
}

// AddBreakpoint installs an enabled breakpoint at address.
func (d *Debugger) AddBreakpoint(address uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.breakpoints[address] = true
}

// RemoveBreakpoint deletes any breakpoint at address.
func (d *Debugger) RemoveBreakpoint(address uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.breakpoints, address)
}

// ToggleBreakpoint flips the enabled state of an existing breakpoint at
// address; it has no effect if none is installed there.
func (d *Debugger) ToggleBreakpoint(address uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if enabled, ok := d.breakpoints[address]; ok {
		d.breakpoints[address] = !enabled
	}
}

// IsBreakpoint reports whether address carries an enabled breakpoint.
func (d *Debugger) IsBreakpoint(address uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.breakpoints[address]
}

// AddWatchpoint installs a watchpoint at address triggering on the
// requested access kinds.
func (d *Debugger) AddWatchpoint(address uint32, onLoad, onStore bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.watchpoints[address] = watch{onLoad: onLoad, onStore: onStore}
}

// RemoveWatchpoint deletes any watchpoint at address.
func (d *Debugger) RemoveWatchpoint(address uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.watchpoints, address)
}

// IsWatchpointOnLoad reports whether a load at address should trigger a
// watchpoint halt.
func (d *Debugger) IsWatchpointOnLoad(address uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.watchpoints[address].onLoad
}

// IsWatchpointOnStore reports whether a store at address should trigger a
// watchpoint halt.
func (d *Debugger) IsWatchpointOnStore(address uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.watchpoints[address].onStore
}

// SetPausedState sets the cooperative halt flag the CPU polls at the top
// of every step, and whether the next resumed step should immediately
// re-pause (single-step mode).
func (d *Debugger) SetPausedState(paused, singleStep bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paused = paused
	d.singleStep = singleStep
}

// Paused reports the current pause flag.
func (d *Debugger) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// ShouldBreak implements cpu.DebugHook: execution halts before fetching pc
// when paused or sitting on an enabled breakpoint. In single-step mode the
// instruction at pc is allowed to run and the debugger pauses, so the
// following call halts.
func (d *Debugger) ShouldBreak(pc uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.paused {
		return true
	}
	if d.breakpoints[pc] {
		d.paused = true
		return true
	}
	if d.singleStep {
		d.paused = true
		d.singleStep = false
		return false
	}
	return false
}

// OnFetch implements cpu.DebugHook: it appends (pc, instr) to the history
// ring, overwriting the oldest entry once full.
func (d *Debugger) OnFetch(pc uint32, instr uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history[d.historyPos] = HistoryEntry{Address: pc, Word: instr}
	d.historyPos = (d.historyPos + 1) % ringBufferSize
	if d.historyLen < ringBufferSize {
		d.historyLen++
	}
}

// History returns the recorded (address, instruction) pairs, oldest
// first.
func (d *Debugger) History() []HistoryEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]HistoryEntry, d.historyLen)
	start := (d.historyPos - d.historyLen + ringBufferSize) % ringBufferSize
	for i := 0; i < d.historyLen; i++ {
		out[i] = d.history[(start+i)%ringBufferSize]
	}
	return out
}
