package debugger

import "github.com/nwidger/psxcore/internal/cpu"

// WatchBus decorates a cpu.MemPort with watchpoint checks: any load or
// store touching a watched address pauses the debugger before the access
// reaches the underlying bus.
type WatchBus struct {
	Bus cpu.MemPort
	Dbg *Debugger
}

func (w *WatchBus) checkLoad(addr uint32) {
	if w.Dbg.IsWatchpointOnLoad(addr) {
		w.Dbg.SetPausedState(true, false)
	}
}

func (w *WatchBus) checkStore(addr uint32) {
	if w.Dbg.IsWatchpointOnStore(addr) {
		w.Dbg.SetPausedState(true, false)
	}
}

func (w *WatchBus) Load32(addr uint32) (uint32, error) {
	w.checkLoad(addr)
	return w.Bus.Load32(addr)
}

func (w *WatchBus) Load16(addr uint32) (uint16, error) {
	w.checkLoad(addr)
	return w.Bus.Load16(addr)
}

func (w *WatchBus) Load8(addr uint32) (uint8, error) {
	w.checkLoad(addr)
	return w.Bus.Load8(addr)
}

func (w *WatchBus) Store32(addr uint32, value uint32) error {
	w.checkStore(addr)
	return w.Bus.Store32(addr, value)
}

func (w *WatchBus) Store16(addr uint32, value uint16) error {
	w.checkStore(addr)
	return w.Bus.Store16(addr, value)
}

func (w *WatchBus) Store8(addr uint32, value uint8) error {
	w.checkStore(addr)
	return w.Bus.Store8(addr, value)
}
