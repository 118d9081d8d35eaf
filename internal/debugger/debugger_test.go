package debugger

import "testing"

func TestBreakpointHaltsAtAddressAndStaysPaused(t *testing.T) {
	d := New()
	d.AddBreakpoint(0x1000)

	if d.ShouldBreak(0x2000) {
		t.Fatal("halted at an address with no breakpoint")
	}
	if !d.ShouldBreak(0x1000) {
		t.Fatal("did not halt at the breakpoint address")
	}
	if !d.Paused() {
		t.Fatal("hitting a breakpoint should set the paused flag")
	}
}

func TestToggleBreakpointDisablesWithoutRemoving(t *testing.T) {
	d := New()
	d.AddBreakpoint(0x1000)
	d.ToggleBreakpoint(0x1000)
	if d.IsBreakpoint(0x1000) {
		t.Fatal("toggle did not disable the breakpoint")
	}
	d.ToggleBreakpoint(0x1000)
	if !d.IsBreakpoint(0x1000) {
		t.Fatal("toggle did not re-enable the breakpoint")
	}
}

func TestSingleStepPausesAfterOneInstruction(t *testing.T) {
	d := New()
	d.SetPausedState(false, true)

	if d.ShouldBreak(0x1000) {
		t.Fatal("single-step should let the current instruction run")
	}
	if !d.ShouldBreak(0x1004) {
		t.Fatal("single-step should halt before the next instruction")
	}
}

func TestHistoryRingWrapsAtCapacity(t *testing.T) {
	d := New()
	for i := uint32(0); i < ringBufferSize+10; i++ {
		d.OnFetch(i*4, 0xDEAD0000+i)
	}
	h := d.History()
	if len(h) != ringBufferSize {
		t.Fatalf("history length = %d, want %d", len(h), ringBufferSize)
	}
	if h[0].Address != 10*4 {
		t.Fatalf("oldest surviving entry address = %#x, want %#x", h[0].Address, 10*4)
	}
	if h[len(h)-1].Word != 0xDEAD0000+ringBufferSize+9 {
		t.Fatalf("newest entry word = %#x", h[len(h)-1].Word)
	}
}

func TestWatchpointOnLoadAndStoreAreIndependent(t *testing.T) {
	d := New()
	d.AddWatchpoint(0x80, true, false)
	if !d.IsWatchpointOnLoad(0x80) {
		t.Fatal("expected load watchpoint")
	}
	if d.IsWatchpointOnStore(0x80) {
		t.Fatal("store watchpoint should not be set")
	}
}
