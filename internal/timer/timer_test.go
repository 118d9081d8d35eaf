package timer

import "testing"

type fakeIRQ struct {
	requested []IRQSource
}

func (f *fakeIRQ) Request(source IRQSource) {
	f.requested = append(f.requested, source)
}

func TestFreeRunningSystemTimerFiresOnTarget(t *testing.T) {
	c := New()
	irq := &fakeIRQ{}
	c.IRQ = irq

	c.Store(0x28, 100)            // TMR2 target
	c.Store(0x24, uint32(1<<4))   // irq_on_target, system clock

	c.Step(100)
	if len(irq.requested) != 1 || irq.requested[0] != IRQTimer2 {
		t.Fatalf("expected one TIMER2 irq, got %v", irq.requested)
	}
}

func TestSystemTimerEighthClockAccumulatesRemainder(t *testing.T) {
	tm := newTimer(System)
	tm.Mode = modeClockSource.Set(0, 2) // bit9 set -> eighth clock
	if tm.isUsingSystemClock() {
		t.Fatal("expected eighth-clock source")
	}

	tm.step(3)
	if tm.Counter != 0 || tm.div8Remainder != 3 {
		t.Fatalf("expected a partial tick to be absorbed into the remainder, got counter=%d remainder=%d", tm.Counter, tm.div8Remainder)
	}
	tm.step(5)
	if tm.Counter != 1 || tm.div8Remainder != 0 {
		t.Fatalf("expected remainder+cycles to produce one tick, got counter=%d remainder=%d", tm.Counter, tm.div8Remainder)
	}
}

func TestCounterWrapsAtTargetWhenResetModeAfterTarget(t *testing.T) {
	tm := newTimer(Dotclock)
	tm.Target = 10
	tm.Mode = modeResetMode.Set(tm.Mode, uint32(ResetAfterTarget))
	tm.Counter = 8
	tm.increment(5)
	if tm.Counter != 3 {
		t.Fatalf("expected counter to wrap modulo target, got %d", tm.Counter)
	}
}

func TestReachedFlagsClearOnModeRead(t *testing.T) {
	c := New()
	tm := &c.timers[0]
	tm.Mode = modeReachedTarget.Set(tm.Mode, 1)
	got := c.Load(0x04)
	if modeReachedTarget.Get(got) == 0 {
		t.Fatal("expected the read value to still report the flag")
	}
	if modeReachedTarget.Get(tm.Mode) != 0 {
		t.Fatal("expected reading the mode register to clear the reached-target flag")
	}
}

func TestBlankSyncMode1ResetsCounterOnBlankEntry(t *testing.T) {
	tm := newTimer(Dotclock)
	tm.Mode = modeSyncEnabled.Set(tm.Mode, 1)
	tm.Mode = modeSyncMode.Set(tm.Mode, 1)
	tm.Counter = 500
	tm.updateBlankState(true)
	if tm.Counter != 0 {
		t.Fatalf("expected counter reset to 0 on blank entry in sync mode 1, got %d", tm.Counter)
	}
}
