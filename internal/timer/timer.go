package timer

import "github.com/nwidger/psxcore/internal/bitfield"

// Kind identifies which of the three fixed timer slots a Timer occupies;
// it governs clock-source decoding and blank-sync behavior.
type Kind uint32

const (
	Dotclock Kind = iota
	HBlank
	System
)

const maxCounter = 0xFFFF

// ResetMode selects whether the counter wraps at its target or at its
// maximum value.
type ResetMode uint32

const (
	ResetAfterMaxValue ResetMode = iota
	ResetAfterTarget
)

var (
	modeSyncEnabled    = bitfield.Field[uint32]{Offset: 0, Width: 1}
	modeSyncMode       = bitfield.Field[uint32]{Offset: 1, Width: 2}
	modeResetMode      = bitfield.Field[uint32]{Offset: 3, Width: 1}
	modeIRQOnTarget    = bitfield.Field[uint32]{Offset: 4, Width: 1}
	modeIRQOnMaxValue  = bitfield.Field[uint32]{Offset: 5, Width: 1}
	modeIRQRepeatMode  = bitfield.Field[uint32]{Offset: 6, Width: 1}
	modeIRQToggleMode  = bitfield.Field[uint32]{Offset: 7, Width: 1}
	modeClockSource    = bitfield.Field[uint32]{Offset: 8, Width: 2}
	modeAllowIRQ       = bitfield.Field[uint32]{Offset: 10, Width: 1}
	modeReachedTarget  = bitfield.Field[uint32]{Offset: 11, Width: 1}
	modeReachedMaxVal  = bitfield.Field[uint32]{Offset: 12, Width: 1}
)

const modeWriteMask = 0xE3FF

// Timer is one of the three counter/target/mode register triples.
type Timer struct {
	kind Kind

	Counter uint32
	Mode    uint32
	Target  uint32

	paused    bool
	pendingIRQ bool
	inBlank   bool

	div8Remainder uint32
}

func newTimer(kind Kind) Timer {
	return Timer{kind: kind}
}

func (t *Timer) reset() {
	t.Counter = 0
	t.Mode = 0
	t.Target = 0
	t.paused = false
	t.pendingIRQ = false
	t.inBlank = false
	t.div8Remainder = 0
}

// isUsingSystemClock reports whether this timer ticks once per CPU cycle
// rather than from its alternate (dotclock/hblank/clock-eighth) source.
// The dot and hblank timers check bit 8; the system timer checks bit 9 --
// a genuine hardware asymmetry preserved here, not a typo.
func (t *Timer) isUsingSystemClock() bool {
	if t.kind == System {
		return modeClockSource.Get(t.Mode)&0x2 == 0
	}
	return modeClockSource.Get(t.Mode)%2 == 0
}

func (t *Timer) isUsingSysClockEighth() bool {
	return t.kind == System && !t.isUsingSystemClock()
}

func (t *Timer) stopAtCurrentValue() bool {
	return modeSyncMode.Get(t.Mode)%3 == 0
}

// increment advances the counter by cycles ticks and reports whether an
// enabled IRQ condition fired.
func (t *Timer) increment(cycles uint32) bool {
	if t.paused {
		return false
	}

	previous := t.Counter
	t.Counter += cycles

	sendIRQ := false

	alreadyReachedTarget := previous >= t.Target
	if t.Counter >= t.Target && (!alreadyReachedTarget || t.Target == 0) {
		t.Mode = modeReachedTarget.Set(t.Mode, 1)
		if modeIRQOnTarget.Get(t.Mode) != 0 {
			sendIRQ = true
		}
		if ResetMode(modeResetMode.Get(t.Mode)) == ResetAfterTarget && t.Target > 0 {
			t.Counter %= t.Target
		}
	}

	if t.Counter >= maxCounter {
		t.Mode = modeReachedMaxVal.Set(t.Mode, 1)
		if modeIRQOnMaxValue.Get(t.Mode) != 0 {
			sendIRQ = true
		}
		t.Counter %= maxCounter
	}

	fire := func() bool {
		if !t.pendingIRQ || modeIRQRepeatMode.Get(t.Mode) != 0 {
			t.pendingIRQ = true
			return true
		}
		return false
	}

	if sendIRQ {
		if modeIRQToggleMode.Get(t.Mode) != 0 {
			if modeIRQRepeatMode.Get(t.Mode) != 0 || modeAllowIRQ.Get(t.Mode) != 0 {
				allow := modeAllowIRQ.Get(t.Mode) == 0
				t.Mode = modeAllowIRQ.Set(t.Mode, boolBit(allow))
				if !allow {
					return fire()
				}
			}
		} else {
			t.Mode = modeAllowIRQ.Set(t.Mode, 1)
			return fire()
		}
	}

	return false
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (t *Timer) cyclesUntilNextIRQ() uint32 {
	cycles := MaxCycles

	if !t.paused {
		if modeIRQOnTarget.Get(t.Mode) != 0 {
			var untilTarget uint32
			if t.Counter < t.Target {
				untilTarget = t.Target - t.Counter
			} else {
				untilTarget = (maxCounter - t.Counter) + t.Target
			}
			if untilTarget < cycles {
				cycles = untilTarget
			}
		}
		if modeIRQOnMaxValue.Get(t.Mode) != 0 {
			untilMax := maxCounter - t.Counter
			if untilMax < cycles {
				cycles = untilMax
			}
		}
	}

	return cycles
}

// updateBlankState applies a GPU blanking-edge transition per the sync
// mode selected in the mode register, then recomputes whether the timer
// is paused.
func (t *Timer) updateBlankState(enteredBlank bool) {
	if t.inBlank == enteredBlank {
		return
	}
	t.inBlank = enteredBlank

	if t.inBlank && modeSyncEnabled.Get(t.Mode) != 0 {
		switch modeSyncMode.Get(t.Mode) {
		case 0:
		case 1, 2:
			t.Counter = 0
		case 3:
			t.Mode = modeSyncEnabled.Set(t.Mode, 0)
		}
	}

	t.updatePaused()
}

func (t *Timer) updatePaused() {
	switch t.kind {
	case Dotclock, HBlank:
		if modeSyncEnabled.Get(t.Mode) != 0 {
			switch modeSyncMode.Get(t.Mode) {
			case 0:
				t.paused = t.inBlank
			case 1:
				t.paused = false
			case 2, 3:
				t.paused = !t.inBlank
			}
		} else {
			t.paused = false
		}
	case System:
		if modeSyncEnabled.Get(t.Mode) != 0 {
			t.paused = t.paused && t.stopAtCurrentValue()
		} else {
			t.paused = false
		}
	}
}

// step advances the timer by cycles host cycles and reports an IRQSource
// to raise, if any.
func (t *Timer) step(cycles uint32) (IRQSource, bool) {
	switch t.kind {
	case Dotclock:
		if t.isUsingSystemClock() && t.increment(cycles) {
			return IRQTimer0, true
		}
	case HBlank:
		if t.isUsingSystemClock() && t.increment(cycles) {
			return IRQTimer1, true
		}
	case System:
		var ticks uint32
		if t.isUsingSysClockEighth() {
			ticks = (cycles + t.div8Remainder) / 8
			t.div8Remainder = (cycles + t.div8Remainder) % 8
		} else {
			ticks = cycles
		}
		if t.increment(ticks) {
			if modeSyncEnabled.Get(t.Mode) != 0 && t.stopAtCurrentValue() {
				if modeIRQOnTarget.Get(t.Mode) != 0 && modeReachedTarget.Get(t.Mode) != 0 {
					t.Counter = t.Target
				} else {
					t.Counter = maxCounter
				}
				t.paused = true
			}
			return IRQTimer2, true
		}
	}
	return 0, false
}

func (t *Timer) cyclesUntilNextEvent() uint32 {
	switch t.kind {
	case Dotclock, HBlank:
		if t.isUsingSystemClock() {
			return t.cyclesUntilNextIRQ()
		}
		return MaxCycles
	case System:
		remaining := t.cyclesUntilNextIRQ()
		if t.isUsingSysClockEighth() && remaining != MaxCycles {
			return remaining*8 - t.div8Remainder
		}
		return remaining
	}
	return MaxCycles
}
