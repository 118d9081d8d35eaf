package timer

// Controller is the three-timer block: a dotclock timer, an hblank
// timer, and a system-clock timer, each independently addressable through
// a 16-byte MMIO window.
type Controller struct {
	timers [3]Timer

	IRQ IRQRequester
}

// New returns a Controller with all three timers in their power-on state.
// Wire IRQ before use.
func New() *Controller {
	c := &Controller{
		timers: [3]Timer{newTimer(Dotclock), newTimer(HBlank), newTimer(System)},
	}
	return c
}

// Reset restores power-on register state for all three timers.
func (c *Controller) Reset() {
	for i := range c.timers {
		c.timers[i].reset()
	}
}

// Step advances every timer by cycles host cycles, requesting an
// interrupt for each one that reached a fire condition.
func (c *Controller) Step(cycles uint32) {
	for i := range c.timers {
		if source, fire := c.timers[i].step(cycles); fire && c.IRQ != nil {
			c.IRQ.Request(source)
		}
	}
}

// CyclesUntilNextEvent returns the soonest any of the three timers needs
// another Step call to notice an IRQ-worthy transition.
func (c *Controller) CyclesUntilNextEvent() uint32 {
	min := MaxCycles
	for i := range c.timers {
		if v := c.timers[i].cyclesUntilNextEvent(); v < min {
			min = v
		}
	}
	return min
}

// SetBlank notifies all three timers of a GPU hblank/vblank edge so their
// sync-mode pausing logic can react.
func (c *Controller) SetBlank(enteredBlank bool) {
	for i := range c.timers {
		c.timers[i].updateBlankState(enteredBlank)
	}
}

// Load reads a timer register at address, relative to the timer block's
// base.
func (c *Controller) Load(address uint32) uint32 {
	idx := (address & 0xF0) >> 4
	reg := address & 0xF
	if idx > 2 {
		return 0
	}
	t := &c.timers[idx]
	switch reg {
	case 0x0:
		return t.Counter
	case 0x4:
		v := t.Mode
		t.Mode = modeReachedTarget.Set(t.Mode, 0)
		t.Mode = modeReachedMaxVal.Set(t.Mode, 0)
		return v
	case 0x8:
		return t.Target
	}
	return 0
}

// Peek is Load without the reached-flag reset side effect.
func (c *Controller) Peek(address uint32) uint32 {
	idx := (address & 0xF0) >> 4
	reg := address & 0xF
	if idx > 2 {
		return 0
	}
	t := &c.timers[idx]
	switch reg {
	case 0x0:
		return t.Counter
	case 0x4:
		return t.Mode
	case 0x8:
		return t.Target
	}
	return 0
}

// Store writes a timer register at address.
func (c *Controller) Store(address uint32, value uint32) {
	idx := (address & 0xF0) >> 4
	reg := address & 0xF
	if idx > 2 {
		return
	}
	t := &c.timers[idx]
	switch reg {
	case 0x0:
		t.Counter = value
	case 0x4:
		t.pendingIRQ = false
		t.Counter = 0
		t.Mode = (t.Mode &^ modeWriteMask) | (value & modeWriteMask)
		if modeIRQToggleMode.Get(t.Mode) != 0 {
			t.Mode = modeAllowIRQ.Set(t.Mode, 1)
		}
		t.updatePaused()
	case 0x8:
		t.Target = value
	}
}
