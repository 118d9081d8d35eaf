package cpu

import (
	"github.com/nwidger/psxcore/internal/bitfield"
	"github.com/nwidger/psxcore/internal/gte"
	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/psxerr"
)

const resetVector = 0xBFC0_0000

// loadDelayEntry is one slot of the two-stage load-delay pipeline: a
// register number and the value destined for it one instruction from now.
type loadDelayEntry struct {
	reg   uint32
	value uint32
}

// CPU is the MIPS R3000A interpreter.
type CPU struct {
	GP  [32]uint32
	PC  uint32
	HI  uint32
	LO  uint32
	CP0 cp0Regs
	GTE gte.GTE

	Halt bool

	currentPC, nextPC           uint32
	branchTaken, wasBranchTaken bool
	inDelaySlot, wasInDelaySlot bool

	pendingDelay, newDelay loadDelayEntry
	instr                  Instruction

	Bus     MemPort
	Debug   DebugHook
	lastIRQ uint32
}

// New returns a CPU at its power-on reset vector. Wire Bus before
// stepping.
func New() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// Reset restores power-on register state.
func (c *CPU) Reset() {
	for i := range c.GP {
		c.GP[i] = 0
	}
	for i := range c.CP0.r {
		c.CP0.r[i] = 0
	}
	c.HI, c.LO = 0, 0
	c.updatePC(resetVector)
	c.CP0.r[cop0PRId] = 0x2

	c.wasInDelaySlot, c.inDelaySlot = false, false
	c.wasBranchTaken, c.branchTaken = false, false
	c.pendingDelay, c.newDelay = loadDelayEntry{}, loadDelayEntry{}
	c.instr = 0
	c.Halt = false

	c.GTE.Reset()
}

// InjectEntryPoint sets PC to a side-loaded executable's entry point and
// clears the load-delay and branch-delay pipeline state, so a PS-EXE
// injected after BIOS boot starts running with no stale in-flight load or
// branch left over from whatever the BIOS was doing the instruction
// before.
func (c *CPU) InjectEntryPoint(pc uint32) {
	c.updatePC(pc)
	c.wasInDelaySlot, c.inDelaySlot = false, false
	c.wasBranchTaken, c.branchTaken = false, false
	c.pendingDelay, c.newDelay = loadDelayEntry{}, loadDelayEntry{}
}

// SR returns the COP0 status register, for debugger and GDB stub surfaces.
func (c *CPU) SR() uint32 { return c.CP0.r[cop0SR] }

// Cause returns the COP0 cause register.
func (c *CPU) Cause() uint32 { return c.CP0.r[cop0Cause] }

// BadVAddr returns the COP0 bad virtual address register.
func (c *CPU) BadVAddr() uint32 { return c.CP0.r[cop0BadVAddr] }

// EPC returns the COP0 exception program counter.
func (c *CPU) EPC() uint32 { return c.CP0.r[cop0EPC] }

// SetInterruptPending sets or clears CAUSE.IP bit 10, the line the
// interrupt controller drives.
func (c *CPU) SetInterruptPending(pending bool) {
	ip := causeIP.Get(c.CP0.r[cop0Cause])
	if pending {
		ip |= 1 << 2
	} else {
		ip &^= 1 << 2
	}
	c.CP0.r[cop0Cause] = causeIP.Set(c.CP0.r[cop0Cause], ip)
}

// Step executes exactly one instruction, including any exception it
// raises. It returns a non-nil error only for host-fatal conditions (an
// invalid coprocessor opcode, an unmapped bus access); ordinary guest
// exceptions (reserved instruction, address errors, syscalls) are handled
// internally and never surface as a Go error.
func (c *CPU) Step() error {
	if c.Debug != nil && c.Debug.ShouldBreak(c.PC) {
		c.Halt = true
		return nil
	}

	c.wasInDelaySlot = c.inDelaySlot
	c.wasBranchTaken = c.branchTaken
	c.inDelaySlot = false
	c.branchTaken = false

	sr := c.CP0.r[cop0SR]
	if causeIP.Get(c.CP0.r[cop0Cause])&srIM.Get(sr) != 0 && srInterruptEnable.Get(sr) != 0 {
		if word, err := c.Bus.Load32(c.PC); err == nil && Instruction(word).Op() == opCop2 {
			logger.Log("CPU", "GTE command during interrupt, delaying interrupt")
		} else {
			c.currentPC = c.PC
			c.raiseException(ExcInterrupt)
			return nil
		}
	}

	word, err := c.Bus.Load32(c.PC)
	if err != nil {
		return psxerr.Errorf("cpu: instruction fetch failed at pc %#08x: %v", c.PC, err)
	}
	c.instr = Instruction(word)

	if c.Debug != nil {
		c.Debug.OnFetch(c.PC, word)
	}

	c.updatePC(c.nextPC)

	if c.currentPC&0x3 != 0 {
		logger.Logf("CPU", "invalid pc address %#08x", c.currentPC)
		c.raiseException(ExcLoadAddress)
		return nil
	}

	if err := c.execute(); err != nil {
		return err
	}

	c.GP[c.pendingDelay.reg] = c.pendingDelay.value
	c.pendingDelay = c.newDelay
	c.newDelay = loadDelayEntry{}
	c.GP[Zero] = 0

	return nil
}

func (c *CPU) updatePC(address uint32) {
	c.currentPC = c.PC
	c.PC = address
	c.nextPC = address + 4
}

// set writes a general-purpose register, canceling any pending load-delay
// write to the same register (a direct ALU write always wins over a
// load issued the previous cycle).
func (c *CPU) set(index uint32, value uint32) {
	if c.pendingDelay.reg == index {
		c.pendingDelay = loadDelayEntry{}
	}
	c.GP[index] = value
	c.GP[Zero] = 0
}

func (c *CPU) get(index uint32) uint32 {
	return c.GP[index]
}

// setDelayEntry schedules value to land in register reg one instruction
// from now, the MIPS load-delay slot.
func (c *CPU) setDelayEntry(reg uint32, value uint32) {
	if c.pendingDelay.reg == reg {
		c.pendingDelay = loadDelayEntry{}
	}
	c.newDelay = loadDelayEntry{reg: reg, value: value}
}

func (c *CPU) setCP0(index uint32, value uint32) {
	if index == cop0Cause {
		c.CP0.r[cop0Cause] = (c.CP0.r[cop0Cause] &^ causeIPWriteMask) | (value & causeIPWriteMask)
		return
	}
	c.CP0.r[index] = value
}

func (c *CPU) getCP0(index uint32) uint32 {
	return c.CP0.r[index]
}

// raiseException dispatches a COP0 exception: it selects the handler
// vector from SR's boot-exception-vectors bit, shifts the interrupt/user
// mode stack, and records EPC (adjusted back across a branch-delay slot).
func (c *CPU) raiseException(cause ExceptionCode) {
	handler := uint32(0x8000_0080)
	if srBootExcVectors.Get(c.CP0.r[cop0SR]) != 0 {
		handler = 0xBFC0_0180
	}

	mode := c.CP0.r[cop0SR] & 0x3F
	c.CP0.r[cop0SR] &^= 0x3F
	c.CP0.r[cop0SR] |= (mode << 2) & 0x3F

	c.CP0.r[cop0Cause] = causeExcode.Set(c.CP0.r[cop0Cause], uint32(cause))
	c.CP0.r[cop0EPC] = c.currentPC
	if c.wasInDelaySlot {
		c.CP0.r[cop0EPC] -= 4
		c.CP0.r[cop0Cause] = causeBD.Set(c.CP0.r[cop0Cause], 1)
		c.CP0.r[cop0JumpDest] = c.PC
		if c.wasBranchTaken {
			c.CP0.r[cop0Cause] = bitfield.SetBool(c.CP0.r[cop0Cause], 30, true)
		}
	} else {
		c.CP0.r[cop0Cause] = causeBD.Set(c.CP0.r[cop0Cause], 0)
	}

	c.PC = handler
	c.nextPC = handler + 4
}

func (c *CPU) loadByte(address uint32) (uint8, error) {
	if srIsolateCache.Get(c.CP0.r[cop0SR]) != 0 {
		return 0, psxerr.Errorf("cpu: load with isolated cache at %#08x", address)
	}
	return c.Bus.Load8(address)
}

func (c *CPU) loadHalf(address uint32) (uint16, error) {
	if srIsolateCache.Get(c.CP0.r[cop0SR]) != 0 {
		return 0, psxerr.Errorf("cpu: load with isolated cache at %#08x", address)
	}
	return c.Bus.Load16(address)
}

func (c *CPU) loadWord(address uint32) (uint32, error) {
	if srIsolateCache.Get(c.CP0.r[cop0SR]) != 0 {
		return 0, psxerr.Errorf("cpu: load with isolated cache at %#08x", address)
	}
	return c.Bus.Load32(address)
}

func (c *CPU) storeByte(address uint32, value uint8) error {
	if srIsolateCache.Get(c.CP0.r[cop0SR]) != 0 {
		return nil
	}
	return c.Bus.Store8(address, value)
}

func (c *CPU) storeHalf(address uint32, value uint16) error {
	if srIsolateCache.Get(c.CP0.r[cop0SR]) != 0 {
		return nil
	}
	return c.Bus.Store16(address, value)
}

func (c *CPU) storeWord(address uint32, value uint32) error {
	if srIsolateCache.Get(c.CP0.r[cop0SR]) != 0 {
		return nil
	}
	return c.Bus.Store32(address, value)
}
