package cpu

import "testing"

type fakeBus struct {
	mem [0x1000]uint32 // word-addressed backing store, byte address / 4
}

func (b *fakeBus) Load32(addr uint32) (uint32, error) { return b.mem[addr/4], nil }

func (b *fakeBus) Load16(addr uint32) (uint16, error) {
	word := b.mem[addr/4]
	if addr&0x2 != 0 {
		return uint16(word >> 16), nil
	}
	return uint16(word), nil
}

func (b *fakeBus) Load8(addr uint32) (uint8, error) {
	word := b.mem[addr/4]
	return uint8(word >> ((addr & 0x3) * 8)), nil
}

func (b *fakeBus) Store32(addr uint32, value uint32) error {
	b.mem[addr/4] = value
	return nil
}

func (b *fakeBus) Store16(addr uint32, value uint16) error {
	shift := (addr & 0x2) * 8
	mask := uint32(0xFFFF) << shift
	b.mem[addr/4] = (b.mem[addr/4] &^ mask) | (uint32(value) << shift)
	return nil
}

func (b *fakeBus) Store8(addr uint32, value uint8) error {
	shift := (addr & 0x3) * 8
	mask := uint32(0xFF) << shift
	b.mem[addr/4] = (b.mem[addr/4] &^ mask) | (uint32(value) << shift)
	return nil
}

func newTestCPU() (*CPU, *fakeBus) {
	c := New()
	bus := &fakeBus{}
	c.Bus = bus
	c.PC = 0
	c.updatePC(0)
	return c, bus
}

// encode builds a register-format SPECIAL instruction.
func encodeR(sop, rs, rt, rd, sa uint32) uint32 {
	return (rs << 21) | (rt << 16) | (rd << 11) | (sa << 6) | sop
}

func encodeI(op, rs, rt, imm uint32) uint32 {
	return (op << 26) | (rs << 21) | (rt << 16) | (imm & 0xFFFF)
}

func TestLoadDelaySlotLandsOneInstructionLater(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x40/4] = 0xCAFEBABE

	// lw $t0, 0($zero); add $t1, $t0, $zero
	bus.mem[0] = encodeI(opLw, 0, 8, 0x40)
	bus.mem[1] = encodeR(sopAddu, 8, 0, 9, 0)

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.GP[8] != 0 {
		t.Fatalf("lw result landed immediately: got %#x, want 0 (still delayed)", c.GP[8])
	}

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.GP[8] != 0xCAFEBABE {
		t.Fatalf("lw result did not land after delay slot: got %#x", c.GP[8])
	}
	if c.GP[9] != 0 {
		t.Fatalf("addu read the pre-delay value of $t0: got %#x, want 0", c.GP[9])
	}
}

func TestDirectWriteCancelsPendingLoadDelay(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = encodeI(opLw, 0, 8, 0) // lw $t0, 0($zero) -> delayed write of bus.mem[0] itself
	bus.mem[1] = encodeI(opAddiu, 0, 8, 7) // addiu $t0, $zero, 7 -- direct write, should win

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	// the lw's write is still pending while addiu executes; addiu's direct
	// write to the same register cancels it, so the committed value is
	// addiu's.
	if c.GP[8] != 7 {
		t.Fatalf("got $t0 = %#x, want 7", c.GP[8])
	}
}

func TestBranchDelaySlotExecutesBeforeTarget(t *testing.T) {
	c, bus := newTestCPU()
	// beq $zero, $zero, 2; addiu $t0, $zero, 1 (delay slot, always runs); addiu $t1, $zero, 2 (skipped); addiu $t2, $zero, 3 (branch target)
	bus.mem[0] = encodeI(opBeq, 0, 0, 2)
	bus.mem[1] = encodeI(opAddiu, 0, 8, 1)
	bus.mem[2] = encodeI(opAddiu, 0, 9, 2)
	bus.mem[3] = encodeI(opAddiu, 0, 10, 3)

	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}

	if c.GP[8] != 1 {
		t.Fatalf("delay slot instruction did not execute: $t0 = %#x", c.GP[8])
	}
	if c.GP[9] != 0 {
		t.Fatalf("branch target was not taken, fell through instead: $t1 = %#x", c.GP[9])
	}
	if c.GP[10] != 3 {
		t.Fatalf("branch target instruction did not execute: $t2 = %#x", c.GP[10])
	}
}

func TestAddOverflowRaisesExceptionAndSkipsWriteback(t *testing.T) {
	c, _ := newTestCPU()
	c.GP[8] = 0x7FFF_FFFF
	c.GP[9] = 1
	c.instr = Instruction(encodeR(sopAdd, 8, 9, 10, 0))
	c.currentPC = 0x1000
	c.PC = 0x1004

	if err := c.execute(); err != nil {
		t.Fatal(err)
	}
	if c.GP[10] != 0 {
		t.Fatalf("overflowing add wrote back a result: $t2 = %#x", c.GP[10])
	}
	if got := causeExcode.Get(c.CP0.r[cop0Cause]); got != uint32(ExcOverflow) {
		t.Fatalf("cause.excode = %#x, want ExcOverflow", got)
	}
	if c.PC != 0x8000_0080 {
		t.Fatalf("pc did not jump to the general exception vector: got %#x", c.PC)
	}
}

func TestAddiuDoesNotOverflow(t *testing.T) {
	c, _ := newTestCPU()
	c.GP[8] = 0x7FFF_FFFF
	c.instr = Instruction(encodeI(opAddiu, 8, 9, 1))

	if err := c.execute(); err != nil {
		t.Fatal(err)
	}
	if c.GP[9] != 0x8000_0000 {
		t.Fatalf("addiu should wrap silently: got %#x", c.GP[9])
	}
}

func TestBootExceptionVectorSelectedBySRBit22(t *testing.T) {
	c, _ := newTestCPU()
	c.CP0.r[cop0SR] = srBootExcVectors.Set(0, 1)
	c.currentPC = 0x2000
	c.raiseException(ExcBreak)
	if c.PC != 0xBFC0_0180 {
		t.Fatalf("pc = %#x, want boot exception vector 0xBFC00180", c.PC)
	}
}

func TestExceptionInDelaySlotBacksUpEPCAndSetsBD(t *testing.T) {
	c, _ := newTestCPU()
	c.currentPC = 0x1004
	c.PC = 0x1008
	c.wasInDelaySlot = true
	c.wasBranchTaken = true
	c.raiseException(ExcBreak)

	if c.CP0.r[cop0EPC] != 0x1000 {
		t.Fatalf("epc = %#x, want 0x1000 (currentPC - 4)", c.CP0.r[cop0EPC])
	}
	if causeBD.Get(c.CP0.r[cop0Cause]) != 1 {
		t.Fatal("cause.bd not set for an exception raised in a branch delay slot")
	}
	if c.CP0.r[cop0JumpDest] != 0x1008 {
		t.Fatalf("jumpdest = %#x, want 0x1008", c.CP0.r[cop0JumpDest])
	}
}

func TestLWLMergesHighBytesWithRegisterContents(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x40/4] = 0x1234_5678
	c.GP[8] = 0xAAAA_AAAA

	// lwl $t0, 0x41($zero) -> address 0x41, byte offset within word = 1
	c.instr = Instruction(encodeI(opLwl, 0, 8, 0x41))
	if err := c.execute(); err != nil {
		t.Fatal(err)
	}
	if c.newDelay.reg != 8 {
		t.Fatalf("lwl did not schedule a load-delay write to $t0")
	}
	want := uint32(0x0000_FFFF&0xAAAA_AAAA) | (uint32(0x1234_5678) << 16)
	if c.newDelay.value != want {
		t.Fatalf("lwl merged value = %#08x, want %#08x", c.newDelay.value, want)
	}
}

func TestMTC0CauseOnlyAllowsSoftwareInterruptBits(t *testing.T) {
	c, _ := newTestCPU()
	c.setCP0(cop0Cause, 0xFFFF_FFFF)
	if c.CP0.r[cop0Cause] != causeIPWriteMask {
		t.Fatalf("cause = %#08x, want only the software-interrupt bits set (%#08x)", c.CP0.r[cop0Cause], uint32(causeIPWriteMask))
	}
}

func TestRFERestoresInterruptModeStack(t *testing.T) {
	c, _ := newTestCPU()
	c.CP0.r[cop0SR] = 0b11_0101 // old=11, prev=01, cur=01 (current bits don't matter here)
	c.instr = Instruction((copRFE << 21) | 0b010000)
	if err := c.executeCop0(); err != nil {
		t.Fatal(err)
	}
	if got := c.CP0.r[cop0SR] & 0xF; got != 0b1101 {
		t.Fatalf("sr low bits after rfe = %#04b, want 1101", got)
	}
}

// pendInterrupt arms an interrupt-pending condition that Step will see on
// its next call: bit 2 of cause.IP set, matching mask bit, interrupts
// globally enabled.
func pendInterrupt(c *CPU) {
	c.CP0.r[cop0Cause] = causeIP.Set(c.CP0.r[cop0Cause], 1<<2)
	c.CP0.r[cop0SR] = srIM.Set(c.CP0.r[cop0SR], 1<<2)
	c.CP0.r[cop0SR] = srInterruptEnable.Set(c.CP0.r[cop0SR], 1)
}

func TestStepDispatchesPendingInterrupt(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = encodeR(sopSll, 0, 0, 0, 0) // nop, not a COP2 op
	pendInterrupt(c)

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x8000_0080 {
		t.Fatalf("pc = %#08x, want the general exception vector 0x80000080", c.PC)
	}
}

func TestStepDefersPendingInterruptOverAPendingGTECommand(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = encodeI(opCop2, 0, 0, 0) // a COP2/GTE command word
	pendInterrupt(c)

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC == 0x8000_0080 {
		t.Fatal("interrupt dispatched over a pending GTE command instead of being deferred")
	}
	if c.PC != 4 {
		t.Fatalf("pc = %#08x, want 4 (the GTE command still executed normally)", c.PC)
	}
}
