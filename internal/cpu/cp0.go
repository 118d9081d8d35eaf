package cpu

import "github.com/nwidger/psxcore/internal/bitfield"

// CP0 register indices.
const (
	cop0R0 = iota
	cop0R1
	cop0R2
	cop0BPC
	cop0R4
	cop0BDA
	cop0JumpDest
	cop0DCIC
	cop0BadVAddr
	cop0BDAM
	cop0R10
	cop0BPCM
	cop0SR
	cop0Cause
	cop0EPC
	cop0PRId
)

var (
	srInterruptEnable = bitfield.Field[uint32]{Offset: 0, Width: 1}
	srIM              = bitfield.Field[uint32]{Offset: 8, Width: 8}
	srIsolateCache    = bitfield.Field[uint32]{Offset: 16, Width: 1}
	srBootExcVectors  = bitfield.Field[uint32]{Offset: 22, Width: 1}

	causeExcode = bitfield.Field[uint32]{Offset: 2, Width: 5}
	causeIP     = bitfield.Field[uint32]{Offset: 8, Width: 8}
	causeCE     = bitfield.Field[uint32]{Offset: 28, Width: 1}
	causeBD     = bitfield.Field[uint32]{Offset: 31, Width: 1}
)

// causeIPWriteMask is the only software-writable part of CAUSE: the two
// software-interrupt-pending bits.
const causeIPWriteMask = 0x300

// ExceptionCode identifies the cause of a COP0 exception dispatch.
type ExceptionCode uint32

const (
	ExcInterrupt     ExceptionCode = 0x00
	ExcLoadAddress   ExceptionCode = 0x04
	ExcStoreAddress  ExceptionCode = 0x05
	ExcSyscall       ExceptionCode = 0x08
	ExcBreak         ExceptionCode = 0x09
	ExcReservedInstr ExceptionCode = 0x0A
	ExcCopError      ExceptionCode = 0x0B
	ExcOverflow      ExceptionCode = 0x0C
)

// cp0Regs holds the 16 COP0 registers. Most are read-only diagnostic
// registers on the PSX's cut-down COP0; SR and CAUSE are the only ones
// with meaningful write behavior. setCP0 stores SR as written and masks
// writes to CAUSE down to causeIPWriteMask.
type cp0Regs struct {
	r [16]uint32
}

func (c *cp0Regs) sr() uint32    { return c.r[cop0SR] }
func (c *cp0Regs) cause() uint32 { return c.r[cop0Cause] }
func (c *cp0Regs) epc() uint32   { return c.r[cop0EPC] }
