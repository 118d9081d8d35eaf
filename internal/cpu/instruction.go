package cpu

import "github.com/nwidger/psxcore/internal/bitfield"

// Instruction is a raw 32-bit MIPS instruction word, decoded on demand
// through the field accessors below.
type Instruction uint32

var (
	fieldImm    = bitfield.Field[uint32]{Offset: 0, Width: 16}
	fieldRt     = bitfield.Field[uint32]{Offset: 16, Width: 5}
	fieldRs     = bitfield.Field[uint32]{Offset: 21, Width: 5}
	fieldOp     = bitfield.Field[uint32]{Offset: 26, Width: 6}
	fieldSop    = bitfield.Field[uint32]{Offset: 0, Width: 6}
	fieldSa     = bitfield.Field[uint32]{Offset: 6, Width: 5}
	fieldRd     = bitfield.Field[uint32]{Offset: 11, Width: 5}
	fieldJump   = bitfield.Field[uint32]{Offset: 0, Width: 26}
	fieldCopOp  = bitfield.Field[uint32]{Offset: 21, Width: 5}
)

// Op is the primary 6-bit opcode (bits 26-31).
func (i Instruction) Op() uint32 { return fieldOp.Get(uint32(i)) }

// Rs is the source register field (bits 21-25).
func (i Instruction) Rs() uint32 { return fieldRs.Get(uint32(i)) }

// Rt is the target register field (bits 16-20).
func (i Instruction) Rt() uint32 { return fieldRt.Get(uint32(i)) }

// Rd is the destination register field (bits 11-15).
func (i Instruction) Rd() uint32 { return fieldRd.Get(uint32(i)) }

// Sa is the shift-amount field (bits 6-10).
func (i Instruction) Sa() uint32 { return fieldSa.Get(uint32(i)) }

// Sop is the secondary (SPECIAL) opcode field (bits 0-5).
func (i Instruction) Sop() uint32 { return fieldSop.Get(uint32(i)) }

// Imm is the zero-extended 16-bit immediate field.
func (i Instruction) Imm() uint32 { return fieldImm.Get(uint32(i)) }

// ImmSE is the sign-extended 16-bit immediate field.
func (i Instruction) ImmSE() uint32 { return uint32(int32(int16(fieldImm.Get(uint32(i))))) }

// JumpTarget is the 26-bit target field used by J/JAL.
func (i Instruction) JumpTarget() uint32 { return fieldJump.Get(uint32(i)) }

// CopOp is the coprocessor sub-opcode field (bits 21-25), shared by
// MF/MT/CF/CT/RFE-style instructions.
func (i Instruction) CopOp() uint32 { return fieldCopOp.Get(uint32(i)) }

// Primary opcodes.
const (
	opSpecial = 0x00
	opBxxx    = 0x01
	opJ       = 0x02
	opJal     = 0x03
	opBeq     = 0x04
	opBne     = 0x05
	opBlez    = 0x06
	opBgtz    = 0x07
	opAddi    = 0x08
	opAddiu   = 0x09
	opSlti    = 0x0A
	opSltiu   = 0x0B
	opAndi    = 0x0C
	opOri     = 0x0D
	opXori    = 0x0E
	opLui     = 0x0F
	opCop0    = 0x10
	opCop1    = 0x11
	opCop2    = 0x12
	opCop3    = 0x13
	opLb      = 0x20
	opLh      = 0x21
	opLwl     = 0x22
	opLw      = 0x23
	opLbu     = 0x24
	opLhu     = 0x25
	opLwr     = 0x26
	opSb      = 0x28
	opSh      = 0x29
	opSwl     = 0x2A
	opSw      = 0x2B
	opSwr     = 0x2E
	opLwc0    = 0x30
	opLwc1    = 0x31
	opLwc2    = 0x32
	opLwc3    = 0x33
	opSwc0    = 0x38
	opSwc1    = 0x39
	opSwc2    = 0x3A
)

// SPECIAL (secondary) opcodes.
const (
	sopSll   = 0x00
	sopSrl   = 0x02
	sopSra   = 0x03
	sopSllv  = 0x04
	sopSrlv  = 0x06
	sopSrav  = 0x07
	sopJr    = 0x08
	sopJalr  = 0x09
	sopSyscall = 0x0C
	sopBreak = 0x0D
	sopMfhi  = 0x10
	sopMthi  = 0x11
	sopMflo  = 0x12
	sopMtlo  = 0x13
	sopMult  = 0x18
	sopMultu = 0x19
	sopDiv   = 0x1A
	sopDivu  = 0x1B
	sopAdd   = 0x20
	sopAddu  = 0x21
	sopSub   = 0x22
	sopSubu  = 0x23
	sopAnd   = 0x24
	sopOr    = 0x25
	sopXor   = 0x26
	sopNor   = 0x27
	sopSlt   = 0x2A
	sopSltu  = 0x2B
)

// Coprocessor move sub-opcodes (bits 21-25 of a COPz instruction).
const (
	copMF  = 0x00
	copCF  = 0x02
	copMT  = 0x04
	copCT  = 0x06
	copRFE = 0x10
)

// gteImmOpcode marks a COP2 instruction word as a GTE command rather than
// a register-move instruction: bits 25-31 (the primary opcode plus the
// MIPS "CO" format bit) read this constant.
const gteImmOpcode = 0x25
