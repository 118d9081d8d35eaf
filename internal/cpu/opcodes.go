package cpu

import (
	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/psxerr"
)

func (c *CPU) execute() error {
	switch c.instr.Op() {
	case opSpecial:
		return c.executeSpecial()
	case opBxxx:
		c.executeBxxx()
	case opJ:
		c.nextPC = (c.nextPC & 0xF000_0000) | (c.instr.JumpTarget() << 2)
		c.inDelaySlot = true
		c.branchTaken = true
	case opJal:
		c.set(RA, c.nextPC)
		c.nextPC = (c.nextPC & 0xF000_0000) | (c.instr.JumpTarget() << 2)
		c.inDelaySlot = true
		c.branchTaken = true
	case opBeq:
		c.inDelaySlot = true
		if c.get(c.instr.Rs()) == c.get(c.instr.Rt()) {
			c.branch()
		}
	case opBne:
		c.inDelaySlot = true
		if c.get(c.instr.Rs()) != c.get(c.instr.Rt()) {
			c.branch()
		}
	case opBlez:
		c.inDelaySlot = true
		if int32(c.get(c.instr.Rs())) <= 0 {
			c.branch()
		}
	case opBgtz:
		c.inDelaySlot = true
		if int32(c.get(c.instr.Rs())) > 0 {
			c.branch()
		}
	case opAddi:
		old := c.get(c.instr.Rs())
		add := c.instr.ImmSE()
		result := old + add
		if (^(old^add))&(result^old)&0x8000_0000 != 0 {
			c.raiseException(ExcOverflow)
		} else {
			c.set(c.instr.Rt(), result)
		}
	case opAddiu:
		c.set(c.instr.Rt(), c.get(c.instr.Rs())+c.instr.ImmSE())
	case opSlti:
		c.set(c.instr.Rt(), boolU32(int32(c.get(c.instr.Rs())) < int32(c.instr.ImmSE())))
	case opSltiu:
		c.set(c.instr.Rt(), boolU32(c.get(c.instr.Rs()) < c.instr.ImmSE()))
	case opAndi:
		c.set(c.instr.Rt(), c.get(c.instr.Rs())&c.instr.Imm())
	case opOri:
		c.set(c.instr.Rt(), c.get(c.instr.Rs())|c.instr.Imm())
	case opXori:
		c.set(c.instr.Rt(), c.get(c.instr.Rs())^c.instr.Imm())
	case opLui:
		c.set(c.instr.Rt(), c.instr.Imm()<<16)
	case opCop0:
		return c.executeCop0()
	case opCop2:
		return c.executeCop2()
	case opCop1, opCop3:
		c.raiseException(ExcCopError)
	case opLb:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		v, err := c.loadByte(address)
		if err != nil {
			return err
		}
		c.setDelayEntry(c.instr.Rt(), uint32(int32(int8(v))))
	case opLh:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		if address&0x1 != 0 {
			c.raiseException(ExcLoadAddress)
		} else {
			v, err := c.loadHalf(address)
			if err != nil {
				return err
			}
			c.setDelayEntry(c.instr.Rt(), uint32(int32(int16(v))))
		}
	case opLwl:
		if err := c.loadUnalignedLeft(); err != nil {
			return err
		}
	case opLw:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		if address&0x3 != 0 {
			c.raiseException(ExcLoadAddress)
		} else {
			v, err := c.loadWord(address)
			if err != nil {
				return err
			}
			c.setDelayEntry(c.instr.Rt(), v)
		}
	case opLbu:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		v, err := c.loadByte(address)
		if err != nil {
			return err
		}
		c.setDelayEntry(c.instr.Rt(), uint32(v))
	case opLhu:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		if address&0x1 != 0 {
			c.raiseException(ExcLoadAddress)
		} else {
			v, err := c.loadHalf(address)
			if err != nil {
				return err
			}
			c.setDelayEntry(c.instr.Rt(), uint32(v))
		}
	case opLwr:
		if err := c.loadUnalignedRight(); err != nil {
			return err
		}
	case opSb:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		return c.storeByte(address, uint8(c.get(c.instr.Rt())))
	case opSh:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		if address&0x1 != 0 {
			c.raiseException(ExcStoreAddress)
			return nil
		}
		return c.storeHalf(address, uint16(c.get(c.instr.Rt())))
	case opSwl:
		return c.storeUnalignedLeft()
	case opSw:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		if address&0x3 != 0 {
			c.raiseException(ExcStoreAddress)
			return nil
		}
		return c.storeWord(address, c.get(c.instr.Rt()))
	case opSwr:
		return c.storeUnalignedRight()
	case opLwc2:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		v, err := c.loadWord(address)
		if err != nil {
			return err
		}
		c.GTE.SetReg(c.instr.Rt(), v)
	case opSwc2:
		address := c.get(c.instr.Rs()) + c.instr.ImmSE()
		return c.storeWord(address, c.GTE.GetReg(c.instr.Rt()))
	case opLwc0, opLwc1, opLwc3, opSwc0, opSwc1:
		c.raiseException(ExcCopError)
	default:
		logger.Logf("CPU", "reserved primary opcode %#02x (instruction %#08x)", c.instr.Op(), uint32(c.instr))
		c.raiseException(ExcReservedInstr)
	}
	return nil
}

// branch resolves a PC-relative branch target and marks it taken; called
// from every opXxx handler that shares the "delay slot, maybe branch"
// shape.
func (c *CPU) branch() {
	c.nextPC = c.PC + (c.instr.ImmSE() << 2)
	c.branchTaken = true
}

func (c *CPU) executeBxxx() {
	isBGEZ := c.instr.Rt()&0x01 != 0
	isLink := c.instr.Rt()&0x1E == 0x10

	test := int32(c.get(c.instr.Rs())) < 0
	test = test != isBGEZ

	c.inDelaySlot = true
	if isLink {
		c.set(RA, c.nextPC)
	}
	if test {
		c.branch()
	}
}

func (c *CPU) executeSpecial() error {
	switch c.instr.Sop() {
	case sopSll:
		c.set(c.instr.Rd(), c.get(c.instr.Rt())<<c.instr.Sa())
	case sopSrl:
		c.set(c.instr.Rd(), c.get(c.instr.Rt())>>c.instr.Sa())
	case sopSra:
		c.set(c.instr.Rd(), uint32(int32(c.get(c.instr.Rt()))>>c.instr.Sa()))
	case sopSllv:
		c.set(c.instr.Rd(), c.get(c.instr.Rt())<<(c.get(c.instr.Rs())&0x1F))
	case sopSrlv:
		c.set(c.instr.Rd(), c.get(c.instr.Rt())>>(c.get(c.instr.Rs())&0x1F))
	case sopSrav:
		c.set(c.instr.Rd(), uint32(int32(c.get(c.instr.Rt()))>>(c.get(c.instr.Rs())&0x1F)))
	case sopJr:
		jump := c.get(c.instr.Rs())
		c.inDelaySlot = true
		if jump&0x3 != 0 {
			c.raiseException(ExcStoreAddress)
			break
		}
		c.nextPC = jump
		c.branchTaken = true
	case sopJalr:
		jump := c.get(c.instr.Rs())
		c.set(c.instr.Rd(), c.nextPC)
		c.inDelaySlot = true
		if jump&0x3 != 0 {
			c.raiseException(ExcStoreAddress)
			break
		}
		c.nextPC = jump
		c.branchTaken = true
	case sopSyscall:
		c.raiseException(ExcSyscall)
	case sopBreak:
		c.raiseException(ExcBreak)
	case sopMfhi:
		c.set(c.instr.Rd(), c.HI)
	case sopMthi:
		c.HI = c.get(c.instr.Rs())
	case sopMflo:
		c.set(c.instr.Rd(), c.LO)
	case sopMtlo:
		c.LO = c.get(c.instr.Rs())
	case sopMult:
		a := int64(int32(c.get(c.instr.Rs())))
		b := int64(int32(c.get(c.instr.Rt())))
		result := uint64(a * b)
		c.LO = uint32(result)
		c.HI = uint32(result >> 32)
	case sopMultu:
		a := uint64(c.get(c.instr.Rs()))
		b := uint64(c.get(c.instr.Rt()))
		result := a * b
		c.LO = uint32(result)
		c.HI = uint32(result >> 32)
	case sopDiv:
		n := int32(c.get(c.instr.Rs()))
		d := int32(c.get(c.instr.Rt()))
		switch {
		case d == 0:
			c.HI = uint32(n)
			if n >= 0 {
				c.LO = 0xFFFF_FFFF
			} else {
				c.LO = 1
			}
		case uint32(n) == 0x8000_0000 && d == -1:
			c.HI = 0
			c.LO = 0x8000_0000
		default:
			c.HI = uint32(n % d)
			c.LO = uint32(n / d)
		}
	case sopDivu:
		n := c.get(c.instr.Rs())
		d := c.get(c.instr.Rt())
		if d == 0 {
			c.HI = n
			c.LO = 0xFFFF_FFFF
		} else {
			c.HI = n % d
			c.LO = n / d
		}
	case sopAdd:
		a := c.get(c.instr.Rs())
		b := c.get(c.instr.Rt())
		result := a + b
		if (^(a^b))&(result^a)&0x8000_0000 != 0 {
			c.raiseException(ExcOverflow)
		} else {
			c.set(c.instr.Rd(), result)
		}
	case sopAddu:
		c.set(c.instr.Rd(), c.get(c.instr.Rs())+c.get(c.instr.Rt()))
	case sopSub:
		a := c.get(c.instr.Rs())
		b := c.get(c.instr.Rt())
		result := a - b
		if (a^b)&(result^a)&0x8000_0000 != 0 {
			c.raiseException(ExcOverflow)
		} else {
			c.set(c.instr.Rd(), result)
		}
	case sopSubu:
		c.set(c.instr.Rd(), c.get(c.instr.Rs())-c.get(c.instr.Rt()))
	case sopAnd:
		c.set(c.instr.Rd(), c.get(c.instr.Rs())&c.get(c.instr.Rt()))
	case sopOr:
		c.set(c.instr.Rd(), c.get(c.instr.Rs())|c.get(c.instr.Rt()))
	case sopXor:
		c.set(c.instr.Rd(), c.get(c.instr.Rs())^c.get(c.instr.Rt()))
	case sopNor:
		c.set(c.instr.Rd(), ^(c.get(c.instr.Rs()) | c.get(c.instr.Rt())))
	case sopSlt:
		c.set(c.instr.Rd(), boolU32(int32(c.get(c.instr.Rs())) < int32(c.get(c.instr.Rt()))))
	case sopSltu:
		c.set(c.instr.Rd(), boolU32(c.get(c.instr.Rs()) < c.get(c.instr.Rt())))
	default:
		logger.Logf("CPU", "reserved SPECIAL opcode %#02x (instruction %#08x)", c.instr.Sop(), uint32(c.instr))
		c.raiseException(ExcReservedInstr)
	}
	return nil
}

func (c *CPU) executeCop0() error {
	switch c.instr.CopOp() {
	case copMF:
		c.setDelayEntry(c.instr.Rt(), c.getCP0(c.instr.Rd()))
	case copMT:
		c.setCP0(c.instr.Rd(), c.get(c.instr.Rt()))
	case copRFE:
		if uint32(c.instr)&0x3F != 0b010000 {
			return psxerr.Errorf("cpu: invalid CP0 instruction %#08x", uint32(c.instr))
		}
		sr := c.CP0.r[cop0SR]
		mode := sr & 0x3C
		sr &^= 0xF
		sr |= mode >> 2
		c.CP0.r[cop0SR] = sr
	default:
		return psxerr.Errorf("cpu: invalid coprocessor opcode %#02x", c.instr.CopOp())
	}
	return nil
}

func (c *CPU) executeCop2() error {
	if uint32(c.instr)>>25 == gteImmOpcode {
		c.GTE.Execute(uint32(c.instr))
		return nil
	}
	switch c.instr.CopOp() {
	case copMF:
		c.set(c.instr.Rt(), c.GTE.GetReg(c.instr.Rd()))
	case copCF:
		c.set(c.instr.Rt(), c.GTE.GetReg(c.instr.Rd()+32))
	case copMT:
		c.GTE.SetReg(c.instr.Rd(), c.get(c.instr.Rt()))
	case copCT:
		c.GTE.SetReg(c.instr.Rd()+32, c.get(c.instr.Rt()))
	default:
		return psxerr.Errorf("cpu: invalid GTE coprocessor opcode %#02x", c.instr.CopOp())
	}
	return nil
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
