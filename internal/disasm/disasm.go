// Package disasm renders MIPS R3000A instruction words as assembly text
// for debugger and trace surfaces. It decodes a raw word independently of
// any running CPU; a Step caller may additionally supply the current
// register file to annotate operands with their live values.
package disasm

import (
	"fmt"
	"strings"

	"github.com/nwidger/psxcore/internal/cpu"
)

// Instruction is one decoded line: the address and word it came from, and
// the rendered mnemonic text.
type Instruction struct {
	Address uint32
	Word    uint32
	Text    string
}

// Format decodes word as if fetched from address and returns the full
// "address: word  mnemonic" line. If regs is non-nil (32 general-purpose
// registers), operand registers are annotated with their current values.
func Format(address, word uint32, regs *[32]uint32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%08x: %08x  %s", address, word, mnemonic(address, word, regs))
	return b.String()
}

func mnemonic(address, word uint32, regs *[32]uint32) string {
	i := cpu.Instruction(word)
	nextAddress := address + 4

	switch i.Op() {
	case 0x00:
		return special(i, regs)
	case 0x01:
		return bxxx(i, nextAddress, regs)
	case 0x02:
		return withConstant("j", (nextAddress&0xF000_0000)|(i.JumpTarget()<<2), regs)
	case 0x03:
		return withConstant("jal", (nextAddress&0xF000_0000)|(i.JumpTarget()<<2), regs)
	case 0x04:
		return withConstantRR("beq", nextAddress+(i.ImmSE()<<2), i.Rs(), i.Rt(), regs)
	case 0x05:
		return withConstantRR("bne", nextAddress+(i.ImmSE()<<2), i.Rs(), i.Rt(), regs)
	case 0x06:
		return withConstantR("blez", nextAddress+(i.ImmSE()<<2), i.Rs(), regs)
	case 0x07:
		return withConstantR("bgtz", nextAddress+(i.ImmSE()<<2), i.Rs(), regs)
	case 0x08:
		return immOp("addi", i, regs)
	case 0x09:
		return immOp("addiu", i, regs)
	case 0x0A:
		return immOp("slti", i, regs)
	case 0x0B:
		return immOp("sltiu", i, regs)
	case 0x0C:
		return immOp("andi", i, regs)
	case 0x0D:
		return immOp("ori", i, regs)
	case 0x0E:
		return immOp("xori", i, regs)
	case 0x0F:
		return fmt.Sprintf("lui $%s 0x%x", regName(i.Rt()), i.Imm())
	case 0x10:
		return cop0(i)
	case 0x12:
		if word>>25 == 0x25 {
			return "gte"
		}
		return "gte (register move)"
	case 0x20:
		return loadStore("lb", i, regs)
	case 0x21:
		return loadStore("lh", i, regs)
	case 0x22:
		return loadStore("lwl", i, regs)
	case 0x23:
		return loadStore("lw", i, regs)
	case 0x24:
		return loadStore("lbu", i, regs)
	case 0x25:
		return loadStore("lhu", i, regs)
	case 0x26:
		return loadStore("lwr", i, regs)
	case 0x28:
		return loadStore("sb", i, regs)
	case 0x29:
		return loadStore("sh", i, regs)
	case 0x2A:
		return loadStore("swl", i, regs)
	case 0x2B:
		return loadStore("sw", i, regs)
	case 0x2E:
		return loadStore("swr", i, regs)
	case 0x32:
		return "lwc2"
	case 0x3A:
		return "swc2"
	default:
		return fmt.Sprintf("??? (opcode %#02x)", i.Op())
	}
}

func special(i cpu.Instruction, regs *[32]uint32) string {
	switch i.Sop() {
	case 0x00:
		return fmt.Sprintf("sll $%s $%s %d", regName(i.Rd()), regName(i.Rt()), i.Sa())
	case 0x02:
		return fmt.Sprintf("srl $%s $%s %d", regName(i.Rd()), regName(i.Rt()), i.Sa())
	case 0x03:
		return fmt.Sprintf("sra $%s $%s %d", regName(i.Rd()), regName(i.Rt()), i.Sa())
	case 0x04:
		return regOp3("sllv", i.Rd(), i.Rt(), i.Rs(), regs)
	case 0x06:
		return regOp3("srlv", i.Rd(), i.Rt(), i.Rs(), regs)
	case 0x07:
		return regOp3("srav", i.Rd(), i.Rt(), i.Rs(), regs)
	case 0x08:
		return regOp1("jr", i.Rs(), regs)
	case 0x09:
		return regOp2("jalr", i.Rd(), i.Rs(), regs)
	case 0x0C:
		return "syscall"
	case 0x0D:
		return "break"
	case 0x10:
		return regOp1("mfhi", i.Rd(), regs)
	case 0x11:
		return regOp1("mthi", i.Rs(), regs)
	case 0x12:
		return regOp1("mflo", i.Rd(), regs)
	case 0x13:
		return regOp1("mtlo", i.Rs(), regs)
	case 0x18:
		return regOp2("mult", i.Rs(), i.Rt(), regs)
	case 0x19:
		return regOp2("multu", i.Rs(), i.Rt(), regs)
	case 0x1A:
		return regOp2("div", i.Rs(), i.Rt(), regs)
	case 0x1B:
		return regOp2("divu", i.Rs(), i.Rt(), regs)
	case 0x20:
		return regOp3("add", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x21:
		return regOp3("addu", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x22:
		return regOp3("sub", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x23:
		return regOp3("subu", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x24:
		return regOp3("and", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x25:
		return regOp3("or", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x26:
		return regOp3("xor", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x27:
		return regOp3("nor", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x2A:
		return regOp3("slt", i.Rd(), i.Rs(), i.Rt(), regs)
	case 0x2B:
		return regOp3("sltu", i.Rd(), i.Rs(), i.Rt(), regs)
	default:
		return fmt.Sprintf("??? (special %#02x)", i.Sop())
	}
}

func bxxx(i cpu.Instruction, nextAddress uint32, regs *[32]uint32) string {
	name := "bltz"
	switch i.Rt() {
	case 0x00:
		name = "bltz"
	case 0x10:
		name = "bltzal"
	case 0x01:
		name = "bgez"
	case 0x11:
		name = "bgezal"
	}
	return withConstantR(name, nextAddress+(i.ImmSE()<<2), i.Rs(), regs)
}

func cop0(i cpu.Instruction) string {
	switch i.CopOp() {
	case 0x00:
		return fmt.Sprintf("mfc0 $%s $%s", regName(i.Rt()), cp0Name(i.Rd()))
	case 0x04:
		return fmt.Sprintf("mtc0 $%s $%s", regName(i.Rt()), cp0Name(i.Rd()))
	case 0x10:
		return "rfe"
	default:
		return fmt.Sprintf("??? (cop0 %#02x)", i.CopOp())
	}
}

func immOp(name string, i cpu.Instruction, regs *[32]uint32) string {
	s := fmt.Sprintf("%s $%s $%s %#x", name, regName(i.Rt()), regName(i.Rs()), i.ImmSE())
	if regs == nil {
		return s
	}
	return fmt.Sprintf("%-32s# %s=%#x", s, regName(i.Rs()), regs[i.Rs()])
}

func loadStore(name string, i cpu.Instruction, regs *[32]uint32) string {
	s := fmt.Sprintf("%s $%s %d($%s)", name, regName(i.Rt()), int32(i.ImmSE()), regName(i.Rs()))
	if regs == nil {
		return s
	}
	return fmt.Sprintf("%-32s# address=%#08x", s, regs[i.Rs()]+i.ImmSE())
}

func withConstant(name string, constant uint32, regs *[32]uint32) string {
	return fmt.Sprintf("%s %#08x", name, constant)
}

func withConstantR(name string, constant uint32, r uint32, regs *[32]uint32) string {
	s := fmt.Sprintf("%s $%s %#08x", name, regName(r), constant)
	if regs == nil {
		return s
	}
	return fmt.Sprintf("%-32s# %s=%#x", s, regName(r), regs[r])
}

func withConstantRR(name string, constant uint32, r1, r2 uint32, regs *[32]uint32) string {
	s := fmt.Sprintf("%s $%s $%s %#08x", name, regName(r1), regName(r2), constant)
	if regs == nil {
		return s
	}
	return fmt.Sprintf("%-32s# %s=%#x, %s=%#x", s, regName(r1), regs[r1], regName(r2), regs[r2])
}

func regOp1(name string, r1 uint32, regs *[32]uint32) string {
	s := fmt.Sprintf("%s $%s", name, regName(r1))
	if regs == nil {
		return s
	}
	return fmt.Sprintf("%-32s# %s=%#x", s, regName(r1), regs[r1])
}

func regOp2(name string, r1, r2 uint32, regs *[32]uint32) string {
	s := fmt.Sprintf("%s $%s $%s", name, regName(r1), regName(r2))
	if regs == nil {
		return s
	}
	return fmt.Sprintf("%-32s# %s=%#x, %s=%#x", s, regName(r1), regs[r1], regName(r2), regs[r2])
}

func regOp3(name string, r1, r2, r3 uint32, regs *[32]uint32) string {
	s := fmt.Sprintf("%s $%s $%s $%s", name, regName(r1), regName(r2), regName(r3))
	if regs == nil {
		return s
	}
	return fmt.Sprintf("%-32s# %s=%#x, %s=%#x, %s=%#x", s, regName(r1), regs[r1], regName(r2), regs[r2], regName(r3), regs[r3])
}

func regName(r uint32) string   { return cpu.RegisterNames[r] }
func cp0Name(r uint32) string   { return cpu.CP0RegisterNames[r] }
