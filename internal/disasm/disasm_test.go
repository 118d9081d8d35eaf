package disasm

import (
	"strings"
	"testing"
)

func TestFormatDecodesAddiu(t *testing.T) {
	// addiu $t0, $zero, 1
	word := uint32((0x09 << 26) | (0 << 21) | (8 << 16) | 1)
	got := Format(0x1000, word, nil)
	if !strings.Contains(got, "addiu $t0 $zero 0x1") {
		t.Fatalf("got %q", got)
	}
}

func TestFormatAnnotatesRegistersWhenProvided(t *testing.T) {
	word := uint32((0x09 << 26) | (0 << 21) | (8 << 16) | 1)
	var regs [32]uint32
	got := Format(0x1000, word, &regs)
	if !strings.Contains(got, "zero=0x0") {
		t.Fatalf("expected live register annotation, got %q", got)
	}
}

func TestFormatDecodesBranch(t *testing.T) {
	// beq $zero, $zero, 2
	word := uint32((0x04 << 26) | (0 << 21) | (0 << 16) | 2)
	got := Format(0, word, nil)
	if !strings.Contains(got, "beq $zero $zero 0x0000000c") {
		t.Fatalf("got %q", got)
	}
}
